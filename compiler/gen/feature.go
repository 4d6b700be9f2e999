package gen

import "fmt"

var (
	// FeatureStringer emits a String method for every enum.
	FeatureStringer = Feature{
		Name:        "decl/stringer",
		Stage:       Beta,
		Default:     false,
		Description: "Stringer generates a String method returning the schema name of enum members",
	}

	// FeatureJSONTags emits json struct tags carrying the schema field names.
	FeatureJSONTags = Feature{
		Name:        "decl/jsontags",
		Stage:       Experimental,
		Default:     false,
		Description: "JSONTags adds json struct tags with the schema field names to declarations",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureStringer,
		FeatureJSONTags,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development, and actively being tested.
	Experimental

	// Alpha features are features whose initial development was finished, but
	// breaking changes to their output are still expected.
	Alpha

	// Beta features are Alpha features whose output is not expected to change.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// A Feature of the schemagen codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// FeatureByName returns the feature registered under name.
func FeatureByName(name string) (Feature, error) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, nil
		}
	}
	return Feature{}, NewConfigError("Features", name, fmt.Sprintf("unknown feature; available: %s", featureNames()))
}

func featureNames() string {
	var s string
	for i, f := range AllFeatures {
		if i > 0 {
			s += ", "
		}
		s += f.Name
	}
	return s
}
