package conf

// OptionSpec describes a registered option.
type OptionSpec struct {
	// Name is the key of the option.
	Name string `json:"name"`

	// Type defines the type of the option.
	Type OptionType `json:"type"`

	// Description is a human readable description of
	// the option.
	Description string `json:"description,omitempty"`

	// Default holds the textual form of the default value
	// in the same layout it would have in a config file.
	Default string `json:"default,omitempty"`

	// Allowed lists the values accepted by a string option.
	// An empty list accepts any value.
	Allowed []string `json:"allowed,omitempty"`

	// Annotations can be used to add arbitrary metadata to
	// option definitions. For example, such annotations can
	// be later used in help or documentation generators.
	Annotations Annotation `json:"annotations,omitempty"`
}

// HasAnnotation returns true if spec has an annotation with the
// given name.
func (spec *OptionSpec) HasAnnotation(name string) bool {
	return spec.Annotations.Has(name)
}

// SpecOption configures the OptionSpec of an option during
// registration.
type SpecOption func(*OptionSpec)

// Describe sets the description of an option.
func Describe(text string) SpecOption {
	return func(spec *OptionSpec) {
		spec.Description = text
	}
}

// Annotate adds annotations to an option.
func Annotate(kvs ...KeyValue) SpecOption {
	return func(spec *OptionSpec) {
		spec.Annotations.With(kvs...)
	}
}

// Secret marks an option as secret. See SecretValue.
func Secret() SpecOption {
	return Annotate(SecretValue())
}
