package conf

type (
	KeyValue struct {
		Key   string
		Value interface{}
	}

	Annotation map[string]interface{}
)

// With adds one or more annotation key-value pairs.
func (an *Annotation) With(kvs ...KeyValue) Annotation {
	if *an == nil {
		*an = Annotation{}
	}
	for _, kv := range kvs {
		(*an)[kv.Key] = kv.Value
	}
	return *an
}

// Get returns the value of an annoation by key or nil.
func (an Annotation) Get(key string) interface{} {
	return an[key]
}

// Has returns true if an annotation identified by key exists.
func (an Annotation) Has(key string) bool {
	_, ok := an[key]
	return ok
}

func (an Annotation) clone() Annotation {
	if an == nil {
		return nil
	}
	c := make(Annotation, len(an))
	for k, v := range an {
		c[k] = v
	}
	return c
}

const secretAnnotation = "line-conf/secret"

// SecretValue returns an annotation KeyValue that marks
// an option as secret. Values of secret options are
// redacted in log output.
func SecretValue() KeyValue {
	return KeyValue{
		Key:   secretAnnotation,
		Value: true,
	}
}

// IsSecret returns true if spec is annotated as a secret.
func IsSecret(spec OptionSpec) bool {
	return spec.Annotations.Has(secretAnnotation)
}
