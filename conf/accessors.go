package conf

import (
	"math"

	"github.com/ppacher/line-conf/internal/log"
)

var _ Values = (*Registry)(nil)

// GetBoolean returns the value of a boolean option or false if unset.
func (r *Registry) GetBoolean(key string) bool {
	v, _ := r.bools.get(key)
	return v
}

// HasString returns true if key holds a non-empty value.
func (r *Registry) HasString(key string) bool {
	v, ok := r.strs.get(key)
	return ok && v != ""
}

// GetString returns the value of a string option or an empty string
// if unset.
func (r *Registry) GetString(key string) string {
	v, _ := r.strs.get(key)
	return v
}

// HasDouble returns true if a value is stored for key. Note that
// this includes a NoDefault registration default.
func (r *Registry) HasDouble(key string) bool {
	_, ok := r.floats.get(key)
	return ok
}

// GetDouble returns the value of a double option. There is no safe
// default so callers should check HasDouble first. Unknown keys
// return NaN.
func (r *Registry) GetDouble(key string) float64 {
	v, ok := r.floats.get(key)
	if !ok {
		return math.NaN()
	}
	return v
}

// HasDoublesList returns true if key holds at least one number.
func (r *Registry) HasDoublesList(key string) bool {
	v, ok := r.lists.get(key)
	return ok && len(v) > 0
}

// GetDoublesList returns a copy of the numbers stored for key. It
// returns an empty list if the key is unset.
func (r *Registry) GetDoublesList(key string) []float64 {
	v, _ := r.lists.get(key)
	if v == nil {
		return []float64{}
	}
	return copyFloats(v)
}

// AsMap returns a map representation of all options that hold a
// value. Boolean options are always included. A key registered for
// more than one type is reported as a warning and the value of the
// later type (bool, string, double, double list) is kept.
func (r *Registry) AsMap() map[string]interface{} {
	res := make(map[string]interface{})
	put := func(typ OptionType, key string, v interface{}) {
		if _, ok := res[key]; ok {
			r.log.Warn().
				Str(log.FieldKey, key).
				Str(log.FieldType, typ.String()).
				Msg("option registered for multiple types")
		}
		res[key] = v
	}

	for _, key := range r.bools.keys {
		put(BoolType, key, r.GetBoolean(key))
	}
	for _, key := range r.strs.keys {
		if r.HasString(key) {
			put(StringType, key, r.GetString(key))
		}
	}
	for _, key := range r.floats.keys {
		if r.HasDouble(key) {
			put(FloatType, key, r.GetDouble(key))
		}
	}
	for _, key := range r.lists.keys {
		if r.HasDoublesList(key) {
			put(FloatSliceType, key, r.GetDoublesList(key))
		}
	}

	return res
}

// Options returns the specs of all registered options ordered by
// type and key.
func (r *Registry) Options() []OptionSpec {
	var specs []OptionSpec
	for _, rd := range r.readers {
		for _, key := range rd.Keys() {
			spec := r.spec(rd.Type(), key)
			spec.Allowed = append([]string(nil), spec.Allowed...)
			spec.Annotations = spec.Annotations.clone()
			specs = append(specs, spec)
		}
	}
	return specs
}
