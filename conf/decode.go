package conf

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// Decode copies option values into the exported fields of the struct
// target points to. Fields select their option with an `option:"key"`
// tag, untagged fields are skipped. The field kind selects the option
// type: bool, string, float32/float64 and slices of floats. Pointer
// fields are left nil if the option has no value. Embedded structs are
// decoded into as well.
func (r *Registry) Decode(target interface{}) error {
	outVal := reflect.ValueOf(target)
	if outVal.Kind() != reflect.Ptr || outVal.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer to a struct")
	}

	return r.decodeStruct(outVal.Elem())
}

func (r *Registry) decodeStruct(outVal reflect.Value) error {
	if outVal.Kind() != reflect.Struct {
		return fmt.Errorf("target must be of type %s", reflect.Struct)
	}

	for i := 0; i < outVal.NumField(); i++ {
		fieldType := outVal.Type().Field(i)
		name := fieldType.Name

		if fieldType.Anonymous && fieldType.Type.Kind() == reflect.Struct {
			if err := r.decodeStruct(outVal.Field(i)); err != nil {
				return fmt.Errorf("failed to decode into anonymous field %s: %w", name, err)
			}
			continue
		}

		// Skip unexported struct fields.
		if !unicode.IsUpper([]rune(name)[0]) {
			continue
		}

		tag, ok := fieldType.Tag.Lookup("option")
		if !ok {
			continue
		}
		key := strings.Split(tag, ",")[0]
		if key == "" || key == "-" {
			continue
		}

		if err := r.decodeField(key, outVal.Field(i)); err != nil {
			return fmt.Errorf("failed to decode into field %s: %w", name, err)
		}
	}

	return nil
}

func (r *Registry) decodeField(key string, outVal reflect.Value) error {
	if outVal.Kind() == reflect.Ptr {
		val := reflect.New(outVal.Type().Elem())
		set, err := r.decodeValue(key, val.Elem())
		if err != nil {
			return err
		}
		if set {
			outVal.Set(val)
		} else {
			outVal.Set(reflect.Zero(outVal.Type()))
		}
		return nil
	}

	_, err := r.decodeValue(key, outVal)
	return err
}

// decodeValue stores the value of key in outVal. It returns false if
// the option has no value.
func (r *Registry) decodeValue(key string, outVal reflect.Value) (bool, error) {
	kind := getKind(outVal)

	switch kind {
	case reflect.Bool:
		if !r.bools.has(key) {
			return false, fmt.Errorf("%s: %w", key, ErrUnknownOption)
		}
		outVal.SetBool(r.GetBoolean(key))
		return true, nil

	case reflect.String:
		if !r.strs.has(key) {
			return false, fmt.Errorf("%s: %w", key, ErrUnknownOption)
		}
		outVal.SetString(r.GetString(key))
		return r.HasString(key), nil

	case reflect.Float32:
		if !r.floats.has(key) {
			return false, fmt.Errorf("%s: %w", key, ErrUnknownOption)
		}
		outVal.SetFloat(r.GetDouble(key))
		return r.HasDouble(key), nil

	case reflect.Slice:
		if getKind(reflect.Zero(outVal.Type().Elem())) != reflect.Float32 {
			break
		}
		if !r.lists.has(key) {
			return false, fmt.Errorf("%s: %w", key, ErrUnknownOption)
		}
		values := r.GetDoublesList(key)
		sliceVal := reflect.MakeSlice(outVal.Type(), len(values), len(values))
		for i, v := range values {
			sliceVal.Index(i).SetFloat(v)
		}
		outVal.Set(sliceVal)
		return len(values) > 0, nil
	}

	return false, fmt.Errorf("unsupported type: %s", outVal.Type())
}

// getKind returns the kind of value but normalized Int, Uint and Float varaints
// to their base type.
func getKind(val reflect.Value) reflect.Kind {
	kind := val.Kind()

	switch {
	case kind >= reflect.Int && kind <= reflect.Int64:
		return reflect.Int
	case kind >= reflect.Uint && kind <= reflect.Uint64:
		return reflect.Uint
	case kind >= reflect.Float32 && kind <= reflect.Float64:
		return reflect.Float32
	default:
		return kind
	}
}
