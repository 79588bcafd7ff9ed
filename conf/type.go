package conf

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OptionType describes the type of an option. It cannot
// be implemented outside the conf package.
type OptionType interface {
	option() // ensure types can only be specified by this package.

	IsSliceType() bool

	fmt.Stringer
	json.Marshaler
}

// All supported option types, in the order their readers
// are consulted for each line.
var (
	BoolType       = option("bool    ", false)
	StringType     = option("string  ", false)
	FloatType      = option("float   ", false)
	FloatSliceType = option("[]float ", true)
)

type optionType struct {
	name  string
	slice bool
}

func option(name string, slice bool) OptionType {
	return &optionType{
		name:  strings.Trim(name, " "),
		slice: slice,
	}
}

func (*optionType) option() {}

func (o *optionType) IsSliceType() bool { return o.slice }

func (o *optionType) String() string { return o.name }

// MarshalJSON returns a JSON representation of the option type.
func (o *optionType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + o.name + `"`), nil
}

// TypeFromString returns the option type described by str.
func TypeFromString(str string) *OptionType {
	switch str {
	case "bool", "boolean":
		return &BoolType
	case "string":
		return &StringType
	case "float", "double":
		return &FloatType
	case "[]float", "doubles":
		return &FloatSliceType
	}

	return nil
}
