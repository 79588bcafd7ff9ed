package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ppacher/line-conf/conf"
)

// declarations holds the raw option declarations passed on the
// command line.
type declarations struct {
	bools   []string
	strs    []string
	allow   []string
	doubles []string
	lists   []string
}

type stringDecl struct {
	key     string
	def     string
	allowed []string
}

type doubleDecl struct {
	key string
	def float64
}

type listDecl struct {
	key string
	def []float64
}

// schema is the parsed form of declarations. It registers all
// options when used as the Setup hook of a load.
type schema struct {
	bools   []string
	strs    []stringDecl
	doubles []doubleDecl
	lists   []listDecl
}

// splitDecl splits KEY[=VALUE].
func splitDecl(decl string) (key, value string, ok bool) {
	parts := strings.SplitN(decl, "=", 2)
	if len(parts) == 1 {
		return parts[0], "", false
	}
	return parts[0], parts[1], true
}

func parseList(text string) ([]float64, error) {
	var values []float64
	for _, part := range strings.Split(text, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// parse validates the declarations and converts all defaults.
func (d declarations) parse() (*schema, error) {
	s := &schema{bools: d.bools}

	allowed := make(map[string][]string)
	for _, decl := range d.allow {
		key, values, ok := splitDecl(decl)
		if !ok || values == "" {
			return nil, fmt.Errorf("--allow %q: expected KEY=VALUE[,VALUE...]", decl)
		}
		allowed[key] = append(allowed[key], strings.Split(values, ",")...)
	}

	declared := make(map[string]bool)
	for _, decl := range d.strs {
		key, def, _ := splitDecl(decl)
		s.strs = append(s.strs, stringDecl{key: key, def: def, allowed: allowed[key]})
		declared[key] = true
	}

	var undeclared []string
	for key := range allowed {
		if !declared[key] {
			undeclared = append(undeclared, key)
		}
	}
	if len(undeclared) > 0 {
		sort.Strings(undeclared)
		return nil, fmt.Errorf("--allow %s: option is not declared with --string", undeclared[0])
	}

	for _, decl := range d.doubles {
		key, text, ok := splitDecl(decl)
		def := conf.NoDefault
		if ok {
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("--double %q: invalid default: %w", decl, err)
			}
			def = v
		}
		s.doubles = append(s.doubles, doubleDecl{key: key, def: def})
	}

	for _, decl := range d.lists {
		key, text, ok := splitDecl(decl)
		var def []float64
		if ok {
			v, err := parseList(text)
			if err != nil {
				return nil, fmt.Errorf("--doubles %q: invalid default: %w", decl, err)
			}
			def = v
		}
		s.lists = append(s.lists, listDecl{key: key, def: def})
	}

	return s, nil
}

// Setup implements conf.Setupper.
func (s *schema) Setup(reg *conf.Registry) error {
	for _, key := range s.bools {
		if err := reg.RegisterBoolean(key, false); err != nil {
			return err
		}
	}
	for _, decl := range s.strs {
		if err := reg.RegisterString(decl.key, decl.def, decl.allowed); err != nil {
			return err
		}
	}
	for _, decl := range s.doubles {
		if err := reg.RegisterDouble(decl.key, decl.def); err != nil {
			return err
		}
	}
	for _, decl := range s.lists {
		if err := reg.RegisterDoublesList(decl.key, decl.def); err != nil {
			return err
		}
	}
	return nil
}
