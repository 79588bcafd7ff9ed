// Package conf loads line oriented configuration files against a
// registry of typed option declarations.
//
// A configuration file consists of comment lines (starting with #),
// empty lines and option lines:
//
//	verbose
//	mode=slow
//	rate 0.25
//	weights 1 2 3
//
// Boolean options are set by their key alone, string options use
// key=value and numeric options separate the key and the number(s)
// by whitespace. Every option line must belong to exactly one
// registered option, unknown keys fail the load.
//
// A Registry is not safe for concurrent use. Options are registered
// first, then the registry is loaded exactly once and is read-only
// afterwards.
package conf

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ppacher/line-conf/internal/log"
)

// NoDefault may be used as the default of a double option that
// has no sensible default value.
var NoDefault = math.NaN()

// keySeparators terminate the key token of an option line.
const keySeparators = "=: \t"

// Values is the read-only accessor surface of a loaded
// configuration.
type Values interface {
	// GetBoolean returns the value of a boolean option or false
	// if the key is unknown.
	GetBoolean(key string) bool

	// HasString returns true if the string option has a
	// non-empty value.
	HasString(key string) bool

	// GetString returns the value of a string option or an
	// empty string.
	GetString(key string) string

	// HasDouble returns true if a value, including the
	// registration default, is stored for key.
	HasDouble(key string) bool

	// GetDouble returns the value of a double option. Unknown
	// keys return NaN.
	GetDouble(key string) float64

	// HasDoublesList returns true if the double-list option
	// holds at least one number.
	HasDoublesList(key string) bool

	// GetDoublesList returns a copy of the numbers stored for
	// key.
	GetDoublesList(key string) []float64
}

// Setupper may be implemented by configuration consumers passed to
// LoadConfig. Setup is called before any file is read and is expected
// to register all known options.
type Setupper interface {
	Setup(reg *Registry) error
}

// Validator may be implemented by configuration consumers passed to
// LoadConfig. Validate is called after all files have been parsed and
// before the values are committed to the registry. Implementations
// must read values through v.
type Validator interface {
	Validate(v Values) error
}

// Registry holds the typed option tables.
type Registry struct {
	log zerolog.Logger

	bools  *table[bool]
	strs   *table[string]
	floats *table[float64]
	lists  *table[[]float64]

	allowed map[string][]string
	specs   map[OptionType]map[string]OptionSpec

	readers []optionReader
	loaded  bool
}

// RegistryOption configures a Registry created by New.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = l
	}
}

// New returns an empty registry.
func New(opts ...RegistryOption) *Registry {
	r := &Registry{
		log:     log.WithComponent("conf"),
		bools:   newTable[bool](),
		strs:    newTable[string](),
		floats:  newTable[float64](),
		lists:   newTable[[]float64](),
		allowed: make(map[string][]string),
		specs:   make(map[OptionType]map[string]OptionSpec),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.readers = newReaders(r)

	return r
}

// Loaded returns true once a load has succeeded.
func (r *Registry) Loaded() bool {
	return r.loaded
}

// RegisterBoolean registers a boolean option. A boolean option
// becomes true if its key appears in the configuration file.
func (r *Registry) RegisterBoolean(key string, def bool, opts ...SpecOption) error {
	if err := r.checkRegister(key); err != nil {
		return err
	}

	r.bools.register(key, def)
	r.describe(BoolType, key, strconv.FormatBool(def), nil, opts)
	return nil
}

// RegisterString registers a string option. If allowed is not empty
// only the listed values are accepted, and def must be one of them.
func (r *Registry) RegisterString(key, def string, allowed []string, opts ...SpecOption) error {
	if err := r.checkRegister(key); err != nil {
		return err
	}

	allowed = append([]string(nil), allowed...)
	if len(allowed) > 0 && !contains(allowed, def) {
		r.log.Error().
			Str(log.FieldKey, key).
			Str(log.FieldValue, def).
			Strs("allowed", allowed).
			Msg("invalid default value")
		return fmt.Errorf("%s: %w: %q (valid values are { %s })", key, ErrInvalidDefault, def, strings.Join(allowed, " "))
	}

	if len(allowed) > 0 {
		r.allowed[key] = allowed
	} else {
		delete(r.allowed, key)
	}
	r.strs.register(key, def)
	r.describe(StringType, key, def, allowed, opts)
	return nil
}

// RegisterDouble registers a floating point option. Use NoDefault
// if there is no sensible default value.
func (r *Registry) RegisterDouble(key string, def float64, opts ...SpecOption) error {
	if err := r.checkRegister(key); err != nil {
		return err
	}

	r.floats.register(key, def)
	r.describe(FloatType, key, formatFloat(def), nil, opts)
	return nil
}

// RegisterDoublesList registers an option holding a list of
// floating point numbers.
func (r *Registry) RegisterDoublesList(key string, def []float64, opts ...SpecOption) error {
	if err := r.checkRegister(key); err != nil {
		return err
	}

	r.lists.register(key, copyFloats(def))
	r.describe(FloatSliceType, key, formatFloats(def), nil, opts)
	return nil
}

func (r *Registry) checkRegister(key string) error {
	if r.loaded {
		return fmt.Errorf("%s: %w", key, ErrRegistryLoaded)
	}
	if key == "" || key[0] == '#' || strings.ContainsAny(key, keySeparators+"\r\n") {
		return fmt.Errorf("%q: %w", key, ErrInvalidKey)
	}
	return nil
}

func (r *Registry) describe(typ OptionType, key, def string, allowed []string, opts []SpecOption) {
	spec := OptionSpec{
		Name:    key,
		Type:    typ,
		Default: def,
		Allowed: allowed,
	}
	for _, opt := range opts {
		opt(&spec)
	}

	if r.specs[typ] == nil {
		r.specs[typ] = make(map[string]OptionSpec)
	}
	r.specs[typ][key] = spec
}

// spec returns the OptionSpec of key for the given type.
func (r *Registry) spec(typ OptionType, key string) OptionSpec {
	return r.specs[typ][key]
}

// clone returns a copy of r with its own value tables. Constraints
// and option specs are shared since they cannot change during a load.
func (r *Registry) clone() *Registry {
	c := &Registry{
		log:     r.log,
		bools:   r.bools.clone(nil),
		strs:    r.strs.clone(nil),
		floats:  r.floats.clone(nil),
		lists:   r.lists.clone(copyFloats),
		allowed: r.allowed,
		specs:   r.specs,
	}
	c.readers = newReaders(c)
	return c
}

// commit replaces the value tables of r by the ones of staged.
func (r *Registry) commit(staged *Registry) {
	r.bools = staged.bools
	r.strs = staged.strs
	r.floats = staged.floats
	r.lists = staged.lists
	r.loaded = true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatFloats(fs []float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
