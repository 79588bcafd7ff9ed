package conf

import (
	"errors"
	"fmt"
)

// Commonly used validation and error messages.
var (
	ErrInvalidKey      = errors.New("invalid option key")
	ErrInvalidDefault  = errors.New("default value violates constraints")
	ErrRegistryLoaded  = errors.New("registry already loaded")
	ErrUnknownOption   = errors.New("unrecognized option")
	ErrAmbiguousOption = errors.New("line matches options of different types")
	ErrValueNotAllowed = errors.New("value not allowed")
	ErrInvalidFloat    = errors.New("invalid floating point number")
	ErrNoValues        = errors.New("no numbers found")
)

// ErrorKind classifies a LoadError.
type ErrorKind int

// All error kinds reported by LoadError.
const (
	// KindStartup is a registration (programmer) error raised
	// before any file is read.
	KindStartup ErrorKind = iota + 1
	// KindIO means a configuration file could not be opened or read.
	KindIO
	// KindSyntax means a line did not match exactly one registered option.
	KindSyntax
	// KindValue means a value failed the parse rule or the
	// constraints of its option.
	KindValue
	// KindValidation is returned when the consumer's validate
	// hook rejected the loaded configuration.
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindStartup:
		return "startup"
	case KindIO:
		return "io"
	case KindSyntax:
		return "syntax"
	case KindValue:
		return "value"
	case KindValidation:
		return "validation"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// LoadError is returned by all load operations of a Registry. Line is
// zero if the error is not bound to a specific line.
type LoadError struct {
	Kind ErrorKind
	Path string
	Line int
	Text string
	Key  string
	Err  error
}

func (e *LoadError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %q: %s", e.Path, e.Line, e.Text, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsKind reports whether err is a *LoadError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Kind == kind
}
