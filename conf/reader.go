package conf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/rs/zerolog"

	"github.com/ppacher/line-conf/internal/log"
)

// optionReader parses option lines of a single option type.
type optionReader interface {
	// Type returns the option type handled by the reader.
	Type() OptionType

	// Keys returns the registered keys of the reader's type.
	Keys() []string

	// Read parses line, which has been matched by key, and stores
	// the value.
	Read(line, key string) error
}

// newReaders returns the readers of r in the order they are
// consulted for each line.
func newReaders(r *Registry) []optionReader {
	return []optionReader{
		boolReader{r},
		stringReader{r},
		floatReader{r},
		floatSliceReader{r},
	}
}

// matchKey returns true if line starts with the complete key token.
func matchKey(line, key string) bool {
	if !strings.HasPrefix(line, key) {
		return false
	}
	if len(line) == len(key) {
		return true
	}
	return strings.IndexByte(keySeparators, line[len(key)]) >= 0
}

// valueText returns everything after the key and its separator.
func valueText(line, key string) string {
	if len(line) <= len(key) {
		return ""
	}
	return line[len(key)+1:]
}

// numberTokens splits line into whitespace separated tokens and drops
// the first one, which holds the key. If the line cannot be split
// completely, the tokens before the offending one are returned
// together with the error.
func numberTokens(line string) ([]string, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrInvalidFloat, err)
	}
	if len(tokens) == 0 {
		return nil, err
	}
	return tokens[1:], err
}

func parseFloat(token string) (float64, error) {
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFloat, token)
	}
	return f, nil
}

func (r *Registry) logAssign(typ OptionType, key, value string) {
	if r.log.GetLevel() > zerolog.DebugLevel {
		return
	}
	if IsSecret(r.spec(typ, key)) {
		value = "***"
	}
	r.log.Debug().
		Str(log.FieldKey, key).
		Str(log.FieldType, typ.String()).
		Str(log.FieldValue, value).
		Msg("option set")
}

type boolReader struct{ reg *Registry }

func (boolReader) Type() OptionType { return BoolType }

func (br boolReader) Keys() []string { return br.reg.bools.keys }

// Read sets the option to true. There is no syntax for false.
func (br boolReader) Read(line, key string) error {
	br.reg.bools.set(key, true)
	br.reg.logAssign(BoolType, key, "true")
	return nil
}

type stringReader struct{ reg *Registry }

func (stringReader) Type() OptionType { return StringType }

func (sr stringReader) Keys() []string { return sr.reg.strs.keys }

// Read stores the text after the separator verbatim.
func (sr stringReader) Read(line, key string) error {
	value := valueText(line, key)
	if allowed, ok := sr.reg.allowed[key]; ok && !contains(allowed, value) {
		return fmt.Errorf("%w: %q (valid values are { %s })", ErrValueNotAllowed, value, strings.Join(allowed, " "))
	}

	sr.reg.strs.set(key, value)
	sr.reg.logAssign(StringType, key, value)
	return nil
}

type floatReader struct{ reg *Registry }

func (floatReader) Type() OptionType { return FloatType }

func (fr floatReader) Keys() []string { return fr.reg.floats.keys }

// Read parses the second whitespace separated token of line. Any
// further tokens are ignored.
func (fr floatReader) Read(line, key string) error {
	tokens, err := numberTokens(line)
	if len(tokens) == 0 {
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: missing value", ErrInvalidFloat)
	}

	value, err := parseFloat(tokens[0])
	if err != nil {
		return err
	}

	fr.reg.floats.set(key, value)
	fr.reg.logAssign(FloatType, key, tokens[0])
	return nil
}

type floatSliceReader struct{ reg *Registry }

func (floatSliceReader) Type() OptionType { return FloatSliceType }

func (fr floatSliceReader) Keys() []string { return fr.reg.lists.keys }

// Read parses the tokens after the key up to the first one that is
// not a number. At least one number is required.
func (fr floatSliceReader) Read(line, key string) error {
	tokens, err := numberTokens(line)

	values := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		value, perr := parseFloat(tok)
		if perr != nil {
			err = perr
			break
		}
		values = append(values, value)
	}

	if len(values) == 0 {
		if err != nil {
			return err
		}
		return ErrNoValues
	}

	fr.reg.lists.set(key, values)
	fr.reg.logAssign(FloatSliceType, key, "[ "+formatFloats(values)+" ]")
	return nil
}
