package conf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppacher/line-conf/internal/log"
)

// maxLineSize is the longest line accepted by the scanner.
const maxLineSize = 1 << 20

// Load parses the configuration read from rd. path is only used in
// error messages. Either all values of rd are applied or, on error,
// none of them.
func (r *Registry) Load(path string, rd io.Reader) error {
	return r.load(nil, func(staged *Registry) error {
		return staged.parse(path, rd)
	})
}

// LoadFile is like Load but opens the file at path.
func (r *Registry) LoadFile(path string) error {
	return r.LoadFiles(path)
}

// LoadFiles parses all files in order as a single load. Later
// files override values set by earlier ones.
func (r *Registry) LoadFiles(paths ...string) error {
	return r.load(nil, func(staged *Registry) error {
		return staged.parseFiles(paths)
	})
}

// LoadWithDropIns loads the file at path followed by all drop-in
// files found for it in searchPath. See SearchDropinFiles.
func (r *Registry) LoadWithDropIns(path string, searchPath []string) error {
	return r.LoadConfigWithDropIns(path, searchPath, nil)
}

// LoadConfig calls the Setup hook of consumer, loads the file at path
// and calls the Validate hook of consumer. Both hooks are optional,
// see Setupper and Validator. The registry is only updated if all
// steps succeed.
func (r *Registry) LoadConfig(path string, consumer interface{}) error {
	return r.LoadConfigWithDropIns(path, nil, consumer)
}

// LoadConfigWithDropIns is like LoadConfig but also applies drop-in
// files found in searchPath after the file at path.
func (r *Registry) LoadConfigWithDropIns(path string, searchPath []string, consumer interface{}) error {
	if s, ok := consumer.(Setupper); ok {
		if err := s.Setup(r); err != nil {
			return r.fail(asLoadError(err, KindStartup))
		}
	}

	paths := []string{path}
	if len(searchPath) > 0 {
		dropins, err := SearchDropinFiles(filepath.Base(path), searchPath)
		if err != nil {
			return r.fail(&LoadError{Kind: KindIO, Err: fmt.Errorf("failed to search drop-ins: %w", err)})
		}
		paths = append(paths, dropins...)
	}

	v, _ := consumer.(Validator)
	return r.load(v, func(staged *Registry) error {
		return staged.parseFiles(paths)
	})
}

// load runs parse on a staged copy of r, validates the result and
// commits it.
func (r *Registry) load(v Validator, parse func(staged *Registry) error) error {
	if r.loaded {
		return r.fail(&LoadError{Kind: KindStartup, Err: ErrRegistryLoaded})
	}

	staged := r.clone()
	if err := parse(staged); err != nil {
		return r.fail(asLoadError(err, KindIO))
	}

	if v != nil {
		if err := v.Validate(staged); err != nil {
			return r.fail(asLoadError(err, KindValidation))
		}
	}

	r.commit(staged)
	return nil
}

func (r *Registry) fail(err *LoadError) error {
	r.log.Error().
		Str(log.FieldKind, err.Kind.String()).
		Str(log.FieldPath, err.Path).
		Int(log.FieldLine, err.Line).
		Str(log.FieldKey, err.Key).
		Err(err.Err).
		Msg("failed to load configuration")
	return err
}

func asLoadError(err error, kind ErrorKind) *LoadError {
	var le *LoadError
	if errors.As(err, &le) {
		return le
	}
	return &LoadError{Kind: kind, Err: err}
}

func (r *Registry) parseFiles(paths []string) error {
	for _, path := range paths {
		if err := r.parseFile(path); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) parseFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &LoadError{Kind: KindIO, Path: path, Err: fmt.Errorf("failed to open: %w", err)}
	}
	defer f.Close()

	return r.parse(path, f)
}

// parse reads rd line by line and applies every option line.
func (r *Registry) parse(path string, rd io.Reader) error {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" || line[0] == '#' {
			continue
		}

		if err := r.parseLine(line); err != nil {
			err.Path = path
			err.Line = lineNum
			err.Text = line
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return &LoadError{Kind: KindIO, Path: path, Err: fmt.Errorf("failed to read: %w", err)}
	}
	return nil
}

type lineMatch struct {
	reader optionReader
	key    string
}

// parseLine tries every registered key of every reader against line.
// Exactly one key must match.
func (r *Registry) parseLine(line string) *LoadError {
	var matches []lineMatch
	for _, rd := range r.readers {
		for _, key := range rd.Keys() {
			if matchKey(line, key) {
				matches = append(matches, lineMatch{rd, key})
			}
		}
	}

	switch len(matches) {
	case 0:
		return &LoadError{Kind: KindSyntax, Err: ErrUnknownOption}
	case 1:
	default:
		types := make([]string, len(matches))
		for i, m := range matches {
			types[i] = m.reader.Type().String()
		}
		return &LoadError{
			Kind: KindSyntax,
			Key:  matches[0].key,
			Err:  fmt.Errorf("%w (%s)", ErrAmbiguousOption, strings.Join(types, ", ")),
		}
	}

	m := matches[0]
	if err := m.reader.Read(line, m.key); err != nil {
		return &LoadError{
			Kind: KindValue,
			Key:  m.key,
			Err:  fmt.Errorf("%s: %w", m.key, err),
		}
	}
	return nil
}
