package conf

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/google/renameio/v2"
)

var _ io.WriterTo = (*Registry)(nil)

// WriteTo writes the current values of all options to w using the
// configuration file format. Loading the output into a registry with
// the same registrations yields the same values. Boolean options that
// are false and empty lists are omitted since the file format cannot
// express them. Empty strings and NaN doubles are only written if
// they override a default.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	for _, key := range r.bools.keys {
		if !r.GetBoolean(key) {
			continue
		}
		if _, err := fmt.Fprintln(bw, key); err != nil {
			return cw.n, err
		}
	}

	for _, key := range r.strs.keys {
		if !r.HasString(key) && r.spec(StringType, key).Default == "" {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s=%s\n", key, r.GetString(key)); err != nil {
			return cw.n, err
		}
	}

	for _, key := range r.floats.keys {
		v := r.GetDouble(key)
		if math.IsNaN(v) && r.spec(FloatType, key).Default == "" {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s %s\n", key, strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
			return cw.n, err
		}
	}

	for _, key := range r.lists.keys {
		if !r.HasDoublesList(key) {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s %s\n", key, formatFloats(r.GetDoublesList(key))); err != nil {
			return cw.n, err
		}
	}

	err := bw.Flush()
	return cw.n, err
}

// WriteFile atomically replaces the file at path with the output
// of WriteTo.
func (r *Registry) WriteFile(path string, perm os.FileMode) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(perm))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer pending.Cleanup() // nolint:errcheck

	if _, err := r.WriteTo(pending); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
