package conf_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppacher/line-conf/conf"
)

func TestWriteTo(t *testing.T) {
	reg := newRegistry(t)
	require.NoError(t, reg.Load("test.conf", strings.NewReader("verbose\nname=a = b\nrate 0.1\nweights 1 -2.5 3e10\n")))

	var buf bytes.Buffer
	n, err := reg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	assert.Equal(t, strings.Join([]string{
		"verbose",
		"mode=fast",
		"name=a = b",
		"rate 0.1",
		"weights 1 -2.5 3e+10",
		"",
	}, "\n"), buf.String())

	// loading the output yields the same values
	other := newRegistry(t)
	require.NoError(t, other.Load("dump.conf", &buf))
	assert.Equal(t, reg.AsMap(), other.AsMap())
}

func TestWriteToOmitsUnset(t *testing.T) {
	reg := newRegistry(t)

	var buf bytes.Buffer
	_, err := reg.WriteTo(&buf)
	require.NoError(t, err)

	// verbose is false, name is empty and rate is NaN
	assert.Equal(t, "mode=fast\nweights 0.5 0.5\n", buf.String())
}

func TestWriteToOverridesDefault(t *testing.T) {
	newReg := func() *conf.Registry {
		reg := conf.New(conf.WithLogger(zerolog.Nop()))
		require.NoError(t, reg.RegisterString("name", "default", nil))
		require.NoError(t, reg.RegisterDouble("rate", 1))
		return reg
	}

	reg := newReg()
	require.NoError(t, reg.Load("test.conf", strings.NewReader("name=\nrate NaN\n")))

	var buf bytes.Buffer
	_, err := reg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "name=\nrate NaN\n", buf.String())

	other := newReg()
	require.NoError(t, other.Load("dump.conf", &buf))
	assert.Equal(t, "", other.GetString("name"))
	assert.True(t, math.IsNaN(other.GetDouble("rate")))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "effective.conf")
	require.NoError(t, os.WriteFile(path, []byte("old content\n"), 0o600))

	reg := conf.New(conf.WithLogger(zerolog.Nop()))
	require.NoError(t, reg.RegisterDouble("rate", math.Pi))
	require.NoError(t, reg.WriteFile(path, 0o640))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rate 3.141592653589793\n", string(content))

	reloaded := conf.New(conf.WithLogger(zerolog.Nop()))
	require.NoError(t, reloaded.RegisterDouble("rate", conf.NoDefault))
	require.NoError(t, reloaded.LoadFile(path))
	assert.Equal(t, math.Pi, reloaded.GetDouble("rate"))
}
