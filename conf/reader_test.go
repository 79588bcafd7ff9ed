package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchKey(t *testing.T) {
	cases := []struct {
		L string
		K string
		M bool
	}{
		{"verbose", "verbose", true},
		{"verbose=1", "verbose", true},
		{"verbose 1", "verbose", true},
		{"verbose\t1", "verbose", true},
		{"verbose:1", "verbose", true},
		{"verbosely", "verbose", false},
		{"verbos", "verbose", false},
		{"Verbose", "verbose", false},
		{" verbose", "verbose", false},
	}

	for idx, c := range cases {
		assert.Equalf(t, c.M, matchKey(c.L, c.K), "case #%d (%q, %q)", idx, c.L, c.K)
	}
}

func TestValueText(t *testing.T) {
	assert.Equal(t, "slow", valueText("mode=slow", "mode"))
	assert.Equal(t, " slow ", valueText("mode= slow ", "mode"))
	assert.Equal(t, "a=b", valueText("mode=a=b", "mode"))
	assert.Equal(t, "", valueText("mode=", "mode"))
	assert.Equal(t, "", valueText("mode", "mode"))
}

func TestNumberTokens(t *testing.T) {
	tokens, err := numberTokens("weights  1\t2.5 -3e2")
	assert.NoError(t, err)
	assert.Equal(t, []string{"1", "2.5", "-3e2"}, tokens)

	tokens, err = numberTokens("weights")
	assert.NoError(t, err)
	assert.Empty(t, tokens)

	tokens, err = numberTokens("rate 1.5 \"x")
	assert.ErrorIs(t, err, ErrInvalidFloat)
	assert.Equal(t, []string{"1.5"}, tokens)
}

func TestTableKeysSorted(t *testing.T) {
	tbl := newTable[int]()
	tbl.register("c", 3)
	tbl.register("a", 1)
	tbl.register("b", 2)
	tbl.register("a", 10)

	assert.Equal(t, []string{"a", "b", "c"}, tbl.keys)
	assert.True(t, tbl.has("b"))
	assert.False(t, tbl.has("d"))

	v, ok := tbl.get("a")
	assert.True(t, ok)
	assert.Equal(t, 10, v)

	c := tbl.clone(nil)
	c.set("a", 100)
	v, _ = tbl.get("a")
	assert.Equal(t, 10, v)
}
