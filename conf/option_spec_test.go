package conf_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ppacher/line-conf/conf"
)

func TestTypeFromString(t *testing.T) {
	cases := []struct {
		I string
		V conf.OptionType
	}{
		{"bool", conf.BoolType},
		{"boolean", conf.BoolType},
		{"string", conf.StringType},
		{"float", conf.FloatType},
		{"double", conf.FloatType},
		{"[]float", conf.FloatSliceType},
		{"doubles", conf.FloatSliceType},
	}

	for idx, c := range cases {
		typ := conf.TypeFromString(c.I)
		if assert.NotNilf(t, typ, "case %d", idx) {
			assert.Equalf(t, c.V, *typ, "case %d", idx)
		}
	}

	assert.Nil(t, conf.TypeFromString("int"))
}

func TestOptionTypeJSON(t *testing.T) {
	blob, err := json.Marshal([]conf.OptionType{
		conf.BoolType,
		conf.StringType,
		conf.FloatType,
		conf.FloatSliceType,
	})
	assert.NoError(t, err)
	assert.Equal(t, `["bool","string","float","[]float"]`, string(blob))

	assert.True(t, conf.FloatSliceType.IsSliceType())
	assert.False(t, conf.FloatType.IsSliceType())
}

func TestAnnotations(t *testing.T) {
	spec := conf.OptionSpec{Name: "token"}
	assert.False(t, conf.IsSecret(spec))
	assert.False(t, spec.HasAnnotation("line-conf/secret"))

	spec.Annotations.With(conf.SecretValue(), conf.KeyValue{Key: "env", Value: "APP_TOKEN"})
	assert.True(t, conf.IsSecret(spec))
	assert.Equal(t, "APP_TOKEN", spec.Annotations.Get("env"))
	assert.Nil(t, spec.Annotations.Get("missing"))
}
