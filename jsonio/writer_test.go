package jsonio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IceFireDB/vredis/value"
)

func TestQuoteStringEscapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "abc", `"abc"`},
		{"quote", `a"b`, `"a\"b"`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "a\nb", `"a\nb"`},
		{"tab", "a\tb", `"a\tb"`},
		{"control byte", "ab", `"a\u0001b"`},
		{"high byte passthrough", "a\xffb", "\"a\xffb\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteString(tt.in))
		})
	}
}

func TestEncodeCompactVector(t *testing.T) {
	vec := value.VectorOf(value.Integer(1), value.NewString("x"), value.Boolean(true), value.Null)
	buf, err := Encode(vec, 0)
	require.NoError(t, err)
	assert.Equal(t, `[1,"x",true,null]`, string(buf))
}

func TestEncodeHashPreservesInsertionOrder(t *testing.T) {
	h := value.NewHash()
	h.Set("b", value.Integer(2))
	h.Set("a", value.Integer(1))
	buf, err := Encode(h, 0)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2,"a":1}`, string(buf))
}

func TestEncodeErrorEmitsNull(t *testing.T) {
	buf, err := Encode(value.NewError("db", "boom"), 0)
	require.NoError(t, err)
	assert.Equal(t, "null", string(buf))
}

func TestIndentStepPrettyPrints(t *testing.T) {
	vec := value.VectorOf(value.Integer(1), value.Integer(2))
	buf, err := Encode(vec, 2)
	require.NoError(t, err)
	assert.Equal(t, "[1,\n  2\n]", string(buf))
}
