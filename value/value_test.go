package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNull(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want bool
	}{
		{"go nil", nil, true},
		{"boxed null", Null, true},
		{"zero integer", Integer(0), false},
		{"empty string", String(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNull(tt.val))
		})
	}
}

func TestAccessToInteger(t *testing.T) {
	tests := []struct {
		name    string
		val     Value
		want    int32
		wantErr bool
	}{
		{"null", nil, 0, false},
		{"integer", Integer(42), 42, false},
		{"float truncates", Float(3.9), 3, false},
		{"bool true", Boolean(true), 1, false},
		{"bool false", Boolean(false), 0, false},
		{"empty string", String(""), 0, false},
		{"decimal string", String("123"), 123, false},
		{"negative string", String("-7"), -7, false},
		{"garbage string", String("abc"), 0, true},
		{"vector fails", VectorOf(), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewAccess(tt.val).ToInteger()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestAccessToIntegerPropagatesError(t *testing.T) {
	_, err := NewAccess(NewError("db", "boom")).ToInteger()
	require.Error(t, err)
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "db", re.Source)
}

func TestAccessToStringVectorJoin(t *testing.T) {
	vec := VectorOf(Integer(1), Null, Integer(42), NewString("xyz"), NewString("abc"), Integer(7), NewString("9"))
	s, err := NewAccess(vec).ToString()
	require.NoError(t, err)
	assert.Equal(t, "1,,42,xyz,abc,7,9", s)
}

func TestAccessGetHashKeysFromVectorPairs(t *testing.T) {
	vec := VectorOf(Integer(1), Null, Integer(42), NewString("xyz"), NewString("abc"), Integer(7), NewString("9"))
	var keys []string
	require.NoError(t, NewAccess(vec).GetHashKeys(&keys))
	assert.Equal(t, []string{"1", "42", "abc"}, keys)
}

func TestHashSetGetDelete(t *testing.T) {
	h := NewHash()
	h.Set("a", NewString("1"))
	h.Set("b", NewString("2"))
	v, ok := h.Get("a")
	require.True(t, ok)
	assert.Equal(t, String("1"), v)

	assert.Equal(t, []string{"a", "b"}, h.Keys())
	assert.Equal(t, 2, h.Len())

	require.True(t, h.Delete("a"))
	assert.Equal(t, []string{"b"}, h.Keys())
	assert.Equal(t, 1, h.Len())
}

func TestSegmentNumUsedSlots(t *testing.T) {
	s := NewSegment()
	s.Set(5, NewString("x"))
	assert.Equal(t, 6, s.NumUsedSlots())
	for i := 6; i < s.Size(); i++ {
		assert.True(t, IsNull(s.Get(i)))
	}
	s.Set(5, nil)
	assert.Equal(t, 0, s.NumUsedSlots())
}

func TestSegmentStackOps(t *testing.T) {
	s := NewSegment()
	s.PushBack(Integer(1))
	s.PushBack(Integer(2))
	s.PushBack(Integer(3))
	assert.Equal(t, Integer(3), s.Top())
	assert.Equal(t, Integer(3), s.ExtractTop())
	assert.Equal(t, 2, s.NumUsedSlots())
}

func TestSegmentTransferLastTo(t *testing.T) {
	left := NewSegmentFrom(NewString("a"), NewString("b"), NewString("c"))
	right := NewSegmentFrom(NewString("x"))

	moved := left.TransferLastTo(right)

	assert.Equal(t, String("c"), moved)
	assert.Equal(t, 2, left.NumUsedSlots())
	assert.Equal(t, String("a"), left.Get(0))
	assert.Equal(t, String("b"), left.Get(1))
	assert.Equal(t, String("c"), right.Get(0))
	assert.Equal(t, String("x"), right.Get(1))
}

func TestSegmentViewEat(t *testing.T) {
	seg := NewSegmentFrom(NewString("CMD"), NewString("10"), NewString("arg"))
	view := NewSegmentViewFrom(seg, 1)

	n, ok, err := view.EatInteger()
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 10, n)

	s, ok, err := view.EatString()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "arg", s)

	assert.Equal(t, 0, view.Remaining())
}

func TestNameMapAddIsIdempotent(t *testing.T) {
	m := NewNameMap()
	a := m.Add("foo")
	b := m.Add("bar")
	c := m.Add("foo")
	assert.Equal(t, a, c)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, m.Count())
}
