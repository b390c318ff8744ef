package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IceFireDB/vredis/value"
)

func call(t *testing.T, d *Database, args ...string) value.Value {
	t.Helper()
	seg := value.NewSegment()
	for i, a := range args {
		seg.Set(i, value.NewString(a))
	}
	v, err := d.Call(seg)
	require.NoError(t, err)
	return v
}

func callErr(t *testing.T, d *Database, args ...string) error {
	t.Helper()
	seg := value.NewSegment()
	for i, a := range args {
		seg.Set(i, value.NewString(a))
	}
	_, err := d.Call(seg)
	return err
}

func vectorStrings(t *testing.T, v value.Value) []string {
	t.Helper()
	vec, ok := v.(*value.Vector)
	require.True(t, ok)
	out := make([]string, vec.Len())
	for i := range out {
		s, err := value.NewAccess(vec.Get(i)).ToString()
		require.NoError(t, err)
		out[i] = s
	}
	return out
}

func TestSetGetStrlenAppend(t *testing.T) {
	d := New()
	assert.Equal(t, value.String("OK"), call(t, d, "SET", "k", "hello"))
	assert.Equal(t, value.String("hello"), call(t, d, "GET", "k"))
	assert.Equal(t, value.Integer(5), call(t, d, "STRLEN", "k"))
	assert.Equal(t, value.Integer(9), call(t, d, "APPEND", "k", " sir"))
	assert.Equal(t, value.String("hello sir"), call(t, d, "GET", "k"))
}

func TestSetNXOnlySpecialCasesString(t *testing.T) {
	d := New()
	call(t, d, "LPUSH", "k", "x")
	assert.Equal(t, value.Integer(0), call(t, d, "SETNX", "k", "y"))
	assert.Equal(t, value.String("list"), call(t, d, "TYPE", "k"))
}

func TestIncrDecr(t *testing.T) {
	d := New()
	assert.Equal(t, value.Integer(1), call(t, d, "INCR", "n"))
	assert.Equal(t, value.Integer(11), call(t, d, "INCRBY", "n", "10"))
	assert.Equal(t, value.Integer(10), call(t, d, "DECR", "n"))
	assert.Equal(t, value.Integer(5), call(t, d, "DECRBY", "n", "5"))
}

func TestGetRangeNegativeIndices(t *testing.T) {
	d := New()
	call(t, d, "SET", "k", "Hello World")
	assert.Equal(t, value.String("World"), call(t, d, "GETRANGE", "k", "-5", "-1"))
	assert.Equal(t, value.String(""), call(t, d, "GETRANGE", "k", "5", "2"))
}

func TestHashCommands(t *testing.T) {
	d := New()
	assert.Equal(t, value.Integer(1), call(t, d, "HSET", "h", "f", "v"))
	assert.Equal(t, value.Integer(0), call(t, d, "HSET", "h", "f", "v2"))
	assert.Equal(t, value.String("v2"), call(t, d, "HGET", "h", "f"))
	assert.Equal(t, value.Integer(1), call(t, d, "HLEN", "h"))
	assert.Equal(t, value.Integer(1), call(t, d, "HDEL", "h", "f"))
	assert.Equal(t, value.String("none"), call(t, d, "TYPE", "h"))
}

func TestLPushThenLRange(t *testing.T) {
	d := New()
	call(t, d, "LPUSH", "a", "3", "2", "1")
	got := vectorStrings(t, call(t, d, "LRANGE", "a", "0", "-1"))
	assert.Equal(t, []string{"1", "2", "3"}, got)
}

func TestRPopLPush(t *testing.T) {
	d := New()
	call(t, d, "RPUSH", "left", "a", "b", "c")
	call(t, d, "RPUSH", "right", "x")
	assert.Equal(t, value.String("c"), call(t, d, "RPOPLPUSH", "left", "right"))
	assert.Equal(t, []string{"a", "b"}, vectorStrings(t, call(t, d, "LRANGE", "left", "0", "-1")))
	assert.Equal(t, []string{"c", "x"}, vectorStrings(t, call(t, d, "LRANGE", "right", "0", "-1")))
}

func TestLRemModes(t *testing.T) {
	d := New()
	call(t, d, "RPUSH", "l", "a", "b", "a", "c", "a")
	assert.Equal(t, value.Integer(2), call(t, d, "LREM", "l", "2", "a"))
	assert.Equal(t, []string{"b", "c", "a"}, vectorStrings(t, call(t, d, "LRANGE", "l", "0", "-1")))
}

func TestSetOperations(t *testing.T) {
	d := New()
	call(t, d, "SADD", "s1", "a", "b", "c")
	call(t, d, "SADD", "s2", "b", "c", "d")
	assert.Equal(t, []string{"b", "c"}, vectorStrings(t, call(t, d, "SINTER", "s1", "s2")))
	assert.Equal(t, []string{"a"}, vectorStrings(t, call(t, d, "SDIFF", "s1", "s2")))
	union := vectorStrings(t, call(t, d, "SUNION", "s1", "s2"))
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, union)
}

func TestKeysGlob(t *testing.T) {
	d := New()
	call(t, d, "SET", "foo:1", "x")
	call(t, d, "SET", "foo:2", "x")
	call(t, d, "SET", "bar", "x")
	got := vectorStrings(t, call(t, d, "KEYS", "foo:*"))
	assert.ElementsMatch(t, []string{"foo:1", "foo:2"}, got)
}

func TestSortByHashPatternAlpha(t *testing.T) {
	d := New()
	call(t, d, "RPUSH", "a", "3", "1", "2")
	call(t, d, "SET", "k:1", "one")
	call(t, d, "SET", "k:2", "two")
	call(t, d, "SET", "k:3", "three")
	got := vectorStrings(t, call(t, d, "SORT", "a", "BY", "k:*", "ALPHA"))
	assert.Equal(t, []string{"1", "3", "2"}, got)
}

func TestSortNumericDefault(t *testing.T) {
	d := New()
	call(t, d, "RPUSH", "a", "3", "1", "2")
	got := vectorStrings(t, call(t, d, "SORT", "a"))
	assert.Equal(t, []string{"1", "2", "3"}, got)
}

func TestSortStoreReturnsEmptyVector(t *testing.T) {
	d := New()
	call(t, d, "RPUSH", "a", "3", "1", "2")
	result := call(t, d, "SORT", "a", "STORE", "dest")
	assert.Equal(t, 0, result.(*value.Vector).Len())
	got := vectorStrings(t, call(t, d, "LRANGE", "dest", "0", "-1"))
	assert.Equal(t, []string{"1", "2", "3"}, got)
}

func TestWrongTypeErrors(t *testing.T) {
	d := New()
	call(t, d, "SET", "k", "v")
	err := callErr(t, d, "LPUSH", "k", "x")
	require.Error(t, err)
	var re *value.RemoteError
	require.ErrorAs(t, err, &re)
}

func TestUnknownCommand(t *testing.T) {
	d := New()
	err := callErr(t, d, "BOGUS")
	require.Error(t, err)
}

func TestDelExists(t *testing.T) {
	d := New()
	call(t, d, "SET", "a", "1")
	call(t, d, "SET", "b", "2")
	assert.Equal(t, value.Integer(2), call(t, d, "EXISTS", "a", "b", "missing"))
	assert.Equal(t, value.Integer(2), call(t, d, "DEL", "a", "b"))
	assert.Equal(t, value.Integer(0), call(t, d, "EXISTS", "a"))
}
