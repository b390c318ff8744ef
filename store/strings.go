package store

import (
	"strconv"
	"strings"

	"github.com/IceFireDB/vredis/value"
)

func parseStringInt(b []byte) (int64, error) {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, invalidInteger()
	}
	return n, nil
}

func (d *Database) cmdSet(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	v, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("SET")
	}
	d.entries[k] = &stringEntry{val: []byte(v)}
	return value.String("OK"), nil
}

func (d *Database) cmdSetNX(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	v, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("SETNX")
	}
	if existing, ok := d.entries[k]; ok {
		if _, isString := existing.(*stringEntry); isString {
			return value.Integer(0), nil
		}
		// Non-String entries are left untouched: SETNX only special-cases
		// an existing String, diverging from canonical Redis which fails
		// unconditionally on any type mismatch.
		return value.Integer(0), nil
	}
	d.entries[k] = &stringEntry{val: []byte(v)}
	return value.Integer(1), nil
}

func (d *Database) cmdGet(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("GET")
	}
	e, ok, err := get[*stringEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return value.Null, nil
	}
	return value.String(e.val), nil
}

func (d *Database) cmdGetSet(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	v, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("GETSET")
	}
	e, ok, err := get[*stringEntry](d, k)
	if err != nil {
		return nil, err
	}
	var old value.Value = value.Null
	if ok {
		old = value.String(e.val)
	}
	d.entries[k] = &stringEntry{val: []byte(v)}
	return old, nil
}

func (d *Database) cmdGetRange(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	a, _, err := view.EatInteger()
	if err != nil {
		return nil, err
	}
	b, _, err := view.EatInteger()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("GETRANGE")
	}
	e, ok, err := get[*stringEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return value.String(""), nil
	}
	start, end := normalizeRange(len(e.val), int(a), int(b))
	if end < start {
		return value.String(""), nil
	}
	return value.String(append([]byte(nil), e.val[start:end+1]...)), nil
}

func (d *Database) cmdStrlen(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("STRLEN")
	}
	e, ok, err := get[*stringEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return value.Integer(0), nil
	}
	return value.Integer(len(e.val)), nil
}

func (d *Database) cmdAppend(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	s, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("APPEND")
	}
	e, err := getCreate[*stringEntry](d, k, func() *stringEntry { return &stringEntry{} })
	if err != nil {
		return nil, err
	}
	e.val = append(e.val, s...)
	return value.Integer(len(e.val)), nil
}

func (d *Database) cmdMSet(view *value.SegmentView) (value.Value, error) {
	args, err := readStrings(view)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, wrongArgCount("MSET")
	}
	for i := 0; i < len(args); i += 2 {
		d.entries[args[i]] = &stringEntry{val: []byte(args[i+1])}
	}
	return value.String("OK"), nil
}

func (d *Database) incrBy(k string, delta int64) (value.Value, error) {
	e, err := getCreate[*stringEntry](d, k, func() *stringEntry { return &stringEntry{} })
	if err != nil {
		return nil, err
	}
	n, err := parseStringInt(e.val)
	if err != nil {
		return nil, err
	}
	n += delta
	e.val = []byte(strconv.FormatInt(n, 10))
	return value.Integer(int32(n)), nil
}

func (d *Database) cmdIncr(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("INCR")
	}
	return d.incrBy(k, 1)
}

func (d *Database) cmdDecr(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("DECR")
	}
	return d.incrBy(k, -1)
}

func (d *Database) cmdIncrBy(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	n, _, err := view.EatInteger()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("INCRBY")
	}
	return d.incrBy(k, int64(n))
}

func (d *Database) cmdDecrBy(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	n, _, err := view.EatInteger()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("DECRBY")
	}
	return d.incrBy(k, -int64(n))
}
