package store

import (
	"strconv"

	"github.com/IceFireDB/vredis/value"
)

func (d *Database) cmdHSet(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	f, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	v, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("HSET")
	}
	h, err := getCreate[*hashEntry](d, k, newHashEntry)
	if err != nil {
		return nil, err
	}
	created := h.set(f, []byte(v))
	if created {
		return value.Integer(1), nil
	}
	return value.Integer(0), nil
}

func (d *Database) cmdHMSet(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	args, err := readStrings(view)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, wrongArgCount("HMSET")
	}
	h, err := getCreate[*hashEntry](d, k, newHashEntry)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(args); i += 2 {
		h.set(args[i], []byte(args[i+1]))
	}
	return value.String("OK"), nil
}

func (d *Database) cmdHGet(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	f, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("HGET")
	}
	h, ok, err := get[*hashEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return value.Null, nil
	}
	v, ok := h.get(f)
	if !ok {
		return value.Null, nil
	}
	return value.String(v), nil
}

func (d *Database) cmdHExists(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	fields, err := readStrings(view)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, wrongArgCount("HEXISTS")
	}
	h, ok, err := get[*hashEntry](d, k)
	if err != nil {
		return nil, err
	}
	var n int32
	if ok {
		for _, f := range fields {
			if _, exists := h.get(f); exists {
				n++
			}
		}
	}
	return value.Integer(n), nil
}

func (d *Database) cmdHDel(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	fields, err := readStrings(view)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, wrongArgCount("HDEL")
	}
	h, ok, err := get[*hashEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return value.Integer(0), nil
	}
	var n int32
	for _, f := range fields {
		if h.delete(f) {
			n++
		}
	}
	if h.len() == 0 {
		delete(d.entries, k)
	}
	return value.Integer(n), nil
}

func (d *Database) cmdHKeys(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("HKEYS")
	}
	h, ok, err := get[*hashEntry](d, k)
	if err != nil {
		return nil, err
	}
	result := value.NewVector()
	if ok {
		for _, name := range h.names {
			result.PushBack(value.NewString(name))
		}
	}
	return result, nil
}

func (d *Database) cmdHLen(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("HLEN")
	}
	h, ok, err := get[*hashEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return value.Integer(0), nil
	}
	return value.Integer(h.len()), nil
}

func (d *Database) cmdHIncrBy(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	f, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	n, _, err := view.EatInteger()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("HINCRBY")
	}
	h, err := getCreate[*hashEntry](d, k, newHashEntry)
	if err != nil {
		return nil, err
	}
	cur, _ := h.get(f)
	val, err := parseStringInt(cur)
	if err != nil {
		return nil, err
	}
	val += int64(n)
	h.set(f, []byte(strconv.FormatInt(val, 10)))
	return value.Integer(int32(val)), nil
}
