package store

import "github.com/IceFireDB/vredis/value"

func (d *Database) cmdLPush(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	vals, err := readStrings(view)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, wrongArgCount("LPUSH")
	}
	l, err := getCreate[*listEntry](d, k, newListEntry)
	if err != nil {
		return nil, err
	}
	// LPUSH inserts each argument at the front, in argument order, so the
	// last inserted argument ends up at index 0.
	for _, v := range vals {
		l.pushFront([]byte(v))
	}
	return value.Integer(l.len()), nil
}

func (d *Database) cmdRPush(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	vals, err := readStrings(view)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, wrongArgCount("RPUSH")
	}
	l, err := getCreate[*listEntry](d, k, newListEntry)
	if err != nil {
		return nil, err
	}
	for _, v := range vals {
		l.pushBack([]byte(v))
	}
	return value.Integer(l.len()), nil
}

func (d *Database) popHelper(view *value.SegmentView, verb string, front bool) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount(verb)
	}
	l, ok, err := get[*listEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return value.Null, nil
	}
	var v []byte
	if front {
		v, ok = l.popFront()
	} else {
		v, ok = l.popBack()
	}
	if !ok {
		return value.Null, nil
	}
	if l.len() == 0 {
		delete(d.entries, k)
	}
	return value.String(v), nil
}

func (d *Database) cmdLPop(view *value.SegmentView) (value.Value, error) {
	return d.popHelper(view, "LPOP", true)
}

func (d *Database) cmdRPop(view *value.SegmentView) (value.Value, error) {
	return d.popHelper(view, "RPOP", false)
}

func (d *Database) cmdLLen(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("LLEN")
	}
	l, ok, err := get[*listEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return value.Integer(0), nil
	}
	return value.Integer(l.len()), nil
}

func (d *Database) cmdLIndex(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	i, _, err := view.EatInteger()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("LINDEX")
	}
	l, ok, err := get[*listEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return value.Null, nil
	}
	idx, ok := l.normalizeIndex(int(i))
	if !ok {
		return value.Null, nil
	}
	return value.String(l.elems[idx]), nil
}

func (d *Database) cmdLSet(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	i, _, err := view.EatInteger()
	if err != nil {
		return nil, err
	}
	s, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("LSET")
	}
	l, ok, err := get[*listEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, value.NewRemoteError(Source, "ERR no such key")
	}
	idx, ok := l.normalizeIndex(int(i))
	if !ok {
		return nil, value.NewRemoteError(Source, "ERR index out of range")
	}
	l.elems[idx] = []byte(s)
	return value.String("OK"), nil
}

func (d *Database) cmdLRange(view *value.SegmentView) (value.Value, error) {
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
		return nil, wrongArgCount("LRANGE")
	}
	result := value.NewVector()
	l, ok, err := get[*listEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return result, nil
	}
	start, end := normalizeRange(l.len(), int(a), int(b))
	for i := start; i <= end; i++ {
		result.PushBack(value.String(l.elems[i]))
	}
	return result, nil
}

func (d *Database) cmdLRem(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	n, _, err := view.EatInteger()
	if err != nil {
		return nil, err
	}
	s, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("LREM")
	}
	l, ok, err := get[*listEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return value.Integer(0), nil
	}
	target := []byte(s)
	var removed int32
	switch {
	case n == 0:
		kept := l.elems[:0]
		for _, e := range l.elems {
			if string(e) == string(target) {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		l.elems = kept
	case n > 0:
		kept := make([][]byte, 0, len(l.elems))
		limit := int(n)
		for _, e := range l.elems {
			if limit > 0 && string(e) == string(target) {
				removed++
				limit--
				continue
			}
			kept = append(kept, e)
		}
		l.elems = kept
	default:
		limit := int(-n)
		kept := make([][]byte, len(l.elems))
		copy(kept, l.elems)
		for i := len(kept) - 1; i >= 0 && limit > 0; i-- {
			if string(kept[i]) == string(target) {
				kept = append(kept[:i], kept[i+1:]...)
				removed++
				limit--
			}
		}
		l.elems = kept
	}
	if l.len() == 0 {
		delete(d.entries, k)
	}
	return value.Integer(removed), nil
}

func (d *Database) cmdLTrim(view *value.SegmentView) (value.Value, error) {
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
		return nil, wrongArgCount("LTRIM")
	}
	l, ok, err := get[*listEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return value.String("OK"), nil
	}
	start, end := normalizeRange(l.len(), int(a), int(b))
	if end < start {
		delete(d.entries, k)
		return value.String("OK"), nil
	}
	l.elems = append([][]byte(nil), l.elems[start:end+1]...)
	return value.String("OK"), nil
}

func (d *Database) cmdRPopLPush(view *value.SegmentView) (value.Value, error) {
	a, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	b, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("RPOPLPUSH")
	}
	src, ok, err := get[*listEntry](d, a)
	if err != nil {
		return nil, err
	}
	if !ok {
		return value.Null, nil
	}
	if _, _, err := get[*listEntry](d, b); err != nil {
		return nil, err
	}
	v, ok := src.popBack()
	if !ok {
		return value.Null, nil
	}
	dst, err := getCreate[*listEntry](d, b, newListEntry)
	if err != nil {
		return nil, err
	}
	dst.pushFront(v)
	if src.len() == 0 {
		delete(d.entries, a)
	}
	return value.String(v), nil
}
