package store

import (
	"math/rand"

	"github.com/IceFireDB/vredis/value"
)

func (d *Database) cmdSAdd(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	members, err := readStrings(view)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, wrongArgCount("SADD")
	}
	s, err := getCreate[*setEntry](d, k, newSetEntry)
	if err != nil {
		return nil, err
	}
	var n int32
	for _, m := range members {
		if s.add(m) {
			n++
		}
	}
	return value.Integer(n), nil
}

func (d *Database) cmdSRem(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	members, err := readStrings(view)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, wrongArgCount("SREM")
	}
	s, ok, err := get[*setEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return value.Integer(0), nil
	}
	var n int32
	for _, m := range members {
		if s.remove(m) {
			n++
		}
	}
	if s.len() == 0 {
		delete(d.entries, k)
	}
	return value.Integer(n), nil
}

func (d *Database) cmdSCard(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("SCARD")
	}
	s, ok, err := get[*setEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return value.Integer(0), nil
	}
	return value.Integer(s.len()), nil
}

func (d *Database) cmdSIsMember(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	m, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("SISMEMBER")
	}
	s, ok, err := get[*setEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok || !s.contains(m) {
		return value.Integer(0), nil
	}
	return value.Integer(1), nil
}

func (d *Database) cmdSMembers(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("SMEMBERS")
	}
	result := value.NewVector()
	s, ok, err := get[*setEntry](d, k)
	if err != nil {
		return nil, err
	}
	if ok {
		for _, m := range s.order {
			result.PushBack(value.NewString(m))
		}
	}
	return result, nil
}

func (d *Database) cmdSMove(view *value.SegmentView) (value.Value, error) {
	a, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	b, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	m, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("SMOVE")
	}
	src, ok, err := get[*setEntry](d, a)
	if err != nil {
		return nil, err
	}
	if !ok || !src.contains(m) {
		return value.Integer(0), nil
	}
	if _, _, err := get[*setEntry](d, b); err != nil {
		return nil, err
	}
	src.remove(m)
	if src.len() == 0 {
		delete(d.entries, a)
	}
	dst, err := getCreate[*setEntry](d, b, newSetEntry)
	if err != nil {
		return nil, err
	}
	dst.add(m)
	return value.Integer(1), nil
}

func (d *Database) spopOrRand(view *value.SegmentView, verb string, remove bool) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount(verb)
	}
	s, ok, err := get[*setEntry](d, k)
	if err != nil {
		return nil, err
	}
	if !ok || s.len() == 0 {
		return value.Null, nil
	}
	m := s.order[rand.Intn(s.len())]
	if remove {
		s.remove(m)
		if s.len() == 0 {
			delete(d.entries, k)
		}
	}
	return value.String(m), nil
}

func (d *Database) cmdSPop(view *value.SegmentView) (value.Value, error) {
	return d.spopOrRand(view, "SPOP", true)
}

func (d *Database) cmdSRandMember(view *value.SegmentView) (value.Value, error) {
	return d.spopOrRand(view, "SRANDMEMBER", false)
}

func (d *Database) readSetsByName(view *value.SegmentView, verb string) ([]*setEntry, error) {
	names, err := readStrings(view)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, wrongArgCount(verb)
	}
	sets := make([]*setEntry, len(names))
	for i, name := range names {
		s, ok, err := get[*setEntry](d, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			s = newSetEntry()
		}
		sets[i] = s
	}
	return sets, nil
}

// intersect preserves the order sets[0] lists its members in.
func intersect(sets []*setEntry) []string {
	var order []string
	for _, m := range sets[0].order {
		inAll := true
		for _, s := range sets[1:] {
			if !s.contains(m) {
				inAll = false
				break
			}
		}
		if inAll {
			order = append(order, m)
		}
	}
	return order
}

func union(sets []*setEntry) []string {
	seen := make(map[string]struct{})
	var order []string
	for _, s := range sets {
		for _, m := range s.order {
			if _, ok := seen[m]; !ok {
				seen[m] = struct{}{}
				order = append(order, m)
			}
		}
	}
	return order
}

func diff(sets []*setEntry) []string {
	var order []string
	for _, m := range sets[0].order {
		excluded := false
		for _, s := range sets[1:] {
			if s.contains(m) {
				excluded = true
				break
			}
		}
		if !excluded {
			order = append(order, m)
		}
	}
	return order
}

func (d *Database) setCombine(view *value.SegmentView, verb string, combine func([]*setEntry) []string) (value.Value, error) {
	sets, err := d.readSetsByName(view, verb)
	if err != nil {
		return nil, err
	}
	result := value.NewVector()
	for _, m := range combine(sets) {
		result.PushBack(value.NewString(m))
	}
	return result, nil
}

func (d *Database) cmdSInter(view *value.SegmentView) (value.Value, error) {
	return d.setCombine(view, "SINTER", intersect)
}

func (d *Database) cmdSUnion(view *value.SegmentView) (value.Value, error) {
	return d.setCombine(view, "SUNION", union)
}

func (d *Database) cmdSDiff(view *value.SegmentView) (value.Value, error) {
	return d.setCombine(view, "SDIFF", diff)
}

func (d *Database) setStoreCombine(view *value.SegmentView, verb string, combine func([]*setEntry) []string) (value.Value, error) {
	dest, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	sets, err := d.readSetsByName(view, verb)
	if err != nil {
		return nil, err
	}
	members := combine(sets)
	if len(members) == 0 {
		delete(d.entries, dest)
		return value.Integer(0), nil
	}
	result := newSetEntry()
	for _, m := range members {
		result.add(m)
	}
	d.entries[dest] = result
	return value.Integer(result.len()), nil
}

func (d *Database) cmdSInterStore(view *value.SegmentView) (value.Value, error) {
	return d.setStoreCombine(view, "SINTERSTORE", intersect)
}

func (d *Database) cmdSUnionStore(view *value.SegmentView) (value.Value, error) {
	return d.setStoreCombine(view, "SUNIONSTORE", union)
}

func (d *Database) cmdSDiffStore(view *value.SegmentView) (value.Value, error) {
	return d.setStoreCombine(view, "SDIFFSTORE", diff)
}
