package store

import (
	"strings"

	"github.com/IceFireDB/vredis/value"
)

func readStrings(view *value.SegmentView) ([]string, error) {
	var out []string
	for view.Remaining() > 0 {
		s, _, err := view.EatString()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (d *Database) cmdDel(view *value.SegmentView) (value.Value, error) {
	keys, err := readStrings(view)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, wrongArgCount("DEL")
	}
	var n int32
	for _, k := range keys {
		if _, ok := d.entries[k]; ok {
			delete(d.entries, k)
			n++
		}
	}
	return value.Integer(n), nil
}

func (d *Database) cmdExists(view *value.SegmentView) (value.Value, error) {
	keys, err := readStrings(view)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, wrongArgCount("EXISTS")
	}
	var n int32
	for _, k := range keys {
		if _, ok := d.entries[k]; ok {
			n++
		}
	}
	return value.Integer(n), nil
}

// matchGlob implements KEYS's restricted glob: pattern contains at most
// one '*', matching an arbitrary byte run; otherwise it is a literal.
func matchGlob(pattern, name string) bool {
	i := strings.IndexByte(pattern, '*')
	if i < 0 {
		return pattern == name
	}
	prefix, suffix := pattern[:i], pattern[i+1:]
	return len(name) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(name, prefix) &&
		strings.HasSuffix(name, suffix)
}

func (d *Database) cmdKeys(view *value.SegmentView) (value.Value, error) {
	pattern, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("KEYS")
	}
	result := value.NewVector()
	for name := range d.entries {
		if matchGlob(pattern, name) {
			result.PushBack(value.NewString(name))
		}
	}
	return result, nil
}

func (d *Database) cmdRename(view *value.SegmentView) (value.Value, error) {
	a, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	b, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("RENAME")
	}
	e, ok := d.entries[a]
	if !ok {
		return nil, value.NewRemoteError(Source, "ERR no such key")
	}
	d.entries[b] = e
	delete(d.entries, a)
	return value.String("OK"), nil
}

func (d *Database) cmdRenameNX(view *value.SegmentView) (value.Value, error) {
	a, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	b, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("RENAMENX")
	}
	e, ok := d.entries[a]
	if !ok {
		return nil, value.NewRemoteError(Source, "ERR no such key")
	}
	if _, exists := d.entries[b]; exists {
		return value.Integer(0), nil
	}
	d.entries[b] = e
	delete(d.entries, a)
	return value.Integer(1), nil
}

func (d *Database) cmdType(view *value.SegmentView) (value.Value, error) {
	k, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	if view.Remaining() > 0 {
		return nil, wrongArgCount("TYPE")
	}
	e, ok := d.entries[k]
	if !ok {
		return value.NewString("none"), nil
	}
	return value.NewString(e.typeName()), nil
}
