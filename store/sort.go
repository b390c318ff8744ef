package store

import (
	"sort"
	"strconv"
	"strings"

	"github.com/IceFireDB/vredis/value"
)

type sortOptions struct {
	by       string
	hasLimit bool
	offset   int
	count    int
	gets     []string
	desc     bool
	alpha    bool
	store    string
	hasStore bool
}

func parseSortOptions(view *value.SegmentView) (*sortOptions, error) {
	opts := &sortOptions{by: "#"}
	var gets []string
	for view.Remaining() > 0 {
		word, _, err := view.EatString()
		if err != nil {
			return nil, err
		}
		switch strings.ToUpper(word) {
		case "BY":
			pattern, _, err := view.EatString()
			if err != nil {
				return nil, err
			}
			opts.by = pattern
		case "LIMIT":
			offset, _, err := view.EatInteger()
			if err != nil {
				return nil, err
			}
			count, _, err := view.EatInteger()
			if err != nil {
				return nil, err
			}
			opts.hasLimit = true
			opts.offset = int(offset)
			opts.count = int(count)
		case "GET":
			pattern, _, err := view.EatString()
			if err != nil {
				return nil, err
			}
			gets = append(gets, pattern)
		case "ASC":
			opts.desc = false
		case "DESC":
			opts.desc = true
		case "ALPHA":
			opts.alpha = true
		case "STORE":
			dest, _, err := view.EatString()
			if err != nil {
				return nil, err
			}
			opts.store = dest
			opts.hasStore = true
		default:
			return nil, value.NewRemoteError(Source, "ERR syntax error")
		}
	}
	if len(gets) == 0 {
		gets = []string{"#"}
	}
	opts.gets = gets
	return opts, nil
}

// substitute replaces the single '*' wildcard in pattern with elem.
func substitute(pattern, elem string) string {
	return strings.Replace(pattern, "*", elem, 1)
}

// resolvePattern implements the BY/GET substitution rules: "#" means the
// origin element itself; a pattern containing "->" looks up a hash
// field, substituting '*' on both sides; otherwise it looks up a plain
// string entry.
func (d *Database) resolvePattern(pattern, elem string) (value.Value, bool, error) {
	if pattern == "#" {
		return value.NewString(elem), true, nil
	}
	if i := strings.Index(pattern, "->"); i >= 0 {
		hashName := substitute(pattern[:i], elem)
		field := substitute(pattern[i+2:], elem)
		h, ok, err := get[*hashEntry](d, hashName)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return value.Null, false, nil
		}
		v, ok := h.get(field)
		if !ok {
			return value.Null, false, nil
		}
		return value.String(v), true, nil
	}
	name := substitute(pattern, elem)
	s, ok, err := get[*stringEntry](d, name)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return value.Null, false, nil
	}
	return value.String(s.val), true, nil
}

func sortKeyNumeric(s string) (int64, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(t, 10, 64)
	if err != nil {
		return 0, value.NewRemoteError(Source, "ERR Invalid type (expect integer)")
	}
	return n, nil
}

func (d *Database) cmdSort(view *value.SegmentView) (value.Value, error) {
	key, _, err := view.EatString()
	if err != nil {
		return nil, err
	}
	opts, err := parseSortOptions(view)
	if err != nil {
		return nil, err
	}

	e, present := d.entries[key]
	var elems []string
	if present {
		sortableEntry, ok := e.(sortable)
		if !ok {
			return nil, value.NewRemoteError(Source, "ERR Invalid type")
		}
		elems = sortableEntry.sortElements()
	}

	type scored struct {
		elem   string
		byStr  string
		byNum  int64
	}
	scoredElems := make([]scored, len(elems))
	for i, el := range elems {
		byVal, _, err := d.resolvePattern(opts.by, el)
		if err != nil {
			return nil, err
		}
		byStr, _ := value.NewAccess(byVal).ToString()
		sc := scored{elem: el, byStr: byStr}
		if !opts.alpha {
			n, err := sortKeyNumeric(byStr)
			if err != nil {
				return nil, err
			}
			sc.byNum = n
		}
		scoredElems[i] = sc
	}

	sort.SliceStable(scoredElems, func(i, j int) bool {
		if opts.alpha {
			return scoredElems[i].byStr < scoredElems[j].byStr
		}
		return scoredElems[i].byNum < scoredElems[j].byNum
	})
	if opts.desc {
		for i, j := 0, len(scoredElems)-1; i < j; i, j = i+1, j-1 {
			scoredElems[i], scoredElems[j] = scoredElems[j], scoredElems[i]
		}
	}

	start, end := 0, len(scoredElems)
	if opts.hasLimit {
		start = opts.offset
		if start < 0 {
			start = 0
		}
		if start > len(scoredElems) {
			start = len(scoredElems)
		}
		end = start + opts.count
		if opts.count < 0 || end > len(scoredElems) {
			end = len(scoredElems)
		}
	}
	if end < start {
		end = start
	}
	survivors := scoredElems[start:end]

	if opts.hasStore {
		dest := newListEntry()
		for _, sc := range survivors {
			for _, pat := range opts.gets {
				v, ok, err := d.resolvePattern(pat, sc.elem)
				if err != nil {
					return nil, err
				}
				if !ok {
					dest.pushBack([]byte(""))
					continue
				}
				s, _ := value.NewAccess(v).ToString()
				dest.pushBack([]byte(s))
			}
		}
		if dest.len() == 0 {
			delete(d.entries, opts.store)
		} else {
			d.entries[opts.store] = dest
		}
		// Deliberately returns an empty Vector rather than the destination
		// length; the caller can still LLEN the destination.
		return value.NewVector(), nil
	}

	result := value.NewVector()
	for _, sc := range survivors {
		for _, pat := range opts.gets {
			v, ok, err := d.resolvePattern(pat, sc.elem)
			if err != nil {
				return nil, err
			}
			if !ok {
				result.PushBack(value.Null)
				continue
			}
			result.PushBack(v)
		}
	}
	return result, nil
}
