// Package flatten projects nested documents into flat dotted-path maps.
package flatten

import (
	"reflect"
	"sort"
	"strconv"

	"github.com/Velocidex/ordereddict"
)

// Circular marks a container that was reached again along its own path.
const Circular = "[Circular]"

type Options struct {
	Delimiter string // defaults to "."
	MaxDepth  int    // containers below this depth are kept whole; 0 = unlimited
}

// Flatten walks doc and returns path -> leaf value in visit order. Objects
// are *ordereddict.Dict (key order kept) or map[string]any (keys sorted);
// arrays are indexed numerically. Empty containers are leaves. A scalar doc
// yields an empty result.
func Flatten(doc any, opts Options) *ordereddict.Dict {
	if opts.Delimiter == "" {
		opts.Delimiter = "."
	}
	w := &walker{
		opts:   opts,
		out:    ordereddict.NewDict(),
		onPath: map[uintptr]bool{},
	}
	if IsContainer(doc) {
		w.step(doc, "", 1)
	}
	return w.out
}

// Keys flattens doc and returns only the paths.
func Keys(doc any, opts Options) []string {
	return Flatten(doc, opts).Keys()
}

// IsContainer reports whether v is an object or an array.
func IsContainer(v any) bool {
	switch v.(type) {
	case *ordereddict.Dict, map[string]any, []any:
		return true
	}
	return false
}

type walker struct {
	opts   Options
	out    *ordereddict.Dict
	onPath map[uintptr]bool
}

func (w *walker) step(node any, prefix string, depth int) {
	id := identity(node)
	if id != 0 {
		w.onPath[id] = true
		defer delete(w.onPath, id)
	}
	for _, e := range entries(node) {
		key := e.key
		if prefix != "" {
			key = prefix + w.opts.Delimiter + e.key
		}
		if !IsContainer(e.value) || size(e.value) == 0 ||
			(w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth) {
			w.out.Set(key, e.value)
			continue
		}
		if cid := identity(e.value); cid != 0 && w.onPath[cid] {
			w.out.Set(key, Circular)
			continue
		}
		w.step(e.value, key, depth+1)
	}
}

type entry struct {
	key   string
	value any
}

func entries(node any) []entry {
	switch x := node.(type) {
	case *ordereddict.Dict:
		if x == nil {
			return nil
		}
		keys := x.Keys()
		out := make([]entry, 0, len(keys))
		for _, k := range keys {
			v, _ := x.Get(k)
			out = append(out, entry{k, v})
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]entry, 0, len(keys))
		for _, k := range keys {
			out = append(out, entry{k, x[k]})
		}
		return out
	case []any:
		out := make([]entry, 0, len(x))
		for i, v := range x {
			out = append(out, entry{strconv.Itoa(i), v})
		}
		return out
	}
	return nil
}

func size(v any) int {
	switch x := v.(type) {
	case *ordereddict.Dict:
		if x == nil {
			return 0
		}
		return x.Len()
	case map[string]any:
		return len(x)
	case []any:
		return len(x)
	}
	return 0
}

// identity is the address backing a container, 0 when it has none.
func identity(v any) uintptr {
	switch x := v.(type) {
	case *ordereddict.Dict:
		return reflect.ValueOf(x).Pointer()
	case map[string]any:
		return reflect.ValueOf(x).Pointer()
	case []any:
		if len(x) == 0 {
			return 0
		}
		return reflect.ValueOf(&x[0]).Pointer()
	}
	return 0
}
