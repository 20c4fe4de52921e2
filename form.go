package multiform

import (
	"encoding/json"
	"strconv"
)

// Kind reports the shape of an [Entry].
type Kind int

const (
	// Scalar entries hold a single value, set by a plain key such as "name".
	Scalar Kind = iota
	// List entries hold values in encounter order, set by keys such as
	// "tags[]".
	List
	// Map entries hold values by sub-key, set by keys such as "user[name]".
	Map
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case List:
		return "list"
	case Map:
		return "map"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Entry is the value stored under one top-level key. Only the member that
// matches Kind is populated.
type Entry[T any] struct {
	Kind  Kind
	Value T
	List  []T
	Map   map[string]T
}

// MarshalJSON encodes a scalar entry as its value, a list entry as an array
// and a map entry as an object.
func (e Entry[T]) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case List:
		if e.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(e.List)
	case Map:
		return json.Marshal(e.Map)
	default:
		return json.Marshal(e.Value)
	}
}

// Values maps top-level field names to their entries. The same type serves
// plain fields (Values[string]) and uploaded files (Values[*File]).
type Values[T any] map[string]Entry[T]

// Lookup returns the entry stored under key.
func (vs Values[T]) Lookup(key string) (Entry[T], bool) {
	e, ok := vs[key]
	return e, ok
}

// Get returns the scalar stored under key. It reports false when the key is
// missing or does not hold a scalar.
func (vs Values[T]) Get(key string) (T, bool) {
	e, ok := vs[key]
	if !ok || e.Kind != Scalar {
		var zero T
		return zero, false
	}
	return e.Value, true
}

// List returns the list stored under key, or nil.
func (vs Values[T]) List(key string) []T {
	if e, ok := vs[key]; ok && e.Kind == List {
		return e.List
	}
	return nil
}

// Map returns the map stored under key, or nil.
func (vs Values[T]) Map(key string) map[string]T {
	if e, ok := vs[key]; ok && e.Kind == Map {
		return e.Map
	}
	return nil
}

// Add stores v under key, honouring a bracket suffix on the key:
//
//	name        sets the scalar "name", replacing whatever was there
//	tags[]      appends to the list "tags"
//	user[email] sets key "email" of the map "user"
//
// Appending to a map stores v under the next free integer key. Setting a
// sub-key on a list turns it into a map keyed by position. An existing scalar
// becomes the first element of the new list or map.
func (vs Values[T]) Add(key string, v T) {
	base, sub, bracketed := splitKey(key)
	if !bracketed {
		vs[key] = Entry[T]{Kind: Scalar, Value: v}
		return
	}

	e, exists := vs[base]
	if sub == "" {
		vs[base] = e.appended(exists, v)
	} else {
		vs[base] = e.withKey(exists, sub, v)
	}
}

func (e Entry[T]) appended(exists bool, v T) Entry[T] {
	if !exists {
		return Entry[T]{Kind: List, List: []T{v}}
	}

	switch e.Kind {
	case List:
		e.List = append(e.List, v)
		return e
	case Map:
		e.Map[strconv.Itoa(nextIndex(e.Map))] = v
		return e
	default:
		return Entry[T]{Kind: List, List: []T{e.Value, v}}
	}
}

func (e Entry[T]) withKey(exists bool, sub string, v T) Entry[T] {
	var m map[string]T
	switch {
	case !exists:
		m = make(map[string]T, 1)
	case e.Kind == Map:
		m = e.Map
	case e.Kind == List:
		m = make(map[string]T, len(e.List)+1)
		for i, item := range e.List {
			m[strconv.Itoa(i)] = item
		}
	default:
		m = map[string]T{"0": e.Value}
	}

	m[sub] = v
	return Entry[T]{Kind: Map, Map: m}
}

// nextIndex returns one more than the largest canonical non-negative integer
// key in m, or 0 when there is none.
func nextIndex[T any](m map[string]T) int {
	next := 0
	for k := range m {
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 || strconv.Itoa(n) != k {
			continue
		}
		if n >= next {
			next = n + 1
		}
	}
	return next
}

// Form is the result of decoding one multipart body.
type Form struct {
	Fields Values[string] `json:"fields"`
	Files  Values[*File]  `json:"files"`
}

func newForm() *Form {
	return &Form{
		Fields: make(Values[string]),
		Files:  make(Values[*File]),
	}
}
