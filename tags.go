package multiform

import (
	"reflect"
	"strings"
	"sync"
)

// cache of bindable fields per struct type, so the tags of a type are only
// parsed once. The key is the [reflect.Type] of the struct and the value is
// a []fieldInfo.
//
// This cache is safe for concurrent use.
var structFieldCache sync.Map

type fieldInfo struct {
	name  string
	index int
}

// structFields returns the exported fields of t that take part in binding,
// in declaration order.
func structFields(t reflect.Type) []fieldInfo {
	if cached, ok := structFieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}

	fields := make([]fieldInfo, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name, skip := parseTag(f.Tag.Get("form"))
		if skip {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields = append(fields, fieldInfo{name: name, index: i})
	}

	cached, _ := structFieldCache.LoadOrStore(t, fields)
	return cached.([]fieldInfo)
}

// parseTag reads a `form` tag. The name is everything before the first
// comma. A tag of "-", or one carrying the "ignore" option, skips the field.
func parseTag(tag string) (name string, skip bool) {
	tag = strings.TrimSpace(tag)
	if tag == "-" {
		return "", true
	}

	name, opts, _ := strings.Cut(tag, ",")
	for _, opt := range strings.Split(opts, ",") {
		if strings.TrimSpace(opt) == "ignore" {
			return "", true
		}
	}
	return strings.TrimSpace(name), false
}
