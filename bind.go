package multiform

import (
	"fmt"
	"reflect"
	"strconv"
)

// Unmarshaler is the interface implemented by types that can decode a single
// form value into themselves.
type Unmarshaler interface {
	UnmarshalForm(string) error
}

var (
	fileType    = reflect.TypeOf(File{})
	filePtrType = reflect.TypeOf((*File)(nil))
)

// Bind stores the decoded form in the struct pointed to by v. Struct fields
// are matched by their `form:"name"` tag, or by field name when untagged; a
// tag of "-" skips the field.
//
// Plain fields bind to strings, numbers, booleans and [Unmarshaler]
// implementations. A list binds to a slice, and a single value binds to a
// one-element slice. A map binds to a map with string keys or to a nested
// struct. Fields of type File, *File, []*File and map[string]*File bind to
// uploaded files. Keys without a matching struct field are ignored.
func (f *Form) Bind(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return &InvalidBindError{reflect.TypeOf(v)}
	}
	rv = rv.Elem()

	for _, fi := range structFields(rv.Type()) {
		fv := rv.Field(fi.index)
		if isFileField(fv.Type()) {
			e, ok := f.Files[fi.name]
			if !ok {
				continue
			}
			if err := bindFile(fv, e); err != nil {
				return fmt.Errorf("multiform: file %q: %w", fi.name, err)
			}
			continue
		}

		e, ok := f.Fields[fi.name]
		if !ok {
			continue
		}
		if err := bindEntry(fv, e); err != nil {
			return fmt.Errorf("multiform: field %q: %w", fi.name, err)
		}
	}
	return nil
}

func isFileField(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Map:
		return t.Elem() == filePtrType
	default:
		return t == fileType || t == filePtrType
	}
}

func bindFile(v reflect.Value, e Entry[*File]) error {
	switch {
	case v.Type() == fileType || v.Type() == filePtrType:
		if e.Kind != Scalar {
			return fmt.Errorf("cannot bind %v of files to %v", e.Kind, v.Type())
		}
		if v.Type() == fileType {
			if e.Value != nil {
				v.Set(reflect.ValueOf(*e.Value))
			}
			return nil
		}
		v.Set(reflect.ValueOf(e.Value))
		return nil

	case v.Kind() == reflect.Slice:
		switch e.Kind {
		case List:
			v.Set(reflect.ValueOf(append([]*File(nil), e.List...)))
		case Scalar:
			v.Set(reflect.ValueOf([]*File{e.Value}))
		default:
			return fmt.Errorf("cannot bind map of files to %v", v.Type())
		}
		return nil

	default:
		if e.Kind != Map {
			return fmt.Errorf("cannot bind %v of files to %v", e.Kind, v.Type())
		}
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("map keys must be strings, not %v", v.Type().Key())
		}
		m := reflect.MakeMapWithSize(v.Type(), len(e.Map))
		for k, f := range e.Map {
			m.SetMapIndex(reflect.ValueOf(k).Convert(v.Type().Key()), reflect.ValueOf(f))
		}
		v.Set(m)
		return nil
	}
}

func bindEntry(v reflect.Value, e Entry[string]) error {
	v = deref(v)

	if v.Kind() == reflect.Interface && v.NumMethod() == 0 {
		switch e.Kind {
		case List:
			v.Set(reflect.ValueOf(append([]string(nil), e.List...)))
		case Map:
			m := make(map[string]string, len(e.Map))
			for k, s := range e.Map {
				m[k] = s
			}
			v.Set(reflect.ValueOf(m))
		default:
			v.Set(reflect.ValueOf(e.Value))
		}
		return nil
	}

	switch e.Kind {
	case Scalar:
		if v.Kind() == reflect.Slice && !isUnmarshaler(v) {
			return bindSlice(v, []string{e.Value})
		}
		return assignLeaf(v, e.Value)
	case List:
		if v.Kind() != reflect.Slice {
			return fmt.Errorf("cannot bind list to %v", v.Type())
		}
		return bindSlice(v, e.List)
	default:
		switch v.Kind() {
		case reflect.Map:
			return bindMap(v, e.Map)
		case reflect.Struct:
			return bindStruct(v, e.Map)
		default:
			return fmt.Errorf("cannot bind map to %v", v.Type())
		}
	}
}

func bindSlice(v reflect.Value, vals []string) error {
	slice := reflect.MakeSlice(v.Type(), 0, len(vals))
	for _, val := range vals {
		elem := reflect.New(v.Type().Elem()).Elem()
		if err := assignLeaf(deref(elem), val); err != nil {
			return err
		}
		slice = reflect.Append(slice, elem)
	}
	v.Set(slice)
	return nil
}

func bindMap(v reflect.Value, vals map[string]string) error {
	if v.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("map keys must be strings, not %v", v.Type().Key())
	}
	if v.IsNil() {
		v.Set(reflect.MakeMapWithSize(v.Type(), len(vals)))
	}

	for k, val := range vals {
		elem := reflect.New(v.Type().Elem()).Elem()
		if err := assignLeaf(deref(elem), val); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		v.SetMapIndex(reflect.ValueOf(k).Convert(v.Type().Key()), elem)
	}
	return nil
}

func bindStruct(v reflect.Value, vals map[string]string) error {
	for _, fi := range structFields(v.Type()) {
		val, ok := vals[fi.name]
		if !ok {
			continue
		}
		if err := assignLeaf(deref(v.Field(fi.index)), val); err != nil {
			return fmt.Errorf("key %q: %w", fi.name, err)
		}
	}
	return nil
}

// dereference a pointer value, allocating a new value if needed.
func deref(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return v.Elem()
	}
	return v
}

// assign a leaf value (string) to v. If v implements [Unmarshaler], use that.
func assignLeaf(v reflect.Value, val string) error {
	if u, ok := asUnmarshaler(v); ok {
		return u.UnmarshalForm(val)
	}
	return setScalar(v, val)
}

func isUnmarshaler(v reflect.Value) bool {
	_, ok := asUnmarshaler(v)
	return ok
}

func asUnmarshaler(v reflect.Value) (Unmarshaler, bool) {
	if v.CanAddr() {
		if u, ok := v.Addr().Interface().(Unmarshaler); ok {
			return u, true
		}
	}
	if v.CanInterface() {
		if u, ok := v.Interface().(Unmarshaler); ok {
			return u, true
		}
	}
	return nil, false
}

func setScalar(v reflect.Value, val string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(val)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if val == "" {
			v.SetInt(0)
			return nil
		}
		i, err := strconv.ParseInt(val, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if val == "" {
			v.SetUint(0)
			return nil
		}
		u, err := strconv.ParseUint(val, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		if val == "" {
			v.SetFloat(0)
			return nil
		}
		f, err := strconv.ParseFloat(val, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Bool:
		// Unchecked checkboxes are simply absent; a present one may be empty.
		if val == "" || val == "on" {
			v.SetBool(val == "on")
			return nil
		}
		b, err := strconv.ParseBool(val)
		if err != nil {
			return err
		}
		v.SetBool(b)
	default:
		return fmt.Errorf("unsupported type: %v", v.Type())
	}
	return nil
}
