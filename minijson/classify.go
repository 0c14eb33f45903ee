package minijson

import (
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

var (
	valuePtrType   = reflect.TypeOf((*Value)(nil))
	valueType      = valuePtrType.Elem()
	jsonNumberType = reflect.TypeOf(json.Number(""))
)

// identity names a container by address for cycle detection. Slices also
// carry their length, since s and s[:1] share an address.
type identity struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

func identityOf(rv reflect.Value) identity {
	id := identity{typ: rv.Type(), ptr: rv.Pointer()}
	if rv.Kind() == reflect.Slice {
		id.n = rv.Len()
	}
	return id
}

// enter records rv on the path, failing if it is already there.
func enter(rv reflect.Value, path *ancestors) (*ancestors, error) {
	id := identityOf(rv)
	if path.contains(id) {
		return nil, ErrCircular
	}
	return path.push(id), nil
}

// encodeReflect classifies an arbitrary Go value by its reflect.Kind.
func (e *encoder) encodeReflect(rv reflect.Value, path *ancestors) (bool, error) {
	if !rv.IsValid() {
		return true, nil
	}
	switch rv.Type() {
	case valuePtrType:
		if !rv.CanInterface() {
			return true, nil
		}
		return e.encodeValue(rv.Interface().(*Value), path)
	case valueType:
		if !rv.CanInterface() {
			return true, nil
		}
		v := rv.Interface().(Value)
		return e.encodeValue(&v, path)
	case jsonNumberType:
		if f, err := strconv.ParseFloat(rv.String(), 64); err == nil {
			e.buf = append(e.buf, formatNumber(f)...)
			return true, nil
		}
		e.buf = append(e.buf, quoteString(rv.String())...)
		return true, nil
	}

	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return true, nil
		}
		return e.encodeReflect(rv.Elem(), path)

	case reflect.Pointer:
		if rv.IsNil() {
			return true, nil
		}
		path, err := enter(rv, path)
		if err != nil {
			return false, err
		}
		return e.encodeReflect(rv.Elem(), path)

	case reflect.String:
		e.buf = append(e.buf, quoteString(rv.String())...)

	case reflect.Bool:
		e.buf = append(e.buf, formatBool(rv.Bool())...)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.buf = append(e.buf, formatNumber(float64(rv.Int()))...)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.buf = append(e.buf, formatNumber(float64(rv.Uint()))...)

	case reflect.Float32:
		// Widen through the shortest float32 decimal so 0.1 stays 0.1.
		f, _ := strconv.ParseFloat(strconv.FormatFloat(rv.Float(), 'g', -1, 32), 64)
		e.buf = append(e.buf, formatNumber(f)...)

	case reflect.Float64:
		e.buf = append(e.buf, formatNumber(rv.Float())...)

	case reflect.Slice:
		if rv.IsNil() {
			return true, nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			e.buf = append(e.buf, quoteString(string(rv.Bytes()))...)
			return true, nil
		}
		if rv.Len() > 0 {
			var err error
			if path, err = enter(rv, path); err != nil {
				return false, err
			}
		}
		return e.encodeSeq(rv, path)

	case reflect.Array:
		return e.encodeSeq(rv, path)

	case reflect.Map:
		return e.encodeMap(rv, path)

	case reflect.Struct:
		return e.encodeStruct(rv, path)

	case reflect.Func:
		return false, nil

	default:
		// Channels, complex numbers and unsafe pointers have no JSON
		// counterpart and encode as null.
	}
	return true, nil
}

func (e *encoder) encodeSeq(rv reflect.Value, path *ancestors) (bool, error) {
	e.buf = append(e.buf, '[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			e.buf = append(e.buf, '|')
		}
		if _, err := e.encodeReflect(rv.Index(i), path); err != nil {
			return false, wrapIndex(i, err)
		}
	}
	e.buf = append(e.buf, ']')
	return true, nil
}

func (e *encoder) encodeMap(rv reflect.Value, path *ancestors) (bool, error) {
	if rv.IsNil() {
		return true, nil
	}

	type pair struct {
		key string
		val reflect.Value
	}
	pairs := make([]pair, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		var key string
		switch k.Kind() {
		case reflect.String:
			key = k.String()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			key = strconv.FormatInt(k.Int(), 10)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			key = strconv.FormatUint(k.Uint(), 10)
		default:
			// Not a keyed mapping in the JSON sense.
			return true, nil
		}
		pairs = append(pairs, pair{key: key, val: iter.Value()})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	if len(pairs) > 0 {
		var err error
		if path, err = enter(rv, path); err != nil {
			return false, err
		}
	}
	w := e.objectWriter()
	for _, p := range pairs {
		if err := w.entry(p.key, func() (bool, error) {
			return e.encodeReflect(p.val, path)
		}); err != nil {
			return false, err
		}
	}
	w.close()
	return true, nil
}

func (e *encoder) encodeStruct(rv reflect.Value, path *ancestors) (bool, error) {
	t := rv.Type()
	w := e.objectWriter()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			if tag == "-" {
				continue
			}
			if n, _, _ := strings.Cut(tag, ","); n != "" {
				name = n
			}
		}
		fv := rv.Field(i)
		if err := w.entry(name, func() (bool, error) {
			return e.encodeReflect(fv, path)
		}); err != nil {
			return false, err
		}
	}
	w.close()
	return true, nil
}
