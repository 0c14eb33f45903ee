package minijson

import (
	"fmt"
	"reflect"
)

// Stringify encodes v as a MINIJSON token.
//
// v may be a *Value tree or any Go value: strings, bools, every numeric
// kind, slices, arrays, maps with string or integer keys, structs, pointers
// and interfaces. A nil value or nil pointer encodes as null (""). A func or
// Undefined has no representation: at the top level Stringify returns
// ErrNoOutput, inside an array it leaves an empty slot, and inside an object
// it drops the entry.
//
// A container that contains itself through its own ancestors makes
// Stringify fail with an error wrapping ErrCircular.
func Stringify(v any) (string, error) {
	e := &encoder{}
	ok, err := e.encode(v, nil)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoOutput
	}
	return string(e.buf), nil
}

type encoder struct {
	buf []byte
}

// encode appends the token for v. It returns false, having written
// nothing, when v has no representation.
func (e *encoder) encode(v any, path *ancestors) (bool, error) {
	switch val := v.(type) {
	case nil:
		return true, nil
	case *Value:
		return e.encodeValue(val, path)
	case Value:
		return e.encodeValue(&val, path)
	case string:
		e.buf = append(e.buf, quoteString(val)...)
		return true, nil
	case float64:
		e.buf = append(e.buf, formatNumber(val)...)
		return true, nil
	case bool:
		e.buf = append(e.buf, formatBool(val)...)
		return true, nil
	}
	return e.encodeReflect(reflect.ValueOf(v), path)
}

func (e *encoder) encodeValue(v *Value, path *ancestors) (bool, error) {
	if v == nil {
		return true, nil
	}
	switch v.kind {
	case KindUndefined:
		return false, nil
	case KindNumber:
		e.buf = append(e.buf, formatNumber(v.numVal)...)
	case KindBool:
		e.buf = append(e.buf, formatBool(v.boolVal)...)
	case KindString:
		e.buf = append(e.buf, quoteString(v.strVal)...)
	case KindArray:
		path, err := enter(reflect.ValueOf(v), path)
		if err != nil {
			return false, err
		}
		e.buf = append(e.buf, '[')
		for i, elem := range v.arrVal {
			if i > 0 {
				e.buf = append(e.buf, '|')
			}
			if _, err := e.encodeValue(elem, path); err != nil {
				return false, wrapIndex(i, err)
			}
		}
		e.buf = append(e.buf, ']')
	case KindObject:
		path, err := enter(reflect.ValueOf(v), path)
		if err != nil {
			return false, err
		}
		w := e.objectWriter()
		for _, entry := range v.objVal {
			if err := w.entry(entry.Key, func() (bool, error) {
				return e.encodeValue(entry.Value, path)
			}); err != nil {
				return false, err
			}
		}
		w.close()
	}
	return true, nil
}

// objectWriter writes the entries of one object, keeping separators only
// between entries that produced output.
type objectWriter struct {
	e       *encoder
	written int
}

func (e *encoder) objectWriter() *objectWriter {
	e.buf = append(e.buf, '{')
	return &objectWriter{e: e}
}

func (w *objectWriter) entry(key string, value func() (bool, error)) error {
	mark := len(w.e.buf)
	if w.written > 0 {
		w.e.buf = append(w.e.buf, '|')
	}
	w.e.buf = append(w.e.buf, escapeText(key)...)
	w.e.buf = append(w.e.buf, ':')
	ok, err := value()
	if err != nil {
		return fmt.Errorf("object[%q]: %w", key, err)
	}
	if !ok {
		w.e.buf = w.e.buf[:mark]
		return nil
	}
	w.written++
	return nil
}

func wrapIndex(i int, err error) error {
	return fmt.Errorf("array[%d]: %w", i, err)
}

func (w *objectWriter) close() {
	w.e.buf = append(w.e.buf, '}')
}

// ============================================================
// Ancestor Path
// ============================================================

// ancestors is an immutable list of the containers between the root and
// the value being encoded. Each branch extends its parent's list, so
// siblings never see each other's entries.
type ancestors struct {
	id     identity
	parent *ancestors
}

func (a *ancestors) push(id identity) *ancestors {
	return &ancestors{id: id, parent: a}
}

func (a *ancestors) contains(id identity) bool {
	for ; a != nil; a = a.parent {
		if a.id == id {
			return true
		}
	}
	return false
}
