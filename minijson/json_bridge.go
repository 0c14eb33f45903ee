package minijson

import (
	"fmt"
	"math"
	"reflect"

	"github.com/valyala/fastjson"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// Converts between JSON text and *Value. Both directions keep object keys
// in document order, which encoding/json's map[string]any cannot.

// FromJSON parses JSON text into a *Value.
func FromJSON(data []byte) (*Value, error) {
	var p fastjson.Parser
	jv, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("JSON parse error: %w", err)
	}
	return fromJSONValue(jv)
}

func fromJSONValue(jv *fastjson.Value) (*Value, error) {
	switch jv.Type() {
	case fastjson.TypeNull:
		return Null(), nil

	case fastjson.TypeTrue:
		return Bool(true), nil

	case fastjson.TypeFalse:
		return Bool(false), nil

	case fastjson.TypeNumber:
		f, err := jv.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %s: %w", jv, err)
		}
		return Number(f), nil

	case fastjson.TypeString:
		b, err := jv.StringBytes()
		if err != nil {
			return nil, err
		}
		return Str(string(b)), nil

	case fastjson.TypeArray:
		elems, err := jv.Array()
		if err != nil {
			return nil, err
		}
		items := make([]*Value, 0, len(elems))
		for i, elem := range elems {
			v, err := fromJSONValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			items = append(items, v)
		}
		return Array(items...), nil

	case fastjson.TypeObject:
		obj, err := jv.Object()
		if err != nil {
			return nil, err
		}
		out := Object()
		var visitErr error
		obj.Visit(func(key []byte, elem *fastjson.Value) {
			if visitErr != nil {
				return
			}
			v, err := fromJSONValue(elem)
			if err != nil {
				visitErr = fmt.Errorf("object[%q]: %w", key, err)
				return
			}
			out.Set(string(key), v)
		})
		if visitErr != nil {
			return nil, visitErr
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported JSON type: %s", jv.Type())
	}
}

// ToJSON converts a *Value to compact JSON text. Undefined array elements
// become null and Undefined object entries are dropped; an Undefined root
// returns ErrNoOutput. NaN and Infinity have no JSON form and fail.
func ToJSON(v *Value) ([]byte, error) {
	if v.Kind() == KindUndefined {
		return nil, ErrNoOutput
	}
	var a fastjson.Arena
	jv, err := toJSONValue(&a, v, nil)
	if err != nil {
		return nil, err
	}
	return jv.MarshalTo(nil), nil
}

func toJSONValue(a *fastjson.Arena, v *Value, path *ancestors) (*fastjson.Value, error) {
	switch v.Kind() {
	case KindNull, KindUndefined:
		return a.NewNull(), nil

	case KindBool:
		if v.boolVal {
			return a.NewTrue(), nil
		}
		return a.NewFalse(), nil

	case KindNumber:
		if math.IsNaN(v.numVal) || math.IsInf(v.numVal, 0) {
			return nil, fmt.Errorf("NaN/Infinity not allowed in JSON")
		}
		return a.NewNumberFloat64(v.numVal), nil

	case KindString:
		return a.NewString(v.strVal), nil

	case KindArray:
		path, err := enter(reflect.ValueOf(v), path)
		if err != nil {
			return nil, err
		}
		arr := a.NewArray()
		for i, elem := range v.arrVal {
			jv, err := toJSONValue(a, elem, path)
			if err != nil {
				return nil, wrapIndex(i, err)
			}
			arr.SetArrayItem(i, jv)
		}
		return arr, nil

	case KindObject:
		path, err := enter(reflect.ValueOf(v), path)
		if err != nil {
			return nil, err
		}
		obj := a.NewObject()
		for _, e := range v.objVal {
			if e.Value.Kind() == KindUndefined {
				continue
			}
			jv, err := toJSONValue(a, e.Value, path)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", e.Key, err)
			}
			obj.Set(e.Key, jv)
		}
		return obj, nil

	default:
		return nil, fmt.Errorf("unsupported value kind: %s", v.Kind())
	}
}
