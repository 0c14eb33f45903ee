package minijson

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ============================================================
// Scalar Dispatch
// ============================================================

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"", KindNull},
		{"0", KindNumber},
		{"-3f.co", KindNumber},
		{"NaN", KindNumber},
		{"+", KindBool},
		{"-", KindBool},
		{"%", KindString},
		{"%hello", KindString},
		{"[]", KindArray},
		{"{}", KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if v.Kind() != tt.want {
				t.Errorf("Parse(%q).Kind() = %s, want %s", tt.input, v.Kind(), tt.want)
			}
		})
	}
}

func TestParse_NegativeNumberIsNotBool(t *testing.T) {
	v, err := Parse("[-|-1|-z]")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []any{false, -1.0, -35.0}
	if diff := cmp.Diff(want, v.Interface()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// ============================================================
// Stack Machine
// ============================================================

func TestParse_Containers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"empty array", "[]", []any{}},
		{"two gaps", "[|]", []any{nil, nil}},
		{"positions", "[|1||2]", []any{nil, 1.0, nil, 2.0}},
		{"trailing gap", "[1|]", []any{1.0, nil}},
		{"empty object", "{}", map[string]any{}},
		{"null member", "{a:}", map[string]any{"a": nil}},
		{"empty key", "{:1}", map[string]any{"": 1.0}},
		{"nested empties", "[[]|{}|[]]", []any{[]any{}, map[string]any{}, []any{}}},
		{"container then gap", "[[]|]", []any{[]any{}, nil}},
		{"gap then container", "[|[]]", []any{nil, []any{}}},
		{
			"three levels",
			"{outer:[{inner:%deep}|1]}",
			map[string]any{"outer": []any{map[string]any{"inner": "deep"}, 1.0}},
		},
		{
			"object values",
			"{a:{b:{c:[1|{d:}]}}|e:-}",
			map[string]any{"a": map[string]any{"b": map[string]any{"c": []any{1.0, map[string]any{"d": nil}}}}, "e": false},
		},
		{"escaped members", `[%a\|b|%c\]]`, []any{"a|b", "c]"}},
		{"escaped key", `{k\:\{\}:%v\[\]}`, map[string]any{"k:{}": "v[]"}},
		{"escaped bracket last", `{a:%x\}}`, map[string]any{"a": "x}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, strict := range []bool{false, true} {
				v, err := ParseWithOptions(tt.input, ParseOptions{Strict: strict})
				if err != nil {
					t.Fatalf("ParseWithOptions(strict=%v) failed: %v", strict, err)
				}
				if diff := cmp.Diff(tt.want, v.Interface()); diff != "" {
					t.Errorf("strict=%v mismatch (-want +got):\n%s", strict, diff)
				}
			}
		})
	}
}

func TestParse_DuplicateKeys(t *testing.T) {
	v, err := Parse("{a:1|b:2|a:3}")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, v.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if n, _ := v.Get("a").AsNumber(); n != 3 {
		t.Errorf("a = %v, want 3", n)
	}
}

func TestParse_KeyOrder(t *testing.T) {
	v, err := Parse("{z:1|a:2|m:3|b:4|y:5|c:6|x:7|d:8|w:9}")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []string{"z", "a", "m", "b", "y", "c", "x", "d", "w"}
	if diff := cmp.Diff(want, v.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if n, _ := v.Get("w").AsNumber(); n != 9 {
		t.Errorf("w = %v, want 9", n)
	}
}

// ============================================================
// Malformed Input
// ============================================================

func TestParse_StrictErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
	}{
		{"unterminated", "[1|2", 4},
		{"extra close", "[1]]", 3},
		{"mismatched", "[1}", 2},
		{"text before", "x[1]", 0},
		{"text after", "[1]x", 3},
		{"second root", "[1][2]", 3},
		{"member without key", "{1}", 1},
		{"colon in array", "[a:1]", 2},
		{"unknown leaf", "[@]", 1},
		{"unknown token", "@", 0},
		{"number out of range", "[1^zzzz]", 1},
		{"bar outside", "1|2", 1},
		{"text after child", "[[1]x]", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWithOptions(tt.input, ParseOptions{Strict: true})
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("ParseWithOptions(%q) error = %v, want *ParseError", tt.input, err)
			}
			if perr.Offset != tt.offset {
				t.Errorf("offset = %d, want %d (%v)", perr.Offset, tt.offset, perr)
			}

			// Tolerant mode never fails.
			if _, err := Parse(tt.input); err != nil {
				t.Errorf("Parse(%q) failed: %v", tt.input, err)
			}
		})
	}
}

func TestParse_TolerantBestEffort(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"[1|2", []any{1.0}},
		{"[1]]", []any{1.0}},
		{"@", nil},
		{"]", nil},
		{"{1|a:2}", map[string]any{"a": 2.0}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, v.Interface()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ============================================================
// Round Trip
// ============================================================

func roundTripValues() map[string]*Value {
	return map[string]*Value{
		"null":    Null(),
		"number":  Number(-123.456),
		"nan":     Number(math.NaN()),
		"neg0":    Number(math.Copysign(0, -1)),
		"bool":    Bool(false),
		"string":  Str("plain"),
		"empty":   Str(""),
		"escapes": Str("| : [ ] { } |:[]{}"),
		"unicode": Str("héllo 世界 🎉"),
		"percent": Str("%%"),
		"array":   Array(Number(1), Str("two"), Bool(true), Null(), Array(), Object()),
		"gaps":    Array(Null(), Number(1), Null(), Number(2)),
		"object": Object(
			Field("name", Str("Ada")),
			Field("age", Number(36)),
			Field("tags", Array(Str("a"), Str("b"))),
		),
		"nesting": Object(Field("l1", Array(Object(Field("l3", Array(Number(1), Object(Field("deep", Str("]}")))))), Number(2)))),
		"keys": Object(
			Field("|", Number(1)),
			Field(":", Number(2)),
			Field("[]{}", Number(3)),
			Field("", Number(4)),
		),
		"numbers": Array(Number(0), Number(1), Number(-1), Number(0.5), Number(1e21), Number(-1e-7), Number(math.MaxFloat64)),
	}
}

func TestRoundTrip(t *testing.T) {
	for name, v := range roundTripValues() {
		t.Run(name, func(t *testing.T) {
			tok, err := Stringify(v)
			if err != nil {
				t.Fatalf("Stringify failed: %v", err)
			}
			for _, strict := range []bool{false, true} {
				got, err := ParseWithOptions(tok, ParseOptions{Strict: strict})
				if err != nil {
					t.Fatalf("ParseWithOptions(%q, strict=%v) failed: %v", tok, strict, err)
				}
				if !got.Equal(v) {
					t.Errorf("round trip of %q (strict=%v):\n  got:  %v\n  want: %v", tok, strict, got, v)
				}
			}
		})
	}
}

func TestRoundTrip_GoValues(t *testing.T) {
	in := map[string]any{
		"list":  []any{1.0, "x", true, nil, map[string]any{"k": []any{}}},
		"float": -0.001,
		"text":  "a|b:c",
	}
	tok, err := Stringify(in)
	if err != nil {
		t.Fatalf("Stringify failed: %v", err)
	}
	v, err := Parse(tok)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if diff := cmp.Diff(in, v.Interface(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_FreshStorage(t *testing.T) {
	tok := "{key:%value|list:[%a]}"
	v1, _ := Parse(tok)
	v2, _ := Parse(tok)
	if v1 == v2 || v1.Get("list") == v2.Get("list") {
		t.Fatal("Parse returned shared containers")
	}
	v1.Get("list").Append(Str("b"))
	if v2.Get("list").Len() != 1 {
		t.Error("mutating one result changed another")
	}
}
