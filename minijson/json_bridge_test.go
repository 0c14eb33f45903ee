package minijson

import (
	"errors"
	"math"
	"testing"

	"github.com/maxatome/go-testdeep/td"
)

func TestFromJSON(t *testing.T) {
	v, err := FromJSON([]byte(`{"z":1,"a":[true,null,"x"],"m":{"k":-0.5},"a2":false}`))
	td.Require(t).CmpNoError(err)

	td.Cmp(t, v.Keys(), []string{"z", "a", "m", "a2"}, "keys keep document order")
	td.Cmp(t, v.Interface(), map[string]any{
		"z":  1.0,
		"a":  []any{true, nil, "x"},
		"m":  map[string]any{"k": -0.5},
		"a2": false,
	})
}

func TestFromJSON_DuplicateKeys(t *testing.T) {
	v, err := FromJSON([]byte(`{"a":1,"b":2,"a":3}`))
	td.Require(t).CmpNoError(err)

	td.Cmp(t, v.Keys(), []string{"a", "b"})
	td.Cmp(t, v.Get("a").Interface(), 3.0)
}

func TestFromJSON_Invalid(t *testing.T) {
	for _, in := range []string{``, `{`, `[1,]`, `{"a":}`, `nul`} {
		_, err := FromJSON([]byte(in))
		td.Cmp(t, err, td.HasPrefix("JSON parse error: "), "input %q", in)
	}
}

func TestToJSON(t *testing.T) {
	v := Object(
		Field("b", Number(1)),
		Field("a", Array(Str("x|y"), Null(), Undefined(), Bool(false))),
		Field("gone", Undefined()),
		Field("e", Object()),
	)
	out, err := ToJSON(v)
	td.Require(t).CmpNoError(err)
	td.Cmp(t, string(out), `{"b":1,"a":["x|y",null,null,false],"e":{}}`)
}

func TestToJSON_Errors(t *testing.T) {
	_, err := ToJSON(Undefined())
	td.CmpTrue(t, errors.Is(err, ErrNoOutput))

	_, err = ToJSON(Array(Number(math.NaN())))
	td.Cmp(t, err, td.Contains("NaN/Infinity"))

	_, err = ToJSON(Object(Field("n", Number(math.Inf(-1)))))
	td.CmpString(t, err, `object["n"]: NaN/Infinity not allowed in JSON`)

	loop := Array()
	loop.Append(loop)
	_, err = ToJSON(loop)
	td.CmpTrue(t, errors.Is(err, ErrCircular))
}

func TestJSONRoundTrip(t *testing.T) {
	in := `{"name":"Ada","tags":["a:b","[c]"],"n":[0,-1,1e+21,0.25],"ok":true,"nil":null}`

	v, err := FromJSON([]byte(in))
	td.Require(t).CmpNoError(err)

	tok, err := Stringify(v)
	td.Require(t).CmpNoError(err)

	back, err := Parse(tok)
	td.Require(t).CmpNoError(err)
	td.CmpTrue(t, back.Equal(v), "token %q", tok)

	out, err := ToJSON(back)
	td.Require(t).CmpNoError(err)
	td.Cmp(t, string(out), in)
}
