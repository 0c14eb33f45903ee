package minijson

import "testing"

func TestQuoteString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "%"},
		{"hello", "%hello"},
		{"a|b", `%a\|b`},
		{"a:b[c]d{e}", `%a\:b\[c\]d\{e\}`},
		{"100%", "%100%"},
		{"héllo 世界", "%héllo 世界"},
		{`back\slash`, `%back\slash`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := quoteString(tt.in)
			if got != tt.want {
				t.Errorf("quoteString(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if back := unquoteString(got); back != tt.in {
				t.Errorf("unquoteString(%q) = %q, want %q", got, back, tt.in)
			}
		})
	}
}

func TestUnescapeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`a\|b`, "a|b"},
		{`\{\}`, "{}"},
		{`a\b`, `a\b`},
		{`a\`, `a\`},
		{`\\|`, `\|`},
	}

	for _, tt := range tests {
		if got := unescapeText(tt.in); got != tt.want {
			t.Errorf("unescapeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBoolTokens(t *testing.T) {
	if formatBool(true) != "+" || formatBool(false) != "-" {
		t.Fatalf("formatBool = %q, %q", formatBool(true), formatBool(false))
	}
	for _, s := range []string{"+", "-"} {
		if !isBoolToken(s) {
			t.Errorf("isBoolToken(%q) = false", s)
		}
	}
	for _, s := range []string{"", "++", "x-", "-1", "true"} {
		if isBoolToken(s) {
			t.Errorf("isBoolToken(%q) = true", s)
		}
	}
	if !parseBool("+") || parseBool("-") {
		t.Error("parseBool mismatch")
	}
}
