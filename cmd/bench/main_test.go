package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"{}", 2},
		{"abcdefgh", 2},
		{`{"a":1}`, 7},
		{"{a:1}", 5},
		{"[%x|+]", 6},
	}
	for _, tt := range tests {
		if got := estimateTokens(tt.in); got != tt.want {
			t.Errorf("estimateTokens(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMeasure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "person.json")
	if err := os.WriteFile(path, []byte(`{ "name": "Ada", "age": 36 }`), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := measure(path)
	if err != nil {
		t.Fatalf("measure failed: %v", err)
	}
	if r.Name != "person" || r.JSONBytes != 23 || r.TokenBytes != 18 || r.BytesSaved != 5 {
		t.Errorf("measure = %+v", r)
	}

	var buf bytes.Buffer
	writeCSV(&buf, []CaseResult{r})
	if !strings.Contains(buf.String(), "person,23,18,5,21.7,") {
		t.Errorf("CSV output:\n%s", buf.String())
	}

	buf.Reset()
	writeMarkdown(&buf, []CaseResult{r}, "corpus")
	if !strings.Contains(buf.String(), "| **Bytes** | 23 | 18 | 5 (21.7%) |") {
		t.Errorf("markdown output:\n%s", buf.String())
	}
}
