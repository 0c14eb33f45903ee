// bench - MINIJSON size benchmark runner
//
// Compares MINIJSON tokens vs minified JSON over every *.json file in a
// corpus directory:
//   - Bytes on wire
//   - Approximate token counts (using byte-based heuristics)
//
// Output: markdown summary, or CSV with -csv
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Neumenon/minijson/minijson"
)

type CaseResult struct {
	Name        string
	JSONBytes   int
	TokenBytes  int
	BytesSaved  int
	BytesPct    float64
	JSONTokens  int
	TokenTokens int
	TokensSaved int
	TokensPct   float64
}

func main() {
	dir := flag.String("dir", filepath.Join("minijson", "testdata", "cases"), "corpus directory of *.json files")
	csv := flag.Bool("csv", false, "write CSV instead of markdown")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	paths, err := filepath.Glob(filepath.Join(*dir, "*.json"))
	if err != nil || len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "bench: no *.json cases in %s\n", *dir)
		os.Exit(1)
	}
	sort.Strings(paths)

	results := make([]CaseResult, 0, len(paths))
	for _, p := range paths {
		r, err := measure(p)
		if err != nil {
			logger.Warn("skip case", "file", p, "error", err)
			continue
		}
		results = append(results, r)
	}

	if *csv {
		writeCSV(os.Stdout, results)
	} else {
		writeMarkdown(os.Stdout, results, *dir)
	}
}

// measure encodes one JSON case both ways.
func measure(path string) (CaseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CaseResult{}, err
	}
	v, err := minijson.FromJSON(data)
	if err != nil {
		return CaseResult{}, err
	}
	jsonMin, err := minijson.ToJSON(v)
	if err != nil {
		return CaseResult{}, err
	}
	tok, err := minijson.Stringify(v)
	if err != nil {
		return CaseResult{}, err
	}

	r := CaseResult{
		Name:        strings.TrimSuffix(filepath.Base(path), ".json"),
		JSONBytes:   len(jsonMin),
		TokenBytes:  len(tok),
		JSONTokens:  estimateTokens(string(jsonMin)),
		TokenTokens: estimateTokens(tok),
	}
	r.BytesSaved = r.JSONBytes - r.TokenBytes
	r.BytesPct = pct(r.BytesSaved, r.JSONBytes)
	r.TokensSaved = r.JSONTokens - r.TokenTokens
	r.TokensPct = pct(r.TokensSaved, r.JSONTokens)
	return r, nil
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100.0
}

// estimateTokens provides a rough token count approximation
// Based on cl100k_base behavior: ~4 chars per token for ASCII,
// punctuation and special chars often get their own tokens
func estimateTokens(s string) int {
	if len(s) == 0 {
		return 0
	}

	tokens := 0
	i := 0
	for i < len(s) {
		c := s[i]

		if isPunctuation(c) {
			tokens++
			i++
			continue
		}

		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i++
			continue
		}

		// Runs of digits and lowercase letters cover base-36 numbers too.
		if isAlphaNum(c) || c == '_' {
			wordLen := 0
			for i < len(s) && (isAlphaNum(s[i]) || s[i] == '_') {
				wordLen++
				i++
			}
			tokens += (wordLen + 3) / 4
			continue
		}

		tokens++
		i++
	}

	return max(1, tokens)
}

func isPunctuation(c byte) bool {
	return strings.IndexByte("{}[]():,\"'=@.;!?|%^+-\\", c) >= 0
}

func isAlphaNum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func writeCSV(w io.Writer, results []CaseResult) {
	fmt.Fprintln(w, "name,json_bytes,token_bytes,bytes_saved,bytes_pct,json_tokens,token_tokens,tokens_saved,tokens_pct")
	for _, r := range results {
		fmt.Fprintf(w, "%s,%d,%d,%d,%.1f,%d,%d,%d,%.1f\n",
			r.Name, r.JSONBytes, r.TokenBytes, r.BytesSaved, r.BytesPct,
			r.JSONTokens, r.TokenTokens, r.TokensSaved, r.TokensPct)
	}
}

func writeMarkdown(w io.Writer, results []CaseResult, corpus string) {
	var totalJSON, totalToken, totalJSONTok, totalTokenTok int
	for _, r := range results {
		totalJSON += r.JSONBytes
		totalToken += r.TokenBytes
		totalJSONTok += r.JSONTokens
		totalTokenTok += r.TokenTokens
	}

	fmt.Fprintf(w, "# MINIJSON Size Results\n\n")
	fmt.Fprintf(w, "**Corpus:** %s (%d cases)  \n\n", corpus, len(results))

	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "| Metric | JSON (minified) | MINIJSON | Savings |\n")
	fmt.Fprintf(w, "|--------|-----------------|----------|---------|\n")
	bytesSaved := totalJSON - totalToken
	tokensSaved := totalJSONTok - totalTokenTok
	fmt.Fprintf(w, "| **Bytes** | %d | %d | %d (%.1f%%) |\n", totalJSON, totalToken, bytesSaved, pct(bytesSaved, totalJSON))
	fmt.Fprintf(w, "| **Tokens** (est.) | ~%d | ~%d | ~%d (%.1f%%) |\n\n", totalJSONTok, totalTokenTok, tokensSaved, pct(tokensSaved, totalJSONTok))

	sorted := make([]CaseResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].BytesPct > sorted[j].BytesPct
	})

	fmt.Fprintf(w, "## Top 5 Space Savings (by bytes)\n\n")
	fmt.Fprintf(w, "| Case | JSON | MINIJSON | Saved |\n")
	fmt.Fprintf(w, "|------|------|----------|-------|\n")
	for i := 0; i < min(5, len(sorted)); i++ {
		r := sorted[i]
		fmt.Fprintf(w, "| %s | %d | %d | %.1f%% |\n", r.Name, r.JSONBytes, r.TokenBytes, r.BytesPct)
	}

	fmt.Fprintf(w, "\n## Cases Where JSON is Smaller\n\n")
	var worse []CaseResult
	for _, r := range results {
		if r.BytesSaved < 0 {
			worse = append(worse, r)
		}
	}
	if len(worse) == 0 {
		fmt.Fprintf(w, "_None - MINIJSON is smaller or equal in all cases._\n\n")
	} else {
		fmt.Fprintf(w, "| Case | JSON | MINIJSON | Overhead |\n")
		fmt.Fprintf(w, "|------|------|----------|----------|\n")
		for _, r := range worse {
			fmt.Fprintf(w, "| %s | %d | %d | +%d bytes |\n", r.Name, r.JSONBytes, r.TokenBytes, -r.BytesSaved)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "## Detailed Results\n\n")
	fmt.Fprintf(w, "| Case | JSON Bytes | MINIJSON Bytes | Bytes %% | JSON Tok | MINIJSON Tok | Tok %% |\n")
	fmt.Fprintf(w, "|------|------------|----------------|---------|----------|--------------|-------|\n")
	for _, r := range results {
		fmt.Fprintf(w, "| %s | %d | %d | %+.1f%% | %d | %d | %+.1f%% |\n",
			truncateName(r.Name, 25), r.JSONBytes, r.TokenBytes, r.BytesPct,
			r.JSONTokens, r.TokenTokens, r.TokensPct)
	}
}

func truncateName(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
