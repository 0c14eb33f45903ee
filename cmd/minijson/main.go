// minijson - MINIJSON codec CLI tool
//
// Usage:
//
//	minijson encode [-from json|yaml] [-v] [file ...]       Encode documents as tokens
//	minijson decode [-to json|yaml] [-strict] [-pretty] [file]  Decode a token
//	minijson stats [-v] [file ...]                          Compare JSON and token sizes
//	minijson version                                        Print version info
//
// If no file is given, reads from stdin.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Neumenon/minijson/minijson"
)

const libVersion = "0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fatal("%v", err)
	}
}

// run executes one subcommand. It is main without the process exit.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stderr)
		return errors.New("missing command")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "encode":
		return cmdEncode(rest, stdin, stdout, stderr)
	case "decode":
		return cmdDecode(rest, stdin, stdout, stderr)
	case "stats":
		return cmdStats(rest, stdin, stdout, stderr)
	case "version", "--version":
		fmt.Fprintf(stdout, "minijson %s\n", libVersion)
		return nil
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func printUsage(w io.Writer) {
	io.WriteString(w, `minijson - MINIJSON codec CLI tool

Usage:
  minijson encode [options] [file ...]   Encode JSON (or YAML) documents, one token per line
  minijson decode [options] [file]       Decode a token to JSON (or YAML)
  minijson stats [file ...]              Compare minified JSON size with token size
  minijson version                       Print version info

Run 'minijson <command> -h' for command options.
If no file is given, reads from stdin.

Examples:
  echo '{"b":[1,true,null],"a":"x"}' | minijson encode
  # Output: {b:[1|+|]|a:%x}

  echo '{b:[1|+|]|a:%x}' | minijson decode -pretty
`)
}

// ============================================================
// encode
// ============================================================

func cmdEncode(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	from := fs.String("from", "json", "input format: json or yaml")
	verbose := fs.Bool("v", false, "log per-file details to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var read func([]byte) (*minijson.Value, error)
	switch *from {
	case "json":
		read = minijson.FromJSON
	case "yaml":
		read = minijson.FromYAML
	default:
		return fmt.Errorf("encode: unknown input format %q", *from)
	}

	logger := newLogger(stderr, *verbose)
	tokens, err := forEachInput(fs.Args(), stdin, func(name string, data []byte) (_ string, err error) {
		defer wrap(&err, "encode %s", name)

		v, err := read(data)
		if err != nil {
			return "", err
		}
		tok, err := minijson.Stringify(v)
		if err != nil {
			return "", err
		}
		logger.Debug("encoded", "input", name, "bytes", len(data), "token_bytes", len(tok))
		return tok, nil
	})
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		fmt.Fprintln(stdout, tok)
	}
	return nil
}

// ============================================================
// decode
// ============================================================

func cmdDecode(args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	defer wrap(&err, "decode")

	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	to := fs.String("to", "json", "output format: json or yaml")
	strict := fs.Bool("strict", false, "reject malformed tokens")
	pretty := fs.Bool("pretty", false, "indent JSON output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return errors.New("at most one file")
	}

	data, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		return err
	}
	// A token may end in significant spaces; only the line ending is dropped.
	token := strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r")

	v, err := minijson.ParseWithOptions(token, minijson.ParseOptions{Strict: *strict})
	if err != nil {
		return err
	}

	switch *to {
	case "json":
		out, err := minijson.ToJSON(v)
		if err != nil {
			return err
		}
		if *pretty {
			var buf bytes.Buffer
			if err := json.Indent(&buf, out, "", "  "); err != nil {
				return err
			}
			out = buf.Bytes()
		}
		fmt.Fprintln(stdout, string(out))
	case "yaml":
		out, err := minijson.ToYAML(v)
		if err != nil {
			return err
		}
		stdout.Write(out)
	default:
		return fmt.Errorf("unknown output format %q", *to)
	}
	return nil
}

// ============================================================
// stats
// ============================================================

func cmdStats(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "log per-file details to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := newLogger(stderr, *verbose)
	rows, err := forEachInput(fs.Args(), stdin, func(name string, data []byte) (_ string, err error) {
		defer wrap(&err, "stats %s", name)

		v, err := minijson.FromJSON(data)
		if err != nil {
			return "", err
		}
		jsonMin, err := minijson.ToJSON(v)
		if err != nil {
			return "", err
		}
		tok, err := minijson.Stringify(v)
		if err != nil {
			return "", err
		}
		logger.Debug("measured", "input", name, "json_bytes", len(jsonMin), "token_bytes", len(tok))
		return fmt.Sprintf("%s\t%d\t%d\t%.1f%%", name, len(jsonMin), len(tok), savedPct(len(jsonMin), len(tok))), nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "input\tjson_bytes\ttoken_bytes\tsaved")
	for _, row := range rows {
		fmt.Fprintln(stdout, row)
	}
	return nil
}

func savedPct(jsonBytes, tokenBytes int) float64 {
	if jsonBytes == 0 {
		return 0
	}
	return float64(jsonBytes-tokenBytes) / float64(jsonBytes) * 100
}

// ============================================================
// Helpers
// ============================================================

// forEachInput applies fn to every named file concurrently and returns the
// results in argument order. No names, or "-", means stdin.
func forEachInput(names []string, stdin io.Reader, fn func(name string, data []byte) (string, error)) ([]string, error) {
	if len(names) == 0 {
		names = []string{"-"}
	}

	results := make([]string, len(names))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		i, name := i, name // per-iteration copies (go directive < 1.22)
		if name == "-" {
			// stdin is read once, up front, outside the group.
			data, err := readInput(name, stdin)
			if err != nil {
				return nil, err
			}
			if results[i], err = fn("<stdin>", data); err != nil {
				return nil, err
			}
			continue
		}
		g.Go(func() error {
			data, err := readInput(name, stdin)
			if err != nil {
				return err
			}
			results[i], err = fn(name, data)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return data, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// wrap adds context to a non-nil *errp, keeping it unwrappable.
//
//	defer wrap(&err, "encode %s", name)
func wrap(errp *error, format string, args ...any) {
	if *errp != nil {
		*errp = fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), *errp)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "minijson: "+format+"\n", args...)
	os.Exit(1)
}
