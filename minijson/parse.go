package minijson

import (
	"fmt"
)

// ParseOptions configures the parser behavior.
type ParseOptions struct {
	// Strict reports malformed input as a *ParseError. When false the parser
	// returns a best-effort value and never fails. Both modes produce the
	// same value for every token Stringify writes.
	Strict bool
}

// DefaultParseOptions returns the tolerant defaults.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{Strict: false}
}

// Parse decodes a MINIJSON token in tolerant mode.
func Parse(token string) (*Value, error) {
	return ParseWithOptions(token, DefaultParseOptions())
}

// ParseWithOptions decodes a MINIJSON token with options.
func ParseWithOptions(token string, opts ParseOptions) (*Value, error) {
	p := &parser{strict: opts.Strict}
	return p.parseToken(token, 0)
}

// ============================================================
// Scalar Dispatch
// ============================================================

// scalarGrammar pairs a token predicate with its decoder. The grammars are
// mutually exclusive on well-formed input; they are tried in order.
type scalarGrammar struct {
	name   string
	test   func(string) bool
	decode func(string) (*Value, error)
}

var scalarGrammars = []scalarGrammar{
	{"number", isNumberToken, func(s string) (*Value, error) {
		f, err := parseNumber(s)
		return Number(f), err
	}},
	{"boolean", isBoolToken, func(s string) (*Value, error) {
		return Bool(parseBool(s)), nil
	}},
	{"string", isStringToken, func(s string) (*Value, error) {
		return Str(unquoteString(s)), nil
	}},
}

type parser struct {
	strict bool
}

// parseToken decodes data, which starts at offset in the outermost token.
func (p *parser) parseToken(data string, offset int) (*Value, error) {
	for _, g := range scalarGrammars {
		if !g.test(data) {
			continue
		}
		v, err := g.decode(data)
		if err != nil && p.strict {
			return nil, &ParseError{Message: fmt.Sprintf("invalid %s %q: %v", g.name, data, err), Offset: offset}
		}
		return v, nil
	}
	return p.parseContainer(data, offset)
}

// ============================================================
// Stack Machine
// ============================================================

// frameState is the position of the scanner inside the innermost open
// container.
type frameState uint8

const (
	inArray             frameState = iota // next run is an element
	inObjectAwaitingKey                   // next run is a key, ended by ':'
	inObjectKeySet                        // next run is the value for key
)

type frame struct {
	container *Value
	state     frameState
	key       string
}

// parseContainer decodes nested containers in one left-to-right pass.
//
// The scanner keeps a cursor at the start of the current run. A '|' or
// closing bracket ends the run, which is decoded as a leaf and added to the
// innermost container, unless the run was already consumed by a nested
// container closing right before it (childClosed) or the container was
// just opened and is empty (justOpened). A delimiter preceded by a
// backslash is part of the run.
func (p *parser) parseContainer(data string, offset int) (*Value, error) {
	var (
		stack       []*frame
		root        *Value
		cursor      int
		justOpened  bool
		childClosed bool
	)

	fail := func(i int, format string, args ...any) (*Value, error) {
		return nil, &ParseError{Message: fmt.Sprintf(format, args...), Offset: offset + i}
	}

	// addLeaf decodes data[cursor:i] and stores it in the top container.
	addLeaf := func(i int) error {
		top := stack[len(stack)-1]
		run := data[cursor:i]
		if top.state == inObjectAwaitingKey {
			if run != "" && p.strict {
				return &ParseError{Message: fmt.Sprintf("object member %q has no key", run), Offset: offset + cursor}
			}
			return nil
		}
		v, err := p.parseToken(run, offset+cursor)
		if err != nil {
			return err
		}
		p.attach(top, v)
		return nil
	}

	for i := 0; i < len(data); i++ {
		c := data[i]
		if !isDelimiter(c) || (i > 0 && data[i-1] == escapeChar) {
			continue
		}

		switch c {
		case '{', '[':
			var child *Value
			if c == '{' {
				child = Object()
			} else {
				child = Array()
			}
			if len(stack) == 0 {
				if root != nil {
					if p.strict {
						return fail(i, "unexpected %q after end of token", c)
					}
				} else {
					if cursor != i && p.strict {
						return fail(0, "unexpected text %q before container", data[:i])
					}
					root = child
				}
			} else {
				top := stack[len(stack)-1]
				if top.state == inObjectAwaitingKey && p.strict {
					return fail(i, "container in object has no key")
				}
				if cursor != i && p.strict {
					return fail(cursor, "unexpected text %q before container", data[cursor:i])
				}
				p.attach(top, child)
			}
			state := inArray
			if c == '{' {
				state = inObjectAwaitingKey
			}
			stack = append(stack, &frame{container: child, state: state})
			cursor = i + 1
			justOpened = true
			childClosed = false

		case ':':
			if len(stack) == 0 || stack[len(stack)-1].state != inObjectAwaitingKey {
				if p.strict {
					return fail(i, "unexpected ':'")
				}
				continue
			}
			top := stack[len(stack)-1]
			if childClosed && p.strict {
				return fail(i, "container used as object key")
			}
			top.key = unescapeText(data[cursor:i])
			top.state = inObjectKeySet
			cursor = i + 1
			justOpened = false
			childClosed = false

		case '|':
			if len(stack) == 0 {
				if p.strict {
					return fail(i, "unexpected '|' outside container")
				}
				continue
			}
			if childClosed {
				if cursor != i && p.strict {
					return fail(cursor, "unexpected text %q after container", data[cursor:i])
				}
			} else if err := addLeaf(i); err != nil {
				return nil, err
			}
			cursor = i + 1
			justOpened = false
			childClosed = false

		case ']', '}':
			if len(stack) == 0 {
				if p.strict {
					return fail(i, "unexpected %q", c)
				}
				continue
			}
			top := stack[len(stack)-1]
			if want := closerFor(top.container); c != want && p.strict {
				return fail(i, "expected %q, found %q", want, c)
			}
			switch {
			case childClosed:
				if cursor != i && p.strict {
					return fail(cursor, "unexpected text %q after container", data[cursor:i])
				}
			case justOpened && cursor == i:
				// Empty container.
			default:
				if err := addLeaf(i); err != nil {
					return nil, err
				}
			}
			stack = stack[:len(stack)-1]
			cursor = i + 1
			justOpened = false
			childClosed = true
		}
	}

	if root == nil {
		if data != "" && p.strict {
			return fail(0, "unrecognized token %q", data)
		}
		return Null(), nil
	}
	if p.strict {
		if len(stack) > 0 {
			return fail(len(data), "unterminated %s", stack[len(stack)-1].container.Kind())
		}
		if cursor != len(data) {
			return fail(cursor, "unexpected text %q after end of token", data[cursor:])
		}
	}
	return root, nil
}

// attach adds v to the container of f: appended to an array, or stored
// under the pending key of an object, which then awaits its next key.
func (p *parser) attach(f *frame, v *Value) {
	switch f.state {
	case inArray:
		f.container.Append(v)
	case inObjectKeySet:
		f.container.Set(f.key, v)
		f.key = ""
		f.state = inObjectAwaitingKey
	}
}

func closerFor(v *Value) byte {
	if v.Kind() == KindObject {
		return '}'
	}
	return ']'
}
