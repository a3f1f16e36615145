// Package cedict reads dictionary sources in the CC-CEDICT text format:
//
//	TRADITIONAL SIMPLIFIED [PIN1 YIN1] /definition 1/definition 2/
//
// one entry per line, optionally preceded by '#' comment lines.
package cedict

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/japaniel/writer/pkg/db"
)

// Causes reported inside a ParseError.
var (
	ErrTraditional     = errors.New("could not read traditional")
	ErrSimplified      = errors.New("could not read simplified")
	ErrExpectedBracket = errors.New("expected [")
	ErrPinyin          = errors.New("could not read pinyin")
)

// maxLineSize bounds a single source line.
const maxLineSize = 1 << 20

// ParseError reports the first line of a source that failed to parse.
// Line is the 0-based position in the source, counting comment lines.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("on line %d: %v", e.Line, e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// Line is a source line with its 0-based position in the source.
type Line struct {
	Index int
	Text  string
}

// ParseLine parses a single entry line.
func ParseLine(line string) (db.WordDef, error) {
	traditional, rest, ok := strings.Cut(line, " ")
	if !ok {
		return db.WordDef{}, ErrTraditional
	}
	simplified, rest, ok := strings.Cut(rest, " ")
	if !ok {
		return db.WordDef{}, ErrSimplified
	}
	rest, ok = strings.CutPrefix(rest, "[")
	if !ok {
		return db.WordDef{}, ErrExpectedBracket
	}
	pinyin, rest, ok := strings.Cut(rest, "] /")
	if !ok {
		return db.WordDef{}, ErrPinyin
	}

	var defs []string
	for _, d := range strings.Split(rest, "/") {
		if d != "" {
			defs = append(defs, d)
		}
	}

	return db.WordDef{
		Simplified:  simplified,
		Traditional: traditional,
		Pinyin:      strings.Fields(pinyin),
		Defs:        defs,
	}, nil
}

// ReadLines reads r as UTF-8 (a leading byte order mark is dropped) and
// returns its lines numbered from 0. Comment lines at the start of the
// source are skipped but still counted; a '#' line after the first entry is
// returned like any other line.
func ReadLines(r io.Reader) ([]Line, error) {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []Line
	header := true
	for i := 0; sc.Scan(); i++ {
		text := strings.TrimSuffix(sc.Text(), "\r")
		if header && strings.HasPrefix(text, "#") {
			continue
		}
		header = false
		lines = append(lines, Line{Index: i, Text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return lines, nil
}

// ParseLines parses every line. The first failure is returned as a
// *ParseError and no entries are returned with it.
func ParseLines(lines []Line) ([]db.WordDef, error) {
	out := make([]db.WordDef, 0, len(lines))
	for _, l := range lines {
		def, err := ParseLine(l.Text)
		if err != nil {
			return nil, &ParseError{Line: l.Index, Err: err}
		}
		out = append(out, def)
	}
	return out, nil
}

// Parse reads and parses a whole CC-CEDICT source.
func Parse(r io.Reader) ([]db.WordDef, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return ParseLines(lines)
}
