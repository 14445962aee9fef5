package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseError describes a line that is not a well formed condition record.
type ParseError struct {
	Line   int // 1-based; 0 when parsing a lone string
	Column int // 1-based position of the offending character, 0 if not applicable
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse error")
	if e.Line > 0 {
		fmt.Fprintf(&b, " on line %d", e.Line)
	}
	if e.Column > 0 {
		fmt.Fprintf(&b, " at column %d", e.Column)
	}
	fmt.Fprintf(&b, ": %s (%q)", e.Reason, e.Input)
	return b.String()
}

func parseCell(r rune) (Cell, bool) {
	switch r {
	case '.':
		return Operational, true
	case '#':
		return Damaged, true
	case '?':
		return Unknown, true
	}
	return 0, false
}

// Parse reads a record of the form "<pattern> <run>,<run>,...", for example
// "???.### 1,1,3".
func Parse(line string) (*ConditionRecord, error) {
	input := strings.TrimSpace(line)
	pattern, runs, ok := strings.Cut(input, " ")
	if !ok {
		return nil, &ParseError{Input: line, Reason: "missing run lengths"}
	}
	runs = strings.TrimSpace(runs)

	r := &ConditionRecord{
		Springs: make([]Cell, 0, len(pattern)),
	}
	// Columns count runes of the original line, leading blanks included.
	col := utf8.RuneCountInString(line) - utf8.RuneCountInString(strings.TrimLeftFunc(line, unicode.IsSpace))
	for _, ch := range pattern {
		col++
		c, ok := parseCell(ch)
		if !ok {
			return nil, &ParseError{
				Input:  line,
				Column: col,
				Reason: fmt.Sprintf("unexpected spring %q", ch),
			}
		}
		r.Springs = append(r.Springs, c)
	}

	if runs == "" {
		return nil, &ParseError{Input: line, Reason: "missing run lengths"}
	}
	tokens := strings.Split(runs, ",")
	r.Segments = make([]int, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil || n <= 0 {
			return nil, &ParseError{
				Input:  line,
				Reason: fmt.Sprintf("run length %q is not a positive integer", tok),
			}
		}
		r.Segments = append(r.Segments, n)
	}
	return r, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(line string) *ConditionRecord {
	r, err := Parse(line)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseLines parses every non-blank line and stops at the first malformed one.
func ParseLines(lines []string) ([]*ConditionRecord, error) {
	out := make([]*ConditionRecord, 0, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		r, err := Parse(l)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = i + 1
			}
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
