package rawvalue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ambroisie/seer-inspect/internal/errors"
)

// Segment is one step of an expression path: a field name or an array index.
type Segment struct {
	Field string
	Index int
	IsIdx bool
}

func (s Segment) String() string {
	if s.IsIdx {
		return fmt.Sprintf("[%d]", s.Index)
	}
	return s.Field
}

// Expression is a parsed value expression: a root symbol followed by field
// accesses and array indexing, e.g. "game.history[3].mv".
type Expression struct {
	Root string
	Path []Segment
}

// String returns the canonical spelling of the expression.
func (e Expression) String() string {
	var sb strings.Builder
	sb.WriteString(e.Root)
	for _, seg := range e.Path {
		if !seg.IsIdx {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.String())
	}
	return sb.String()
}

// ParseExpression parses "name(.field|[index])*".
func ParseExpression(input string) (Expression, error) {
	s := strings.TrimSpace(input)
	root, rest := splitIdent(s)
	if root == "" {
		return Expression{}, badExpression(input, "expected a name")
	}

	expr := Expression{Root: root}
	for rest != "" {
		switch rest[0] {
		case '.':
			var name string
			name, rest = splitIdent(rest[1:])
			if name == "" {
				return Expression{}, badExpression(input, "expected a field name after '.'")
			}
			expr.Path = append(expr.Path, Segment{Field: name})
		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return Expression{}, badExpression(input, "unterminated '['")
			}
			idx, err := strconv.Atoi(strings.TrimSpace(rest[1:end]))
			if err != nil || idx < 0 {
				return Expression{}, badExpression(input, "index must be a non-negative integer")
			}
			expr.Path = append(expr.Path, Segment{Index: idx, IsIdx: true})
			rest = rest[end+1:]
		default:
			return Expression{}, badExpression(input, fmt.Sprintf("unexpected %q", rest[0]))
		}
	}
	return expr, nil
}

// splitIdent splits a leading identifier ([A-Za-z_][A-Za-z0-9_]*) from s.
func splitIdent(s string) (ident, rest string) {
	i := 0
	for i < len(s) {
		c := s[i]
		isAlpha := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		if !isAlpha && !(isDigit && i > 0) {
			break
		}
		i++
	}
	return s[:i], s[i:]
}

func badExpression(input, reason string) error {
	return fmt.Errorf("%q: %s: %w", input, reason, errors.ErrBadExpression)
}

// Walk follows a path from a starting value.
func Walk(v Value, path []Segment) (Value, error) {
	var walked string
	for _, seg := range path {
		var err error
		if seg.IsIdx {
			v, err = v.Index(seg.Index)
		} else {
			v, err = v.Field(seg.Field)
		}
		if err != nil {
			return nil, errors.Decoding(err, "", errors.JoinPath(walked, seg.String()))
		}
		walked = errors.JoinPath(walked, seg.String())
	}
	return v, nil
}

// Eval resolves an expression against the snapshot. The returned type name is
// the symbol's declared type when the expression names a root symbol, and
// empty when it reaches inside one.
func (s *Snapshot) Eval(input string) (Value, string, error) {
	expr, err := ParseExpression(input)
	if err != nil {
		return nil, "", err
	}

	sym, ok := s.Values[expr.Root]
	if !ok {
		return nil, "", fmt.Errorf("%q: %w", expr.Root, errors.ErrUnknownSymbol)
	}

	v, err := Walk(sym.Value, expr.Path)
	if err != nil {
		return nil, "", errors.Wrap(err, expr.Root)
	}

	if len(expr.Path) > 0 {
		return v, "", nil
	}
	return v, sym.Type, nil
}
