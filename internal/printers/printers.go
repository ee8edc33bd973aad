// Package printers maps host type names to decode-and-render functions, the
// way a debugger pretty-printer collection does.
package printers

import (
	"fmt"
	"regexp"

	"github.com/ambroisie/seer-inspect/internal/decode"
	"github.com/ambroisie/seer-inspect/internal/errors"
	"github.com/ambroisie/seer-inspect/internal/output"
	"github.com/ambroisie/seer-inspect/internal/rawvalue"
)

// PrintFunc decodes a raw value and renders it as text.
type PrintFunc func(v rawvalue.Value) (string, error)

// Printer is a named printer matching type names by regular expression.
type Printer struct {
	Name    string
	Pattern *regexp.Regexp
	Print   PrintFunc
}

// Collection is an ordered set of printers; the first match wins.
type Collection struct {
	Name     string
	printers []Printer
}

// NewCollection creates an empty collection.
func NewCollection(name string) *Collection {
	return &Collection{Name: name}
}

// Add registers a printer. The pattern must compile.
func (c *Collection) Add(name, pattern string, fn PrintFunc) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return errors.Wrapf(err, "printer %s", name)
	}
	c.printers = append(c.printers, Printer{Name: name, Pattern: re, Print: fn})
	return nil
}

// MustAdd is Add for patterns known to compile.
func (c *Collection) MustAdd(name, pattern string, fn PrintFunc) {
	if err := c.Add(name, pattern, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the first printer whose pattern matches typeName.
func (c *Collection) Lookup(typeName string) (Printer, bool) {
	for _, p := range c.printers {
		if p.Pattern.MatchString(typeName) {
			return p, true
		}
	}
	return Printer{}, false
}

// ByName returns the printer registered under name.
func (c *Collection) ByName(name string) (Printer, bool) {
	for _, p := range c.printers {
		if p.Name == name {
			return p, true
		}
	}
	return Printer{}, false
}

// Names returns the registered printer names in registration order.
func (c *Collection) Names() []string {
	names := make([]string, len(c.printers))
	for i, p := range c.printers {
		names[i] = p.Name
	}
	return names
}

// Print renders a raw value with the printer registered for its type.
func (c *Collection) Print(typeName string, v rawvalue.Value) (string, error) {
	p, ok := c.Lookup(typeName)
	if !ok {
		return "", fmt.Errorf("%q: %w", typeName, errors.ErrNoPrinter)
	}
	return p.Print(v)
}

// Host type names of the inspected program.
const (
	SquareType       = "seer::board::square::Square"
	BitboardType     = "seer::board::bitboard::Bitboard"
	CastleRightsType = "seer::board::castle_rights::CastleRights"
	ColorType        = "seer::board::color::Color"
	FileType         = "seer::board::file::File"
	RankType         = "seer::board::rank::Rank"
	PieceType        = "seer::board::piece::Piece"
	MoveType         = "seer::board::move::Move"
	ChessBoardType   = "seer::board::chess_board::ChessBoard"
)

func exact(typeName string) string {
	return "^" + regexp.QuoteMeta(typeName) + "$"
}

func stringer[T fmt.Stringer](dec func(rawvalue.Value) (T, error)) PrintFunc {
	return func(v rawvalue.Value) (string, error) {
		t, err := dec(v)
		if err != nil {
			return "", err
		}
		return t.String(), nil
	}
}

// Options configure the default collection.
type Options struct {
	MoveFormat decode.MoveFormat
	Board      decode.BoardOptions
}

// Default builds the collection for every type of the inspected program.
func Default(opts Options) *Collection {
	c := NewCollection("seer")

	c.MustAdd("Square", exact(SquareType), stringer(decode.Square))
	c.MustAdd("Bitboard", exact(BitboardType), func(v rawvalue.Value) (string, error) {
		b, err := decode.Bitboard(v)
		if err != nil {
			return "", err
		}
		return output.RenderBitboard(b), nil
	})
	c.MustAdd("CastleRights", exact(CastleRightsType), stringer(decode.CastleRights))
	c.MustAdd("Color", exact(ColorType), stringer(decode.Color))
	c.MustAdd("File", exact(FileType), stringer(decode.File))
	c.MustAdd("Rank", exact(RankType), stringer(decode.Rank))
	c.MustAdd("Piece", exact(PieceType), stringer(decode.Piece))
	c.MustAdd("Move", exact(MoveType), func(v rawvalue.Value) (string, error) {
		return PrintMove(v, opts.MoveFormat)
	})
	c.MustAdd("ChessBoard", exact(ChessBoardType), func(v rawvalue.Value) (string, error) {
		b, err := decode.ChessBoardWith(v, opts.Board)
		if err != nil {
			return "", err
		}
		return output.RenderBoard(b), nil
	})
	return c
}

// PrintMove decodes a move in the given format and renders every field the
// format carries.
func PrintMove(v rawvalue.Value, format decode.MoveFormat) (string, error) {
	m, err := decode.AnyMove(v, format)
	if err != nil {
		return "", err
	}
	if m.Packed != nil {
		return output.RenderPackedMove(*m.Packed), nil
	}
	return output.RenderMove(m.Move), nil
}
