// Package decode reconstructs chess domain values from raw introspection
// values. Every failure is a *errors.DecodeError naming the decoded type and
// the field path inside the raw value.
package decode

import (
	"strconv"

	"github.com/ambroisie/seer-inspect/internal/chess"
	"github.com/ambroisie/seer-inspect/internal/errors"
	"github.com/ambroisie/seer-inspect/internal/rawvalue"
)

// Raw field names of the inspected program's memory layout.
const (
	FieldNewtype        = "__0"
	FieldPieceOccupancy = "piece_occupancy"
	FieldColorOccupancy = "color_occupancy"
	FieldCastleRights   = "castle_rights"
	FieldHalfMoveClock  = "half_move_clock"
	FieldTotalPlies     = "total_plies"
	FieldSide           = "side"
	FieldEnPassant      = "en_passant"
	FieldStart          = "start"
	FieldDestination    = "destination"
	FieldPromotion      = "promotion"
)

// ordinal reads an enum-like value. Plain integers are accepted, as are
// single-field newtype wrappers.
func ordinal(v rawvalue.Value) (uint64, error) {
	u, err := v.Uint()
	if err == nil {
		return u, nil
	}
	inner, ferr := v.Field(FieldNewtype)
	if ferr != nil {
		return 0, err
	}
	return inner.Uint()
}

func enum[T any](v rawvalue.Value, typeName string, from func(uint64) (T, error)) (T, error) {
	var zero T
	n, err := ordinal(v)
	if err != nil {
		return zero, errors.Decoding(err, typeName, "")
	}
	t, err := from(n)
	if err != nil {
		return zero, errors.Decoding(err, typeName, "")
	}
	return t, nil
}

// Square decodes a square index.
func Square(v rawvalue.Value) (chess.Square, error) {
	return enum(v, "Square", chess.SquareFromIndex)
}

// Color decodes a colour ordinal.
func Color(v rawvalue.Value) (chess.Color, error) {
	return enum(v, "Color", chess.ColorFromOrdinal)
}

// Piece decodes a piece ordinal.
func Piece(v rawvalue.Value) (chess.Piece, error) {
	return enum(v, "Piece", chess.PieceFromOrdinal)
}

// File decodes a file ordinal.
func File(v rawvalue.Value) (chess.File, error) {
	return enum(v, "File", chess.FileFromOrdinal)
}

// Rank decodes a rank ordinal.
func Rank(v rawvalue.Value) (chess.Rank, error) {
	return enum(v, "Rank", chess.RankFromOrdinal)
}

// CastleRights decodes a castling rights ordinal.
func CastleRights(v rawvalue.Value) (chess.CastleRights, error) {
	return enum(v, "CastleRights", chess.CastleRightsFromOrdinal)
}

// Bitboard decodes a bitboard, stored as a newtype around a 64-bit integer.
func Bitboard(v rawvalue.Value) (chess.Bitboard, error) {
	inner, err := v.Field(FieldNewtype)
	if err != nil {
		return 0, errors.Decoding(err, "Bitboard", "")
	}
	u, err := inner.Uint()
	if err != nil {
		return 0, errors.Decoding(err, "Bitboard", FieldNewtype)
	}
	return chess.Bitboard(u), nil
}

// field decodes a named field with dec, prefixing failures with the field name.
func field[T any](v rawvalue.Value, typeName, name string, dec func(rawvalue.Value) (T, error)) (T, error) {
	var zero T
	child, err := v.Field(name)
	if err != nil {
		return zero, errors.Decoding(err, typeName, "")
	}
	t, err := dec(child)
	if err != nil {
		return zero, errors.Decoding(err, typeName, name)
	}
	return t, nil
}

// element decodes the i-th element of a named array field.
func element[T any](v rawvalue.Value, typeName, name string, i int, dec func(rawvalue.Value) (T, error)) (T, error) {
	var zero T
	arr, err := v.Field(name)
	if err != nil {
		return zero, errors.Decoding(err, typeName, "")
	}
	path := errors.JoinPath(name, indexSegment(i))
	child, err := arr.Index(i)
	if err != nil {
		return zero, errors.Decoding(err, typeName, path)
	}
	t, err := dec(child)
	if err != nil {
		return zero, errors.Decoding(err, typeName, path)
	}
	return t, nil
}

func indexSegment(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// optional decodes a present/absent tagged value.
func optional[T any](v rawvalue.Value, dec func(rawvalue.Value) (T, error)) (T, bool, error) {
	var zero T
	payload, ok, err := v.Optional()
	if err != nil || !ok {
		return zero, false, err
	}
	t, err := dec(payload)
	if err != nil {
		return zero, false, errors.Decoding(err, "", rawvalue.SomeTag)
	}
	return t, true, nil
}

func uint32Value(v rawvalue.Value) (uint32, error) {
	u, err := v.Uint()
	if err != nil {
		return 0, err
	}
	if u > 1<<32-1 {
		return 0, errors.Wrapf(errors.ErrNotInteger, "%d overflows uint32", u)
	}
	return uint32(u), nil
}
