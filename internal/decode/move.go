package decode

import (
	"fmt"
	"strconv"

	"github.com/ambroisie/seer-inspect/internal/chess"
	"github.com/ambroisie/seer-inspect/internal/errors"
	"github.com/ambroisie/seer-inspect/internal/rawvalue"
)

// MoveFormat selects the wire format a move is decoded from.
type MoveFormat int

const (
	// MoveFormatAuto picks the format from the raw value's layout.
	MoveFormatAuto MoveFormat = iota
	// MoveFormatPacked is the 24-bit integer encoding wrapped in a newtype.
	MoveFormatPacked
	// MoveFormatStructured is the start/destination/promotion record.
	MoveFormatStructured
)

var moveFormatNames = map[MoveFormat]string{
	MoveFormatAuto:       "auto",
	MoveFormatPacked:     "packed",
	MoveFormatStructured: "structured",
}

func (f MoveFormat) String() string {
	if name, ok := moveFormatNames[f]; ok {
		return name
	}
	return "MoveFormat(" + strconv.Itoa(int(f)) + ")"
}

// ParseMoveFormat parses "auto", "packed" or "structured".
func ParseMoveFormat(s string) (MoveFormat, error) {
	for f, name := range moveFormatNames {
		if name == s {
			return f, nil
		}
	}
	return MoveFormatAuto, fmt.Errorf("move format %q: %w", s, errors.ErrInvalidConfig)
}

// PackedMove decodes a move stored as a newtype around the packed integer.
func PackedMove(v rawvalue.Value) (chess.PackedMove, error) {
	inner, err := v.Field(FieldNewtype)
	if err != nil {
		return chess.PackedMove{}, errors.Decoding(err, "Move", "")
	}
	u, err := inner.Uint()
	if err != nil {
		return chess.PackedMove{}, errors.Decoding(err, "Move", FieldNewtype)
	}
	m, err := chess.DecodePackedMove(u)
	if err != nil {
		return chess.PackedMove{}, errors.Decoding(err, "Move", FieldNewtype)
	}
	return m, nil
}

// Move decodes a structured move record.
func Move(v rawvalue.Value) (chess.Move, error) {
	start, err := field(v, "Move", FieldStart, Square)
	if err != nil {
		return chess.Move{}, err
	}
	dest, err := field(v, "Move", FieldDestination, Square)
	if err != nil {
		return chess.Move{}, err
	}
	promotion, err := field(v, "Move", FieldPromotion, optionalPiece)
	if err != nil {
		return chess.Move{}, err
	}
	return chess.NewMove(start, dest, promotion), nil
}

func optionalPiece(v rawvalue.Value) (chess.OptionalPiece, error) {
	p, ok, err := optional(v, Piece)
	if err != nil || !ok {
		return chess.NoPiece, err
	}
	return chess.SomePiece(p), nil
}

// DecodedMove is a move in either wire format. Packed is set only when the
// value used the packed encoding.
type DecodedMove struct {
	Move   chess.Move
	Packed *chess.PackedMove
}

// AnyMove decodes a move in the requested format. With MoveFormatAuto, a raw
// value carrying the newtype field is treated as packed and anything else as
// structured.
func AnyMove(v rawvalue.Value, format MoveFormat) (DecodedMove, error) {
	if format == MoveFormatAuto {
		format = MoveFormatStructured
		if _, err := v.Field(FieldNewtype); err == nil {
			format = MoveFormatPacked
		}
	}

	switch format {
	case MoveFormatPacked:
		pm, err := PackedMove(v)
		if err != nil {
			return DecodedMove{}, err
		}
		return DecodedMove{Move: pm.Move(), Packed: &pm}, nil
	case MoveFormatStructured:
		m, err := Move(v)
		if err != nil {
			return DecodedMove{}, err
		}
		return DecodedMove{Move: m}, nil
	}
	return DecodedMove{}, fmt.Errorf("move format %v: %w", format, errors.ErrInvalidConfig)
}
