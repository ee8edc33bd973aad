package chess

// OptionalPiece is a piece that may be absent, such as a promotion or capture.
type OptionalPiece struct {
	Piece Piece
	Valid bool
}

// SomePiece returns a present OptionalPiece.
func SomePiece(p Piece) OptionalPiece {
	return OptionalPiece{Piece: p, Valid: true}
}

// NoPiece is the absent OptionalPiece.
var NoPiece = OptionalPiece{}

// Get returns the piece and whether it is present.
func (o OptionalPiece) Get() (Piece, bool) {
	return o.Piece, o.Valid
}

// String returns the piece name, or "(None)" when absent.
func (o OptionalPiece) String() string {
	if !o.Valid {
		return NoneMarker
	}
	return o.Piece.String()
}

// Move is the structured move record: start and destination squares and an
// optional promotion.
type Move struct {
	Start       Square
	Destination Square
	Promotion   OptionalPiece
}

// NewMove creates a structured move.
func NewMove(start, destination Square, promotion OptionalPiece) Move {
	return Move{Start: start, Destination: destination, Promotion: promotion}
}

// Packed move layout, low bits first:
// bits 0-2:   moving piece
// bits 3-8:   start square
// bits 9-14:  destination square
// bits 15-17: captured piece (7 = none)
// bits 18-20: promotion piece (7 = none)
// bit 21:     en passant
// bit 22:     double step
// bit 23:     castling
const (
	PieceShift       = 0
	PieceMask        = 0b111
	StartShift       = 3
	StartMask        = 0b11_1111
	DestinationShift = 9
	DestinationMask  = 0b11_1111
	CaptureShift     = 15
	CaptureMask      = 0b111
	PromotionShift   = 18
	PromotionMask    = 0b111
	EnPassantShift   = 21
	EnPassantMask    = 0b1
	DoubleStepShift  = 22
	DoubleStepMask   = 0b1
	CastlingShift    = 23
	CastlingMask     = 0b1

	// NoPieceOrdinal is the sentinel for an absent capture or promotion.
	NoPieceOrdinal = 7
)

// PackedMove is a move decoded from the 24-bit packed wire format.
type PackedMove struct {
	Piece       Piece
	Start       Square
	Destination Square
	Capture     OptionalPiece
	Promotion   OptionalPiece
	EnPassant   bool
	DoubleStep  bool
	Castling    bool
}

func field(value uint64, shift, mask uint) uint64 {
	return (value >> shift) & uint64(mask)
}

// optionalPieceOrdinal maps an ordinal in a sentinel slot to an OptionalPiece.
// Only 0-5 name a piece; every other ordinal means none.
func optionalPieceOrdinal(ordinal uint64) OptionalPiece {
	if ordinal < NumPieces {
		return SomePiece(Piece(ordinal))
	}
	return NoPiece
}

// DecodePackedMove unpacks the 24-bit move encoding. The moving piece must be a
// defined Piece ordinal; capture and promotion treat out-of-range ordinals
// (the reserved sentinel 7 among them) as none.
func DecodePackedMove(value uint64) (PackedMove, error) {
	piece, err := PieceFromOrdinal(field(value, PieceShift, PieceMask))
	if err != nil {
		return PackedMove{}, err
	}

	return PackedMove{
		Piece:       piece,
		Start:       Square(field(value, StartShift, StartMask)),
		Destination: Square(field(value, DestinationShift, DestinationMask)),
		Capture:     optionalPieceOrdinal(field(value, CaptureShift, CaptureMask)),
		Promotion:   optionalPieceOrdinal(field(value, PromotionShift, PromotionMask)),
		EnPassant:   field(value, EnPassantShift, EnPassantMask) != 0,
		DoubleStep:  field(value, DoubleStepShift, DoubleStepMask) != 0,
		Castling:    field(value, CastlingShift, CastlingMask) != 0,
	}, nil
}

func optionalOrdinal(o OptionalPiece) uint64 {
	if p, ok := o.Get(); ok {
		return uint64(p)
	}
	return NoPieceOrdinal
}

func flag(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// Encode packs the move back into its 24-bit representation, writing the
// sentinel 7 for an absent capture or promotion.
func (m PackedMove) Encode() uint64 {
	return uint64(m.Piece)&PieceMask<<PieceShift |
		uint64(m.Start)&StartMask<<StartShift |
		uint64(m.Destination)&DestinationMask<<DestinationShift |
		optionalOrdinal(m.Capture)&CaptureMask<<CaptureShift |
		optionalOrdinal(m.Promotion)&PromotionMask<<PromotionShift |
		flag(m.EnPassant)<<EnPassantShift |
		flag(m.DoubleStep)<<DoubleStepShift |
		flag(m.Castling)<<CastlingShift
}

// Move drops the packed-only fields and returns the structured move.
func (m PackedMove) Move() Move {
	return NewMove(m.Start, m.Destination, m.Promotion)
}
