package chess

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	inerrors "github.com/ambroisie/seer-inspect/internal/errors"
)

func TestPackedMove_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		move PackedMove
	}{
		{
			name: "pawn double step",
			move: PackedMove{
				Piece:       Pawn,
				Start:       Square(12),
				Destination: Square(28),
				Capture:     NoPiece,
				Promotion:   NoPiece,
				DoubleStep:  true,
			},
		},
		{
			name: "capture with promotion",
			move: PackedMove{
				Piece:       Pawn,
				Start:       Square(54),
				Destination: Square(63),
				Capture:     SomePiece(Rook),
				Promotion:   SomePiece(Queen),
			},
		},
		{
			name: "en passant",
			move: PackedMove{
				Piece:       Pawn,
				Start:       NewSquare(FileE, Fifth),
				Destination: NewSquare(FileD, Sixth),
				Capture:     SomePiece(Pawn),
				Promotion:   NoPiece,
				EnPassant:   true,
			},
		},
		{
			name: "castling",
			move: PackedMove{
				Piece:       King,
				Start:       E1,
				Destination: NewSquare(FileG, First),
				Capture:     NoPiece,
				Promotion:   NoPiece,
				Castling:    true,
			},
		},
		{
			name: "capture of a king ordinal",
			move: PackedMove{
				Piece:       Queen,
				Start:       A1,
				Destination: H8,
				Capture:     SomePiece(King),
				Promotion:   NoPiece,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := tt.move.Encode()
			if encoded >= 1<<24 {
				t.Errorf("Encode() = %#x uses more than 24 bits", encoded)
			}
			got, err := DecodePackedMove(encoded)
			if err != nil {
				t.Fatalf("DecodePackedMove(%#x) error: %v", encoded, err)
			}
			if diff := cmp.Diff(tt.move, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodePackedMove_Layout(t *testing.T) {
	// piece=Pawn(5), start=12, destination=28, capture=none, promotion=none,
	// double step set.
	value := uint64(5) | 12<<3 | 28<<9 | 7<<15 | 7<<18 | 1<<22

	got, err := DecodePackedMove(value)
	if err != nil {
		t.Fatalf("DecodePackedMove error: %v", err)
	}

	want := PackedMove{
		Piece:       Pawn,
		Start:       12,
		Destination: 28,
		Capture:     NoPiece,
		Promotion:   NoPiece,
		DoubleStep:  true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodePackedMove mismatch (-want +got):\n%s", diff)
	}
	if got.Encode() != value {
		t.Errorf("Encode() = %#x; want %#x", got.Encode(), value)
	}
}

func TestDecodePackedMove_Sentinels(t *testing.T) {
	// Ordinal 6 in the optional slots is out-of-band too and decodes as none.
	value := uint64(Knight) | 6<<15 | 6<<18
	got, err := DecodePackedMove(value)
	if err != nil {
		t.Fatalf("DecodePackedMove error: %v", err)
	}
	if got.Capture.Valid || got.Promotion.Valid {
		t.Errorf("capture=%v promotion=%v; want both none", got.Capture, got.Promotion)
	}
}

func TestDecodePackedMove_InvalidPiece(t *testing.T) {
	for _, ordinal := range []uint64{6, 7} {
		_, err := DecodePackedMove(ordinal)
		if !errors.Is(err, inerrors.ErrUnknownVariant) {
			t.Errorf("piece ordinal %d: error = %v; want ErrUnknownVariant", ordinal, err)
		}
	}
}

func TestDecodePackedMove_IgnoresHighBits(t *testing.T) {
	move := PackedMove{Piece: Rook, Start: A1, Destination: A8, Capture: NoPiece, Promotion: NoPiece}
	got, err := DecodePackedMove(move.Encode() | 0xFF<<24)
	if err != nil {
		t.Fatalf("DecodePackedMove error: %v", err)
	}
	if diff := cmp.Diff(move, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPackedMove_Move(t *testing.T) {
	packed := PackedMove{Piece: Pawn, Start: 54, Destination: 55, Capture: NoPiece, Promotion: SomePiece(Knight)}
	want := NewMove(54, 55, SomePiece(Knight))
	if diff := cmp.Diff(want, packed.Move()); diff != "" {
		t.Errorf("Move() mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionalPiece(t *testing.T) {
	if got := NoPiece.String(); got != "(None)" {
		t.Errorf("NoPiece.String() = %q", got)
	}
	if got := SomePiece(Queen).String(); got != "Queen" {
		t.Errorf("SomePiece(Queen).String() = %q", got)
	}
	if p, ok := SomePiece(Bishop).Get(); !ok || p != Bishop {
		t.Errorf("Get() = %v, %v", p, ok)
	}
}
