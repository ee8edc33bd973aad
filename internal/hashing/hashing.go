// Package hashing provides position keys and duplicate detection for decoded
// boards.
package hashing

import (
	"github.com/ambroisie/seer-inspect/internal/chess"
)

// DuplicateDetector tracks seen positions.
type DuplicateDetector struct {
	// hashTable stores seen positions by Zobrist key
	hashTable map[uint64][]BoardSignature
	// useExactMatch also requires the ply counts to agree
	useExactMatch bool
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// BoardSignature stores identifying information about a position.
type BoardSignature struct {
	// Hash is the Zobrist key of the position
	Hash uint64
	// TotalPlies is the number of half-moves played to reach it
	TotalPlies uint32
	// WeakHash is a fast checksum for additional confidence
	WeakHash uint32
}

// Signature computes the signature of a board.
func Signature(board chess.ChessBoard) BoardSignature {
	return BoardSignature{
		Hash:       GenerateZobristHash(board),
		TotalPlies: board.TotalPlies,
		WeakHash:   WeakHash(board),
	}
}

// NewDuplicateDetector creates a new duplicate detector. With exactMatch, the
// same position reached at a different ply is not a duplicate.
func NewDuplicateDetector(exactMatch bool) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]BoardSignature),
		useExactMatch: exactMatch,
	}
}

// CheckAndAdd checks if a board repeats a position already seen and records it.
// Returns true if the board is a duplicate.
func (d *DuplicateDetector) CheckAndAdd(board chess.ChessBoard) bool {
	sig := Signature(board)

	if existing, ok := d.hashTable[sig.Hash]; ok {
		for _, existingSig := range existing {
			if d.signaturesMatch(sig, existingSig) {
				d.duplicateCount++
				return true
			}
		}
	}

	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	return false
}

// signaturesMatch checks if two board signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b BoardSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	if d.useExactMatch && a.TotalPlies != b.TotalPlies {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique positions.
func (d *DuplicateDetector) UniqueCount() int {
	count := 0
	for _, sigs := range d.hashTable {
		count += len(sigs)
	}
	return count
}
