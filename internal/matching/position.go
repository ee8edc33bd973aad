package matching

import (
	"fmt"
	"strings"

	"github.com/ambroisie/seer-inspect/internal/chess"
	"github.com/ambroisie/seer-inspect/internal/errors"
	"github.com/ambroisie/seer-inspect/internal/fen"
	"github.com/ambroisie/seer-inspect/internal/hashing"
)

// FENPattern represents a FEN pattern to match.
// Supports wildcards:
//   - ? matches any square (empty or occupied)
//   - ! matches any non-empty square
//   - * matches zero or more of anything
//   - A matches any white piece
//   - a matches any black piece
//   - _ matches empty square
type FENPattern struct {
	Pattern       string
	Label         string // optional label for matched position
	Hash          uint64 // position hash for exact FEN matches
	IsExact       bool   // true if this is an exact FEN (no wildcards)
	IncludeInvert bool   // also match color-inverted position
	ranks         []string
}

// PositionMatcher selects boards by position.
type PositionMatcher struct {
	patterns    []*FENPattern
	exactHashes map[uint64]*FENPattern
}

var _ BoardMatcher = (*PositionMatcher)(nil)

// NewPositionMatcher creates a new position matcher.
func NewPositionMatcher() *PositionMatcher {
	return &PositionMatcher{
		exactHashes: make(map[uint64]*FENPattern),
	}
}

// AddFEN adds an exact FEN position to match. Side to move, castling rights
// and en passant take part; the clocks do not.
func (pm *PositionMatcher) AddFEN(s string, label string) error {
	board, err := fen.Parse(s)
	if err != nil {
		return err
	}

	hash := hashing.GenerateZobristHash(board)
	pattern := &FENPattern{
		Pattern: s,
		Label:   label,
		Hash:    hash,
		IsExact: true,
	}

	pm.patterns = append(pm.patterns, pattern)
	pm.exactHashes[hash] = pattern
	return nil
}

// AddPattern adds a piece-placement pattern with wildcards.
func (pm *PositionMatcher) AddPattern(pattern string, label string, includeInvert bool) {
	p := &FENPattern{
		Pattern:       pattern,
		Label:         label,
		IncludeInvert: includeInvert,
		ranks:         strings.Split(pattern, "/"),
	}
	pm.patterns = append(pm.patterns, p)

	if includeInvert {
		inverted := invertPattern(pattern)
		pm.patterns = append(pm.patterns, &FENPattern{
			Pattern: inverted,
			Label:   label,
			ranks:   strings.Split(inverted, "/"),
		})
	}
}

// Add adds s as an exact FEN when it has all six fields, and as a
// wildcard pattern otherwise.
func (pm *PositionMatcher) Add(s string, label string) error {
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return fmt.Errorf("empty position: %w", errors.ErrInvalidFEN)
	case 6:
		return pm.AddFEN(s, label)
	}
	pm.AddPattern(fields[0], label, false)
	return nil
}

// Match implements BoardMatcher.
func (pm *PositionMatcher) Match(board chess.ChessBoard) bool {
	return pm.MatchBoard(board) != nil
}

// MatchBoard returns the first pattern the board matches, or nil.
func (pm *PositionMatcher) MatchBoard(board chess.ChessBoard) *FENPattern {
	if len(pm.patterns) == 0 {
		return nil
	}

	// Exact positions first
	if pattern, ok := pm.exactHashes[hashing.GenerateZobristHash(board)]; ok {
		return pattern
	}

	ranks := boardToRanks(board)
	for _, pattern := range pm.patterns {
		if !pattern.IsExact && matchRanks(ranks, pattern) {
			return pattern
		}
	}
	return nil
}

// Name implements BoardMatcher.
func (pm *PositionMatcher) Name() string {
	names := make([]string, len(pm.patterns))
	for i, p := range pm.patterns {
		names[i] = p.Pattern
	}
	return "Position(" + strings.Join(names, " | ") + ")"
}

// matchRanks checks board ranks (rank 8 first) against a pattern.
func matchRanks(ranks [chess.NumRanks]string, pattern *FENPattern) bool {
	if len(pattern.ranks) == 0 {
		return false
	}
	for i, patternRank := range pattern.ranks {
		if i >= chess.NumRanks {
			break
		}
		if !matchRank(ranks[i], patternRank) {
			return false
		}
	}
	return true
}

// boardToRanks converts a board to rank strings, rank 8 first, with '_' for
// empty squares.
func boardToRanks(board chess.ChessBoard) [chess.NumRanks]string {
	var ranks [chess.NumRanks]string

	for i := range chess.Ranks {
		rank := chess.Ranks[chess.NumRanks-1-i]
		var sb strings.Builder
		for _, file := range chess.Files {
			piece, color, ok := board.At(chess.NewSquare(file, rank))
			if !ok {
				sb.WriteByte('_')
				continue
			}
			sb.WriteByte(fen.PieceChar(piece, color))
		}
		ranks[i] = sb.String()
	}

	return ranks
}

// matchRank matches a board rank string against a pattern rank.
func matchRank(boardRank, patternRank string) bool {
	bi := 0 // board index
	pi := 0 // pattern index

	for pi < len(patternRank) {
		if bi >= len(boardRank) && patternRank[pi] != '*' {
			return false
		}

		c := patternRank[pi]

		switch c {
		case '*':
			pi++
			if pi >= len(patternRank) {
				return true
			}
			for ; bi <= len(boardRank); bi++ {
				if matchRank(boardRank[bi:], patternRank[pi:]) {
					return true
				}
			}
			return false

		case '?':
			bi++
			pi++

		case '!':
			if boardRank[bi] == '_' {
				return false
			}
			bi++
			pi++

		case 'A':
			if boardRank[bi] < 'A' || boardRank[bi] > 'Z' {
				return false
			}
			bi++
			pi++

		case 'a':
			if boardRank[bi] < 'a' || boardRank[bi] > 'z' {
				return false
			}
			bi++
			pi++

		case '1', '2', '3', '4', '5', '6', '7', '8':
			// N empty squares
			for n := int(c - '0'); n > 0; n-- {
				if bi >= len(boardRank) || boardRank[bi] != '_' {
					return false
				}
				bi++
			}
			pi++

		default:
			// '_' and piece letters match themselves
			if boardRank[bi] != c {
				return false
			}
			bi++
			pi++
		}
	}

	return bi == len(boardRank)
}

// invertPattern swaps colours in a pattern and mirrors its ranks.
func invertPattern(pattern string) string {
	swapped := strings.Map(func(c rune) rune {
		switch {
		case c >= 'A' && c <= 'Z':
			return c + 'a' - 'A'
		case c >= 'a' && c <= 'z':
			return c - 'a' + 'A'
		default:
			return c
		}
	}, pattern)

	ranks := strings.Split(swapped, "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	return strings.Join(ranks, "/")
}

// PatternCount returns the number of patterns.
func (pm *PositionMatcher) PatternCount() int {
	return len(pm.patterns)
}
