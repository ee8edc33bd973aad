package output

import (
	"io"

	"github.com/ambroisie/seer-inspect/internal/chess"
	"github.com/ambroisie/seer-inspect/internal/config"
	"github.com/ambroisie/seer-inspect/internal/fen"
)

// BoardWriter is the interface for writing decoded boards to output.
// Different implementations handle different output formats (text, JSON, FEN).
type BoardWriter interface {
	// WriteBoard writes a single board, labelled with the expression it came from.
	WriteBoard(name string, board chess.ChessBoard) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewBoardWriter returns the writer selected by cfg.Output.Format.
func NewBoardWriter(w io.Writer, cfg *config.Config) BoardWriter {
	switch cfg.Output.Format {
	case config.JSON:
		return NewJSONWriter(w, cfg)
	case config.FEN:
		return NewFENWriter(w)
	default:
		return NewTextWriter(w)
	}
}

// TextWriter writes boards as Unicode diagrams.
type TextWriter struct {
	w       io.Writer
	written int
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteBoard writes a board diagram, separated from the previous one by a
// blank line.
func (tw *TextWriter) WriteBoard(_ string, board chess.ChessBoard) error {
	text := RenderBoard(board) + "\n"
	if tw.written > 0 {
		text = "\n" + text
	}
	tw.written++
	_, err := io.WriteString(tw.w, text)
	return err
}

// Flush flushes the text writer (no-op as it writes immediately).
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// FENWriter writes one FEN string per board.
type FENWriter struct {
	w io.Writer
}

// NewFENWriter creates a new FEN writer.
func NewFENWriter(w io.Writer) *FENWriter {
	return &FENWriter{w: w}
}

// WriteBoard writes the board's FEN string on its own line.
func (fw *FENWriter) WriteBoard(_ string, board chess.ChessBoard) error {
	_, err := io.WriteString(fw.w, fen.BoardToFEN(board)+"\n")
	return err
}

// Flush flushes the FEN writer (no-op as it writes immediately).
func (fw *FENWriter) Flush() error {
	return nil
}

// Close closes the FEN writer.
func (fw *FENWriter) Close() error {
	return nil
}

// JSONWriter writes boards in JSON format.
// It buffers boards and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	cfg    *config.Config
	boards []*JSONBoard
	single bool // If true, write each board immediately instead of batching
	wrote  bool
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches boards and writes them as an array on Close().
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		boards: make([]*JSONBoard, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each board immediately.
func NewJSONWriterSingle(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		single: true,
	}
}

// WriteBoard buffers a board for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteBoard(name string, board chess.ChessBoard) error {
	jb := BoardToJSON(name, board, jw.cfg)
	if jw.single {
		return encodeJSON(jw.w, jb)
	}
	jw.boards = append(jw.boards, jb)
	return nil
}

// Flush writes all buffered boards as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.boards) == 0 {
		return nil
	}
	err := encodeJSON(jw.w, &JSONOutput{Boards: jw.boards})
	jw.wrote = true

	// Clear buffer after writing
	jw.boards = jw.boards[:0]
	return err
}

// Close flushes and closes the JSON writer.
// A batch writer that received no boards writes an empty list.
func (jw *JSONWriter) Close() error {
	if !jw.single && !jw.wrote && len(jw.boards) == 0 {
		jw.wrote = true
		return encodeJSON(jw.w, &JSONOutput{Boards: []*JSONBoard{}})
	}
	return jw.Flush()
}
