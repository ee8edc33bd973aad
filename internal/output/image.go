package output

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ambroisie/seer-inspect/internal/chess"
	"github.com/ambroisie/seer-inspect/internal/config"
)

// tokenSVG is the disc a piece letter is stamped on. Fill and stroke are
// substituted per colour.
const tokenSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">` +
	`<circle cx="50" cy="50" r="40" fill="%s" stroke="%s" stroke-width="5"/></svg>`

var tokenColors = [chess.NumColors]struct {
	fill, stroke string
	letter       color.Color
}{
	chess.White: {"#ffffff", "#202020", color.Black},
	chess.Black: {"#202020", "#ffffff", color.White},
}

// BoardImage rasterises a board: squares, one token per piece carrying the
// piece letter, and optional coordinates in the margin.
type BoardImage struct {
	cfg    *config.ImageConfig
	tokens [chess.NumColors]*oksvg.SvgIcon
	face   font.Face
}

// NewBoardImage parses the piece tokens and loads the letter face.
func NewBoardImage(cfg *config.ImageConfig) (*BoardImage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bi := &BoardImage{cfg: cfg}
	for _, c := range chess.Colors {
		svg := fmt.Sprintf(tokenSVG, tokenColors[c].fill, tokenColors[c].stroke)
		icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
		if err != nil {
			return nil, fmt.Errorf("parsing %v token: %w", c, err)
		}
		bi.tokens[c] = icon
	}

	ttf, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("loading piece font: %w", err)
	}
	bi.face, err = opentype.NewFace(ttf, &opentype.FaceOptions{
		Size:    float64(cfg.SquareSize) * 0.45,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("loading piece font: %w", err)
	}
	return bi, nil
}

func (bi *BoardImage) margin() int {
	if bi.cfg.Coordinates {
		return bi.cfg.SquareSize / 2
	}
	return 0
}

// Size returns the side length of rendered images in pixels.
func (bi *BoardImage) Size() int {
	return chess.NumFiles*bi.cfg.SquareSize + 2*bi.margin()
}

// squareOrigin returns the top-left pixel of a square, rank 8 at the top.
func (bi *BoardImage) squareOrigin(sq chess.Square) image.Point {
	file, rank := sq.FileRank()
	size, m := bi.cfg.SquareSize, bi.margin()
	return image.Pt(m+int(file)*size, m+(chess.NumRanks-1-int(rank))*size)
}

// Render draws the board.
func (bi *BoardImage) Render(board chess.ChessBoard) *image.RGBA {
	side := bi.Size()
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	size := bi.cfg.SquareSize
	scanner := rasterx.NewScannerGV(side, side, img, img.Bounds())
	raster := rasterx.NewDasher(side, side, scanner)

	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		origin := bi.squareOrigin(sq)
		rect := image.Rect(origin.X, origin.Y, origin.X+size, origin.Y+size)

		fill := bi.cfg.LightSquare
		if file, rank := sq.FileRank(); (int(file)+int(rank))%2 == 0 {
			fill = bi.cfg.DarkSquare
		}
		draw.Draw(img, rect, image.NewUniform(fill), image.Point{}, draw.Src)

		piece, c, ok := board.At(sq)
		if !ok {
			continue
		}
		token := bi.tokens[c]
		token.SetTarget(float64(rect.Min.X), float64(rect.Min.Y), float64(size), float64(size))
		token.Draw(raster, 1.0)
		raster.Clear()

		bi.drawCentered(img, bi.face, tokenColors[c].letter, rect, string(piece.Letter()))
	}

	if bi.cfg.Coordinates {
		bi.drawCoordinates(img)
	}
	return img
}

func (bi *BoardImage) drawCoordinates(img *image.RGBA) {
	size, m := bi.cfg.SquareSize, bi.margin()
	far := m + chess.NumFiles*size
	for i, file := range chess.Files {
		x := m + i*size
		label := file.String()
		bi.drawCentered(img, basicfont.Face7x13, color.Black, image.Rect(x, 0, x+size, m), label)
		bi.drawCentered(img, basicfont.Face7x13, color.Black, image.Rect(x, far, x+size, far+m), label)
	}
	for _, rank := range chess.Ranks {
		y := m + (chess.NumRanks-1-int(rank))*size
		label := fmt.Sprint(rank.Number())
		bi.drawCentered(img, basicfont.Face7x13, color.Black, image.Rect(0, y, m, y+size), label)
		bi.drawCentered(img, basicfont.Face7x13, color.Black, image.Rect(far, y, far+m, y+size), label)
	}
}

func (bi *BoardImage) drawCentered(img draw.Image, face font.Face, c color.Color, rect image.Rectangle, s string) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(c), Face: face}
	metrics := face.Metrics()
	width := d.MeasureString(s)
	height := metrics.Ascent + metrics.Descent

	x := fixed.I(rect.Min.X) + (fixed.I(rect.Dx())-width)/2
	y := fixed.I(rect.Min.Y) + (fixed.I(rect.Dy())-height)/2 + metrics.Ascent
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(s)
}

// WritePNG renders a board and encodes it as PNG.
func (bi *BoardImage) WritePNG(w io.Writer, board chess.ChessBoard) error {
	return png.Encode(w, bi.Render(board))
}

// Close releases the font face.
func (bi *BoardImage) Close() error {
	return bi.face.Close()
}
