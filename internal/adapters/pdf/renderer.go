// Package pdf lays out bingo cards and the caller's reference sheet on A4
// pages: two cards per page with a cut line, a lone last card centred and
// enlarged, and the reference sheet on the final page.
package pdf

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/gaubuali/bingo-generator/internal/domain"
	"github.com/gaubuali/bingo-generator/internal/ports"
)

type rgb struct{ r, g, b int }

// Outlines and text only, so printing stays light on ink.
var (
	borderColor = rgb{21, 101, 192}
	textColor   = rgb{26, 35, 126}
	freeColor   = rgb{255, 249, 196}
	cutColor    = rgb{153, 153, 153}
)

const (
	pageW   = 210.0
	pageH   = 297.0
	margin  = 12.0
	titleH  = 10.0
	refCols = 10
	// ptPerMM converts a cell size in millimetres to a font size in points.
	ptPerMM = 2.83465
)

// Renderer implements ports.CardRenderer with fpdf.
type Renderer struct {
	title string
}

func NewRenderer(title string) *Renderer {
	if title == "" {
		title = "BINGO"
	}
	return &Renderer{title: title}
}

type slot struct{ x, y, w, h float64 }

func (r *Renderer) Render(ctx context.Context, w io.Writer, p ports.Printable) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(r.title, true)
	doc.SetCreator("bingo-generator", true)
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(margin, margin, margin)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	cards := p.Batch.Cards
	for i := 0; i < len(cards); i += 2 {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc.AddPage()

		if i+1 < len(cards) {
			half := pageH / 2
			top := slot{margin, margin, pageW - 2*margin, half - 2*margin}
			bottom := slot{margin, half + margin, pageW - 2*margin, half - 2*margin}
			r.drawCard(doc, tr, cards[i], p.Batch.Shape, i+1, top, 1.0)
			r.drawCard(doc, tr, cards[i+1], p.Batch.Shape, i+2, bottom, 1.0)
			drawCutLine(doc, half)
			continue
		}

		lone := slot{margin, pageH * 0.2, pageW - 2*margin, pageH * 0.6}
		r.drawCard(doc, tr, cards[i], p.Batch.Shape, i+1, lone, 1.4)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	doc.AddPage()
	drawReferenceSheet(doc, tr, p.Sheet)

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (r *Renderer) drawCard(doc *fpdf.Fpdf, tr func(string) string, card domain.Card, shape domain.GridShape, number int, s slot, scale float64) {
	setText(doc, textColor)
	doc.SetFont("Helvetica", "B", 13*scale)
	doc.SetXY(s.x, s.y)
	doc.CellFormat(s.w, titleH, tr(fmt.Sprintf("%s  ·  Card #%d", r.title, number)), "", 0, "C", false, 0, "")

	rows := shape.Rows
	if shape.HasHeader {
		rows++
	}
	cell := math.Min(s.w/float64(shape.Cols), (s.h-titleH)/float64(rows))
	gridW := cell * float64(shape.Cols)
	x0 := s.x + (s.w-gridW)/2
	y0 := s.y + titleH

	numberSize := math.Min(cell*ptPerMM*0.45, 28*scale)
	setDraw(doc, borderColor)

	if shape.HasHeader {
		doc.SetLineWidth(0.8)
		doc.SetFont("Helvetica", "B", math.Min(cell*ptPerMM*0.5, 30*scale))
		setText(doc, borderColor)
		for col, letter := range domain.HeaderLabels {
			doc.SetXY(x0+float64(col)*cell, y0)
			doc.CellFormat(cell, cell, string(letter), "1", 0, "C", false, 0, "")
		}
		y0 += cell
	}

	doc.SetLineWidth(0.5)
	for row, cells := range card.Cells {
		for col, c := range cells {
			x := x0 + float64(col)*cell
			y := y0 + float64(row)*cell
			if c.Free {
				setFill(doc, freeColor)
				doc.Rect(x, y, cell, cell, "FD")
				doc.SetFont("Helvetica", "B", numberSize*0.5)
			} else {
				doc.Rect(x, y, cell, cell, "D")
				doc.SetFont("Helvetica", "B", numberSize)
			}
			setText(doc, textColor)
			doc.SetXY(x, y)
			doc.CellFormat(cell, cell, c.Label(), "", 0, "C", false, 0, "")
		}
	}
}

func drawCutLine(doc *fpdf.Fpdf, y float64) {
	setDraw(doc, cutColor)
	doc.SetLineWidth(0.4)
	doc.SetDashPattern([]float64{3, 2}, 0)
	doc.Line(margin*0.8, y, pageW-margin*0.8, y)
	doc.SetDashPattern([]float64{}, 0)

	setText(doc, cutColor)
	doc.SetFont("Helvetica", "", 7)
	doc.SetXY(margin, y+0.5)
	doc.CellFormat(pageW-2*margin, 3, "cut here", "", 0, "C", false, 0, "")
}

func drawReferenceSheet(doc *fpdf.Fpdf, tr func(string) string, sheet domain.ReferenceSheet) {
	const bannerH = 22.0
	width := pageW - 2*margin

	setDraw(doc, borderColor)
	doc.SetLineWidth(0.7)
	doc.Rect(margin, margin, width, bannerH, "D")

	setText(doc, borderColor)
	doc.SetFont("Helvetica", "B", 16)
	doc.SetXY(margin, margin+3)
	doc.CellFormat(width, 9, "CALLER'S REFERENCE SHEET", "", 0, "C", false, 0, "")

	setText(doc, textColor)
	doc.SetFont("Helvetica", "", 9)
	doc.SetXY(margin, margin+13)
	subtitle := fmt.Sprintf("Numbers %d–%d  ·  Cross off each number as you call it", sheet.Range.Start, sheet.Range.End)
	doc.CellFormat(width, 6, tr(subtitle), "", 0, "C", false, 0, "")

	if len(sheet.Numbers) == 0 {
		return
	}
	rows := (len(sheet.Numbers) + refCols - 1) / refCols
	top := margin + bannerH + 6
	cell := math.Min(width/refCols, (pageH-top-margin)/float64(rows))
	x0 := margin + (width-cell*refCols)/2

	doc.SetLineWidth(0.25)
	doc.SetFont("Helvetica", "B", math.Min(cell*ptPerMM*0.4, 13))
	for i, n := range sheet.Numbers {
		x := x0 + float64(i%refCols)*cell
		y := top + float64(i/refCols)*cell
		doc.Rect(x, y, cell, cell, "D")
		doc.SetXY(x, y)
		doc.CellFormat(cell, cell, strconv.Itoa(n), "", 0, "C", false, 0, "")
	}
}

func setText(doc *fpdf.Fpdf, c rgb) { doc.SetTextColor(c.r, c.g, c.b) }
func setDraw(doc *fpdf.Fpdf, c rgb) { doc.SetDrawColor(c.r, c.g, c.b) }
func setFill(doc *fpdf.Fpdf, c rgb) { doc.SetFillColor(c.r, c.g, c.b) }
