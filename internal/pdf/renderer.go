// Package pdf renders layout commands into a PDF document.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/isdelr/resume-builder-be/internal/layout"
)

const (
	// FileName is the download name of a generated resume.
	FileName = "resume_professional.pdf"
	// ContentType is the MIME type of the rendered output.
	ContentType = "application/pdf"
)

// Renderer turns a layout into PDF bytes.
type Renderer interface {
	Render(l layout.Layout) ([]byte, error)
}

// FPDF renders with go-pdf/fpdf using the PDF core fonts.
type FPDF struct {
	// Title is written to the document metadata when set.
	Title string
}

// NewFPDF creates a renderer.
func NewFPDF() *FPDF {
	return &FPDF{Title: "Resume"}
}

// Render draws the commands in order on a single page.
func (r *FPDF) Render(l layout.Layout) ([]byte, error) {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: l.Page.Width, Ht: l.Page.Height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	if r.Title != "" {
		doc.SetTitle(r.Title, true)
	}
	doc.AddPage()

	// Core fonts are cp1252 encoded.
	tr := doc.UnicodeTranslatorFromDescriptor("")
	// fpdf measures y from the top edge.
	flip := func(y float64) float64 { return l.Page.Height - y }

	for _, c := range l.Commands {
		switch c.Kind {
		case layout.KindText, layout.KindHeader:
			style := ""
			if c.Style.Bold {
				style = "B"
			}
			doc.SetFont(c.Style.Font, style, c.Style.Size)
			doc.SetTextColor(int(c.Style.Color.R), int(c.Style.Color.G), int(c.Style.Color.B))
			doc.Text(c.X, flip(c.Y), tr(c.Text))
		case layout.KindRule:
			doc.SetDrawColor(int(c.Style.Color.R), int(c.Style.Color.G), int(c.Style.Color.B))
			doc.SetLineWidth(c.Style.LineWidth)
			doc.Line(c.X, flip(c.Y), c.X2, flip(c.Y))
		default:
			return nil, fmt.Errorf("unknown draw command kind %q", c.Kind)
		}
		if doc.Err() {
			return nil, fmt.Errorf("render %s command: %w", c.Kind, doc.Error())
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
