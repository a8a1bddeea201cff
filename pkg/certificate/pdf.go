package certificate

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const legalNotice = "This certificate attests the registration of the above asset and its " +
	"credited parties at the stated timestamp. It is generated deterministically " +
	"from the registered record and carries no signature of its own."

// replacementRune stands in for glyphs outside the embedded font range
// when lenient text mode is on.
const replacementRune = '·'

// Generator renders certificate snapshots to PDF 1.7. Safe for concurrent
// use; it holds no mutable state between calls.
type Generator struct {
	strict bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithLenientText replaces unsupported glyphs with a middle dot instead of
// failing. Strict mode is the default.
func WithLenientText() Option {
	return func(g *Generator) { g.strict = false }
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{strict: true}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the snapshot. Equal snapshots produce byte-identical
// output: the document date comes from the snapshot timestamp, compression
// is off, and pagination is fixed by the measure pass before the first
// page is rendered.
func (g *Generator) Generate(d Data) ([]byte, error) {
	if d.Timestamp.IsZero() {
		return nil, &Error{Kind: ErrInvalidTimestamp, Field: "timestamp"}
	}
	clean, err := g.sanitizeAll(d)
	if err != nil {
		return nil, err
	}
	p, err := measure(clean)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetCreationDate(clean.Timestamp.UTC())
	pdf.SetModificationDate(clean.Timestamp.UTC())
	pdf.SetTitle(clean.Title, true)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for page := 1; page <= p.totalPages; page++ {
		pdf.AddPage()
		g.emitHeader(pdf, tr, clean, page, p.totalPages)
		y := marginTop + headerHeight
		if page == 1 {
			y = g.emitAssetBlock(pdf, tr, clean, y)
		}
		for _, idx := range p.cardsOnPage[page-1] {
			y = g.emitCreatorCard(pdf, tr, clean.Creators[idx], y)
		}
		g.emitFooter(pdf, tr)
	}

	if pdf.PageCount() != p.totalPages {
		return nil, &Error{Kind: ErrMeasureInconsistent}
	}

	buf := bytes.NewBuffer(make([]byte, 0, bufferSize(len(clean.Creators), p.totalPages)))
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("certificate: render: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) sanitizeAll(d Data) (Data, error) {
	out := d
	var err error
	if out.Title, err = g.sanitize("title", d.Title); err != nil {
		return Data{}, err
	}
	if out.AssetFilename, err = g.sanitize("asset_filename", d.AssetFilename); err != nil {
		return Data{}, err
	}
	if out.Hash, err = g.sanitize("hash", d.Hash); err != nil {
		return Data{}, err
	}
	out.Creators = make([]Creator, len(d.Creators))
	for i, c := range d.Creators {
		cc := c
		if cc.Fullname, err = g.sanitize("creators.fullname", c.Fullname); err != nil {
			return Data{}, err
		}
		if cc.Email, err = g.sanitize("creators.email", c.Email); err != nil {
			return Data{}, err
		}
		cc.Roles = make([]string, len(c.Roles))
		for j, role := range c.Roles {
			if cc.Roles[j], err = g.sanitize("creators.roles", role); err != nil {
				return Data{}, err
			}
		}
		if cc.IPI, err = g.sanitize("creators.ipi", c.IPI); err != nil {
			return Data{}, err
		}
		if cc.ISNI, err = g.sanitize("creators.isni", c.ISNI); err != nil {
			return Data{}, err
		}
		out.Creators[i] = cc
	}
	return out, nil
}

// sanitize enforces the embedded font range (Latin-1). Strict mode fails
// on the first unsupported glyph; lenient mode substitutes.
func (g *Generator) sanitize(field, s string) (string, error) {
	supported := true
	for _, r := range s {
		if r > 0xFF {
			supported = false
			break
		}
	}
	if supported {
		return s, nil
	}
	if g.strict {
		return "", &Error{Kind: ErrUnsupportedField, Field: field}
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r > 0xFF {
			b.WriteRune(replacementRune)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func displayTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleRunes {
		return title
	}
	return string(runes[:maxTitleRunes-3]) + "..."
}

func (g *Generator) emitHeader(pdf *fpdf.Fpdf, tr func(string) string, d Data, page, total int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginSide, marginTop)
	pdf.CellFormat(pageWidth-2*marginSide, lineHeight, tr(displayTitle(d.Title)), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginSide, marginTop+lineHeight)
	pdf.CellFormat(pageWidth-2*marginSide, lineHeight, d.Timestamp.UTC().Format(time.RFC3339), "", 0, "L", false, 0, "")

	pdf.SetXY(marginSide, marginTop+2*lineHeight)
	pdf.CellFormat(pageWidth-2*marginSide, lineHeight, fmt.Sprintf("%d/%d", page, total), "", 0, "R", false, 0, "")

	pdf.SetDrawColor(40, 40, 40)
	pdf.Line(marginSide, marginTop+headerHeight-2, pageWidth-marginSide, marginTop+headerHeight-2)
}

func (g *Generator) emitAssetBlock(pdf *fpdf.Fpdf, tr func(string) string, d Data, y float64) float64 {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginSide, y)
	pdf.CellFormat(pageWidth-2*marginSide, lineHeight, tr("Asset: "+d.AssetFilename), "", 0, "L", false, 0, "")
	y += lineHeight

	if d.Hash != "" {
		pdf.SetXY(marginSide, y)
		pdf.CellFormat(pageWidth-2*marginSide, lineHeight, "Hash:", "", 0, "L", false, 0, "")
		y += lineHeight
		pdf.SetFont("Courier", "", 9)
		for _, line := range wrapHash(d.Hash) {
			pdf.SetXY(marginSide+4, y)
			pdf.CellFormat(pageWidth-2*marginSide-4, lineHeight, line, "", 0, "L", false, 0, "")
			y += lineHeight
		}
	}
	return y + lineHeight
}

func (g *Generator) emitCreatorCard(pdf *fpdf.Fpdf, tr func(string) string, c Creator, y float64) float64 {
	width := pageWidth - 2*marginSide
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginSide, y)
	pdf.CellFormat(width, lineHeight, tr(c.Fullname+"  <"+c.Email+">"), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginSide, y+lineHeight)
	detail := c.RolesJoined() + "  |  IPI: " + c.IPI + "  |  ISNI: " + c.ISNI
	pdf.CellFormat(width, lineHeight, tr(detail), "", 0, "L", false, 0, "")
	return y + cardLines*lineHeight
}

func (g *Generator) emitFooter(pdf *fpdf.Fpdf, tr func(string) string) {
	y := pageHeight - marginTop - footerHeight
	pdf.SetDrawColor(40, 40, 40)
	pdf.Line(marginSide, y, pageWidth-marginSide, y)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetXY(marginSide, y+2)
	pdf.MultiCell(pageWidth-2*marginSide, 3.2, tr(legalNotice), "", "L", false)
}
