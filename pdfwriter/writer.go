// Package pdfwriter serializes a layout.Layout into a PDF file (spec.md
// §1 "PDF writer", declared out of scope for the engine itself but
// specified by the interface it consumes: "Given an ordered sequence of
// pages, each a sequence of positioned glyph/rule boxes referencing font
// IDs, emits a PDF").
//
// unidoc-unipdf's own pdf/ object model is the natural ancestor of a
// PDF writer, but it was dropped from this module (see DESIGN.md
// "Pruning of the copied teacher tree") precisely because building a
// font-agnostic glyph-position writer on top of it would mean importing
// most of unipdf's PDF core back in by another door. This package is
// therefore a minimal, hand-rolled, stdlib-only PDF 1.4 serializer:
// every glyph box is drawn with its own absolute text matrix, so no
// line-layout knowledge is required downstream of layout.Layout, and
// every distinct font id referenced by the layout is embedded whole as
// an OpenType CIDFontType2 program addressed directly by glyph index
// (Identity-H/Identity encoding), which sidesteps needing to reconstruct
// a cmap or subsetting table.
package pdfwriter

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"sort"

	"github.com/typeset/burro/fontmap"
	"github.com/typeset/burro/layout"
)

// Writer emits a finished Layout as a PDF document.
type Writer interface {
	Write(w io.Writer, l *layout.Layout, fonts fontmap.FontMap) error
}

// DefaultWriter is the package's only Writer implementation.
type DefaultWriter struct{}

// Write implements Writer.
func (DefaultWriter) Write(w io.Writer, l *layout.Layout, fonts fontmap.FontMap) error {
	doc := newDocument()
	return doc.write(w, l, fonts)
}

// object is a buffered, not-yet-numbered PDF object body (everything
// between "N 0 obj" and "endobj").
type object struct {
	body   []byte
	stream []byte // non-nil for a stream object; appended after body's dict
}

type document struct {
	objects []*object
}

func newDocument() *document { return &document{} }

// addObject reserves the next object number and returns it along with a
// pointer to the object's body slot.
func (d *document) addObject() (num int, obj *object) {
	obj = &object{}
	d.objects = append(d.objects, obj)
	return len(d.objects), obj
}

func (d *document) write(w io.Writer, l *layout.Layout, fonts fontmap.FontMap) error {
	fontObjNums, fontResourceNames, err := d.writeFonts(l, fonts)
	if err != nil {
		return err
	}

	pagesNum, pagesObj := d.addObject()

	pageNums := make([]int, 0, len(l.Pages))
	for _, page := range l.Pages {
		pageNum, err := d.writePage(page, pagesNum, fontObjNums, fontResourceNames)
		if err != nil {
			return err
		}
		pageNums = append(pageNums, pageNum)
	}

	var kids bytes.Buffer
	kids.WriteString("[")
	for i, n := range pageNums {
		if i > 0 {
			kids.WriteString(" ")
		}
		fmt.Fprintf(&kids, "%d 0 R", n)
	}
	kids.WriteString("]")
	pagesObj.body = []byte(fmt.Sprintf("<< /Type /Pages /Kids %s /Count %d >>", kids.String(), len(pageNums)))

	catalogNum, catalogObj := d.addObject()
	catalogObj.body = []byte(fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesNum))

	return d.serialize(w, catalogNum)
}

// writePage builds one page's content stream and page dictionary.
func (d *document) writePage(page layout.Page, parentNum int, fontObjNums map[uint32]int, fontResourceNames map[uint32]string) (int, error) {
	content := buildContentStream(page, fontResourceNames)

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(content); err != nil {
		return 0, fmt.Errorf("pdfwriter: compress content stream: %w", err)
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("pdfwriter: compress content stream: %w", err)
	}

	contentNum, contentObj := d.addObject()
	contentObj.body = []byte(fmt.Sprintf("<< /Length %d /Filter /FlateDecode >>", compressed.Len()))
	contentObj.stream = compressed.Bytes()

	var resources bytes.Buffer
	resources.WriteString("<< /Font << ")
	for _, id := range sortedFontIDs(fontResourceNames) {
		fmt.Fprintf(&resources, "/%s %d 0 R ", fontResourceNames[id], fontObjNums[id])
	}
	resources.WriteString(">> >>")

	pageNum, pageObj := d.addObject()
	pageObj.body = []byte(fmt.Sprintf(
		"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 %s %s] /Resources %s /Contents %d 0 R >>",
		parentNum, fmtNum(page.Width), fmtNum(page.Height), resources.String(), contentNum,
	))
	return pageNum, nil
}

// buildContentStream renders a page's boxes as PDF content-stream
// operators. Every glyph is shown with its own absolute text matrix
// (spec.md §4.4's per-glyph cursor positions are already final), so no
// cross-glyph kerning state needs to be reconstructed here.
func buildContentStream(page layout.Page, fontResourceNames map[uint32]string) []byte {
	var buf bytes.Buffer
	for _, box := range page.Boxes {
		switch box.Kind {
		case layout.BoxGlyph:
			name, ok := fontResourceNames[box.FontID]
			if !ok {
				continue
			}
			fmt.Fprintf(&buf, "BT /%s %s Tf 1 0 0 1 %s %s Tm <%04x> Tj ET\n",
				name, fmtNum(box.Pts), fmtNum(box.Pos.X), fmtNum(box.Pos.Y), box.GlyphID)
		case layout.BoxRule:
			fmt.Fprintf(&buf, "q %s w %s %s m %s %s l S Q\n",
				fmtNum(box.Weight), fmtNum(box.StartPos.X), fmtNum(box.StartPos.Y), fmtNum(box.EndPos.X), fmtNum(box.EndPos.Y))
		}
	}
	return buf.Bytes()
}

func fmtNum(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func sortedFontIDs(m map[uint32]string) []uint32 {
	ids := make([]uint32, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// serialize writes the PDF header, every buffered object with its xref
// offset tracked, the xref table and the trailer.
func (d *document) serialize(w io.Writer, rootNum int) error {
	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(d.objects)+1)
	for i, obj := range d.objects {
		offsets[i+1] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\n", i+1, obj.body)
		if obj.stream != nil {
			out.WriteString("stream\n")
			out.Write(obj.stream)
			out.WriteString("\nendstream\n")
		}
		out.WriteString("endobj\n")
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(d.objects)+1)
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(d.objects); i++ {
		fmt.Fprintf(&out, "%010d 00000 n \n", offsets[i])
	}

	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(d.objects)+1, rootNum, xrefStart)

	_, err := w.Write(out.Bytes())
	return err
}
