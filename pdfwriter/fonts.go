package pdfwriter

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"sort"

	"github.com/typeset/burro/fontmap"
	"github.com/typeset/burro/layout"
)

// writeFonts embeds one CIDFontType2/OpenType font program per distinct
// font id referenced by l, addressed directly by glyph index (Identity
// encoding: each glyph box's GlyphID is written unchanged as the PDF
// CID). It returns the Type0 font object number and the page-resource
// name ("F<n>") for every font id.
func (d *document) writeFonts(l *layout.Layout, fonts fontmap.FontMap) (map[uint32]int, map[uint32]string, error) {
	ids := usedFontIDs(l)

	fontObjNums := make(map[uint32]int, len(ids))
	resourceNames := make(map[uint32]string, len(ids))

	for i, id := range ids {
		data, ok := fonts.Resolve(id)
		if !ok {
			return nil, nil, fmt.Errorf("pdfwriter: no font data registered for font id %08x", id)
		}

		type0Num, err := d.embedFont(id, data)
		if err != nil {
			return nil, nil, err
		}

		fontObjNums[id] = type0Num
		resourceNames[id] = fmt.Sprintf("F%d", i+1)
	}

	return fontObjNums, resourceNames, nil
}

// embedFont writes the FontFile3/FontDescriptor/CIDFontType2/Type0 object
// chain for one font program and returns the Type0 object number.
func (d *document) embedFont(id uint32, data []byte) (int, error) {
	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(data); err != nil {
		return 0, fmt.Errorf("pdfwriter: compress font %08x: %w", id, err)
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("pdfwriter: compress font %08x: %w", id, err)
	}

	fileNum, fileObj := d.addObject()
	fileObj.body = []byte(fmt.Sprintf(
		"<< /Length %d /Filter /FlateDecode /Subtype /OpenType /Length1 %d >>",
		compressed.Len(), len(data),
	))
	fileObj.stream = compressed.Bytes()

	baseFont := fmt.Sprintf("Burro%08x", id)

	descNum, descObj := d.addObject()
	descObj.body = []byte(fmt.Sprintf(
		"<< /Type /FontDescriptor /FontName /%s /Flags 4 /FontBBox [0 0 1000 1000] "+
			"/ItalicAngle 0 /Ascent 1000 /Descent -200 /CapHeight 700 /StemV 80 /FontFile3 %d 0 R >>",
		baseFont, fileNum,
	))

	cidNum, cidObj := d.addObject()
	cidObj.body = []byte(fmt.Sprintf(
		"<< /Type /Font /Subtype /CIDFontType2 /BaseFont /%s "+
			"/CIDSystemInfo << /Registry (Adobe) /Ordering (Identity) /Supplement 0 >> "+
			"/FontDescriptor %d 0 R /DW 1000 /CIDToGIDMap /Identity >>",
		baseFont, descNum,
	))

	type0Num, type0Obj := d.addObject()
	type0Obj.body = []byte(fmt.Sprintf(
		"<< /Type /Font /Subtype /Type0 /BaseFont /%s /Encoding /Identity-H /DescendantFonts [%d 0 R] >>",
		baseFont, cidNum,
	))

	return type0Num, nil
}

// usedFontIDs collects the distinct font ids referenced by any Glyph box
// in l, in a stable order so output is deterministic.
func usedFontIDs(l *layout.Layout) []uint32 {
	seen := make(map[uint32]bool)
	for _, page := range l.Pages {
		for _, box := range page.Boxes {
			if box.Kind == layout.BoxGlyph {
				seen[box.FontID] = true
			}
		}
	}
	ids := make([]uint32, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
