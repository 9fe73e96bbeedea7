package layout

import "github.com/typeset/burro/ast"

// emitLine implements the Line Emitter (spec.md §4.4): position a
// finalized line's glyphs according to the current alignment and append
// the resulting boxes to the current page.
func (c *Controller) emitLine(line []Chunk, last bool) {
	if !last {
		for len(line) > 0 && line[len(line)-1].IsSpace() {
			line = line[:len(line)-1]
		}
	}
	if len(line) == 0 {
		return
	}

	startingSize := line[0].PtSize
	maxSize := startingSize
	for _, chunk := range line {
		if chunk.PtSize > maxSize {
			maxSize = chunk.PtSize
		}
	}
	if maxSize > startingSize {
		c.advanceY(maxSize - startingSize)
	}

	switch c.params.alignment {
	case ast.Left:
		c.emitLineAt(line, c.params.spaceWidth)
	case ast.Justify:
		if last {
			c.emitLineAt(line, c.params.spaceWidth)
		} else {
			c.emitLineAt(line, c.justifiedSpaceWidth(line))
		}
	case ast.Right:
		total := c.totalLineWidth(line)
		available := c.params.columnWidth - (c.cursor.X - c.params.colMarginLeft)
		c.cursor.X = c.params.colMarginLeft + available - total
		c.emitLineAt(line, c.params.spaceWidth)
	case ast.Center:
		total := c.totalLineWidth(line)
		available := c.params.columnWidth - (c.cursor.X - c.params.colMarginLeft)
		c.cursor.X = c.params.colMarginLeft + (available-total)/2
		c.emitLineAt(line, c.params.spaceWidth)
	}
}

// emitLineAt emits every chunk in line left-to-right from the current
// cursor, using spaceWidth for Space/NonBreakingSpace chunks (spec.md
// §4.4 step 4-5).
func (c *Controller) emitLineAt(line []Chunk, spaceWidth float64) {
	for _, chunk := range line {
		if chunk.IsSpace() {
			c.cursor.X += spaceWidth
			continue
		}
		c.emitWord(chunk)
	}
}

// emitWord appends one Glyph box per shaped glyph in chunk and advances
// the cursor (spec.md §4.4 step 5).
func (c *Controller) emitWord(chunk Chunk) {
	for _, glyph := range chunk.Glyphs {
		c.currentPage.Boxes = append(c.currentPage.Boxes, BurroBox{
			Kind:    BoxGlyph,
			Pos:     Position{X: c.cursor.X, Y: c.cursor.Y},
			GlyphID: glyph.GlyphID,
			FontID:  glyph.FontID,
			Pts:     glyph.PtSize,
		})
		c.cursor.X += glyph.WidthPts
		if glyph.DeltaY > 0 {
			c.advanceY(glyph.DeltaY)
		}
	}
}
