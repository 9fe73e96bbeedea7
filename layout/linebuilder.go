package layout

import (
	"github.com/typeset/burro/ast"
	"github.com/typeset/burro/common"
)

// handleText is the Line Builder's entry point for a Text style block: it
// shapes each TextUnit in turn and feeds the resulting chunk into the
// in-progress line (spec.md §4.3).
func (c *Controller) handleText(units []ast.TextUnit) error {
	fontID := c.fonts.FontID(c.params.fontFamily, c.params.font)
	for _, unit := range units {
		chunk, err := c.shaper.shapeUnit(unit, fontID, c.params.ptSize, c.params.letterSpace, c.params.spaceWidth, c.params.ligatures)
		if err != nil {
			return err
		}
		if err := c.addChunk(chunk); err != nil {
			return err
		}
	}
	return nil
}

// generateWord shapes a single synthetic TextUnit (the curly quotes
// inserted by Quote/OpenQuote) and appends it directly, matching
// _examples/original_source/src/layout.rs's generate_word.
func (c *Controller) generateWord(unit ast.TextUnit) error {
	fontID := c.fonts.FontID(c.params.fontFamily, c.params.font)
	chunk, err := c.shaper.shapeUnit(unit, fontID, c.params.ptSize, c.params.letterSpace, c.params.spaceWidth, c.params.ligatures)
	if err != nil {
		return err
	}
	return c.addChunk(chunk)
}

// addChunk implements spec.md §4.3 "Adding a chunk".
func (c *Controller) addChunk(chunk Chunk) error {
	c.currentLine = append(c.currentLine, chunk)

	lineWidth := c.totalLineWidth(c.currentLine)
	if lineWidth+(c.cursor.X-c.params.colMarginLeft) <= c.params.columnWidth {
		return nil
	}
	return c.breakLine()
}

// breakLine implements spec.md §4.3 steps 4.a-4.h.
func (c *Controller) breakLine() error {
	tail := c.popWords()

	// (a) Non-breaking-space bridged run: reflow the whole run onto the
	// next line, leaving the head (if any) to be emitted now.
	if len(tail) > 1 && len(c.currentLine) > 0 {
		c.emitLine(c.currentLine, false)
		c.currentLine = tail
		c.cursor.X = c.params.colMarginLeft
		c.advanceY(c.params.leading + c.params.ptSize)
		c.hyphens = 0
		return nil
	}

	// (b) Single overlong word/run with nothing to its left: let it
	// overflow rather than emit an empty head.
	if len(c.currentLine) == 0 {
		common.Log.Warning("line builder: chunk run overflows column width with no head to break before")
		c.currentLine = tail
		return nil
	}

	// (c) Nothing non-space was popped (the line ended in a literal space
	// that alone pushed it over width): leave the line as-is.
	if len(tail) == 0 {
		return nil
	}

	// (d) Pop the last word W from the tail; the rest goes back onto the
	// head.
	w := tail[len(tail)-1]
	rest := tail[:len(tail)-1]
	c.currentLine = append(c.currentLine, rest...)

	// (e) Hyphenation attempt.
	hyphenated := false
	if c.params.alignment == ast.Justify && c.params.hyphenate && c.hyphens < c.params.consecHyphens && w.Kind == ChunkWord {
		start, rest, ok := c.tryHyphenate(w)
		if ok {
			c.hyphens++
			c.currentLine = append(c.currentLine, start)
			c.emitLine(c.currentLine, false)
			c.currentLine = nil
			w = rest
			hyphenated = true
		} else {
			c.hyphens = 0
		}
	} else {
		c.hyphens = 0
	}

	// (f) If W is itself a space (can happen when the hyphenation attempt
	// declines and W was preceded only by spaces), keep borrowing from the
	// head.
	for w.IsSpace() {
		if len(c.currentLine) == 0 {
			c.currentLine = nil
			return nil
		}
		w = c.currentLine[len(c.currentLine)-1]
		c.currentLine = c.currentLine[:len(c.currentLine)-1]
	}

	if !hyphenated {
		// (g) Emit head as a non-final line.
		c.emitLine(c.currentLine, false)
	}

	c.cursor.X = c.params.colMarginLeft
	c.advanceY(c.params.leading + c.params.ptSize)

	// (h) Seed the new line with W.
	c.currentLine = []Chunk{w}
	return nil
}

// tryHyphenate implements spec.md §4.3.e: try every candidate break offset
// in w's source string, pick the one whose resulting justified space
// width is closest to nominal subject to the minimum-space floor.
func (c *Controller) tryHyphenate(w Chunk) (start, rest Chunk, ok bool) {
	breaks := c.hyphenator.Hyphenate(w.Source)
	if len(breaks) == 0 {
		return Chunk{}, Chunk{}, false
	}

	fontID := c.fonts.FontID(c.params.fontFamily, c.params.font)
	var bestSpacing float64
	var bestStart, bestRest *Chunk

	for _, b := range breaks {
		if b <= 0 || b >= len(w.Source) {
			continue
		}
		prefix := w.Source[:b] + "-"
		suffix := w.Source[b:]

		startChunk, err := c.shaper.shapeStr(prefix, fontID, w.PtSize, c.params.letterSpace, c.params.ligatures)
		if err != nil {
			continue
		}
		restChunk, err := c.shaper.shapeStr(suffix, fontID, w.PtSize, c.params.letterSpace, c.params.ligatures)
		if err != nil {
			continue
		}

		trial := append(append([]Chunk{}, c.currentLine...), startChunk)
		newSpacing := c.justifiedSpaceWidth(trial)
		if newSpacing < c.params.minSpaceWidth {
			continue
		}

		if bestStart == nil || absDiff(newSpacing, c.params.spaceWidth) < absDiff(bestSpacing, c.params.spaceWidth) {
			bestSpacing = newSpacing
			sc := startChunk
			rc := restChunk
			bestStart = &sc
			bestRest = &rc
		}
	}

	if bestStart == nil {
		return Chunk{}, Chunk{}, false
	}
	return *bestStart, *bestRest, true
}

func absDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

// popWords pops a trailing run of non-space chunks from the current line
// (spec.md §4.3 "Pop from the tail a run of non-space chunks"). Only a
// literal Space chunk stops the run; a NonBreakingSpace is carried along,
// matching
// _examples/original_source/src/layout.rs's pop_words (which stops only
// on `TextUnit::Space`).
func (c *Controller) popWords() []Chunk {
	var result []Chunk
	for len(c.currentLine) > 0 {
		last := c.currentLine[len(c.currentLine)-1]
		if last.Kind == ChunkSpace {
			break
		}
		result = append([]Chunk{last}, result...)
		c.currentLine = c.currentLine[:len(c.currentLine)-1]
	}
	return result
}

// totalLineWidth sums word widths plus space widths, excluding a trailing
// space chunk (spec.md §4.3 step 2).
func (c *Controller) totalLineWidth(line []Chunk) float64 {
	if len(line) == 0 {
		return 0
	}

	var wordWidth float64
	spaceCount := 0
	for _, chunk := range line {
		if chunk.IsSpace() {
			spaceCount++
		} else {
			wordWidth += chunk.Width()
		}
	}
	if line[len(line)-1].IsSpace() {
		spaceCount--
	}
	return wordWidth + float64(spaceCount)*c.params.spaceWidth
}

// justifiedSpaceWidth computes the stretched space width that would
// justify line against the remaining column width at the current cursor
// (spec.md §4.3.e, §4.4 step 4 Justify branch).
func (c *Controller) justifiedSpaceWidth(line []Chunk) float64 {
	totalWidth := c.totalLineWidth(line)
	available := c.params.columnWidth - (c.cursor.X - c.params.colMarginLeft)

	spaceCount := 0
	for _, chunk := range line {
		if chunk.IsSpace() {
			spaceCount++
		}
	}
	if spaceCount == 0 {
		return c.params.spaceWidth
	}
	return c.params.spaceWidth + (available-totalWidth)/float64(spaceCount)
}

// emitRemainingLine flushes whatever is left in the in-progress line as a
// final line (spec.md §4.3 step 5).
func (c *Controller) emitRemainingLine() {
	line := c.currentLine
	c.currentLine = nil
	c.emitLine(line, true)
}
