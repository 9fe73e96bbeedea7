package fontmap

import (
	"os"

	"github.com/adrg/sysfont"

	"github.com/typeset/burro/fontstyle"
)

// SystemFontMap wraps a Map and falls back to the host's installed font
// catalog (github.com/adrg/sysfont, a direct dependency of the teacher
// repo) when a family has no explicit entry. This exercises a teacher
// dependency that a document-local font map alone would otherwise leave
// unbound: authors can reference a system family ("Times New Roman",
// "DejaVu Sans") without listing it in the document's font-map config.
type SystemFontMap struct {
	*Map
	finder *sysfont.Finder
}

// NewSystemFontMap wraps base (or a fresh empty Map if base is nil) with
// system font discovery.
func NewSystemFontMap(base *Map) *SystemFontMap {
	if base == nil {
		base = New()
	}
	return &SystemFontMap{Map: base, finder: sysfont.NewFinder(nil)}
}

// FontID resolves family+style, scanning installed system fonts and
// registering the match lazily if the family was not already mapped.
func (s *SystemFontMap) FontID(family string, style fontstyle.Style) uint32 {
	id := s.Map.FontID(family, style)
	if _, ok := s.Map.data[id]; ok {
		return id
	}

	match := s.finder.Match(family)
	if match == nil || match.Filename == "" {
		return id
	}

	data, err := os.ReadFile(match.Filename)
	if err != nil {
		return id
	}
	s.Map.data[id] = data
	return id
}

var _ FontMap = (*SystemFontMap)(nil)
