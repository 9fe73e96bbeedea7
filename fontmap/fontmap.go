// Package fontmap resolves a (family name, style bitmask) pair to font
// file bytes (spec.md §6 "Consumed font-map interface"). It is the Go
// counterpart of _examples/original_source/src/fontmap.rs's FontMap:
// family names are assigned a stable small integer id, and a font's
// 32-bit id packs that family id into the high 16 bits and the style's
// FontNum into the low 16, exactly as fontmap.rs's font_id/font_from_id
// do.
package fontmap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/typeset/burro/fontstyle"
)

// FontMap is the interface the layout engine consumes to turn a
// (family, style) pair into a font id and, ultimately, face bytes.
type FontMap interface {
	// FontID returns the 32-bit id for (family, styleMask), creating a new
	// family id on first use.
	FontID(family string, style fontstyle.Style) uint32
	// Resolve returns the raw font file bytes registered for fontID, or
	// false if nothing is mapped.
	Resolve(fontID uint32) ([]byte, bool)
}

// Map is the default, YAML-config-driven FontMap. The original Rust
// implementation parsed TOML; no TOML library appears anywhere in the
// retrieved example pack, so the config format here is YAML
// (gopkg.in/yaml.v3), already a dependency of both the teacher and
// kofi-q-scribe-go (see SPEC_FULL.md "AMBIENT STACK").
type Map struct {
	families   map[string]uint16
	idToFamily map[uint16]string
	data       map[uint32][]byte
	next       uint16
}

// New returns an empty Map; families are registered lazily via FontID, or
// eagerly via Load.
func New() *Map {
	return &Map{
		families:   make(map[string]uint16),
		idToFamily: make(map[uint16]string),
		data:       make(map[uint32][]byte),
	}
}

// config is the on-disk shape of a font-map YAML file: family name to
// style-name to font file path.
type config struct {
	Families map[string]map[string]string `yaml:"families"`
}

// Load reads a YAML font-map file and eagerly reads every referenced font
// file from disk into the returned Map.
func Load(path string) (*Map, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font map %q: %w", path, err)
	}

	var cfg config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("parse font map %q: %w", path, err)
	}

	m := New()
	for family, styles := range cfg.Families {
		for styleName, fontPath := range styles {
			style := fontstyle.FromName(styleName)
			data, err := os.ReadFile(fontPath)
			if err != nil {
				return nil, fmt.Errorf("read font %q for %s/%s: %w", fontPath, family, styleName, err)
			}
			m.Register(family, style, data)
		}
	}
	return m, nil
}

// Register associates family+style with font file bytes, allocating a
// family id if this is the first style seen for family.
func (m *Map) Register(family string, style fontstyle.Style, data []byte) {
	id := m.FontID(family, style)
	m.data[id] = data
}

// FontID implements FontMap.
func (m *Map) FontID(family string, style fontstyle.Style) uint32 {
	famID, ok := m.families[family]
	if !ok {
		famID = m.next
		m.families[family] = famID
		m.idToFamily[famID] = family
		m.next++
	}
	return uint32(famID)<<16 | uint32(style.FontNum())
}

// Resolve implements FontMap.
func (m *Map) Resolve(fontID uint32) ([]byte, bool) {
	data, ok := m.data[fontID]
	return data, ok
}

// Family recovers the family name and style packed into fontID, the
// inverse of FontID (fontmap.rs's font_from_id).
func (m *Map) Family(fontID uint32) (family string, style fontstyle.Style, ok bool) {
	famID := uint16(fontID >> 16)
	name, ok := m.idToFamily[famID]
	if !ok {
		return "", 0, false
	}
	return name, fontstyle.Style(uint16(fontID & 0xFFFF)), true
}
