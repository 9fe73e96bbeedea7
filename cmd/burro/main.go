// Command burro is the thin CLI around the layout engine (spec.md §1:
// "CLI, logging, file I/O" are the engine's declared collaborators, not
// its concerns). It reads a JSON-encoded ast.Document, builds a Layout,
// and writes a PDF — following the flag/logging conventions
// _examples/unidoc-unipdf's own examples/ programs use (os/exec-style
// flag.Parse, -loglevel, fmt.Fprintf(os.Stderr, ...) on failure).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/typeset/burro/common"
	"github.com/typeset/burro/fontmap"
	"github.com/typeset/burro/hyphen"
	"github.com/typeset/burro/layout"
	"github.com/typeset/burro/pdfwriter"
	"github.com/typeset/burro/shaping"
)

func main() {
	var (
		inPath      = flag.String("in", "", "path to the JSON-encoded document to lay out (required)")
		outPath     = flag.String("out", "out.pdf", "path to write the rendered PDF to")
		fontMapPath = flag.String("fontmap", "", "path to a YAML font-map file")
		systemFonts = flag.Bool("system-fonts", false, "fall back to the host's installed fonts for unmapped families")
		logLevel    = flag.Int("loglevel", int(common.LogLevelNotice), "verbosity, 0 (error) through 3 (debug)")
	)
	flag.Parse()

	common.SetLogger(common.NewConsoleLogger(common.LogLevel(*logLevel)))

	if err := run(*inPath, *outPath, *fontMapPath, *systemFonts); err != nil {
		fmt.Fprintf(os.Stderr, "burro: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath, fontMapPath string, systemFonts bool) error {
	if inPath == "" {
		return fmt.Errorf("-in is required")
	}

	raw, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read input document: %w", err)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return err
	}

	var fonts fontmap.FontMap
	if fontMapPath != "" {
		m, err := fontmap.Load(fontMapPath)
		if err != nil {
			return fmt.Errorf("load font map: %w", err)
		}
		if systemFonts {
			fonts = fontmap.NewSystemFontMap(m)
		} else {
			fonts = m
		}
	} else if systemFonts {
		fonts = fontmap.NewSystemFontMap(nil)
	} else {
		fonts = fontmap.New()
	}

	controller := layout.New(fonts, &shaping.HarfbuzzShaper{}, hyphen.NewPatternDictionary())

	built, err := controller.Build(doc)
	if err != nil {
		return fmt.Errorf("build layout: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	if err := (pdfwriter.DefaultWriter{}).Write(out, built, fonts); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}

	common.Log.Notice("wrote %d page(s) to %s", len(built.Pages), outPath)
	return nil
}
