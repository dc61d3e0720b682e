package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"

	docpage "github.com/alnah/go-docpage"
	"github.com/alnah/go-docpage/internal/yamlutil"
)

// Catalog sections selectable with --section.
const (
	sectionFeatures     = "features"
	sectionSnippets     = "snippets"
	sectionSteps        = "steps"
	sectionArchitecture = "architecture"
)

// catalogDump is the YAML shape of the built-in catalog.
type catalogDump struct {
	Features     []docpage.FeatureCard        `yaml:"features,omitempty"`
	Snippets     []docpage.CodeSnippet        `yaml:"snippets,omitempty"`
	Steps        []docpage.ImplementationStep `yaml:"steps,omitempty"`
	Architecture *docpage.ArchitectureAsset   `yaml:"architecture,omitempty"`
}

func runCatalog(args []string, env *Environment) error {
	flags, err := parseCatalogFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printCatalogUsage(env.Stdout)
		return err
	}
	if err != nil {
		return err
	}

	cat, err := docpage.DefaultCatalog()
	if err != nil {
		return err
	}

	dump, err := selectSection(cat, flags.section)
	if err != nil {
		return err
	}

	switch flags.format {
	case "yaml":
		out, err := yamlutil.Marshal(dump)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(out)
		return err
	case "text":
		printCatalogText(env.Stdout, dump, flags.noColor)
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q (want yaml or text)", ErrUsage, flags.format)
	}
}

func selectSection(cat *docpage.Catalog, section string) (*catalogDump, error) {
	asset := cat.ArchitectureAsset()
	all := &catalogDump{
		Features:     cat.ListFeatures(),
		Snippets:     cat.ListSnippets(),
		Steps:        cat.ListSteps(),
		Architecture: &asset,
	}

	switch section {
	case "":
		return all, nil
	case sectionFeatures:
		return &catalogDump{Features: all.Features}, nil
	case sectionSnippets:
		return &catalogDump{Snippets: all.Snippets}, nil
	case sectionSteps:
		return &catalogDump{Steps: all.Steps}, nil
	case sectionArchitecture:
		return &catalogDump{Architecture: all.Architecture}, nil
	}
	return nil, fmt.Errorf("%w: unknown section %q", ErrUsage, section)
}

// printCatalogText writes a human-readable outline of dump.
func printCatalogText(w io.Writer, dump *catalogDump, noColor bool) {
	heading := color.New(color.Bold, color.FgCyan)
	name := color.New(color.FgGreen)
	faint := color.New(color.Faint)
	if noColor {
		for _, c := range []*color.Color{heading, name, faint} {
			c.DisableColor()
		}
	}

	if len(dump.Features) > 0 {
		heading.Fprintln(w, "Features")
		for _, f := range dump.Features {
			fmt.Fprintf(w, "  %s %s\n", name.Sprint(f.Title), faint.Sprintf("[%s]", f.GlyphName))
		}
		fmt.Fprintln(w)
	}

	if dump.Architecture != nil {
		heading.Fprintln(w, "Architecture")
		fmt.Fprintf(w, "  %s %s\n", name.Sprint(dump.Architecture.AltText), faint.Sprint(dump.Architecture.SourceURI))
		fmt.Fprintln(w)
	}

	if len(dump.Snippets) > 0 {
		heading.Fprintln(w, "Snippets")
		for _, s := range dump.Snippets {
			fmt.Fprintf(w, "  %s %s %s\n", name.Sprint(s.ID), s.Heading, faint.Sprintf("(%s)", s.Language))
		}
		fmt.Fprintln(w)
	}

	if len(dump.Steps) > 0 {
		heading.Fprintln(w, "Steps")
		for i, s := range dump.Steps {
			fmt.Fprintf(w, "  %s %s\n", name.Sprintf("%d.", i+1), s.Heading)
			for _, sub := range s.SubSteps {
				fmt.Fprintf(w, "     - %s\n", sub)
			}
		}
		fmt.Fprintln(w)
	}
}
