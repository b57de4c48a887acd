package main

import (
	"io"

	"github.com/fatih/color"

	"whilec/internal/diag"
	"whilec/internal/diagfmt"
	"whilec/internal/pipeline"
)

// printDiagnostics renders the bag of every result that has entries.
func printDiagnostics(w io.Writer, results []pipeline.CompileResult, limit int) error {
	for i := range results {
		res := &results[i]
		if res.Bag == nil || res.Bag.Len() == 0 {
			continue
		}
		if err := prettyBag(w, res.Bag, res, limit); err != nil {
			return err
		}
	}
	return nil
}

func prettyBag(w io.Writer, bag *diag.Bag, res *pipeline.CompileResult, limit int) error {
	bag.Sort()
	return diagfmt.Pretty(w, bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     !color.NoColor,
		PathMode:  diagfmt.PathModeAsGiven,
		ShowNotes: true,
		Max:       limit,
	})
}
