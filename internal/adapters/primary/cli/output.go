package cli

import (
	"fmt"
	"io"
	"iter"

	"github.com/fatih/color"

	"sg-cli/internal/core/domain"
	"sg-cli/internal/core/services"
)

func printDone(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, "%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, a...))
}

func printPartial(w io.Writer, r *services.BatchReport) {
	msg := fmt.Sprintf("%s stopped: %d of %d records committed before the failure", r.Operation, r.Committed, r.Selected)
	if r.FailedEdition != nil {
		msg += fmt.Sprintf(" (failed at edition %d)", *r.FailedEdition)
	}
	fmt.Fprintf(w, "%s %s\n", color.RedString("✗"), msg)
}

// printFrozen drains the frozen report into an IMAGE STAGE table.
func printFrozen(w io.Writer, report iter.Seq2[domain.FrozenImage, error]) error {
	header := false
	for img, err := range report {
		if err != nil {
			return err
		}
		if !header {
			fmt.Fprintln(w, color.New(color.Bold).Sprint("IMAGE STAGE"))
			header = true
		}
		fmt.Fprintf(w, "%s %d\n", img.Image, img.Stage)
	}
	if !header {
		fmt.Fprintln(w, color.YellowString("no frozen images"))
	}
	return nil
}
