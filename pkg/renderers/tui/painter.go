package tui

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goliatone/go-carprice/pkg/controller"
)

// Painter prints controller snapshots: the disabled notice, the error line
// or the results table.
type Painter struct {
	w     io.Writer
	theme Theme
}

func NewPainter(w io.Writer, theme Theme) *Painter {
	return &Painter{w: w, theme: theme}
}

// Paint writes snap. Nothing is written for a page with no visible region.
func (p *Painter) Paint(snap controller.Snapshot) error {
	if snap.Locked && snap.Submit.Title != "" {
		if _, err := fmt.Fprintf(p.w, "%s%s\n", p.theme.ErrorPrefix, snap.Submit.Title); err != nil {
			return err
		}
	}
	if snap.Error.Visible {
		if _, err := fmt.Fprintf(p.w, "%s%s\n", p.theme.ErrorPrefix, snap.Error.Message); err != nil {
			return err
		}
	}
	if !snap.Results.Visible {
		return nil
	}

	if _, err := fmt.Fprintf(p.w, "\n%sEstimated price: %s\n\n", p.theme.InfoPrefix, snap.Results.Price); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	for _, row := range snap.Results.Rows {
		fmt.Fprintf(tw, "  %s:\t%s\n", row.Label, row.Value)
	}
	return tw.Flush()
}
