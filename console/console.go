// Package console renders advisory progress for the operator. Nothing here
// affects what is measured or recorded.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/weiihann/sortbench/fixture"
)

const labelWidth = 20

// Console draws a per-fixture progress bar that is rewritten in place.
type Console struct {
	w         io.Writer
	bar       progress.Model
	skipStyle lipgloss.Style
	doneStyle lipgloss.Style
}

// New creates a Console writing to w.
func New(w io.Writer) *Console {
	return &Console{
		w:         w,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		skipStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		doneStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	}
}

// Update redraws the progress line for label after done of total runs.
func (c *Console) Update(label string, done, total int) {
	percent := 1.0
	if total > 0 {
		percent = float64(done) / float64(total)
	}

	fmt.Fprintf(c.w, "\rProcessing %-*s %s", labelWidth, label, c.bar.ViewAs(percent))
}

// Done finishes the progress line for label.
func (c *Console) Done(label string) {
	c.Update(label, 1, 1)
	fmt.Fprintln(c.w)
}

// Skipped reports a fixture left out by the skip policy.
func (c *Console) Skipped(fx fixture.Fixture) {
	fmt.Fprintln(c.w, c.skipStyle.Render("[skipped]")+" "+fx.Path)
}

// Finish reports where the results were written.
func (c *Console) Finish(rawPath, aggPath string) {
	fmt.Fprintln(c.w, c.doneStyle.Render("Benchmark finished")+" -> "+rawPath+" and "+aggPath)
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Update(string, int, int) {}
func (Nop) Done(string) {}
func (Nop) Skipped(fixture.Fixture) {}
func (Nop) Finish(string, string) {}
