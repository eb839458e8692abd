package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/cribbage/internal/runlog"
	"github.com/lox/cribbage/internal/scoring"
	"github.com/muesli/termenv"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)
)

func disableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func label(s string) string {
	return labelStyle.Render(fmt.Sprintf("%-24s", s))
}

// printSummary renders the end-of-run report.
func printSummary(w io.Writer, s runlog.Summary, run *runlog.Run, files []string, showSeeds bool) {
	var b strings.Builder

	fmt.Fprintln(&b, headerStyle.Render("SIMULATION COMPLETE"))
	fmt.Fprintf(&b, "%s%d\n", label("Games played:"), s.Games)
	for _, p := range s.Players {
		fmt.Fprintf(&b, "%s%s (%s)\n",
			label(nameStyle.Render(p.Name)+" wins:"),
			winStyle.Render(fmt.Sprintf("%d", p.Wins)),
			fmt.Sprintf("%.1f%%", p.WinRate*100))
	}
	fmt.Fprintf(&b, "%s%.1f\n", label("Average hands per game:"), s.Hands.Mean)
	fmt.Fprintf(&b, "%s%.1f [%.2f, %.2f]\n", label("Median hands (95% CI):"),
		s.Hands.Median, s.Hands.CI95Low, s.Hands.CI95High)
	fmt.Fprintf(&b, "%s%.1f\n", label("Average margin:"), s.MeanMargin)
	for _, p := range s.Players {
		fmt.Fprintf(&b, "%s%d play / %d count, %d skunks\n",
			label(p.Name+" points:"), p.PlayPoints, p.CountPoints, p.Skunks)
	}
	fmt.Fprintf(&b, "%s%d\n", label("Master seed:"), s.MasterSeed)
	fmt.Fprint(&b, dimStyle.Render(fmt.Sprintf("Run %s in %s", s.RunID, s.Duration)))

	fmt.Fprintln(w, boxStyle.Render(b.String()))

	if showSeeds && len(s.Seeds) > 0 {
		fmt.Fprintln(w, headerStyle.Render("All game seeds (for reproducibility):"))
		for i, seed := range s.Seeds {
			fmt.Fprintf(w, "  Game %d: %d\n", i+1, seed)
		}
	}

	fmt.Fprintln(w, headerStyle.Render("Results saved to:"))
	for _, name := range files {
		fmt.Fprintf(w, "  %s\n", dimStyle.Render(run.Path(name)))
	}
}

// printBreakdown renders a counted hand.
func printBreakdown(w io.Writer, title string, b scoring.Breakdown) {
	rows := []struct {
		name   string
		points int
	}{
		{"Fifteens", b.Fifteens},
		{"Pairs", b.Pairs},
		{"Runs", b.Runs},
		{"Flush", b.Flush},
		{"Nobs", b.Nobs},
	}

	var sb strings.Builder
	fmt.Fprintln(&sb, headerStyle.Render(title))
	for _, r := range rows {
		fmt.Fprintf(&sb, "%s%2d\n", label(r.name), r.points)
	}
	fmt.Fprintf(&sb, "%s%s", label("Total"), winStyle.Render(fmt.Sprintf("%2d", b.Total())))
	fmt.Fprintln(w, boxStyle.Render(sb.String()))
}
