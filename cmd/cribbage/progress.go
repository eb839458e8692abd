package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/cribbage/internal/game"
)

type gameDoneMsg struct{}

type finishedMsg struct{}

type progressModel struct {
	bar   progress.Model
	done  int
	total int
}

func newProgressModel(total int) progressModel {
	return progressModel{
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		total: total,
	}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case gameDoneMsg:
		m.done++
	case finishedMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if w := msg.Width - 20; w > 10 && w < 80 {
			m.bar.Width = w
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}
	return fmt.Sprintf("%s %d/%d games\n", m.bar.ViewAs(pct), m.done, m.total)
}

// progressReporter drives a progress bar from simulator observer callbacks.
type progressReporter struct {
	program *tea.Program
	done    chan struct{}
}

func startProgress(out io.Writer, total int) *progressReporter {
	r := &progressReporter{
		program: tea.NewProgram(newProgressModel(total),
			tea.WithInput(nil),
			tea.WithOutput(out),
			tea.WithoutSignalHandler(),
		),
		done: make(chan struct{}),
	}
	go func() {
		defer close(r.done)
		_, _ = r.program.Run()
	}()
	return r
}

func (r *progressReporter) OnGameComplete(game.GameRecord, []game.HandRecord) error {
	r.program.Send(gameDoneMsg{})
	return nil
}

// Finish stops the bar and waits for the final frame to render.
func (r *progressReporter) Finish() {
	r.program.Send(finishedMsg{})
	<-r.done
}
