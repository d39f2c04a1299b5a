package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"hush/internal/driver"
	"hush/internal/ui"
)

type batchOutcome struct {
	results []driver.BatchResult
	err     error
}

// runBatchWithUI runs TransformPaths while a Bubble Tea program renders its
// progress events and the step each file is in. files must be the already
// expanded input list.
func runBatchWithUI(ctx context.Context, out io.Writer, s transformSettings, files []string, opts driver.BatchOptions) ([]driver.BatchResult, error) {
	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan batchOutcome, 1)

	model := ui.NewProgressModel("hush", files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))

	// Send блокируется до старта Run и возвращается сразу после его завершения
	c := s.compiler(driver.WithPhaseObserver(func(ev driver.PhaseEvent) {
		if ev.Status == driver.PhaseStart {
			program.Send(ui.PhaseMsg{Path: ev.File, Phase: ev.Name})
		}
	}))

	go func() {
		optsCopy := opts
		optsCopy.Progress = events
		res, err := c.TransformPaths(ctx, files, optsCopy)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
