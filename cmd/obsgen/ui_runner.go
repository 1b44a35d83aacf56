package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"obsgen/internal/driver"
	"obsgen/internal/ui"
)

type runOutcome struct {
	result *driver.Result
	err    error
}

// runWithUI executes the pipeline behind a Bubble Tea progress display. The
// run proceeds on its own goroutine; closing the events channel ends the UI.
func runWithUI(ctx context.Context, title string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		res, err := driver.Run(ctx, optsCopy)
		outcomeCh <- runOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
