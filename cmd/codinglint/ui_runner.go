package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"codinglint/internal/driver"
	"codinglint/internal/plugin"
	"codinglint/internal/ui"
)

// runWithUI runs the check while a progress view renders driver events on
// stderr.
func (a *app) runWithUI(ctx context.Context, title string, reg *plugin.Registry, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	opts.Sink = driver.ChannelSink{Ch: events}

	var (
		res    *driver.Result
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(events)
		res, runErr = driver.Check(ctx, reg, opts)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(a.stderr), tea.WithInput(nil))
	_, uiErr := program.Run()
	drain(events)
	<-done

	if runErr != nil {
		return res, runErr
	}
	if uiErr != nil {
		a.logger.Warn("progress view failed", "err", uiErr)
	}
	return res, nil
}

// drain reads events until the producer closes the channel. The view may
// quit early (Ctrl+C, render error) while the check is still sending.
func drain(events <-chan driver.Event) {
	for range events {
	}
}
