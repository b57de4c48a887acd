package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"whilec/internal/pipeline"
	"whilec/internal/ui"
)

type compileAllOutcome struct {
	results []pipeline.CompileResult
	err     error
}

func runCompileAllWithUI(ctx context.Context, title string, reqs []*pipeline.CompileRequest, jobs int) ([]pipeline.CompileResult, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("missing compile requests")
	}
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan compileAllOutcome, 1)

	files := make([]string, len(reqs))
	copies := make([]*pipeline.CompileRequest, len(reqs))
	sink := pipeline.ChannelSink{Ch: events}
	for i, req := range reqs {
		files[i] = req.Path
		reqCopy := *req
		reqCopy.Progress = sink
		copies[i] = &reqCopy
	}

	go func() {
		res, err := pipeline.CompileAll(ctx, copies, jobs)
		outcomeCh <- compileAllOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// UI мог выйти раньше: вычитываем остаток, чтобы сборка не встала на канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
