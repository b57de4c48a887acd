package ui

import (
	"strings"
	"testing"

	"whilec/internal/pipeline"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("building", files, nil).(*progressModel)
}

func feed(m *progressModel, file string, status pipeline.Status, stages ...pipeline.Stage) {
	for _, s := range stages {
		m.observe(pipeline.Event{File: file, Stage: s, Status: status})
	}
}

func TestRowFollowsStages(t *testing.T) {
	m := newModel("a.while", "b.while")
	feed(m, "a.while", pipeline.StatusDone, pipeline.StageParse, pipeline.StageCheck)
	feed(m, "a.while", pipeline.StatusWorking, pipeline.StageLower)
	if got := m.rows[0].label(); got != "lowering" {
		t.Errorf("label = %q, want lowering", got)
	}
	if got := m.rows[0].share(); got != 2.0/6 {
		t.Errorf("share = %f", got)
	}

	feed(m, "a.while", pipeline.StatusDone, pipeline.StageLower)
	feed(m, "a.while", pipeline.StatusSkipped, pipeline.StageFlatten, pipeline.StageRemap)
	feed(m, "a.while", pipeline.StatusDone, pipeline.StageEmit)
	feed(m, "b.while", pipeline.StatusError, pipeline.StageCheck)
	// после ошибки пропуски стадий не меняют строку
	feed(m, "b.while", pipeline.StatusSkipped, pipeline.StageLower, pipeline.StageEmit)

	if m.rows[0].label() != "done" || m.rows[1].label() != "error" {
		t.Errorf("labels = %q, %q", m.rows[0].label(), m.rows[1].label())
	}
	if m.rows[1].marks[2] != "" {
		t.Errorf("lower mark after error = %q", m.rows[1].marks[2])
	}
	if p := m.Percent(); p != 1.0 {
		t.Errorf("percent = %f", p)
	}
	feed(m, "unknown.while", pipeline.StatusWorking, pipeline.StageParse)
}

func TestCachedRow(t *testing.T) {
	m := newModel("a.while")
	feed(m, "a.while", pipeline.StatusCached, pipeline.Stages...)
	if m.rows[0].label() != "cached" || m.Percent() != 1.0 {
		t.Errorf("row = %+v", m.rows[0])
	}
}

func TestViewShowsStripAndTruncates(t *testing.T) {
	m := newModel(strings.Repeat("x", 200) + ".while")
	m.width = 40
	feed(m, m.rows[0].path, pipeline.StatusSkipped, pipeline.StageFlatten)
	view := m.View()
	for _, want := range []string{"...", "queued", "0/1", "·"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
	if got := truncate("日本語テキスト", 7); got != "日本..." {
		t.Errorf("truncate = %q", got)
	}
}
