package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"whilec/internal/trace"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want trace.Level
		ok   bool
	}{
		{"off", trace.LevelOff, true},
		{"PHASE", trace.LevelPhase, true},
		{"detail", trace.LevelDetail, true},
		{"debug", trace.LevelDebug, true},
		{"loud", trace.LevelOff, false},
	}
	for _, tt := range tests {
		got, err := trace.ParseLevel(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	if !trace.LevelPhase.ShouldEmit(trace.ScopeStage) || trace.LevelPhase.ShouldEmit(trace.ScopeFile) {
		t.Error("phase level must pass stages only")
	}
	if trace.LevelDetail.ShouldEmit(trace.ScopeBlock) || !trace.LevelDebug.ShouldEmit(trace.ScopeBlock) {
		t.Error("blocks are debug only")
	}
	if trace.LevelError.ShouldEmit(trace.ScopeDriver) {
		t.Error("error level emits no spans")
	}
}

func TestStartNestsSpans(t *testing.T) {
	var buf bytes.Buffer
	tr, err := trace.New(trace.Config{Level: trace.LevelPhase, Format: trace.FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	ctx := trace.WithTracer(context.Background(), tr)

	root, ctx := trace.Start(ctx, trace.ScopeDriver, "build")
	stage, _ := trace.Start(ctx, trace.ScopeStage, "parse")
	stage.WithExtra("file", "a.while").End("ok")
	block, _ := trace.Start(ctx, trace.ScopeBlock, "bb_0")
	block.End("")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d events, want 4:\n%s", len(lines), buf.String())
	}
	type rec struct {
		Kind     string            `json:"kind"`
		Name     string            `json:"name"`
		SpanID   uint64            `json:"span_id"`
		ParentID uint64            `json:"parent_id"`
		Extra    map[string]string `json:"extra"`
	}
	var evs []rec
	for _, l := range lines {
		var r rec
		if err := json.Unmarshal([]byte(l), &r); err != nil {
			t.Fatal(err)
		}
		evs = append(evs, r)
	}
	if evs[1].Name != "parse" || evs[1].ParentID != evs[0].SpanID {
		t.Errorf("parse span not nested under build: %+v", evs)
	}
	if evs[2].Kind != "end" || evs[2].Extra["file"] != "a.while" {
		t.Errorf("end event = %+v", evs[2])
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "check")
	trace.Point(ctx, trace.ScopeFile, "cache", "hit")
	span.End("done")

	out := buf.String()
	for _, want := range []string{"→ driver/check", "• file/cache (hit)", "← driver/check", "(done)"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestNopIsInert(t *testing.T) {
	span, ctx := trace.Start(context.Background(), trace.ScopeDriver, "x")
	if span.ID() != 0 || trace.CurrentSpan(ctx) != 0 {
		t.Error("span without tracer got an id")
	}
	if d := span.WithExtra("k", "v").End(""); d != 0 {
		t.Errorf("nop span duration = %v", d)
	}
	tr, err := trace.New(trace.Config{Level: trace.LevelOff})
	if err != nil || tr.Enabled() {
		t.Errorf("LevelOff tracer = %v, %v", tr, err)
	}
}
