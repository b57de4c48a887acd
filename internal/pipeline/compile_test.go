package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"whilec/internal/cache"
	"whilec/internal/diag"
	"whilec/internal/pipeline"
	"whilec/internal/prng"
	"whilec/internal/trace"
)

const sumSrc = "program sum natural a; natural b; begin read(a); read(b); write(a + b) end"

func request(path, src string, opts pipeline.Options) *pipeline.CompileRequest {
	return &pipeline.CompileRequest{Path: path, Source: []byte(src), Options: opts}
}

type recorder struct {
	mu     sync.Mutex
	events []pipeline.Event
}

func (r *recorder) OnEvent(ev pipeline.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) statuses(file string, stage pipeline.Stage) []pipeline.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []pipeline.Status
	for _, ev := range r.events {
		if ev.File == file && ev.Stage == stage {
			out = append(out, ev.Status)
		}
	}
	return out
}

func TestCompilePlain(t *testing.T) {
	rec := &recorder{}
	req := request("sum.while", sumSrc, pipeline.Options{})
	req.Progress = rec
	res, err := pipeline.Compile(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(res.Assembly, "global main\n") || !strings.Contains(res.Assembly, "var_a: resb 4\nvar_b: resb 4\n") {
		t.Errorf("assembly:\n%s", res.Assembly)
	}
	if res.Cached || res.Flatten != nil || res.Graph == nil {
		t.Errorf("result = %+v", res)
	}
	if got := rec.statuses("sum.while", pipeline.StageFlatten); len(got) != 1 || got[0] != pipeline.StatusSkipped {
		t.Errorf("flatten events = %v", got)
	}
	if got := rec.statuses("sum.while", pipeline.StageEmit); len(got) != 2 || got[1] != pipeline.StatusDone {
		t.Errorf("emit events = %v", got)
	}
	names := make([]string, 0, len(res.Timings.Phases))
	for _, p := range res.Timings.Phases {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "parse,check,lower,emit" {
		t.Errorf("timed phases = %v", names)
	}
}

func TestCompileObfuscated(t *testing.T) {
	remap, scramble := prng.Fixed(5), prng.Fixed(6)
	opts := pipeline.Options{Flatten: true, RemapSeed: &remap, MaskConstants: true, ScrambleSeed: &scramble}
	src := "program p natural n; begin read(n); while n > 0 do n := n - 1 done; write(n) end"
	a, err := pipeline.Compile(context.Background(), request("p.while", src, opts))
	if err != nil {
		t.Fatal(err)
	}
	b, err := pipeline.Compile(context.Background(), request("p.while", src, opts))
	if err != nil {
		t.Fatal(err)
	}
	if a.Assembly != b.Assembly {
		t.Error("fixed seeds gave different assembly")
	}
	if a.Flatten == nil || !strings.Contains(a.Assembly, "var_"+a.Flatten.Var+": resb 4") {
		t.Errorf("flatten result = %+v", a.Flatten)
	}
	if !strings.Contains(a.Assembly, "; encoded ") {
		t.Error("constants not masked")
	}
}

func TestCompileDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"syntax", "program p begin write( end", diag.SynExpectExpression},
		{"undefined", "program p begin x := 1 end", diag.SemaUndefined},
		{"mismatch", "program p natural x; begin x := true end", diag.SemaTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := pipeline.Compile(context.Background(), request("bad.while", tt.src, pipeline.Options{}))
			if !errors.Is(err, pipeline.ErrDiagnostics) {
				t.Fatalf("err = %v", err)
			}
			if res.Graph != nil || res.Assembly != "" {
				t.Error("stages ran past a failing front end")
			}
			found := false
			for _, d := range res.Bag.Items() {
				found = found || d.Code == tt.code
			}
			if !found {
				t.Errorf("no %v in %v", tt.code, res.Bag.Items())
			}
		})
	}
}

func TestCompileEmptySourceIsNotRead(t *testing.T) {
	req := &pipeline.CompileRequest{Path: "does-not-exist.while", Source: []byte{}}
	res, err := pipeline.Compile(context.Background(), req)
	if !errors.Is(err, pipeline.ErrDiagnostics) {
		t.Fatalf("err = %v, want ErrDiagnostics", err)
	}
	for _, d := range res.Bag.Items() {
		if d.Code == diag.IOLoadFileError {
			t.Fatalf("empty in-memory source was loaded from disk: %v", res.Bag.Items())
		}
	}
}

func TestCompileMissingFile(t *testing.T) {
	res, err := pipeline.Compile(context.Background(), &pipeline.CompileRequest{Path: "/nonexistent/x.while"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !res.Bag.HasErrors() || res.Bag.Items()[0].Code != diag.IOLoadFileError {
		t.Errorf("bag = %v", res.Bag.Items())
	}
}

func TestCompileCache(t *testing.T) {
	c, err := cache.OpenAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	req := request("sum.while", sumSrc, pipeline.Options{Flatten: true})
	req.Cache = c
	first, err := pipeline.Compile(context.Background(), req)
	if err != nil || first.Cached {
		t.Fatalf("first = cached %v, %v", first.Cached, err)
	}
	second, err := pipeline.Compile(context.Background(), req)
	if err != nil || !second.Cached || second.Assembly != first.Assembly {
		t.Fatalf("second = cached %v, %v", second.Cached, err)
	}

	other := request("sum.while", sumSrc, pipeline.Options{})
	other.Cache = c
	if res, _ := pipeline.Compile(context.Background(), other); res.Cached {
		t.Error("different options hit the same entry")
	}

	entropy := prng.Entropy()
	random := request("sum.while", sumSrc, pipeline.Options{ScrambleSeed: &entropy})
	random.Cache = c
	for range 2 {
		if res, _ := pipeline.Compile(context.Background(), random); res.Cached {
			t.Error("entropy-seeded build served from cache")
		}
	}
}

func TestFrontendAndBuildGraph(t *testing.T) {
	res, err := pipeline.Frontend(context.Background(), request("sum.while", sumSrc, pipeline.Options{Flatten: true}))
	if err != nil || res.Program == nil || res.Graph != nil {
		t.Fatalf("Frontend = %+v, %v", res, err)
	}
	res, err = pipeline.BuildGraph(context.Background(), request("sum.while", sumSrc, pipeline.Options{Flatten: true}))
	if err != nil || res.Graph == nil || res.Flatten == nil || res.Assembly != "" {
		t.Fatalf("BuildGraph = %+v, %v", res, err)
	}
}

func TestCompileTraces(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)
	if _, err := pipeline.Compile(ctx, request("sum.while", sumSrc, pipeline.Options{})); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"→ stage/parse", "← stage/emit", "• block/bb_0", "{file=sum.while}"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
}

func TestCompileAll(t *testing.T) {
	rec := &recorder{}
	reqs := []*pipeline.CompileRequest{
		request("a.while", sumSrc, pipeline.Options{}),
		request("b.while", "program b begin write(undefined_name) end", pipeline.Options{}),
		request("c.while", "program c begin write(1) end", pipeline.Options{Flatten: true}),
	}
	for _, r := range reqs {
		r.Progress = rec
	}
	results, err := pipeline.CompileAll(context.Background(), reqs, 2)
	if !errors.Is(err, pipeline.ErrDiagnostics) || !strings.Contains(err.Error(), "b.while") {
		t.Fatalf("err = %v", err)
	}
	if len(results) != 3 || results[0].Path != "a.while" || results[2].Path != "c.while" {
		t.Fatalf("results out of order: %+v", results)
	}
	if results[0].Assembly == "" || results[2].Assembly == "" || results[1].Assembly != "" {
		t.Error("independent files were not compiled")
	}
	if got := rec.statuses("c.while", pipeline.StageParse); len(got) == 0 || got[0] != pipeline.StatusQueued {
		t.Errorf("c.while parse events = %v", got)
	}
}

func TestCompileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := pipeline.Compile(ctx, request("sum.while", sumSrc, pipeline.Options{})); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
}

func TestOptionsFingerprint(t *testing.T) {
	seed := prng.Fixed(3)
	a := pipeline.Options{Flatten: true, RemapSeed: &seed}.Fingerprint()
	b := pipeline.Options{Flatten: true}.Fingerprint()
	if a == b {
		t.Error("remap seed missing from fingerprint")
	}
	entropy := prng.Entropy()
	if (pipeline.Options{RemapSeed: &entropy}).Deterministic() {
		t.Error("entropy seed reported deterministic")
	}
}
