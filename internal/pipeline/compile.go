// Package pipeline drives a While source file through the compiler stages
// and reports progress, timings and traces along the way.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"whilec/internal/ast"
	"whilec/internal/cache"
	"whilec/internal/cfg"
	"whilec/internal/codegen/x86"
	"whilec/internal/diag"
	"whilec/internal/lexer"
	"whilec/internal/obfuscate"
	"whilec/internal/observ"
	"whilec/internal/parser"
	"whilec/internal/project"
	"whilec/internal/sema"
	"whilec/internal/source"
	"whilec/internal/symbols"
	"whilec/internal/trace"
)

// ErrDiagnostics is returned when the front end reported errors; they are
// in CompileResult.Bag.
var ErrDiagnostics = errors.New("diagnostics reported errors")

// CompileRequest configures the compilation of one file.
type CompileRequest struct {
	Path string
	// Source, when non-nil, is compiled instead of reading Path.
	Source         []byte
	Options        Options
	MaxDiagnostics int
	// Cache may be nil; it is consulted only for deterministic options.
	Cache    *cache.DiskCache
	Progress ProgressSink
}

// CompileResult carries every artefact produced so far. Fields of stages
// that did not run are nil.
type CompileResult struct {
	Path     string
	FileSet  *source.FileSet
	File     *source.File
	Bag      *diag.Bag
	Program  *ast.Program
	Symbols  *symbols.Table
	Graph    *cfg.Graph
	Flatten  *obfuscate.FlattenResult
	Assembly string
	Timings  observ.Report
	Cached   bool
}

// compilation is the in-flight state of one request.
type compilation struct {
	req   *CompileRequest
	res   *CompileResult
	timer *observ.Timer
}

func newCompilation(req *CompileRequest) *compilation {
	return &compilation{
		req:   req,
		res:   &CompileResult{Path: req.Path, FileSet: source.NewFileSet(), Bag: diag.NewBag(req.MaxDiagnostics)},
		timer: observ.NewTimer(),
	}
}

// stage wraps fn in a trace span, a timer phase and progress events.
func (c *compilation) stage(ctx context.Context, s Stage, fn func(ctx context.Context) (string, error)) error {
	span, ctx := trace.Start(ctx, trace.ScopeStage, string(s))
	span.WithExtra("file", c.req.Path)
	idx := c.timer.Begin(string(s))
	c.emit(s, StatusWorking, nil, 0)
	start := time.Now()

	note, err := fn(ctx)

	c.timer.End(idx, note)
	elapsed := time.Since(start)
	if err != nil {
		span.End(err.Error())
		c.emit(s, StatusError, err, elapsed)
		return err
	}
	span.End(note)
	c.emit(s, StatusDone, nil, elapsed)
	return nil
}

func (c *compilation) emit(s Stage, st Status, err error, elapsed time.Duration) {
	if c.req.Progress == nil {
		return
	}
	c.req.Progress.OnEvent(Event{File: c.req.Path, Stage: s, Status: st, Err: err, Elapsed: elapsed})
}

func (c *compilation) skip(from Stage) {
	started := false
	for _, s := range Stages {
		if s == from {
			started = true
		}
		if started {
			c.emit(s, StatusSkipped, nil, 0)
		}
	}
}

func (c *compilation) finish() CompileResult {
	c.res.Timings = c.timer.Report()
	return *c.res
}

func (c *compilation) load() error {
	var (
		id  source.FileID
		err error
	)
	if c.req.Source != nil {
		id = c.res.FileSet.AddVirtual(c.req.Path, c.req.Source)
	} else {
		id, err = c.res.FileSet.Load(c.req.Path)
		if err != nil {
			diag.ReportError(diag.BagReporter{Bag: c.res.Bag}, diag.IOLoadFileError, source.Span{}, "cannot read %s: %v", c.req.Path, err).Emit()
			return fmt.Errorf("load %s: %w", c.req.Path, err)
		}
	}
	c.res.File = c.res.FileSet.Get(id)
	return nil
}

// 1. parse, 2. check
func (c *compilation) frontend(ctx context.Context) error {
	rep := diag.BagReporter{Bag: c.res.Bag}
	err := c.stage(ctx, StageParse, func(context.Context) (string, error) {
		lx := lexer.New(c.res.File, lexer.Options{Reporter: rep})
		pr := parser.ParseFile(c.res.FileSet, lx, parser.Options{Reporter: rep, MaxErrors: maxErrors(c.req.MaxDiagnostics)})
		c.res.Program, c.res.Symbols = pr.Program, pr.Symbols
		if pr.Program == nil || pr.Errors > 0 || c.res.Bag.HasErrors() {
			return "", ErrDiagnostics
		}
		return strconv.Itoa(len(pr.Program.Decls)) + " decls", nil
	})
	if err != nil {
		c.skip(StageCheck)
		return err
	}
	err = c.stage(ctx, StageCheck, func(context.Context) (string, error) {
		if r := sema.Check(c.res.Program, sema.Options{Reporter: rep, Symbols: c.res.Symbols}); !r.OK {
			return "", ErrDiagnostics
		}
		return "", nil
	})
	if err != nil {
		c.skip(StageLower)
	}
	return err
}

// 3. lower, 4. flatten, 5. remap
func (c *compilation) middle(ctx context.Context) error {
	opts := c.req.Options
	_ = c.stage(ctx, StageLower, func(context.Context) (string, error) {
		c.res.Graph = cfg.Lower(c.res.Program.Body)
		return strconv.Itoa(c.res.Graph.Len()) + " blocks", nil
	})
	if opts.Flatten {
		_ = c.stage(ctx, StageFlatten, func(context.Context) (string, error) {
			fr := obfuscate.Flatten(c.res.Symbols, c.res.Graph)
			c.res.Flatten = &fr
			return strconv.Itoa(len(fr.Targets)) + " cases", nil
		})
	} else {
		c.emit(StageFlatten, StatusSkipped, nil, 0)
	}
	if opts.RemapSeed != nil {
		_ = c.stage(ctx, StageRemap, func(context.Context) (string, error) {
			obfuscate.RemapBlockIDs(c.res.Graph, opts.RemapSeed.New())
			return "seed " + opts.RemapSeed.String(), nil
		})
	} else {
		c.emit(StageRemap, StatusSkipped, nil, 0)
	}
	if err := cfg.Validate(c.res.Graph); err != nil {
		return fmt.Errorf("%s: invalid control flow graph: %w", c.req.Path, err)
	}
	return nil
}

// 6. emit
func (c *compilation) backend(ctx context.Context) error {
	return c.stage(ctx, StageEmit, func(ctx context.Context) (string, error) {
		asm, err := x86.Generate(c.res.Graph, c.res.Symbols, x86.Options{
			MaskConstants: c.req.Options.MaskConstants,
			Scramble:      c.req.Options.ScrambleSeed,
		})
		if err != nil {
			return "", err
		}
		c.res.Assembly = asm
		if trace.FromContext(ctx).Level().ShouldEmit(trace.ScopeBlock) {
			for _, ref := range c.res.Graph.Reachable() {
				bb := c.res.Graph.Block(ref)
				trace.Point(ctx, trace.ScopeBlock, fmt.Sprintf("bb_%d", bb.ID), strconv.Itoa(len(bb.Instrs))+" instrs")
			}
		}
		return strconv.Itoa(len(asm)) + " bytes", nil
	})
}

// Frontend parses and type-checks the request without lowering it.
func Frontend(ctx context.Context, req *CompileRequest) (CompileResult, error) {
	if err := checkRequest(req); err != nil {
		return CompileResult{}, err
	}
	c := newCompilation(req)
	if err := c.load(); err != nil {
		c.skip(StageParse)
		return c.finish(), err
	}
	err := c.frontend(ctx)
	return c.finish(), err
}

// BuildGraph runs the front end and the graph passes selected by
// req.Options, stopping before code generation.
func BuildGraph(ctx context.Context, req *CompileRequest) (CompileResult, error) {
	if err := checkRequest(req); err != nil {
		return CompileResult{}, err
	}
	c := newCompilation(req)
	if err := c.run(ctx, false); err != nil {
		return c.finish(), err
	}
	c.emit(StageEmit, StatusSkipped, nil, 0)
	return c.finish(), nil
}

// Compile runs every stage and returns the assembly. A deterministic
// request with a cache is served from it when possible.
func Compile(ctx context.Context, req *CompileRequest) (CompileResult, error) {
	if err := checkRequest(req); err != nil {
		return CompileResult{}, err
	}
	c := newCompilation(req)
	err := c.run(ctx, true)
	return c.finish(), err
}

func (c *compilation) run(ctx context.Context, emit bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.load(); err != nil {
		c.skip(StageParse)
		return err
	}
	useCache := emit && c.req.Cache != nil && c.req.Options.Deterministic()
	key := cache.Key(c.res.File.Hash, c.req.Options.Fingerprint())
	if useCache && c.lookup(ctx, key) {
		return nil
	}
	if err := c.frontend(ctx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.middle(ctx); err != nil {
		return err
	}
	if !emit {
		return nil
	}
	if err := c.backend(ctx); err != nil {
		return err
	}
	if useCache {
		c.store(ctx, key)
	}
	return nil
}

func (c *compilation) lookup(ctx context.Context, key project.Digest) bool {
	var p cache.Payload
	ok, err := c.req.Cache.Get(key, &p)
	if err != nil {
		trace.Point(ctx, trace.ScopeFile, "cache", err.Error())
		return false
	}
	if !ok || p.SourceHash != c.res.File.Hash {
		return false
	}
	trace.Point(ctx, trace.ScopeFile, "cache", "hit "+c.req.Path)
	c.res.Assembly = p.Assembly
	c.res.Cached = true
	for _, s := range Stages {
		c.emit(s, StatusCached, nil, 0)
	}
	return true
}

func (c *compilation) store(ctx context.Context, key project.Digest) {
	err := c.req.Cache.Put(key, &cache.Payload{
		SourcePath: c.req.Path,
		SourceHash: c.res.File.Hash,
		OptionsKey: c.req.Options.Fingerprint(),
		Assembly:   c.res.Assembly,
		Blocks:     c.res.Graph.Len(),
		Symbols:    c.res.Symbols.Names(),
	})
	if err != nil {
		// кэш необязателен: сборка уже удалась
		trace.Point(ctx, trace.ScopeFile, "cache", "store failed: "+err.Error())
	}
}

func checkRequest(req *CompileRequest) error {
	if req == nil {
		return errors.New("missing compile request")
	}
	if req.Path == "" {
		return errors.New("missing source path")
	}
	return nil
}

func maxErrors(n int) uint {
	if n <= 0 {
		return 0
	}
	return uint(n)
}
