package pipeline

import "time"

// Stage is one step of a compilation.
type Stage string

const (
	StageParse   Stage = "parse"
	StageCheck   Stage = "check"
	StageLower   Stage = "lower"
	StageFlatten Stage = "flatten"
	StageRemap   Stage = "remap"
	StageEmit    Stage = "emit"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageParse, StageCheck, StageLower, StageFlatten, StageRemap, StageEmit}

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusCached  Status = "cached"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// Event reports progress of one file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. CompileAll calls it from several
// goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }
