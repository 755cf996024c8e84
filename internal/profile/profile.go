// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package profile implements the self-instrumentation SPEC_FULL.md §4
// describes: a Recorder that tallies diagnostic tags and token counts
// per parse and can export them as a github.com/google/pprof/profile.Profile
// for offline inspection, the direct generalization of the teacher's
// own nerrors/nsavederrors counters into something dumpable.
package profile

import (
	"time"

	"github.com/google/pprof/profile"

	"github.com/glepnir/arocc/internal/diag"
	"github.com/glepnir/arocc/internal/token"
)

// Recorder tallies per-parse counters. A zero Recorder is ready to use.
type Recorder struct {
	tokensConsumed int64
	declarations   int64
	tagCounts      map[diag.Tag]int64
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{tagCounts: make(map[diag.Tag]int64)}
}

// ObserveToken counts one token consumed from the stream.
func (r *Recorder) ObserveToken() { r.tokensConsumed++ }

// ObserveDeclaration counts one completed top-level declaration.
func (r *Recorder) ObserveDeclaration() { r.declarations++ }

// ObserveDiagnostic tallies one diagnostic by tag. Wrap a diag.Sink
// with RecordingSink to call this automatically.
func (r *Recorder) ObserveDiagnostic(tag diag.Tag) {
	if r.tagCounts == nil {
		r.tagCounts = make(map[diag.Tag]int64)
	}
	r.tagCounts[tag]++
}

// RecordingStream wraps a token.Stream, forwarding every call to it
// while tallying each token the Coordinator actually consumes via
// Next. Peek/PeekAt lookahead is not counted: spec.md §4.4 makes
// lookahead free, only consumption advances the parse.
type RecordingStream struct {
	token.Stream
	Recorder *Recorder
}

func (s RecordingStream) Next() token.Token {
	s.Recorder.ObserveToken()
	return s.Stream.Next()
}

// RecordingSink wraps a diag.Sink, forwarding every Report to it while
// tallying the tag into a Recorder. The Declaration Coordinator is
// never aware its sink is being observed (spec.md §5's "the diagnostic
// sink is called synchronously" holds unchanged).
type RecordingSink struct {
	Sink     diag.Sink
	Recorder *Recorder
}

func (s RecordingSink) Report(r diag.Record) {
	s.Recorder.ObserveDiagnostic(r.Tag)
	s.Sink.Report(r)
}

// Export renders the accumulated counts as a pprof Profile with the
// sample type "tokens"/"count" (a single sample of the total tokens
// consumed) and, when at least one diagnostic was observed, a second
// sample type "diagnostics"/"count" (one sample per distinct
// diagnostic tag, labeled with the tag's name). at is the time to
// stamp the profile with (stored as TimeNanos); pass a real clock
// reading at the call site rather than inside this package.
func (r *Recorder) Export(at time.Time) *profile.Profile {
	p := &profile.Profile{
		TimeNanos: at.UnixNano(),
		SampleType: []*profile.ValueType{
			{Type: "tokens", Unit: "count"},
		},
	}

	tokenFn := &profile.Function{ID: 1, Name: "parse"}
	tokenLoc := &profile.Location{ID: 1, Line: []profile.Line{{Function: tokenFn}}}
	p.Function = append(p.Function, tokenFn)
	p.Location = append(p.Location, tokenLoc)
	p.Sample = append(p.Sample, &profile.Sample{
		Location: []*profile.Location{tokenLoc},
		Value:    []int64{r.tokensConsumed},
	})

	if len(r.tagCounts) > 0 {
		p.SampleType = append(p.SampleType, &profile.ValueType{Type: "diagnostics", Unit: "count"})
		for i := range p.Sample {
			p.Sample[i].Value = append(p.Sample[i].Value, 0)
		}
		id := uint64(2)
		for tag, count := range r.tagCounts {
			fn := &profile.Function{ID: id, Name: tag.String()}
			loc := &profile.Location{ID: id, Line: []profile.Line{{Function: fn}}}
			p.Function = append(p.Function, fn)
			p.Location = append(p.Location, loc)
			p.Sample = append(p.Sample, &profile.Sample{
				Location: []*profile.Location{loc},
				Value:    []int64{0, count},
			})
			id++
		}
	}

	return p
}

// TokensConsumed and Declarations report the raw counters, for tests
// that want the numbers without round-tripping through a Profile.
func (r *Recorder) TokensConsumed() int64 { return r.tokensConsumed }
func (r *Recorder) Declarations() int64   { return r.declarations }
