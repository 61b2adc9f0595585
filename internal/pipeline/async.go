package pipeline

import (
	"sync/atomic"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/geom"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
)

// Job is the future-like handle of an asynchronous pipeline run.
// Cancellation is cooperative: the flag is polled between pipeline stages
// and between operations, so latency is bounded by one operation's
// generation time.
type Job struct {
	done      chan struct{}
	result    *model.GenerationResult
	cancelled atomic.Bool
}

// RunAsync starts the pipeline on a background goroutine. The progress
// callback, if non-nil, is invoked synchronously from that goroutine.
func (p *Pipeline) RunAsync(part geom.Solid, progress ProgressFunc) *Job {
	j := &Job{done: make(chan struct{})}
	go func() {
		defer close(j.done)
		j.result = p.run(part, progress, &j.cancelled)
	}()
	return j
}

// Cancel requests cooperative cancellation. Safe to call multiple times and
// after completion.
func (j *Job) Cancel() {
	j.cancelled.Store(true)
}

// Done returns a channel closed when the run finishes.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Result blocks until the run finishes and returns its result.
func (j *Job) Result() *model.GenerationResult {
	<-j.done
	return j.result
}
