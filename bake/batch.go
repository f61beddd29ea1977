package bake

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/oxy-bake/bake/artifact"
)

// Job is one independent export in a batch. Each job must own its exporter
// and, through it, its own pose evaluator: the single-clock invariant holds
// per export, so jobs may only run in parallel when they do not share an
// evaluator.
type Job struct {
	// Name identifies the job in its result.
	Name string

	// Exporter runs the job's bake.
	Exporter Exporter
}

// JobResult pairs a job's name with its artifact or failure.
type JobResult struct {
	// Name is the job's identifier.
	Name string

	// Artifact is the finished artifact, nil when the job failed.
	Artifact *artifact.Artifact

	// Err is the job's failure, nil on success.
	Err error
}

// ExportAll runs a batch of independent export jobs over a bounded worker
// pool and returns one result per job, in job order. A failed job never
// affects its siblings.
//
// Parameters:
//   - jobs: the exports to run
//   - workers: the pool size; values below 1 default to NumCPU-1
//
// Returns:
//   - []JobResult: one result per job, index-aligned with jobs
func ExportAll(jobs []Job, workers int) []JobResult {
	results := make([]JobResult, len(jobs))
	if len(jobs) == 0 {
		return results
	}
	if workers < 1 {
		workers = max(runtime.NumCPU()-1, 1)
	}

	pool := worker.NewDynamicWorkerPool(workers, max(len(jobs), 1), 1*time.Second)

	// A WaitGroup provides the completion barrier; pool.Wait blocks until
	// workers idle-exit, which is unsuitable here.
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		idx := i
		j := job
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				art, err := j.Exporter.Export()
				results[idx] = JobResult{Name: j.Name, Artifact: art, Err: err}
				return nil, nil
			},
		})
	}
	wg.Wait()
	return results
}
