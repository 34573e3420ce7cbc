package rewrite

import (
	"context"
)

// SectionJob is one section queued for rewriting.
type SectionJob struct {
	ID   string
	Name string
	Text string
}

// SectionResult pairs a section with its rewrite outcome.
type SectionResult struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Result
}

// Progress reports that section i of n (1-based) is starting.
type Progress func(i, n int, name string)

// RunAll rewrites sections one at a time, in manuscript order, so callers
// can report "section i of N". Cancellation is cooperative: the context
// is checked between jobs, in-flight calls are not aborted, and once
// cancellation is observed no new job starts. A failed or reverted job
// never blocks the jobs after it.
func RunAll(ctx context.Context, svc Service, jobs []SectionJob, level Level, opts Options, progress Progress) []SectionResult {
	results := make([]SectionResult, len(jobs))
	cancelled := false

	for i, job := range jobs {
		if !cancelled && ctx.Err() != nil {
			cancelled = true
		}
		if cancelled {
			results[i] = SectionResult{
				ID:   job.ID,
				Name: job.Name,
				Result: Result{
					Text:   job.Text,
					Status: StatusReverted,
					Reason: "cancelled before start",
				},
			}
			continue
		}

		if progress != nil {
			progress(i+1, len(jobs), job.Name)
		}

		o := opts
		o.SectionName = job.Name
		results[i] = SectionResult{ID: job.ID, Name: job.Name, Result: Run(ctx, svc, job.Text, level, o)}
	}
	return results
}

// RetryFailed resubmits only the sections whose previous result failed,
// keeping accepted results untouched. prior and jobs are matched by ID;
// jobs without a prior result are treated as failed and run.
func RetryFailed(ctx context.Context, svc Service, jobs []SectionJob, prior []SectionResult, level Level, opts Options, progress Progress) []SectionResult {
	prevByID := make(map[string]SectionResult, len(prior))
	for _, r := range prior {
		prevByID[r.ID] = r
	}

	var failed []SectionJob
	for _, job := range jobs {
		prev, ok := prevByID[job.ID]
		if !ok || prev.Status.Failed() {
			failed = append(failed, job)
		}
	}

	retried := RunAll(ctx, svc, failed, level, opts, progress)
	retriedByID := make(map[string]SectionResult, len(retried))
	for _, r := range retried {
		retriedByID[r.ID] = r
	}

	results := make([]SectionResult, len(jobs))
	for i, job := range jobs {
		if r, ok := retriedByID[job.ID]; ok {
			results[i] = r
		} else {
			results[i] = prevByID[job.ID]
		}
	}
	return results
}
