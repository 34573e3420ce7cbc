package rewrite

import (
	"context"
	"strings"
)

// Status is the terminal state of a rewrite job.
type Status string

const (
	// StatusAccepted means the rewritten text passed verification and
	// replaced the original.
	StatusAccepted Status = "accepted"

	// StatusReverted means verification failed (even after the segmented
	// retry) and the original text was kept.
	StatusReverted Status = "reverted"

	// StatusErrored means the service call itself failed; the original
	// text was kept.
	StatusErrored Status = "errored"
)

// Failed reports whether the job did not produce an accepted rewrite.
func (s Status) Failed() bool {
	return s != StatusAccepted
}

// Options carries the per-job knobs of a rewrite.
type Options struct {
	// Grounding is an optional short context string sent alongside the
	// text.
	Grounding string

	// Cadence enables the deterministic cadence pass on accepted output.
	Cadence bool

	// SectionName is used by the cadence pass to skip structural sections.
	SectionName string
}

// Result is the outcome of one rewrite job. Text always holds usable
// output: the rewrite when accepted, the untouched original otherwise.
type Result struct {
	Text   string `json:"text"`
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Run executes the protect → call → verify → (segmented retry) pipeline
// for one text. It never returns corrupted output: any path that cannot
// prove the protected-content signature held ends in the original text.
func Run(ctx context.Context, svc Service, text string, level Level, opts Options) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Text: text, Status: StatusAccepted}
	}

	origSig := ComputeSignature(text)

	// Protecting
	prot := Protect(text)

	// Calling
	out, err := svc.Rewrite(ctx, prot.Text, level, opts.Grounding)
	if err != nil {
		return Result{Text: text, Status: StatusErrored, Reason: "service error: " + err.Error()}
	}
	if strings.TrimSpace(out) == "" {
		return Result{Text: text, Status: StatusErrored, Reason: "service error: empty response"}
	}

	// Verifying
	restored := prot.Restore(out)
	if ComputeSignature(restored).Equal(origSig) {
		return accept(prot, out, origSig, opts)
	}

	// SegmentedRetry: rewrite only the free spans of the ORIGINAL text,
	// leaving protected spans untouched by construction.
	retry, ok := segmentedRetry(ctx, svc, text, level, opts)
	if ok {
		retrySig := ComputeSignature(retry)
		if retrySig.Equal(origSig) {
			return Result{Text: retry, Status: StatusAccepted}
		}
		return Result{Text: text, Status: StatusReverted, Reason: DescribeMismatch(origSig, retrySig)}
	}
	return Result{Text: text, Status: StatusReverted, Reason: DescribeMismatch(origSig, ComputeSignature(restored))}
}

// accept finalizes an accepted rewrite, optionally applying the cadence
// pass to the still-protected output. The pass is discarded if it changes
// the signature.
func accept(prot *Protected, protectedOut string, origSig Signature, opts Options) Result {
	restored := prot.Restore(protectedOut)
	if !opts.Cadence {
		return Result{Text: restored, Status: StatusAccepted}
	}

	adjusted := prot.Restore(ApplyCadence(protectedOut, opts.SectionName))
	if ComputeSignature(adjusted).Equal(origSig) {
		return Result{Text: adjusted, Status: StatusAccepted}
	}
	return Result{Text: restored, Status: StatusAccepted}
}

// segmentedRetry rewrites each free segment of the original individually
// and reassembles by concatenation. A segment whose rewrite fails keeps
// its original text. Returns ok=false if the text has no free segments
// worth retrying.
func segmentedRetry(ctx context.Context, svc Service, text string, level Level, opts Options) (string, bool) {
	segs := SplitProtected(text)

	free := 0
	for _, s := range segs {
		if !s.Protected && strings.TrimSpace(s.Text) != "" {
			free++
		}
	}
	if free == 0 {
		return "", false
	}

	var b strings.Builder
	for _, s := range segs {
		if s.Protected || strings.TrimSpace(s.Text) == "" {
			b.WriteString(s.Text)
			continue
		}
		out, err := svc.Rewrite(ctx, s.Text, level, opts.Grounding)
		if err != nil || strings.TrimSpace(out) == "" {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(out)
	}
	return b.String(), true
}
