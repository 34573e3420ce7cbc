package rewrite

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// serviceFunc adapts a function to the Service interface.
type serviceFunc func(ctx context.Context, text string, level Level, grounding string) (string, error)

func (f serviceFunc) Rewrite(ctx context.Context, text string, level Level, grounding string) (string, error) {
	return f(ctx, text, level, grounding)
}

// echoService returns its input unchanged.
var echoService = serviceFunc(func(_ context.Context, text string, _ Level, _ string) (string, error) {
	return text, nil
})

func TestRunAcceptsCompliantRewrite(t *testing.T) {
	svc := serviceFunc(func(_ context.Context, text string, _ Level, _ string) (string, error) {
		return strings.ReplaceAll(text, "shows", "demonstrates"), nil
	})

	text := "The image shows growth [1] in {fig:a}."
	res := Run(context.Background(), svc, text, LevelLight, Options{})
	if res.Status != StatusAccepted {
		t.Fatalf("Status = %s (%s), want accepted", res.Status, res.Reason)
	}
	if want := "The image demonstrates growth [1] in {fig:a}."; res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
}

func TestRunEmptyTextAcceptedWithoutCall(t *testing.T) {
	svc := serviceFunc(func(context.Context, string, Level, string) (string, error) {
		t.Fatal("service called for empty text")
		return "", nil
	})
	res := Run(context.Background(), svc, "   ", LevelLight, Options{})
	if res.Status != StatusAccepted || res.Text != "   " {
		t.Errorf("Result = %+v", res)
	}
}

func TestRunServiceError(t *testing.T) {
	svc := serviceFunc(func(context.Context, string, Level, string) (string, error) {
		return "", errors.New("boom")
	})

	text := "Some prose [1]."
	res := Run(context.Background(), svc, text, LevelLight, Options{})
	if res.Status != StatusErrored {
		t.Fatalf("Status = %s, want errored", res.Status)
	}
	if res.Text != text {
		t.Errorf("Text = %q, want original", res.Text)
	}
	if !strings.Contains(res.Reason, "service error") {
		t.Errorf("Reason = %q", res.Reason)
	}
}

func TestRunEmptyResponseErrors(t *testing.T) {
	svc := serviceFunc(func(context.Context, string, Level, string) (string, error) {
		return "  ", nil
	})
	res := Run(context.Background(), svc, "Prose [1].", LevelLight, Options{})
	if res.Status != StatusErrored || !strings.Contains(res.Reason, "empty response") {
		t.Errorf("Result = %+v", res)
	}
}

func TestRunSegmentedRetryRecovers(t *testing.T) {
	// The full-text call drops a placeholder; per-segment calls behave.
	calls := 0
	svc := serviceFunc(func(_ context.Context, text string, _ Level, _ string) (string, error) {
		calls++
		if strings.Contains(text, "⟦") {
			return strings.Replace(text, "⟦0⟧", "", 1), nil
		}
		return strings.ReplaceAll(text, "growth", "coarsening"), nil
	})

	text := "Early growth [1] was rapid. Later growth [2] slowed."
	res := Run(context.Background(), svc, text, LevelLight, Options{})
	if res.Status != StatusAccepted {
		t.Fatalf("Status = %s (%s), want accepted via segmented retry", res.Status, res.Reason)
	}
	if !strings.Contains(res.Text, "[1]") || !strings.Contains(res.Text, "[2]") {
		t.Errorf("citations lost: %q", res.Text)
	}
	if !strings.Contains(res.Text, "coarsening") {
		t.Errorf("free segments not rewritten: %q", res.Text)
	}
	if calls < 2 {
		t.Errorf("calls = %d, want full call plus segment calls", calls)
	}
}

func TestRunKeepsRawCitationMarkers(t *testing.T) {
	// Raw markers are protected before the call, so a service that drops
	// the placeholder cannot delete the citation behind it.
	svc := serviceFunc(func(_ context.Context, text string, _ Level, _ string) (string, error) {
		if strings.Contains(text, "⟦") {
			return strings.Replace(text, "⟦0⟧", "", 1), nil
		}
		return strings.ReplaceAll(text, "rapid", "fast"), nil
	})

	text := "Growth was rapid {{cite:smith2020}} and then slowed."
	res := Run(context.Background(), svc, text, LevelLight, Options{})
	if res.Status != StatusAccepted {
		t.Fatalf("Status = %s (%s), want accepted via segmented retry", res.Status, res.Reason)
	}
	if !strings.Contains(res.Text, "{{cite:smith2020}}") {
		t.Errorf("marker lost: %q", res.Text)
	}
	if !strings.Contains(res.Text, "fast") {
		t.Errorf("free prose not rewritten: %q", res.Text)
	}
}

func TestRunRevertsWhenRetryAlsoFails(t *testing.T) {
	// The full-text call drops a placeholder and segment calls inject an
	// extra bracketed citation, so the retry cannot satisfy the signature.
	svc := serviceFunc(func(_ context.Context, text string, _ Level, _ string) (string, error) {
		if strings.Contains(text, "⟦") {
			return strings.Replace(text, "⟦0⟧", "", 1), nil
		}
		return text + " [99]", nil
	})

	text := "Growth was rapid [1]. It later slowed [2]."
	res := Run(context.Background(), svc, text, LevelLight, Options{})
	if res.Status != StatusReverted {
		t.Fatalf("Status = %s, want reverted", res.Status)
	}
	if res.Text != text {
		t.Errorf("Text = %q, want original", res.Text)
	}
	if !strings.Contains(res.Reason, "citations") {
		t.Errorf("Reason = %q, want a citations mismatch", res.Reason)
	}
}

func TestRunFailedSegmentKeepsOriginalSegment(t *testing.T) {
	// Full call drops a placeholder; segment calls all fail, so every
	// segment keeps its original text and the retry output equals the
	// original, which satisfies the signature.
	svc := serviceFunc(func(_ context.Context, text string, _ Level, _ string) (string, error) {
		if strings.Contains(text, "⟦") {
			return strings.Replace(text, "⟦0⟧", "", 1), nil
		}
		return "", errors.New("segment boom")
	})

	text := "Growth was rapid [1]. It slowed."
	res := Run(context.Background(), svc, text, LevelLight, Options{})
	if res.Status != StatusAccepted {
		t.Fatalf("Status = %s (%s), want accepted", res.Status, res.Reason)
	}
	if res.Text != text {
		t.Errorf("Text = %q, want original preserved", res.Text)
	}
}

func TestRunCadenceDiscardedIfSignatureChanges(t *testing.T) {
	// Cadence on: the accepted path must still hold the signature.
	text := "First paragraph [1].\n\nSecond paragraph keeps going [2]."
	res := Run(context.Background(), echoService, text, LevelLight, Options{Cadence: true, SectionName: "Discussion"})
	if res.Status != StatusAccepted {
		t.Fatalf("Status = %s", res.Status)
	}
	sig := ComputeSignature(res.Text)
	if !sig.Equal(ComputeSignature(text)) {
		t.Errorf("cadence broke the signature: %+v", sig)
	}
}
