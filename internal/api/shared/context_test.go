package shared

import (
	"context"
	"testing"
)

func TestTraceIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)

	if len(traceID) != TraceIDLength*2 {
		t.Errorf("trace ID length = %d, want %d hex chars", len(traceID), TraceIDLength*2)
	}
}

func TestTraceIDsAreUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		traceID := GetTraceID(SetTraceID(context.Background()))
		if seen[traceID] {
			t.Fatalf("duplicate trace ID generated: %s", traceID)
		}
		seen[traceID] = true
	}
}

func TestGetTraceIDMissing(t *testing.T) {
	t.Parallel()

	if got := GetTraceID(context.Background()); got != "" {
		t.Errorf("GetTraceID(empty ctx) = %q, want empty", got)
	}
}
