package requestctx

import (
	"context"
	"testing"
)

func TestCorrelationIDFromContextRoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "run-42")
	if got := CorrelationIDFromContext(ctx); got != "run-42" {
		t.Fatalf("CorrelationIDFromContext = %q, want %q", got, "run-42")
	}
}

func TestCorrelationIDFromContextEmpty(t *testing.T) {
	if got := CorrelationIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestCorrelationIDFromContextNil(t *testing.T) {
	//nolint:staticcheck // nil context is part of the contract.
	if got := CorrelationIDFromContext(nil); got != "" {
		t.Fatalf("expected empty string for nil context, got %q", got)
	}
}

func TestWithCorrelationIDNilContext(t *testing.T) {
	//nolint:staticcheck // nil context is part of the contract.
	ctx := WithCorrelationID(nil, "run-99")
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	if got := CorrelationIDFromContext(ctx); got != "run-99" {
		t.Fatalf("CorrelationIDFromContext = %q, want %q", got, "run-99")
	}
}
