package eventbus

import (
	"context"
	"errors"
	"testing"
)

func TestBusPublishBroadcast(t *testing.T) {
	bus := NewVisitEventBus()
	calledA := false
	calledB := false

	bus.Subscribe(VisitEventPageView, func(ctx context.Context, event VisitEvent) error {
		calledA = true
		return nil
	})
	bus.Subscribe(VisitEventPageView, func(ctx context.Context, event VisitEvent) error {
		calledB = true
		return nil
	})

	if err := bus.Publish(context.Background(), VisitEventPageView, VisitEvent{Type: VisitEventPageView}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !calledA || !calledB {
		t.Fatalf("expected handlers to be called")
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewVisitEventBus()
	called := false
	unsubscribe := bus.Subscribe(VisitEventPageView, func(ctx context.Context, event VisitEvent) error {
		called = true
		return nil
	})
	unsubscribe()

	if err := bus.Publish(context.Background(), VisitEventPageView, VisitEvent{Type: VisitEventPageView}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("expected handler not to be called after unsubscribe")
	}
}

func TestBusPublishCollectsErrors(t *testing.T) {
	bus := NewVisitEventBus()
	wantErr := errors.New("handler failed")

	bus.Subscribe(VisitEventPageView, func(ctx context.Context, event VisitEvent) error {
		return wantErr
	})

	err := bus.Publish(context.Background(), VisitEventPageView, VisitEvent{Type: VisitEventPageView})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}
