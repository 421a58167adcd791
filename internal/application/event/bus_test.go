package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestBus_PublishSubscribe(t *testing.T) {
	t.Run("delivers to subscribed handlers in order", func(t *testing.T) {
		bus := NewBus(nil)
		var order []int

		bus.Subscribe(NameCategoriesChanged, func(ctx context.Context, e Event) error {
			order = append(order, 1)
			return nil
		})
		bus.Subscribe(NameCategoriesChanged, func(ctx context.Context, e Event) error {
			order = append(order, 2)
			return nil
		})

		bus.Publish(context.Background(), CategoriesChanged{UserID: uuid.New()})

		if len(order) != 2 || order[0] != 1 || order[1] != 2 {
			t.Errorf("expected delivery order [1 2], got %v", order)
		}
	})

	t.Run("does not deliver to other event names", func(t *testing.T) {
		bus := NewBus(nil)
		called := false

		bus.Subscribe(NameSuppliersChanged, func(ctx context.Context, e Event) error {
			called = true
			return nil
		})

		bus.Publish(context.Background(), CategoriesChanged{UserID: uuid.New()})

		if called {
			t.Error("expected supplier handler not to receive a category event")
		}
	})

	t.Run("handler error does not stop delivery", func(t *testing.T) {
		bus := NewBus(nil)
		secondCalled := false

		bus.Subscribe(NameCategoriesChanged, func(ctx context.Context, e Event) error {
			return errors.New("boom")
		})
		bus.Subscribe(NameCategoriesChanged, func(ctx context.Context, e Event) error {
			secondCalled = true
			return nil
		})

		bus.Publish(context.Background(), CategoriesChanged{UserID: uuid.New()})

		if !secondCalled {
			t.Error("expected second handler to run after first handler failed")
		}
	})

	t.Run("publish with no subscribers is a no-op", func(t *testing.T) {
		bus := NewBus(nil)
		bus.Publish(context.Background(), ProjectDeleted{UserID: uuid.New(), ProjectID: uuid.New()})
	})

	t.Run("event payload reaches the handler", func(t *testing.T) {
		bus := NewBus(nil)
		userID := uuid.New()
		var got uuid.UUID

		bus.Subscribe(NameSuppliersChanged, func(ctx context.Context, e Event) error {
			got = e.(SuppliersChanged).UserID
			return nil
		})

		bus.Publish(context.Background(), SuppliersChanged{UserID: userID})

		if got != userID {
			t.Errorf("expected user %s, got %s", userID, got)
		}
	})
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(nil)
	var mu sync.Mutex
	count := 0

	bus.Subscribe(NameCategoriesChanged, func(ctx context.Context, e Event) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	const publishers = 50
	var wg sync.WaitGroup
	wg.Add(publishers)
	for i := 0; i < publishers; i++ {
		go func() {
			defer wg.Done()
			bus.Publish(context.Background(), CategoriesChanged{UserID: uuid.New()})
		}()
	}
	wg.Wait()

	if count != publishers {
		t.Errorf("expected %d deliveries, got %d", publishers, count)
	}
}
