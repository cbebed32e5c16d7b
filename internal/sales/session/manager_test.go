package session

import (
	"testing"
	"time"

	"pos_admin_backend/internal/sales/cart"
	"pos_admin_backend/platform/apperr"

	"github.com/google/uuid"
)

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(time.Hour, time.Minute, nil)
	operator := uuid.New()

	created := m.Create(operator, cart.Catalog{})

	got, err := m.Get(created.ID, operator)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("got session %v, want %v", got.ID, created.ID)
	}

	err = got.Do(func(b *cart.Builder) error {
		if b.Step() != cart.StepCategory {
			t.Fatalf("new session step = %v, want category", b.Step())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
}

func TestManager_Get_UnknownID(t *testing.T) {
	m := NewManager(time.Hour, time.Minute, nil)

	_, err := m.Get(uuid.New(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestManager_Get_OtherOperator(t *testing.T) {
	m := NewManager(time.Hour, time.Minute, nil)
	created := m.Create(uuid.New(), cart.Catalog{})

	_, err := m.Get(created.ID, uuid.New())
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestManager_Delete_CancelsBuilder(t *testing.T) {
	m := NewManager(time.Hour, time.Minute, nil)
	operator := uuid.New()
	created := m.Create(operator, cart.Catalog{})

	m.Delete(created.ID)

	if _, err := m.Get(created.ID, operator); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	created.Do(func(b *cart.Builder) error {
		if !b.Cancelled() {
			t.Fatal("builder not cancelled on delete")
		}
		return nil
	})

	// Deleting again is a no-op.
	m.Delete(created.ID)
}

func TestManager_Sweep_EvictsIdleSessions(t *testing.T) {
	m := NewManager(30*time.Minute, time.Minute, nil)
	operator := uuid.New()

	stale := m.Create(operator, cart.Catalog{})
	fresh := m.Create(operator, cart.Catalog{})

	stale.mu.Lock()
	stale.lastAccess = time.Now().Add(-time.Hour)
	stale.mu.Unlock()

	m.sweep(time.Now())

	if m.Count() != 1 {
		t.Fatalf("session count = %d, want 1", m.Count())
	}
	if _, err := m.Get(stale.ID, operator); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("stale session survived sweep: %v", err)
	}
	if _, err := m.Get(fresh.ID, operator); err != nil {
		t.Fatalf("fresh session evicted: %v", err)
	}
}
