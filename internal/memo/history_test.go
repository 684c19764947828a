package memo_test

import (
	"testing"
	"time"

	"memo-go/internal/memo"
)

func TestMemoService_History(t *testing.T) {
	t.Run("records operations newest first", func(t *testing.T) {
		svc, deps := newTestService(t)

		m, err := svc.Add("groceries\nmilk, eggs")
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		deps.clock.Advance(time.Minute)

		if _, err := svc.Update(m.ID, "groceries, revised"); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		deps.clock.Advance(time.Minute)

		if err := svc.Delete(m.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		ops, err := svc.History(10)
		if err != nil {
			t.Fatalf("History() error = %v", err)
		}
		if len(ops) != 3 {
			t.Fatalf("got %d operations, want 3", len(ops))
		}

		wantKinds := []string{memo.OpDelete, memo.OpEdit, memo.OpAdd}
		for i, op := range ops {
			if op.Kind != wantKinds[i] {
				t.Errorf("ops[%d].Kind = %s, want %s", i, op.Kind, wantKinds[i])
			}
			if op.Status != memo.StatusCompleted {
				t.Errorf("ops[%d].Status = %s, want completed", i, op.Status)
			}
		}

		if ops[2].Detail != "groceries" {
			t.Errorf("add detail = %q, want first line %q", ops[2].Detail, "groceries")
		}
		if !ops[2].MemoID.Valid || ops[2].MemoID.String != m.ID {
			t.Errorf("add memo id = %v, want %s", ops[2].MemoID, m.ID)
		}
	})

	t.Run("respects the limit", func(t *testing.T) {
		svc, deps := newTestService(t)

		for _, c := range []string{"a", "b", "c", "d"} {
			if _, err := svc.Add(c); err != nil {
				t.Fatalf("Add(%q) error = %v", c, err)
			}
			deps.clock.Advance(time.Minute)
		}

		ops, err := svc.History(2)
		if err != nil {
			t.Fatalf("History() error = %v", err)
		}
		if len(ops) != 2 {
			t.Fatalf("got %d operations, want 2", len(ops))
		}
		if ops[0].Detail != "d" || ops[1].Detail != "c" {
			t.Errorf("details = %q, %q, want the two newest", ops[0].Detail, ops[1].Detail)
		}
	})

	t.Run("failed writes leave a trail", func(t *testing.T) {
		svc, deps := newTestService(t)
		deps.store.failCreate = true

		if _, err := svc.Add("never lands"); err == nil {
			t.Fatal("Add() error = nil, want error")
		}

		ops, err := svc.History(10)
		if err != nil {
			t.Fatalf("History() error = %v", err)
		}
		if len(ops) != 1 {
			t.Fatalf("got %d operations, want 1", len(ops))
		}
		if ops[0].Kind != memo.OpAdd || ops[0].Status != memo.StatusFailed {
			t.Errorf("operation = %s/%s, want add/failed", ops[0].Kind, ops[0].Status)
		}
		if ops[0].Detail != "never lands" {
			t.Errorf("Detail = %q, want the attempted title", ops[0].Detail)
		}
	})
}
