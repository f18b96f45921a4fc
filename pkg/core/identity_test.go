package core

import "testing"

func TestTableRegisterRetrieve(t *testing.T) {
	table := NewTable[string]()

	id := table.Register("alpha")
	value, ok := table.Retrieve(id)
	if !ok || value != "alpha" {
		t.Fatalf("got (%q, %v), want (alpha, true)", value, ok)
	}
}

func TestTableDeregisterInvalidatesID(t *testing.T) {
	table := NewTable[string]()

	id := table.Register("alpha")
	table.Deregister(id)

	if _, ok := table.Retrieve(id); ok {
		t.Error("expected retrieve after deregister to report not-found")
	}
}

func TestTableRecycledSlotDoesNotAliasStaleID(t *testing.T) {
	table := NewTable[string]()

	first := table.Register("alpha")
	table.Deregister(first)
	second := table.Register("beta")

	if _, ok := table.Retrieve(first); ok {
		t.Error("stale id must not resolve after its slot is recycled")
	}
	value, ok := table.Retrieve(second)
	if !ok || value != "beta" {
		t.Fatalf("got (%q, %v), want (beta, true)", value, ok)
	}
}

func TestTableZeroValueIDIsInvalid(t *testing.T) {
	var zero PairID
	if zero.Valid() {
		t.Error("expected the zero PairID to be invalid")
	}

	table := NewTable[string]()
	if _, ok := table.Retrieve(zero); ok {
		t.Error("expected retrieve of the zero PairID to fail")
	}
}

func TestTableUpdate(t *testing.T) {
	table := NewTable[int]()
	id := table.Register(1)

	if !table.Update(id, 2) {
		t.Fatal("expected update of a live id to succeed")
	}
	value, _ := table.Retrieve(id)
	if value != 2 {
		t.Errorf("got %d, want 2", value)
	}

	table.Deregister(id)
	if table.Update(id, 3) {
		t.Error("expected update of a stale id to fail")
	}
}

func TestTableLen(t *testing.T) {
	table := NewTable[int]()
	a := table.Register(1)
	table.Register(2)
	if table.Len() != 2 {
		t.Errorf("got %d, want 2", table.Len())
	}
	table.Deregister(a)
	if table.Len() != 1 {
		t.Errorf("got %d, want 1", table.Len())
	}
}
