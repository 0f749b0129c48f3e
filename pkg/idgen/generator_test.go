package idgen

import (
	"testing"

	"github.com/google/uuid"
)

func TestRequestID_Unique(t *testing.T) {
	gen, err := New(1)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen.RequestID()
		if seen[id] {
			t.Fatalf("duplicate request id: %s", id)
		}
		seen[id] = true
	}
}

func TestSessionID_IsUUID(t *testing.T) {
	gen, err := New(1)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}

	id := gen.SessionID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("session id is not a valid UUID: %s", id)
	}

	if gen.SessionID() == id {
		t.Error("expected distinct session ids per call")
	}
}

func TestNew_InvalidNodeID(t *testing.T) {
	if _, err := New(99999); err == nil {
		t.Error("expected error for out-of-range node id")
	}
}
