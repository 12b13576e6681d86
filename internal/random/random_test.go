package random

import "testing"

func TestNewDeterministic(t *testing.T) {
	a := New(12345)
	b := New(12345)

	for i := 0; i < 20; i++ {
		gotA := a.IntN(100000)
		gotB := b.IntN(100000)
		if gotA != gotB {
			t.Fatalf("expected deterministic sequence, mismatch at %d: %d != %d", i, gotA, gotB)
		}
	}
}

func TestSeedWordChangesWithSalt(t *testing.T) {
	if seedWord(99, "a") == seedWord(99, "b") {
		t.Fatalf("expected different seed words for different salts")
	}
}

func TestNewSeed(t *testing.T) {
	if _, err := NewSeed(); err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
}
