package conquest

import "testing"

func TestOwner_ZeroValueIsNeutral(t *testing.T) {
	var o Owner
	if !o.IsNeutral() {
		t.Fatal("zero Owner should be neutral")
	}
	if _, ok := o.Player(); ok {
		t.Fatal("neutral owner should not report a player")
	}
	if o.String() != "neutral" {
		t.Fatalf("expected neutral, got %s", o)
	}
}

func TestOwner_OwnedBy(t *testing.T) {
	o := OwnedBy(3)
	id, ok := o.Player()
	if !ok || id != 3 {
		t.Fatalf("expected player 3, got %d ok=%v", id, ok)
	}
	if !o.Is(3) || o.Is(4) {
		t.Fatal("Is should match only the owning player")
	}
	if OwnedBy(3) != o {
		t.Fatal("owners for the same player should compare equal")
	}
}
