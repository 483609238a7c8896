package workspace

import "testing"

func TestPositionCompare(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b Position
		want int
	}{
		{Position{Line: 0, Character: 0}, Position{Line: 0, Character: 0}, 0},
		{Position{Line: 1, Character: 0}, Position{Line: 0, Character: 9}, 1},
		{Position{Line: 2, Character: 3}, Position{Line: 2, Character: 7}, -1},
	}
	for _, tc := range cases {
		if got := tc.a.Compare(tc.b); got != tc.want {
			t.Fatalf("Compare(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
	if !(Position{Line: 1, Character: 2}).Before(Position{Line: 1, Character: 3}) {
		t.Fatal("Before() = false for ordered positions")
	}
}

func TestRangeValidity(t *testing.T) {
	t.Parallel()

	ordered := NewRange(Position{Line: 1, Character: 0}, Position{Line: 2, Character: 0})
	if !ordered.IsValid() {
		t.Fatalf("IsValid(%s) = false, want true", ordered)
	}

	// Construction never reorders: an inverted range is kept as given.
	inverted := NewRange(Position{Line: 2, Character: 0}, Position{Line: 1, Character: 0})
	if inverted.Start != (Position{Line: 2, Character: 0}) {
		t.Fatalf("NewRange reordered bounds: %s", inverted)
	}
	if inverted.IsValid() {
		t.Fatalf("IsValid(%s) = true, want false", inverted)
	}

	empty := NewRange(Position{Line: 3, Character: 4}, Position{Line: 3, Character: 4})
	if !empty.IsEmpty() {
		t.Fatalf("IsEmpty(%s) = false, want true", empty)
	}
}
