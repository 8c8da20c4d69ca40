package vote

import "testing"

func TestMostCommonOrdersByCount(t *testing.T) {
	tally := New[string]()
	for _, v := range []string{"bind", "ascent", "bind", "haven", "bind", "ascent"} {
		tally.Add(v)
	}

	got := tally.MostCommon(0)
	want := []Entry[string]{{"bind", 3}, {"ascent", 2}, {"haven", 1}}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if tally.Total() != 6 || tally.Len() != 3 {
		t.Fatalf("unexpected totals: total=%d len=%d", tally.Total(), tally.Len())
	}
}

func TestMostCommonTieKeepsFirstSeen(t *testing.T) {
	tally := New[string]()
	tally.Add("split")
	tally.Add("icebox")
	tally.Add("icebox")
	tally.Add("split")

	winner, ok := tally.Winner()
	if !ok {
		t.Fatal("expected a winner")
	}
	if winner.Value != "split" {
		t.Fatalf("expected first-seen value to win tie, got %q", winner.Value)
	}
}

func TestMostCommonLimit(t *testing.T) {
	tally := New[int]()
	tally.AddN(1, 5)
	tally.AddN(2, 3)
	tally.AddN(3, 1)
	tally.AddN(4, 0)

	top := tally.MostCommon(2)
	if len(top) != 2 || top[0].Value != 1 || top[1].Value != 2 {
		t.Fatalf("unexpected top entries: %+v", top)
	}
	if tally.Count(4) != 0 || tally.Len() != 3 {
		t.Fatalf("zero-count add should be ignored")
	}
}

func TestWinnerEmpty(t *testing.T) {
	if _, ok := New[bool]().Winner(); ok {
		t.Fatal("expected no winner for empty tally")
	}
}
