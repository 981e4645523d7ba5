package stats

import "testing"

func TestRankDescending(t *testing.T) {
	items := []ranked{
		{"a", 10}, {"b", 40}, {"c", 20}, {"d", 30},
	}

	got := rankDescending(items, 3, "rest")

	want := []ranked{{"b", 40}, {"d", 30}, {"c", 20}, {"rest", 10}}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRankDescendingUnderLimit(t *testing.T) {
	got := rankDescending([]ranked{{"a", 1}, {"b", 2}}, 6, "rest")
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].label != "b" || got[1].label != "a" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestRankDescendingStableTies(t *testing.T) {
	got := rankDescending([]ranked{{"first", 5}, {"second", 5}, {"third", 5}}, 6, "rest")
	if got[0].label != "first" || got[1].label != "second" || got[2].label != "third" {
		t.Fatalf("ties must keep first-seen order: %+v", got)
	}
}

func TestRankDescendingDoesNotMutateInput(t *testing.T) {
	items := []ranked{{"a", 1}, {"b", 2}}
	_ = rankDescending(items, 1, "rest")
	if items[0].label != "a" || items[1].label != "b" {
		t.Fatalf("input mutated: %+v", items)
	}
}

func TestRankDescendingEmpty(t *testing.T) {
	if got := rankDescending(nil, 6, "rest"); len(got) != 0 {
		t.Fatalf("expected empty, got %+v", got)
	}
}
