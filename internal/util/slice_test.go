package util

import "testing"

func TestFilterSlice(t *testing.T) {
	got := FilterSlice([]int{1, 2, 3, 4, 5}, func(v int) bool { return v%2 == 0 })
	want := []int{2, 4}
	if len(got) != len(want) {
		t.Fatalf("FilterSlice() = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("FilterSlice()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestGroupBy(t *testing.T) {
	groups := GroupBy([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })
	if len(groups[true]) != 2 || len(groups[false]) != 2 {
		t.Fatalf("GroupBy() = %v", groups)
	}
}

func TestSum(t *testing.T) {
	total := Sum([]int{1, 2, 3}, func(v int) int { return v * 2 })
	if total != 12 {
		t.Fatalf("Sum() = %d, want 12", total)
	}
}

func TestKeys(t *testing.T) {
	keys := Keys(map[string]int{"a": 1, "b": 2})
	if len(keys) != 2 {
		t.Fatalf("Keys() = %v, want len 2", keys)
	}
}
