package diag

import (
	"testing"

	"surgelint/internal/source"
)

func TestBag_SortIsDeterministic(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevWarning, "eq_op", source.Span{File: 1, Start: 20, End: 25}, "b"))
	bag.Add(New(SevWarning, "double_comparison", source.Span{File: 1, Start: 5, End: 15}, "a"))
	bag.Add(New(SevError, "panic", source.Span{File: 1, Start: 5, End: 15}, "c"))
	bag.Add(New(SevWarning, "bool_comparison", source.Span{File: 0, Start: 50, End: 60}, "d"))

	bag.Sort()

	got := make([]Code, 0, bag.Len())
	for _, d := range bag.Items() {
		got = append(got, d.Code)
	}
	want := []Code{"bool_comparison", "panic", "double_comparison", "eq_op"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted order = %v, want %v", got, want)
		}
	}
}

func TestBag_LimitAndMerge(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(New(SevInfo, "a", source.Span{}, "one")) {
		t.Fatal("first Add rejected")
	}
	if !bag.Add(New(SevInfo, "b", source.Span{}, "two")) {
		t.Fatal("second Add rejected")
	}
	if bag.Add(New(SevInfo, "c", source.Span{}, "three")) {
		t.Fatal("expected Add beyond limit to be rejected")
	}

	other := NewBag(2)
	other.Add(New(SevError, "d", source.Span{}, "four"))
	bag.Merge(other)
	if bag.Len() != 3 {
		t.Fatalf("merged len = %d, want 3", bag.Len())
	}
	if !bag.HasErrors() {
		t.Fatal("expected HasErrors after merge")
	}
}

func TestBag_Dedup(t *testing.T) {
	span := source.Span{File: 1, Start: 3, End: 9}
	bag := NewBag(5)
	bag.Add(New(SevWarning, "eq_op", span, "dup"))
	bag.Add(New(SevWarning, "eq_op", span, "dup"))
	bag.Add(New(SevWarning, "eq_op", source.Span{File: 1, Start: 4, End: 9}, "other span"))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("after Dedup len = %d, want 2", bag.Len())
	}
}

func TestFix_Valid(t *testing.T) {
	container := source.Span{File: 1, Start: 10, End: 50}

	tests := []struct {
		name     string
		fix      Fix
		expected bool
	}{
		{
			name:     "no edits",
			fix:      Fix{},
			expected: false,
		},
		{
			name: "single edit inside",
			fix: Fix{Edits: []TextEdit{
				{Span: source.Span{File: 1, Start: 12, End: 20}, NewText: "x"},
			}},
			expected: true,
		},
		{
			name: "edit escapes container",
			fix: Fix{Edits: []TextEdit{
				{Span: source.Span{File: 1, Start: 40, End: 60}, NewText: "x"},
			}},
			expected: false,
		},
		{
			name: "overlapping edits",
			fix: Fix{Edits: []TextEdit{
				{Span: source.Span{File: 1, Start: 12, End: 20}, NewText: "x"},
				{Span: source.Span{File: 1, Start: 18, End: 25}, NewText: "y"},
			}},
			expected: false,
		},
		{
			name: "disjoint edits",
			fix: Fix{Edits: []TextEdit{
				{Span: source.Span{File: 1, Start: 12, End: 20}, NewText: "x"},
				{Span: source.Span{File: 1, Start: 25, End: 30}, NewText: "y"},
			}},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fix.Valid(container); got != tt.expected {
				t.Fatalf("Valid = %v, want %v", got, tt.expected)
			}
		})
	}
}
