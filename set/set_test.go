package set

import (
	"reflect"
	"testing"
)

func TestFromSlice(t *testing.T) {
	s := FromSlice([]string{"ママ", "パパ", "ママ"})
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if !s.Has("ママ") || !s.Has("パパ") {
		t.Error("expected both names to be present")
	}
}

func TestRemove(t *testing.T) {
	s := New[int]()
	s.Add(1)
	s.Add(2)
	s.Remove(1)
	if s.Has(1) {
		t.Error("expected 1 to be removed")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSortedStrings(t *testing.T) {
	s := FromSlice([]string{"c", "a", "b"})
	if got := SortedStrings(s); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("SortedStrings() = %v", got)
	}
}
