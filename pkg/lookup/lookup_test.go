package lookup

import (
	"errors"
	"testing"
)

func TestSingle(t *testing.T) {
	items := []string{"VER", "HAM", "NOR"}

	got, err := Single(items, func(s string) bool { return s == "HAM" })
	if err != nil {
		t.Fatalf("Single returned unexpected error: %v", err)
	}
	if got != "HAM" {
		t.Errorf("Single expected 'HAM', found '%s'", got)
	}

	_, err = Single(items, func(s string) bool { return s == "ALO" })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Single on missing element expected ErrNotFound, found %v", err)
	}

	_, err = Single(items, func(s string) bool { return len(s) == 3 })
	if !errors.Is(err, ErrCardinality) {
		t.Errorf("Single on multiple matches expected ErrCardinality, found %v", err)
	}
}

func TestSingleOrNone(t *testing.T) {
	items := []int{1, 2, 3}

	got, ok, err := SingleOrNone(items, func(i int) bool { return i == 2 })
	if err != nil || !ok || got != 2 {
		t.Errorf("SingleOrNone expected (2, true, nil), found (%d, %t, %v)", got, ok, err)
	}

	_, ok, err = SingleOrNone(items, func(i int) bool { return i > 10 })
	if err != nil || ok {
		t.Errorf("SingleOrNone on no match expected (false, nil), found (%t, %v)", ok, err)
	}

	_, _, err = SingleOrNone(items, func(i int) bool { return i > 1 })
	if !errors.Is(err, ErrCardinality) {
		t.Errorf("SingleOrNone on multiple matches expected ErrCardinality, found %v", err)
	}
}

func TestFilterExactly(t *testing.T) {
	items := []string{"Leclerc", "Sainz"}

	got, err := FilterExactly(items, func(string) bool { return true }, 2)
	if err != nil {
		t.Fatalf("FilterExactly returned unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("FilterExactly expected 2 elements, found %d", len(got))
	}

	_, err = FilterExactly(items, func(string) bool { return true }, 3)
	if !errors.Is(err, ErrCardinality) {
		t.Errorf("FilterExactly with wrong count expected ErrCardinality, found %v", err)
	}
}

func TestFirst(t *testing.T) {
	items := []int{4, 8, 15}

	got, ok := First(items, func(i int) bool { return i > 5 })
	if !ok || got != 8 {
		t.Errorf("First expected (8, true), found (%d, %t)", got, ok)
	}

	_, ok = First(items, func(i int) bool { return i > 100 })
	if ok {
		t.Errorf("First on no match expected false, found true")
	}
}
