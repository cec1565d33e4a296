package generation

import "testing"

func TestBumpInvalidatesOnlyMaskedClasses(t *testing.T) {
	before := Current()

	Bump(Results)

	if !Stale(Results, before) {
		t.Errorf("expected Results-dependent vector to be stale after Bump(Results)")
	}
	if Stale(Users|RaceGuesses|SeasonGuesses, before) {
		t.Errorf("expected vector without Results dependency to stay fresh")
	}
	if !Stale(All, before) {
		t.Errorf("expected All-dependent vector to be stale after any bump")
	}
}

func TestCurrentVectorIsFresh(t *testing.T) {
	v := Current()
	if Stale(All, v) {
		t.Errorf("vector taken from Current must not be stale without a Bump")
	}

	Bump(Users | SeasonGuesses)
	if !Stale(Users, v) || !Stale(SeasonGuesses, v) {
		t.Errorf("expected both bumped classes to be stale")
	}
	if Stale(Results|RaceGuesses, v) {
		t.Errorf("expected untouched classes to stay fresh")
	}
}
