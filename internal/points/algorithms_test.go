package points

import (
	"fmt"
	"testing"

	"github.com/SlpAus/formula10-league-backend/internal/guess"
	"github.com/SlpAus/formula10-league-backend/internal/result"
)

func grid(size int) []string {
	drivers := make([]string, size)
	for i := range drivers {
		drivers[i] = fmt.Sprintf("D%02d", i+1)
	}
	return drivers
}

func TestPositionPointsOffsets(t *testing.T) {
	res := result.New(1, grid(20), nil, nil, nil, "D01", nil)

	cases := []struct {
		pick     string
		expected int
	}{
		{"D10", 10}, // 偏差0
		{"D09", 6},
		{"D11", 6},
		{"D12", 3},
		{"D13", 1},
		{"D14", 0},
		{"D01", 0},
		{"Nobody", 0},
	}
	for _, c := range cases {
		if found := positionPoints(c.pick, res, 10); found != c.expected {
			t.Errorf("positionPoints(%s) expected %d, found %d", c.pick, c.expected, found)
		}
	}
}

func TestPositionPointsExcludedDriverScoresZero(t *testing.T) {
	res := result.New(1, grid(20), nil, nil, []string{"D10", "D11", "D12", "D13", "D14", "D15", "D16", "D17", "D18", "D19", "D20"}, "D01", nil)

	if found := positionPoints("D10", res, 10); found != 0 {
		t.Errorf("excluded driver expected 0 position points, found %d", found)
	}
}

func TestRetirementPoints(t *testing.T) {
	withDNFs := result.New(1, grid(20), []string{"D19", "D20"}, []string{"D19", "D20"}, nil, "D01", nil)
	noDNFs := result.New(2, grid(20), nil, nil, nil, "D01", nil)

	if found := retirementPoints(guess.PickOf("D19"), withDNFs); found != 10 {
		t.Errorf("guessing a first-DNF driver expected 10, found %d", found)
	}
	if found := retirementPoints(guess.PickOf("D05"), withDNFs); found != 0 {
		t.Errorf("guessing a finishing driver expected 0, found %d", found)
	}
	if found := retirementPoints(guess.NoPick(), withDNFs); found != 0 {
		t.Errorf("guessing no retirements on a race with DNFs expected 0, found %d", found)
	}
	if found := retirementPoints(guess.NoPick(), noDNFs); found != 10 {
		t.Errorf("guessing no retirements on a clean race expected 10, found %d", found)
	}
}

func TestScoringCodomain(t *testing.T) {
	res := result.New(1, grid(20), []string{"D20"}, []string{"D20"}, nil, "D01", nil)
	allowedPosition := map[int]bool{0: true, 1: true, 3: true, 6: true, 10: true}

	for _, pick := range grid(20) {
		if found := positionPoints(pick, res, 10); !allowedPosition[found] {
			t.Errorf("position points for %s outside codomain: %d", pick, found)
		}
		if found := retirementPoints(guess.PickOf(pick), res); found != 0 && found != 10 {
			t.Errorf("retirement points for %s outside codomain: %d", pick, found)
		}
	}
}

func TestDriverRacePoints(t *testing.T) {
	res := result.New(1, grid(20), nil, nil, nil, "D01", nil)

	if found := driverRacePoints(res, "D01"); found != 26 {
		t.Errorf("P1 with fastest lap expected 26, found %d", found)
	}
	if found := driverRacePoints(res, "D02"); found != 18 {
		t.Errorf("P2 expected 18, found %d", found)
	}
	if found := driverRacePoints(res, "D10"); found != 1 {
		t.Errorf("P10 expected 1, found %d", found)
	}
	if found := driverRacePoints(res, "D11"); found != 0 {
		t.Errorf("P11 expected 0, found %d", found)
	}
}

func TestFastestLapBonusRequiresTopTen(t *testing.T) {
	res := result.New(1, grid(20), nil, nil, nil, "D11", nil)

	if found := driverRacePoints(res, "D11"); found != 0 {
		t.Errorf("fastest lap outside the top ten expected 0, found %d", found)
	}
}

func TestDriverRacePointsWithSprint(t *testing.T) {
	sprint := &result.SprintResult{Order: grid(20)}
	res := result.New(1, grid(20), nil, nil, nil, "D20", sprint)

	// 正赛P5=10分，冲刺赛P5=4分
	if found := driverRacePoints(res, "D05"); found != 14 {
		t.Errorf("race P5 plus sprint P5 expected 14, found %d", found)
	}
	// 冲刺赛只发到前八
	if found := driverRacePoints(res, "D09"); found != 2 {
		t.Errorf("race P9 with sprint P9 expected 2, found %d", found)
	}
}

func TestCumulativeRoundTrip(t *testing.T) {
	series := []int{0, 10, 0, 16, 3, 0, 11}
	sums := cumulative(series)

	if sums[0] != 0 {
		t.Errorf("cumulative series expected leading 0, found %d", sums[0])
	}
	if sums[len(sums)-1] != seriesTotal(series) {
		t.Errorf("cumulative series at final index expected %d, found %d", seriesTotal(series), sums[len(sums)-1])
	}
	if sums[3] != 26 {
		t.Errorf("cumulative series at index 3 expected 26, found %d", sums[3])
	}
}

func TestRankTotalsSharedPositions(t *testing.T) {
	totals := map[string]int{
		"Anna":  50,
		"Ben":   30,
		"Chloe": 30,
		"Dan":   30,
		"Erik":  20,
	}
	standings := rankTotals(totals)

	expected := map[string]int{"Anna": 1, "Ben": 2, "Chloe": 2, "Dan": 2, "Erik": 5}
	for name, position := range expected {
		if found := standings.PositionOf[name]; found != position {
			t.Errorf("position of %s expected %d, found %d", name, position, found)
		}
	}
	if found := len(standings.ByPosition[2]); found != 3 {
		t.Errorf("expected 3 members at position 2, found %d", found)
	}
	if _, ok := standings.ByPosition[3]; ok {
		t.Errorf("position 3 must stay empty when three members share position 2")
	}
}
