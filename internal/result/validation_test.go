package result

import (
	"fmt"
	"testing"
)

// grid 生成一个gridSize名车手的完赛顺序 D01..Dnn。
func grid(size int) []string {
	order := make([]string, size)
	for i := range order {
		order[i] = fmt.Sprintf("D%02d", i+1)
	}
	return order
}

func TestValidateShapeAcceptsCleanResult(t *testing.T) {
	order := grid(20)

	if err := validateShape(order, nil, nil, nil, 20); err != nil {
		t.Errorf("expected clean result to validate, found error: %v", err)
	}

	// 两名退赛车手紧邻两名除名车手之前
	firstDNF := []string{order[17]}
	allDNF := []string{order[16], order[17]}
	excluded := []string{order[18], order[19]}
	if err := validateShape(order, firstDNF, allDNF, excluded, 20); err != nil {
		t.Errorf("expected trailing dnf+excluded blocks to validate, found error: %v", err)
	}
}

func TestValidateShapeRejectsWrongGridSize(t *testing.T) {
	if err := validateShape(grid(19), nil, nil, nil, 20); err == nil {
		t.Errorf("expected short grid to be rejected")
	}
}

func TestValidateShapeRejectsDuplicateDriver(t *testing.T) {
	order := grid(20)
	order[5] = order[4]
	if err := validateShape(order, nil, nil, nil, 20); err == nil {
		t.Errorf("expected duplicate driver to be rejected")
	}
}

func TestValidateShapeRejectsNonTrailingExclusion(t *testing.T) {
	order := grid(20)
	// 除名车手在P10，不在末尾
	if err := validateShape(order, nil, nil, []string{order[9]}, 20); err == nil {
		t.Errorf("expected non-trailing exclusion to be rejected")
	}
}

func TestValidateShapeRejectsNonContiguousExclusion(t *testing.T) {
	order := grid(20)
	// P18和P20被除名，P19没有
	if err := validateShape(order, nil, nil, []string{order[17], order[19]}, 20); err == nil {
		t.Errorf("expected non-contiguous exclusion to be rejected")
	}
}

func TestValidateShapeRejectsDNFAndExcludedOverlap(t *testing.T) {
	order := grid(20)
	driver := order[19]
	if err := validateShape(order, nil, []string{driver}, []string{driver}, 20); err == nil {
		t.Errorf("expected driver in both dnf and excluded lists to be rejected")
	}
}

func TestValidateShapeRejectsFirstDNFOutsideAllDNF(t *testing.T) {
	order := grid(20)
	firstDNF := []string{order[18]}
	allDNF := []string{order[19]}
	if err := validateShape(order, firstDNF, allDNF, nil, 20); err == nil {
		t.Errorf("expected first-dnf driver missing from dnf superset to be rejected")
	}
}

func TestValidateShapeRejectsGapBetweenDNFAndExclusion(t *testing.T) {
	order := grid(20)
	// 退赛在P17，除名在P19-P20，P18是正常完赛 -> 区段不相邻
	allDNF := []string{order[16]}
	excluded := []string{order[18], order[19]}
	if err := validateShape(order, nil, allDNF, excluded, 20); err == nil {
		t.Errorf("expected gap between dnf block and exclusion block to be rejected")
	}
}

func TestPositionOfRespectsExclusions(t *testing.T) {
	order := grid(20)
	result := Result{
		RaceNumber:  1,
		Order:       order,
		Excluded:    []string{order[19]},
		excludedSet: map[string]bool{order[19]: true},
	}

	position, ok := result.PositionOf(order[9])
	if !ok || position != 10 {
		t.Errorf("expected P10 for %s, found (%d, %t)", order[9], position, ok)
	}

	if _, ok := result.PositionOf(order[19]); ok {
		t.Errorf("excluded driver must not have a resolved position")
	}

	if _, ok := result.PositionOf("Unknown Driver"); ok {
		t.Errorf("unknown driver must not have a resolved position")
	}
}
