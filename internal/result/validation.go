package result

import (
	"fmt"
	"sort"
)

// 结果形状的校验只发生在写路径上。
// 积分引擎假定所有已入库的结果满足这里的全部不变式。

// positionsAreContiguous 判断一组名次（1起）是否构成连续区段。
func positionsAreContiguous(positions []int) bool {
	if len(positions) == 0 {
		return true
	}
	unique := make(map[int]bool, len(positions))
	for _, p := range positions {
		unique[p] = true
	}
	sorted := make([]int, 0, len(unique))
	for p := range unique {
		sorted = append(sorted, p)
	}
	sort.Ints(sorted)
	// [2, 3, 4, 5]: 2 + 4 - 1 == 5
	return sorted[0]+len(sorted)-1 == sorted[len(sorted)-1]
}

// positionsOf 返回名单中每名车手在完赛顺序里的名次（1起）。
func positionsOf(order []string, drivers []string) ([]int, error) {
	index := make(map[string]int, len(order))
	for i, name := range order {
		index[name] = i + 1
	}
	positions := make([]int, 0, len(drivers))
	for _, driver := range drivers {
		position, ok := index[driver]
		if !ok {
			return nil, fmt.Errorf("车手 %q 不在完赛顺序中", driver)
		}
		positions = append(positions, position)
	}
	return positions, nil
}

// validateShape 校验一场结果的全部结构不变式：
//   - 完赛顺序是gridSize名互不重复车手的完整排列
//   - 退赛名单是首退名单的超集
//   - 除名车手占据完赛顺序的连续末尾区段
//   - 退赛与除名互斥
//   - 退赛车手占据完赛与除名之间的连续区段（采用最新版规则）
func validateShape(order, firstDNF, allDNF, excluded []string, gridSize int) error {
	if len(order) != gridSize {
		return fmt.Errorf("完赛顺序应包含%d名车手，实际为%d", gridSize, len(order))
	}
	seen := make(map[string]bool, len(order))
	for _, driver := range order {
		if driver == "" {
			return fmt.Errorf("完赛顺序包含空车手名")
		}
		if seen[driver] {
			return fmt.Errorf("车手 %q 在完赛顺序中出现多次", driver)
		}
		seen[driver] = true
	}

	// 首退名单必须是退赛名单的子集
	dnfSet := make(map[string]bool, len(allDNF))
	for _, driver := range allDNF {
		dnfSet[driver] = true
	}
	for _, driver := range firstDNF {
		if !dnfSet[driver] {
			return fmt.Errorf("首退车手 %q 不在退赛名单中", driver)
		}
	}

	// 退赛与除名互斥
	for _, driver := range allDNF {
		for _, excludedDriver := range excluded {
			if driver == excludedDriver {
				return fmt.Errorf("车手 %q 不能同时退赛和被除名", driver)
			}
		}
	}

	excludedPositions, err := positionsOf(order, excluded)
	if err != nil {
		return err
	}
	dnfPositions, err := positionsOf(order, allDNF)
	if err != nil {
		return err
	}

	if !positionsAreContiguous(excludedPositions) {
		return fmt.Errorf("除名车手未占据连续名次区段")
	}
	if !positionsAreContiguous(dnfPositions) {
		return fmt.Errorf("退赛车手未占据连续名次区段")
	}

	// 除名车手必须占据末尾名次
	bestExcluded := gridSize + 1
	for _, p := range excludedPositions {
		if p < bestExcluded {
			bestExcluded = p
		}
	}
	if len(excluded) > 0 && bestExcluded+len(excluded)-1 != gridSize {
		return fmt.Errorf("除名车手必须占据完赛顺序的末尾名次")
	}

	// 退赛区段必须紧邻除名区段（没有除名时紧邻末尾）
	if len(allDNF) > 0 {
		worstDNF := 0
		for _, p := range dnfPositions {
			if p > worstDNF {
				worstDNF = p
			}
		}
		if worstDNF+1 != bestExcluded {
			return fmt.Errorf("退赛车手必须紧邻除名区段之前")
		}
	}

	return nil
}
