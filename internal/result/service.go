package result

import (
	"encoding/json"
	"fmt"

	"github.com/SlpAus/formula10-league-backend/internal/catalog"
	"github.com/SlpAus/formula10-league-backend/internal/platform/config"
	"github.com/SlpAus/formula10-league-backend/internal/platform/database"
	"github.com/SlpAus/formula10-league-backend/internal/platform/generation"
	"gorm.io/gorm/clause"
)

// ResultEntry 是录入一场正式结果所需的全部数据。
type ResultEntry struct {
	RaceNumber int
	Order      []string
	FirstDNF   []string
	AllDNF     []string
	Excluded   []string
	FastestLap string
	Sprint     *SprintResult
}

// UpdateRaceResult 校验并写入一场正式结果。
// 已有结果会被整体覆盖（建模为一次全新写入，而不是对派生状态的编辑）。
// 提交成功后换发Results代号，这是失效面最大的一类写入。
func UpdateRaceResult(entry ResultEntry) error {
	race, err := catalog.RaceByNumber(entry.RaceNumber)
	if err != nil {
		return err
	}

	if err := validateShape(entry.Order, entry.FirstDNF, entry.AllDNF, entry.Excluded, config.Cfg.League.GridSize); err != nil {
		return fmt.Errorf("分站 %d 的结果形状非法: %w", entry.RaceNumber, err)
	}

	// 完赛顺序中的每名车手都必须在参照名单中（包含停用车手）
	for _, driver := range entry.Order {
		if _, err := catalog.DriverByName(driver); err != nil {
			return err
		}
	}
	if _, err := catalog.DriverByName(entry.FastestLap); err != nil {
		return fmt.Errorf("最快圈速%w", err)
	}

	if entry.Sprint != nil && !race.HasSprint {
		return fmt.Errorf("分站 %d 不是冲刺周末，不能录入冲刺赛结果", entry.RaceNumber)
	}
	if entry.Sprint != nil {
		seen := make(map[string]bool, len(entry.Sprint.Order))
		for _, driver := range entry.Sprint.Order {
			if _, err := catalog.DriverByName(driver); err != nil {
				return err
			}
			if seen[driver] {
				return fmt.Errorf("车手 %q 在冲刺赛顺序中出现多次", driver)
			}
			seen[driver] = true
		}
		for _, driver := range entry.Sprint.DNF {
			if !seen[driver] {
				return fmt.Errorf("冲刺赛退赛车手 %q 不在冲刺赛顺序中", driver)
			}
		}
	}

	dbResult, err := marshalEntry(entry)
	if err != nil {
		return err
	}

	// 以race_number为冲突键覆盖旧行
	err = database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "race_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"order_json", "first_dnf_json", "all_dnf_json", "excluded_json",
			"fastest_lap", "sprint_order_json", "sprint_dnf_json", "updated_at",
		}),
	}).Create(&dbResult).Error
	if err != nil {
		return fmt.Errorf("无法写入分站 %d 的结果: %w", entry.RaceNumber, err)
	}

	generation.Bump(generation.Results)
	return nil
}

func marshalEntry(entry ResultEntry) (RaceResult, error) {
	orderJSON, err := json.Marshal(entry.Order)
	if err != nil {
		return RaceResult{}, fmt.Errorf("无法序列化完赛顺序: %w", err)
	}
	firstDNFJSON, err := json.Marshal(emptyIfNil(entry.FirstDNF))
	if err != nil {
		return RaceResult{}, fmt.Errorf("无法序列化首退名单: %w", err)
	}
	allDNFJSON, err := json.Marshal(emptyIfNil(entry.AllDNF))
	if err != nil {
		return RaceResult{}, fmt.Errorf("无法序列化退赛名单: %w", err)
	}
	excludedJSON, err := json.Marshal(emptyIfNil(entry.Excluded))
	if err != nil {
		return RaceResult{}, fmt.Errorf("无法序列化除名名单: %w", err)
	}

	dbResult := RaceResult{
		RaceNumber:   entry.RaceNumber,
		OrderJSON:    string(orderJSON),
		FirstDNFJSON: string(firstDNFJSON),
		AllDNFJSON:   string(allDNFJSON),
		ExcludedJSON: string(excludedJSON),
		FastestLap:   entry.FastestLap,
	}
	if entry.Sprint != nil {
		sprintOrderJSON, err := json.Marshal(entry.Sprint.Order)
		if err != nil {
			return RaceResult{}, fmt.Errorf("无法序列化冲刺赛顺序: %w", err)
		}
		sprintDNFJSON, err := json.Marshal(emptyIfNil(entry.Sprint.DNF))
		if err != nil {
			return RaceResult{}, fmt.Errorf("无法序列化冲刺赛退赛名单: %w", err)
		}
		dbResult.SprintOrderJSON = string(sprintOrderJSON)
		dbResult.SprintDNFJSON = string(sprintDNFJSON)
	}
	return dbResult, nil
}

func emptyIfNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
