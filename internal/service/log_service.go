package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrInvalidDayKey 日期不是规范的 YYYY-MM-DD
	ErrInvalidDayKey = errors.New("invalid day key")
	// ErrInvalidLogValue 打卡数值不合法或与习惯类型不匹配
	ErrInvalidLogValue = errors.New("invalid log value")
)

// HabitLogService 负责按日写入打卡数值，并提供统计用的快照
type HabitLogService struct {
	db *gorm.DB
}

// NewHabitLogService 构造 HabitLogService
func NewHabitLogService(gdb *gorm.DB) *HabitLogService {
	return &HabitLogService{db: gdb}
}

// ToggleBinary 切换二元习惯当日状态：0 变 1，其余值变 0，返回新值
func (s *HabitLogService) ToggleBinary(day, habitID string) (float64, error) {
	if err := validateDay(day); err != nil {
		return 0, err
	}

	var next float64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		habit, err := loadHabit(tx, habitID)
		if err != nil {
			return err
		}
		if habit.Definition().Kind != metrics.KindBinary {
			return fmt.Errorf("%w: habit %s is not binary", ErrInvalidLogValue, habitID)
		}

		current, err := currentValue(tx, day, habitID)
		if err != nil {
			return err
		}
		if current == 0 {
			next = 1
		}
		return upsertLog(tx, day, habitID, next)
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// SetQuantitative 覆盖数量型习惯当日数值，数值必须为非负有限数
func (s *HabitLogService) SetQuantitative(day, habitID string, value float64) error {
	if err := validateDay(day); err != nil {
		return err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidLogValue, value)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		habit, err := loadHabit(tx, habitID)
		if err != nil {
			return err
		}
		if habit.Definition().Kind != metrics.KindQuantitative {
			return fmt.Errorf("%w: habit %s is not quantitative", ErrInvalidLogValue, habitID)
		}
		return upsertLog(tx, day, habitID, value)
	})
}

// Clear 删除某日某习惯的记录，等价于数值 0
func (s *HabitLogService) Clear(day, habitID string) error {
	if err := validateDay(day); err != nil {
		return err
	}
	if err := s.db.Where("day = ? AND habit_id = ?", day, habitID).Delete(&db.HabitLog{}).Error; err != nil {
		return fmt.Errorf("clear habit log: %w", err)
	}
	return nil
}

// Day 返回某一天所有习惯的数值
func (s *HabitLogService) Day(day string) (map[string]float64, error) {
	if err := validateDay(day); err != nil {
		return nil, err
	}

	var logs []db.HabitLog
	if err := s.db.Where("day = ?", day).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list day logs: %w", err)
	}

	values := make(map[string]float64, len(logs))
	for _, l := range logs {
		values[l.HabitID] = l.Value
	}
	return values, nil
}

// Snapshot 读取全部日志为统计层使用的 LogStore，调用方独占该快照
func (s *HabitLogService) Snapshot() (metrics.LogStore, error) {
	var logs []db.HabitLog
	if err := s.db.Order("day ASC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("load habit logs: %w", err)
	}

	store := make(metrics.LogStore)
	for _, l := range logs {
		store.Set(l.Day, l.HabitID, l.Value)
	}
	return store, nil
}

func validateDay(day string) error {
	if !metrics.InSupportedRange(day) {
		return fmt.Errorf("%w: %q", ErrInvalidDayKey, day)
	}
	return nil
}

func loadHabit(tx *gorm.DB, habitID string) (*db.Habit, error) {
	var habit db.Habit
	if err := tx.Where("id = ?", habitID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return &habit, nil
}

func currentValue(tx *gorm.DB, day, habitID string) (float64, error) {
	var entry db.HabitLog
	err := tx.Where("day = ? AND habit_id = ?", day, habitID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read habit log: %w", err)
	}
	return entry.Value, nil
}

func upsertLog(tx *gorm.DB, day, habitID string, value float64) error {
	record := db.HabitLog{Day: day, HabitID: habitID, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day"}, {Name: "habit_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error; err != nil {
		return fmt.Errorf("upsert habit log: %w", err)
	}
	return nil
}
