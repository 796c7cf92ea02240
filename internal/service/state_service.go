package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/metrics"
	"gorm.io/gorm"
)

// StorageName 是导出文档的固定名称，与浏览器端持久化键保持一致
const StorageName = "habit-tracker-storage"

// StateVersion 是导出文档的结构版本，导入时拒绝更高的版本
const StateVersion = 0

// ErrInvalidState 导入文档结构不合法
var ErrInvalidState = errors.New("invalid state document")

// StateHabit 是导出文档中的习惯
type StateHabit struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	CategoryID  string   `json:"categoryId"`
	Description string   `json:"description,omitempty"`
	Target      *float64 `json:"target,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Frequency   string   `json:"frequency"`
	Archived    bool     `json:"archived"`
	CreatedAt   string   `json:"createdAt"`
}

// StateCategory 是导出文档中的分类
type StateCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// AppState 是完整的应用状态
type AppState struct {
	Habits     []StateHabit                  `json:"habits"`
	Categories []StateCategory               `json:"categories"`
	Logs       map[string]map[string]float64 `json:"logs"`
}

// StateDocument 是导出/导入的顶层结构
type StateDocument struct {
	Name    string   `json:"name"`
	Version int      `json:"version"`
	State   AppState `json:"state"`
}

// ImportResult 描述导入写入的数量
type ImportResult struct {
	Habits      int
	Categories  int
	Logs        int
	SkippedDays int
}

// StateService 负责整库导出与导入
type StateService struct {
	db *gorm.DB
}

// NewStateService 构造 StateService
func NewStateService(gdb *gorm.DB) *StateService {
	return &StateService{db: gdb}
}

// Export 读取全部习惯、分类与日志
func (s *StateService) Export() (*StateDocument, error) {
	var habits []db.Habit
	if err := s.db.Order("created_at ASC").Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("export habits: %w", err)
	}
	var categories []db.Category
	if err := s.db.Order("created_at ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("export categories: %w", err)
	}
	var logs []db.HabitLog
	if err := s.db.Order("day ASC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("export logs: %w", err)
	}

	state := AppState{
		Habits:     make([]StateHabit, 0, len(habits)),
		Categories: make([]StateCategory, 0, len(categories)),
		Logs:       make(map[string]map[string]float64),
	}
	for _, h := range habits {
		item := StateHabit{
			ID:          h.ID,
			Name:        h.Name,
			Type:        h.Kind,
			CategoryID:  h.CategoryID,
			Description: h.Description,
			Unit:        h.Unit,
			Frequency:   "daily",
			Archived:    h.Archived,
			CreatedAt:   h.CreatedAt.UTC().Format(time.RFC3339),
		}
		if h.Kind == string(metrics.KindQuantitative) {
			target := h.Target
			item.Target = &target
		}
		state.Habits = append(state.Habits, item)
	}
	for _, c := range categories {
		state.Categories = append(state.Categories, StateCategory{ID: c.ID, Name: c.Name, Color: c.Color})
	}
	for _, l := range logs {
		metrics.LogStore(state.Logs).Set(l.Day, l.HabitID, l.Value)
	}

	return &StateDocument{Name: StorageName, Version: StateVersion, State: state}, nil
}

// Import 用文档内容整体替换当前数据。缺失的集合回填为空，分类为空时回填默认分类；
// 非规范日期的日志会被跳过。
func (s *StateService) Import(doc StateDocument) (*ImportResult, error) {
	if name := strings.TrimSpace(doc.Name); name != "" && name != StorageName {
		return nil, fmt.Errorf("%w: unexpected name %q", ErrInvalidState, name)
	}
	if doc.Version > StateVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidState, doc.Version)
	}

	habits, err := stateHabits(doc.State.Habits)
	if err != nil {
		return nil, err
	}
	categories := stateCategories(doc.State.Categories)

	var logs []db.HabitLog
	skipped := 0
	days := make([]string, 0, len(doc.State.Logs))
	for day := range doc.State.Logs {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		if _, ok := metrics.ParseDayKey(day); !ok {
			skipped++
			log.Printf("[state] import skipped non-canonical day %q", day)
			continue
		}
		if !metrics.InSupportedRange(day) {
			skipped++
			log.Printf("[state] import skipped out-of-range day %q", day)
			continue
		}
		for habitID, value := range doc.State.Logs[day] {
			logs = append(logs, db.HabitLog{Day: day, HabitID: habitID, Value: value})
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&db.HabitLog{}, &db.Habit{}, &db.Category{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		if len(categories) > 0 {
			if err := tx.Create(&categories).Error; err != nil {
				return err
			}
		}
		if len(habits) > 0 {
			if err := tx.Create(&habits).Error; err != nil {
				return err
			}
		}
		if len(logs) > 0 {
			if err := tx.CreateInBatches(&logs, 500).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import state: %w", err)
	}

	result := &ImportResult{Habits: len(habits), Categories: len(categories), Logs: len(logs), SkippedDays: skipped}
	log.Printf("[state] import habits=%d categories=%d logs=%d skipped_days=%d", result.Habits, result.Categories, result.Logs, result.SkippedDays)
	return result, nil
}

func stateHabits(items []StateHabit) ([]db.Habit, error) {
	habits := make([]db.Habit, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: habit #%d has no id", ErrInvalidState, i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate habit id %s", ErrInvalidState, id)
		}
		seen[id] = struct{}{}

		kind, ok := metrics.ParseKind(item.Type)
		if !ok {
			return nil, fmt.Errorf("%w: habit %s has unsupported type %q", ErrInvalidState, id, item.Type)
		}

		habit := db.Habit{
			ID:          id,
			Name:        strings.TrimSpace(item.Name),
			Description: item.Description,
			Kind:        string(kind),
			Unit:        item.Unit,
			CategoryID:  item.CategoryID,
			Frequency:   "daily",
			Archived:    item.Archived,
		}
		if kind == metrics.KindQuantitative && item.Target != nil {
			habit.Target = *item.Target
		}
		if created, err := time.Parse(time.RFC3339, item.CreatedAt); err == nil {
			habit.CreatedAt = created
		}
		habits = append(habits, habit)
	}
	return habits, nil
}

func stateCategories(items []StateCategory) []db.Category {
	if len(items) == 0 {
		defaults := make([]db.Category, len(db.DefaultCategories))
		copy(defaults, db.DefaultCategories)
		return defaults
	}

	categories := make([]db.Category, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		categories = append(categories, db.Category{ID: id, Name: item.Name, Color: item.Color})
	}
	return categories
}
