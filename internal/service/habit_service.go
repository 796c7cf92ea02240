package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/metrics"
	"gorm.io/gorm"
)

var (
	// ErrHabitNotFound 在指定习惯不存在时返回
	ErrHabitNotFound = errors.New("habit not found")
	// ErrInvalidHabit 当习惯定义不合法时返回
	ErrInvalidHabit = errors.New("invalid habit")
)

// HabitService 负责 Habit 数据的增删改查
// 删除习惯不会级联删除打卡日志
type HabitService struct {
	db *gorm.DB
}

// HabitFilter 描述列表过滤条件
type HabitFilter struct {
	IncludeArchived bool
	CategoryID      string
	Search          string
}

// HabitInput 定义创建/更新习惯时可配置字段
type HabitInput struct {
	Name        string
	Description string
	Kind        string
	Target      float64
	Unit        string
	CategoryID  string
}

// NewHabitService 构造 HabitService
func NewHabitService(gdb *gorm.DB) *HabitService {
	return &HabitService{db: gdb}
}

// List 返回习惯集合，默认不包含已归档习惯
func (s *HabitService) List(filter HabitFilter) ([]db.Habit, error) {
	var habits []db.Habit

	query := s.db.Model(&db.Habit{})
	if !filter.IncludeArchived {
		query = query.Where("archived = ?", false)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := fmt.Sprintf("%%%s%%", search)
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Order("created_at ASC").Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return habits, nil
}

// Definitions 返回全部习惯（含归档）的统计定义，归档过滤由统计层负责
func (s *HabitService) Definitions() ([]metrics.Habit, error) {
	habits, err := s.List(HabitFilter{IncludeArchived: true})
	if err != nil {
		return nil, err
	}
	return db.Definitions(habits), nil
}

// Get 根据 ID 获取习惯
func (s *HabitService) Get(id string) (*db.Habit, error) {
	var habit db.Habit
	if err := s.db.Where("id = ?", id).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return &habit, nil
}

// Create 新建习惯，分配新的 UUID
func (s *HabitService) Create(input HabitInput) (*db.Habit, error) {
	kind, err := validateHabitInput(input)
	if err != nil {
		return nil, err
	}

	habit := db.Habit{
		ID:        uuid.NewString(),
		Frequency: "daily",
	}
	applyHabitInput(&habit, input, kind)

	if err := s.db.Create(&habit).Error; err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}
	return &habit, nil
}

// Update 更新习惯定义，保留 ID、创建时间与归档状态
func (s *HabitService) Update(id string, input HabitInput) (*db.Habit, error) {
	kind, err := validateHabitInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	applyHabitInput(existing, input, kind)
	if err := s.db.Save(existing).Error; err != nil {
		return nil, fmt.Errorf("update habit: %w", err)
	}
	return existing, nil
}

// SetArchived 切换归档状态
func (s *HabitService) SetArchived(id string, archived bool) (*db.Habit, error) {
	habit, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(habit).Update("archived", archived).Error; err != nil {
		return nil, fmt.Errorf("archive habit: %w", err)
	}
	habit.Archived = archived
	return habit, nil
}

// Delete 删除习惯，日志保留为孤立记录
func (s *HabitService) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(&db.Habit{})
	if result.Error != nil {
		return fmt.Errorf("delete habit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrHabitNotFound
	}
	return nil
}

func validateHabitInput(input HabitInput) (metrics.Kind, error) {
	if strings.TrimSpace(input.Name) == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidHabit)
	}

	kind, ok := metrics.ParseKind(input.Kind)
	if !ok {
		return "", fmt.Errorf("%w: unsupported kind %q", ErrInvalidHabit, input.Kind)
	}

	// 仅用于校验，ID 在写入时分配
	if _, err := metrics.NewHabit("pending", kind, input.Target); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidHabit, err)
	}
	return kind, nil
}

func applyHabitInput(habit *db.Habit, input HabitInput, kind metrics.Kind) {
	habit.Name = strings.TrimSpace(input.Name)
	habit.Description = strings.TrimSpace(input.Description)
	habit.Kind = string(kind)
	habit.CategoryID = strings.TrimSpace(input.CategoryID)
	habit.Unit = strings.TrimSpace(input.Unit)
	habit.Target = input.Target
	if kind == metrics.KindBinary {
		habit.Target = 0
		habit.Unit = ""
	}
}
