package db

import (
	"time"

	"github.com/habitlog/internal/metrics"
)

// Habit 定义习惯模型
// Kind 为 binary/quantitative；Target 仅对 quantitative 有意义，Unit 只用于展示
// CategoryID 是对 Category 的弱引用，分类删除后不会级联修改习惯
// Archived 的习惯不参与汇总统计，但保留历史打卡
type Habit struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"not null"`
	Description string
	Kind        string `gorm:"size:16;not null"`
	Target      float64
	Unit        string
	CategoryID  string `gorm:"size:36;index"`
	Frequency   string `gorm:"size:16;default:daily"`
	Archived    bool   `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Definition 转换为统计层使用的只读定义
func (h Habit) Definition() metrics.Habit {
	kind, ok := metrics.ParseKind(h.Kind)
	if !ok {
		kind = metrics.KindBinary
	}
	return metrics.Habit{
		ID:         h.ID,
		Kind:       kind,
		Target:     h.Target,
		CategoryID: h.CategoryID,
		Archived:   h.Archived,
	}
}

// Definitions 批量转换
func Definitions(habits []Habit) []metrics.Habit {
	defs := make([]metrics.Habit, 0, len(habits))
	for _, h := range habits {
		defs = append(defs, h.Definition())
	}
	return defs
}

// HabitLog 记录某习惯在某个自然日的数值
// Day 使用 YYYY-MM-DD 规范格式，Day + HabitID 唯一，写入采用覆盖语义
// 删除习惯时不级联删除日志，孤立记录在统计时被忽略
type HabitLog struct {
	ID        uint    `gorm:"primaryKey"`
	Day       string  `gorm:"size:10;not null;index;index:idx_habit_log_day_habit,unique"`
	HabitID   string  `gorm:"size:36;not null;index:idx_habit_log_day_habit,unique"`
	Value     float64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 固定表名，保证唯一索引作用到 day + habit_id
func (HabitLog) TableName() string {
	return "habit_logs"
}
