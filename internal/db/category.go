package db

import (
	"time"

	"gorm.io/gorm"
)

// Category 是习惯的展示分组
type Category struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"not null"`
	Color     string `gorm:"size:16"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	// DefaultCategoryColor 用于分类缺失时的回退颜色
	DefaultCategoryColor = "#3B82F6"
	// UncategorizedName 用于分类缺失时的回退名称
	UncategorizedName = "Uncategorized"
)

// DefaultCategories 在首次启动或导入空分类时回填
var DefaultCategories = []Category{
	{ID: "cat-1", Name: "Salud", Color: "#10B981"},
	{ID: "cat-2", Name: "Trabajo", Color: "#3B82F6"},
	{ID: "cat-3", Name: "Aprendizaje", Color: "#8B5CF6"},
	{ID: "cat-4", Name: "Fitness", Color: "#F59E0B"},
	{ID: "cat-5", Name: "Mindset", Color: "#EC4899"},
}

// EnsureDefaultCategories 当分类表为空时写入默认分类，返回写入的数量
func EnsureDefaultCategories(gdb *gorm.DB) (int, error) {
	var count int64
	if err := gdb.Model(&Category{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	defaults := make([]Category, len(DefaultCategories))
	copy(defaults, DefaultCategories)
	if err := gdb.Create(&defaults).Error; err != nil {
		return 0, err
	}
	return len(defaults), nil
}
