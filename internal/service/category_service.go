package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/habitlog/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidCategory 分类名称或颜色不合法
	ErrInvalidCategory = errors.New("invalid category")
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CategoryService 管理分类，删除分类不会修改引用它的习惯
type CategoryService struct {
	db *gorm.DB
}

// CategoryInput 创建/更新分类的输入
type CategoryInput struct {
	Name  string
	Color string
}

// CategoryView 是读取时解析后的分类，Missing 表示引用已悬空
type CategoryView struct {
	ID      string
	Name    string
	Color   string
	Missing bool
}

// NewCategoryService 构造 CategoryService
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// List 返回全部分类
func (s *CategoryService) List() ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.Order("created_at ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Create 新建分类
func (s *CategoryService) Create(input CategoryInput) (*db.Category, error) {
	name, color, err := validateCategoryInput(input)
	if err != nil {
		return nil, err
	}

	category := db.Category{ID: uuid.NewString(), Name: name, Color: color}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// Update 更新分类名称与颜色
func (s *CategoryService) Update(id string, input CategoryInput) (*db.Category, error) {
	name, color, err := validateCategoryInput(input)
	if err != nil {
		return nil, err
	}

	var category db.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	category.Name = name
	category.Color = color
	if err := s.db.Save(&category).Error; err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &category, nil
}

// Delete 删除分类，引用它的习惯在读取时回退为未分类
func (s *CategoryService) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(&db.Category{})
	if result.Error != nil {
		return fmt.Errorf("delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// ResolveCategory 在分类表中查找 id，找不到时返回默认名称与颜色
func ResolveCategory(categories []db.Category, id string) CategoryView {
	for _, c := range categories {
		if c.ID == id {
			color := c.Color
			if color == "" {
				color = db.DefaultCategoryColor
			}
			return CategoryView{ID: c.ID, Name: c.Name, Color: color}
		}
	}
	return CategoryView{ID: id, Name: db.UncategorizedName, Color: db.DefaultCategoryColor, Missing: true}
}

func categoryIDs(categories []db.Category) []string {
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return ids
}

func validateCategoryInput(input CategoryInput) (string, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", "", fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = db.DefaultCategoryColor
	}
	if !hexColorPattern.MatchString(color) {
		return "", "", fmt.Errorf("%w: color must look like #RRGGBB", ErrInvalidCategory)
	}
	return name, strings.ToUpper(color), nil
}
