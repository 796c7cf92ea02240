package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/service"
)

type categoryPayload struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListCategories 返回全部分类
func (a *API) ListCategories(c *gin.Context) {
	categories, err := a.categories.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取分类失败")
		return
	}

	items := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		items = append(items, categoryToPayload(category))
	}

	c.JSON(http.StatusOK, gin.H{"categories": items})
}

// CreateCategory 创建分类
func (a *API) CreateCategory(c *gin.Context) {
	input, ok := parseCategoryInput(c)
	if !ok {
		return
	}

	category, err := a.categories.Create(input)
	if err != nil {
		handleCategoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": categoryToPayload(*category)})
}

// UpdateCategory 更新分类名称与颜色
func (a *API) UpdateCategory(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, http.StatusBadRequest, "无效的分类ID")
		return
	}

	input, ok := parseCategoryInput(c)
	if !ok {
		return
	}

	category, err := a.categories.Update(id, input)
	if err != nil {
		handleCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": categoryToPayload(*category)})
}

// DeleteCategory 删除分类，引用它的习惯读取时显示为未分类
func (a *API) DeleteCategory(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, http.StatusBadRequest, "无效的分类ID")
		return
	}

	if err := a.categories.Delete(id); err != nil {
		handleCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func parseCategoryInput(c *gin.Context) (service.CategoryInput, bool) {
	var payload categoryPayload
	if isJSONRequest(c) {
		if !bindJSON(c, &payload, "请求参数不合法") {
			return service.CategoryInput{}, false
		}
	} else {
		payload.Name = c.PostForm("name")
		payload.Color = c.PostForm("color")
	}
	return service.CategoryInput{Name: payload.Name, Color: payload.Color}, true
}

func categoryToPayload(category db.Category) gin.H {
	return gin.H{
		"id":    category.ID,
		"name":  category.Name,
		"color": category.Color,
	}
}

func categoryViewToPayload(view service.CategoryView) gin.H {
	return gin.H{
		"id":      view.ID,
		"name":    view.Name,
		"color":   view.Color,
		"missing": view.Missing,
	}
}

func handleCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, http.StatusNotFound, "分类不存在")
	case errors.Is(err, service.ErrInvalidCategory):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
