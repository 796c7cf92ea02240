package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/metrics"
	"github.com/habitlog/internal/service"
)

type habitPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Target      *float64 `json:"target"`
	Unit        string   `json:"unit"`
	CategoryID  string   `json:"category_id"`
}

// ListHabits 返回习惯列表 JSON
func (a *API) ListHabits(c *gin.Context) {
	filter := service.HabitFilter{
		IncludeArchived: c.Query("archived") == "true" || c.Query("archived") == "1",
		CategoryID:      c.Query("category_id"),
		Search:          c.Query("search"),
	}

	habits, err := a.habits.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取习惯列表失败")
		return
	}

	categories, err := a.categories.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取分类失败")
		return
	}

	items := make([]gin.H, 0, len(habits))
	for _, habit := range habits {
		items = append(items, habitToPayload(habit, service.ResolveCategory(categories, habit.CategoryID)))
	}

	respondHabitSuccess(c, http.StatusOK, gin.H{"habits": items})
}

// GetHabit 返回单个习惯详情
func (a *API) GetHabit(c *gin.Context) {
	habit, ok := a.loadHabit(c)
	if !ok {
		return
	}

	payload := a.habitWithCategory(c, *habit)
	if payload == nil {
		return
	}
	payload["description_html"] = renderDescription(habit.Description)

	respondHabitSuccess(c, http.StatusOK, gin.H{"habit": payload})
}

// CreateHabit 创建习惯
func (a *API) CreateHabit(c *gin.Context) {
	input, ok := parseHabitInput(c)
	if !ok {
		return
	}

	habit, err := a.habits.Create(input)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	if payload := a.habitWithCategory(c, *habit); payload != nil {
		respondHabitSuccess(c, http.StatusCreated, gin.H{"habit": payload})
	}
}

// UpdateHabit 更新习惯
func (a *API) UpdateHabit(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return
	}

	input, ok := parseHabitInput(c)
	if !ok {
		return
	}

	habit, err := a.habits.Update(id, input)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	if payload := a.habitWithCategory(c, *habit); payload != nil {
		respondHabitSuccess(c, http.StatusOK, gin.H{"habit": payload})
	}
}

// ArchiveHabit 归档或恢复习惯，body 可选 {"archived": false}
func (a *API) ArchiveHabit(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return
	}

	archived := true
	if c.Request.ContentLength > 0 && isJSONRequest(c) {
		var payload struct {
			Archived *bool `json:"archived"`
		}
		if !bindJSON(c, &payload, "请求参数不合法") {
			return
		}
		if payload.Archived != nil {
			archived = *payload.Archived
		}
	}

	habit, err := a.habits.SetArchived(id, archived)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	if payload := a.habitWithCategory(c, *habit); payload != nil {
		respondHabitSuccess(c, http.StatusOK, gin.H{"habit": payload})
	}
}

// DeleteHabit 删除习惯，历史打卡保留
func (a *API) DeleteHabit(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return
	}

	if err := a.habits.Delete(id); err != nil {
		handleHabitError(c, err)
		return
	}

	respondHabitSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

func (a *API) loadHabit(c *gin.Context) (*db.Habit, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return nil, false
	}

	habit, err := a.habits.Get(id)
	if err != nil {
		handleHabitError(c, err)
		return nil, false
	}
	return habit, true
}

func (a *API) habitWithCategory(c *gin.Context, habit db.Habit) gin.H {
	categories, err := a.categories.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取分类失败")
		return nil
	}
	return habitToPayload(habit, service.ResolveCategory(categories, habit.CategoryID))
}

func parseHabitInput(c *gin.Context) (service.HabitInput, bool) {
	var payload habitPayload

	if isJSONRequest(c) {
		if !bindJSON(c, &payload, "请求参数不合法") {
			return service.HabitInput{}, false
		}
	} else {
		payload.Name = c.PostForm("name")
		payload.Description = c.PostForm("description")
		payload.Type = c.PostForm("type")
		payload.Unit = c.PostForm("unit")
		payload.CategoryID = c.PostForm("category_id")

		if raw := strings.TrimSpace(c.PostForm("target")); raw != "" {
			val, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				respondError(c, http.StatusBadRequest, "目标值应为数字")
				return service.HabitInput{}, false
			}
			payload.Target = &val
		}
	}

	input := service.HabitInput{
		Name:        payload.Name,
		Description: payload.Description,
		Kind:        payload.Type,
		Unit:        payload.Unit,
		CategoryID:  payload.CategoryID,
	}
	if payload.Target != nil {
		input.Target = *payload.Target
	}

	return input, true
}

func habitToPayload(habit db.Habit, category service.CategoryView) gin.H {
	item := gin.H{
		"id":          habit.ID,
		"name":        habit.Name,
		"description": habit.Description,
		"type":        habit.Kind,
		"category_id": habit.CategoryID,
		"category":    categoryViewToPayload(category),
		"frequency":   habit.Frequency,
		"archived":    habit.Archived,
		"created_at":  habit.CreatedAt.Format(time.RFC3339),
	}

	if habit.Kind == string(metrics.KindQuantitative) {
		item["target"] = habit.Target
		item["unit"] = habit.Unit
	}

	return item
}

func respondHabitSuccess(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

func handleHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHabitNotFound):
		respondError(c, http.StatusNotFound, "习惯不存在")
	case errors.Is(err, service.ErrInvalidHabit):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidDayKey):
		respondError(c, http.StatusBadRequest, "无效的日期")
	case errors.Is(err, service.ErrInvalidLogValue):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
