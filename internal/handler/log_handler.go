package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/metrics"
	"github.com/habitlog/internal/service"
)

// GetDayLogs 返回某日（默认今天）每个未归档习惯的数值与完成状态
func (a *API) GetDayLogs(c *gin.Context) {
	day := strings.TrimSpace(c.Query("date"))
	if day == "" {
		day = metrics.DayKey(a.today())
	}

	values, err := a.habitLogs.Day(day)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	habits, err := a.habits.List(service.HabitFilter{})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取习惯列表失败")
		return
	}

	items := make([]gin.H, 0, len(habits))
	completed := 0
	for _, habit := range habits {
		value := values[habit.ID]
		done := metrics.IsCompleted(habit.Definition(), value)
		if done {
			completed++
		}
		items = append(items, gin.H{
			"habit_id":  habit.ID,
			"name":      habit.Name,
			"type":      habit.Kind,
			"value":     value,
			"completed": done,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"date":      day,
		"habits":    items,
		"values":    values,
		"completed": completed,
		"total":     len(habits),
	})
}

// ToggleLog 切换二元习惯在某日的完成状态
func (a *API) ToggleLog(c *gin.Context) {
	day := c.Param("date")
	habitID := c.Param("habitId")

	value, err := a.habitLogs.ToggleBinary(day, habitID)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":      day,
		"habit_id":  habitID,
		"value":     value,
		"completed": value == 1,
	})
}

// SetLogValue 写入数量型习惯在某日的数值，body 为 {"value": 12.5}
func (a *API) SetLogValue(c *gin.Context) {
	day := c.Param("date")
	habitID := c.Param("habitId")

	var payload struct {
		Value *float64 `json:"value"`
	}
	if isJSONRequest(c) {
		if !bindJSON(c, &payload, "请求参数不合法") {
			return
		}
	} else if raw := strings.TrimSpace(c.PostForm("value")); raw != "" {
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "数值格式不正确")
			return
		}
		payload.Value = &val
	}
	if payload.Value == nil {
		respondError(c, http.StatusBadRequest, "缺少数值")
		return
	}

	if err := a.habitLogs.SetQuantitative(day, habitID, *payload.Value); err != nil {
		handleHabitError(c, err)
		return
	}

	habit, err := a.habits.Get(habitID)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":      day,
		"habit_id":  habitID,
		"value":     *payload.Value,
		"completed": metrics.IsCompleted(habit.Definition(), *payload.Value),
	})
}

// ClearLog 删除某日某习惯的记录
func (a *API) ClearLog(c *gin.Context) {
	day := c.Param("date")
	habitID := c.Param("habitId")

	if err := a.habitLogs.Clear(day, habitID); err != nil {
		handleHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
