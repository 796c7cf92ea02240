package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/service"
)

// maxStateBytes 限制导入文档大小
const maxStateBytes = 16 << 20

// ExportState 导出完整应用状态，?download=1 时作为附件返回
func (a *API) ExportState(c *gin.Context) {
	doc, err := a.state.Export()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "导出失败")
		return
	}

	if c.Query("download") == "1" {
		filename := fmt.Sprintf("habitlog-%s.json", formatDay(a.today()))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	c.JSON(http.StatusOK, doc)
}

// ImportState 用上传的文档整体替换当前数据
func (a *API) ImportState(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxStateBytes)

	var doc service.StateDocument
	if !bindJSON(c, &doc, "导入文件格式不正确") {
		return
	}

	result, err := a.state.Import(doc)
	if err != nil {
		if errors.Is(err, service.ErrInvalidState) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "导入失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"habits":       result.Habits,
		"categories":   result.Categories,
		"logs":         result.Logs,
		"skipped_days": result.SkippedDays,
	})
}
