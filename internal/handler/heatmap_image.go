package handler

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/locale"
	"github.com/habitlog/internal/metrics"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	heatCellSize    = 12
	heatCellGap     = 2
	heatLabelWidth  = 32
	heatTitleHeight = 18
	heatPadding     = 4
)

var (
	heatEmptyColor      = color.RGBA{R: 0xEB, G: 0xED, B: 0xF0, A: 0xFF}
	heatBackgroundColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	heatTextColor       = color.RGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xFF}
)

// GetHabitHeatmapImage 以 PNG 输出单个习惯的热力图，颜色取自分类
func (a *API) GetHabitHeatmapImage(c *gin.Context) {
	result, ok := a.loadHeatmap(c)
	if !ok {
		return
	}

	base, err := parseHexColor(result.Category.Color)
	if err != nil {
		base, _ = parseHexColor("#3B82F6")
	}

	img := renderHeatmapImage(result.Weeks, base, a.requestLanguage(c), result.Habit.Name)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		respondError(c, http.StatusInternalServerError, "生成图片失败")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// renderHeatmapImage 每列为一周（周日在上），未来日期留白
func renderHeatmapImage(weeks [][]metrics.HeatCell, base color.RGBA, language, title string) *image.RGBA {
	width := heatPadding*2 + heatLabelWidth + len(weeks)*(heatCellSize+heatCellGap)
	height := heatPadding*2 + heatTitleHeight + 7*(heatCellSize+heatCellGap)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: heatBackgroundColor}, image.Point{}, draw.Src)

	drawLabel(img, heatPadding, heatPadding+11, title)
	for _, day := range []time.Weekday{time.Monday, time.Wednesday, time.Friday} {
		y := heatPadding + heatTitleHeight + int(day)*(heatCellSize+heatCellGap) + heatCellSize - 2
		drawLabel(img, heatPadding, y, weekdayLabel(language, day))
	}

	for col, week := range weeks {
		for _, cell := range week {
			if cell.Future {
				continue
			}
			t, ok := metrics.ParseDayKey(cell.Date)
			if !ok {
				continue
			}
			x := heatPadding + heatLabelWidth + col*(heatCellSize+heatCellGap)
			y := heatPadding + heatTitleHeight + int(t.Weekday())*(heatCellSize+heatCellGap)
			rect := image.Rect(x, y, x+heatCellSize, y+heatCellSize)
			draw.Draw(img, rect, &image.Uniform{C: shade(base, cell.Intensity)}, image.Point{}, draw.Src)
		}
	}

	return img
}

// weekdayLabel basicfont 只有 ASCII 字形，非 ASCII 标签退回英文
func weekdayLabel(language string, day time.Weekday) string {
	label := locale.ShortWeekday(language, day)
	for _, r := range label {
		if r > unicode.MaxASCII {
			return locale.ShortWeekday(locale.LanguageEnglish, day)
		}
	}
	return label
}

func drawLabel(img draw.Image, x, y int, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(heatTextColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// shade 在空白色与分类色之间插值，intensity 为 0 时返回空白色
func shade(base color.RGBA, intensity float64) color.RGBA {
	if intensity <= 0 {
		return heatEmptyColor
	}
	if intensity > 1 {
		intensity = 1
	}
	weight := 0.25 + 0.75*intensity
	mix := func(from, to uint8) uint8 {
		return uint8(float64(from) + (float64(to)-float64(from))*weight)
	}
	return color.RGBA{
		R: mix(heatEmptyColor.R, base.R),
		G: mix(heatEmptyColor.G, base.G),
		B: mix(heatEmptyColor.B, base.B),
		A: 0xFF,
	}
}

func parseHexColor(raw string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", raw)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", raw, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
