package seed

import (
	"fmt"
	"log"
	"time"

	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/metrics"
	"github.com/habitlog/internal/service"
	"gorm.io/gorm"
)

// Result 描述一次演示数据生成写入的数量
type Result struct {
	Habits  int
	Logs    int
	Skipped bool
}

var demoHabits = []service.HabitInput{
	{Name: "Meditar", Kind: "binary", CategoryID: "cat-5", Description: "Diez minutos de **respiración**."},
	{Name: "Leer", Kind: "quantitative", Target: 20, Unit: "páginas", CategoryID: "cat-3"},
	{Name: "Correr", Kind: "quantitative", Target: 5, Unit: "km", CategoryID: "cat-4"},
	{Name: "Beber agua", Kind: "quantitative", Target: 8, Unit: "vasos", CategoryID: "cat-1"},
	{Name: "Revisar correo", Kind: "binary", CategoryID: "cat-2"},
}

// Demo 生成 days 天（含 today）的演示习惯与打卡；已有习惯时跳过
// 打卡模式是确定性的，方便重复生成后对比统计结果
func Demo(gdb *gorm.DB, today time.Time, days int) (*Result, error) {
	if days < 1 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}

	var count int64
	if err := gdb.Model(&db.Habit{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count habits: %w", err)
	}
	if count > 0 {
		log.Printf("[seed] %d habits already present, skipping", count)
		return &Result{Skipped: true}, nil
	}

	if _, err := db.EnsureDefaultCategories(gdb); err != nil {
		return nil, err
	}

	habits := service.NewHabitService(gdb)
	logs := service.NewHabitLogService(gdb)
	result := &Result{}

	start, _ := metrics.Window(today, days)
	for i, input := range demoHabits {
		habit, err := habits.Create(input)
		if err != nil {
			return nil, fmt.Errorf("create demo habit %q: %w", input.Name, err)
		}
		result.Habits++

		for d := 0; d < days; d++ {
			day := metrics.DayKey(start.AddDate(0, 0, d))
			if habit.Kind == string(metrics.KindBinary) {
				if !binaryDone(i, d) {
					continue
				}
				if _, err := logs.ToggleBinary(day, habit.ID); err != nil {
					return nil, err
				}
			} else {
				value := quantity(habit.Target, i, d)
				if value == 0 {
					continue
				}
				if err := logs.SetQuantitative(day, habit.ID, value); err != nil {
					return nil, err
				}
			}
			result.Logs++
		}
	}

	log.Printf("[seed] created habits=%d logs=%d", result.Habits, result.Logs)
	return result, nil
}

// binaryDone 大约 70% 的日子完成
func binaryDone(habitIndex, day int) bool {
	return (day*7+habitIndex*3)%10 < 7
}

// quantity 在 0 到 1.25 倍目标之间循环
func quantity(target float64, habitIndex, day int) float64 {
	step := (day + habitIndex) % 6
	return target * float64(step) / 4
}
