package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/locale"
	"github.com/habitlog/internal/metrics"
	"github.com/habitlog/internal/service"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(16)

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func statLine(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

// renderSummary 渲染仪表盘卡片；汇总视图没有当前连胜
func renderSummary(title string, s *service.Summary, language string) string {
	lines := []string{
		titleStyle.Render(title),
		mutedStyle.Render(fmt.Sprintf("%s .. %s (%s)", metrics.DayKey(s.Start), metrics.DayKey(s.End), s.Range)),
		"",
		statLine("Completion", fmt.Sprintf("%.2f%%", s.Rate)),
	}
	if s.HabitID != "" {
		lines = append(lines,
			statLine("Completed days", fmt.Sprintf("%d/%d", s.CompletedDays, s.TotalDays)),
			statLine("Current streak", fmt.Sprintf("%d", s.CurrentStreak)),
		)
	}
	lines = append(lines,
		statLine("Best streak", fmt.Sprintf("%d", s.BestStreak)),
		statLine("Best day", locale.WeekdayName(language, s.BestDay)),
	)
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// renderHabits 每行一个习惯，带分类、今日状态与当前连胜
func renderHabits(habits []db.Habit, categories []db.Category, store metrics.LogStore, now time.Time) string {
	if len(habits) == 0 {
		return mutedStyle.Render("no habits yet")
	}

	today := metrics.DayKey(now)
	rows := make([]string, 0, len(habits)+1)
	rows = append(rows, titleStyle.Render(fmt.Sprintf("Habits (%d)", len(habits))))
	for _, habit := range habits {
		def := habit.Definition()
		category := service.ResolveCategory(categories, habit.CategoryID)
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(category.Color)).Render("■")

		mark := "·"
		if metrics.IsCompleted(def, store.Value(today, habit.ID)) {
			mark = "✓"
		}

		goal := "yes/no"
		if def.Kind == metrics.KindQuantitative {
			goal = strings.TrimSpace(fmt.Sprintf("%g %s", habit.Target, habit.Unit))
		}

		name := habit.Name
		if habit.Archived {
			name += " (archived)"
		}

		rows = append(rows, fmt.Sprintf("%s %s %-24s %-14s %-12s streak %d  %s",
			mark, swatch, name, goal, category.Name,
			metrics.CurrentStreak(def, store, now), mutedStyle.Render(habit.ID)))
	}
	return strings.Join(rows, "\n")
}
