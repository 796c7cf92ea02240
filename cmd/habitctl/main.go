package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/habitlog/internal/config"
	"github.com/habitlog/internal/db"
	"github.com/habitlog/internal/metrics"
	"github.com/habitlog/internal/seed"
	"github.com/habitlog/internal/service"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	databasePath string
	language     string

	summaryHabit string
	summaryRange string
	listAll      bool
	seedDays     int
)

var rootCmd = &cobra.Command{
	Use:          "habitctl",
	Short:        "Habit tracker command line",
	Long:         `Inspect and edit the habit tracker database: list habits, log days, print analytics and move state in or out.`,
	SilenceUsage: true,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show completion rate, streaks and best weekday",
	Long: `Show the dashboard summary for one habit or for all active habits.

Examples:
  habitctl summary                       # all active habits, last 7 days
  habitctl summary --range month         # last 30 days
  habitctl summary --habit <id> --lang es`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(gdb *gorm.DB) error {
			return runSummary(cmd, gdb)
		})
	},
}

var habitsCmd = &cobra.Command{
	Use:   "habits",
	Short: "List habits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(gdb *gorm.DB) error {
			return runHabits(cmd, gdb)
		})
	},
}

var logCmd = &cobra.Command{
	Use:   "log DATE HABIT_ID [VALUE]",
	Short: "Toggle a binary habit or set a quantitative value for a day",
	Long: `Record a day for a habit. Without VALUE the habit is toggled (binary habits only);
with VALUE the quantitative value is overwritten. DATE may be "today".`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(gdb *gorm.DB) error {
			return runLog(cmd, gdb, args)
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Export the whole state as JSON (stdout when FILE is omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(gdb *gorm.DB) error {
			return runExport(cmd, gdb, args)
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the database with an exported state file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(gdb *gorm.DB) error {
			return runImport(cmd, gdb, args[0])
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty database with demo habits and logs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(gdb *gorm.DB) error {
			result, err := seed.Demo(gdb, time.Now(), seedDays)
			if err != nil {
				return err
			}
			if result.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), "habits already exist, nothing to do")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d habits and %d logs\n", result.Habits, result.Logs)
			return nil
		})
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin USERNAME PASSWORD",
	Short: "Create the admin account used by the HTTP API",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(gdb *gorm.DB) error {
			created, err := db.EnsureAdmin(gdb, args[0], args[1])
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintln(cmd.OutOrStdout(), "admin user already exists")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin user %s created\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databasePath, "db", "", "Path to the SQLite database (defaults to DATABASE_PATH)")
	rootCmd.PersistentFlags().StringVar(&language, "lang", "", "Language for labels: en, es or zh")

	summaryCmd.Flags().StringVar(&summaryHabit, "habit", "", "Habit ID (all active habits when empty)")
	summaryCmd.Flags().StringVarP(&summaryRange, "range", "r", service.RangeWeek, "Range: week or month")
	habitsCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include archived habits")
	seedCmd.Flags().IntVarP(&seedDays, "days", "d", 60, "Number of days of demo logs")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(habitsCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(adminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func withDB(fn func(gdb *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if databasePath != "" {
		cfg.DatabasePath = databasePath
	}
	if language == "" {
		language = cfg.DefaultLanguage
	}

	if err := db.Init(cfg.DatabasePath); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}
	return fn(db.DB)
}

func runSummary(cmd *cobra.Command, gdb *gorm.DB) error {
	analytics := service.NewAnalyticsService(gdb)
	summary, err := analytics.Summary(summaryHabit, summaryRange, time.Now())
	if err != nil {
		return err
	}

	title := "All active habits"
	if summaryHabit != "" {
		habit, err := service.NewHabitService(gdb).Get(summaryHabit)
		if err != nil {
			return err
		}
		title = habit.Name
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(title, summary, language))
	return nil
}

func runHabits(cmd *cobra.Command, gdb *gorm.DB) error {
	habits, err := service.NewHabitService(gdb).List(service.HabitFilter{IncludeArchived: listAll})
	if err != nil {
		return err
	}
	categories, err := service.NewCategoryService(gdb).List()
	if err != nil {
		return err
	}
	store, err := service.NewHabitLogService(gdb).Snapshot()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderHabits(habits, categories, store, time.Now()))
	return nil
}

func runLog(cmd *cobra.Command, gdb *gorm.DB, args []string) error {
	day := args[0]
	if day == "today" {
		day = metrics.DayKey(time.Now())
	}
	habitID := args[1]
	logs := service.NewHabitLogService(gdb)

	if len(args) == 2 {
		value, err := logs.ToggleBinary(day, habitID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", day, habitID, strconv.FormatFloat(value, 'f', -1, 64))
		return nil
	}

	value, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", args[2], err)
	}
	if err := logs.SetQuantitative(day, habitID, value); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", day, habitID, args[2])
	return nil
}

func runExport(cmd *cobra.Command, gdb *gorm.DB, args []string) error {
	doc, err := service.NewStateService(gdb).Export()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if len(args) == 0 {
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d habits to %s\n", len(doc.State.Habits), args[0])
	return nil
}

func runImport(cmd *cobra.Command, gdb *gorm.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var doc service.StateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	result, err := service.NewStateService(gdb).Import(doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d habits, %d categories, %d logs (%d days skipped)\n",
		result.Habits, result.Categories, result.Logs, result.SkippedDays)
	return nil
}
