package db

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestMigrateSeedsDefaultCategoriesOnce(t *testing.T) {
	gdb := openTestDB(t)

	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("second Migrate returned error: %v", err)
	}

	var count int64
	gdb.Model(&Category{}).Count(&count)
	if int(count) != len(DefaultCategories) {
		t.Fatalf("expected %d categories, got %d", len(DefaultCategories), count)
	}
}

func TestHabitLogUniquePerDay(t *testing.T) {
	gdb := openTestDB(t)
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}

	if err := gdb.Create(&HabitLog{Day: "2024-01-01", HabitID: "h", Value: 1}).Error; err != nil {
		t.Fatalf("failed to create log: %v", err)
	}
	if err := gdb.Create(&HabitLog{Day: "2024-01-01", HabitID: "h", Value: 0}).Error; err == nil {
		t.Fatal("expected unique index violation for duplicate day")
	}
}

func TestHabitDefinition(t *testing.T) {
	h := Habit{ID: "h", Kind: "QUANTITATIVE", Target: 20, CategoryID: "cat-1", Archived: true}
	def := h.Definition()
	if def.Kind != "quantitative" || def.Target != 20 || !def.Archived || def.CategoryID != "cat-1" {
		t.Fatalf("unexpected definition %+v", def)
	}

	unknown := Habit{ID: "x", Kind: "weird"}
	if unknown.Definition().Kind != "binary" {
		t.Fatal("expected unknown kind to degrade to binary")
	}
}

func TestEnsureAdminAndAuthenticate(t *testing.T) {
	gdb := openTestDB(t)
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}

	created, err := EnsureAdmin(gdb, " admin ", "secret")
	if err != nil || !created {
		t.Fatalf("expected admin to be created, created=%v err=%v", created, err)
	}
	created, err = EnsureAdmin(gdb, "admin", "other")
	if err != nil || created {
		t.Fatalf("expected existing admin to be kept, created=%v err=%v", created, err)
	}
	if created, _ := EnsureAdmin(gdb, "", "x"); created {
		t.Fatal("expected empty username to be skipped")
	}

	if _, err := Authenticate(gdb, "admin", "secret"); err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if _, err := Authenticate(gdb, "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := Authenticate(gdb, "ghost", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestEnsureAdminHashesPasswordAsGiven(t *testing.T) {
	gdb := openTestDB(t)
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}

	if created, err := EnsureAdmin(gdb, "admin", " secret "); err != nil || !created {
		t.Fatalf("expected admin to be created, created=%v err=%v", created, err)
	}
	if _, err := Authenticate(gdb, "admin", " secret "); err != nil {
		t.Fatalf("expected the configured password to authenticate: %v", err)
	}
	if _, err := Authenticate(gdb, "admin", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for trimmed password, got %v", err)
	}
	if created, _ := EnsureAdmin(gdb, "other", "   "); created {
		t.Fatal("expected blank password to be skipped")
	}
}

func TestInitCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "habits.db")
	if err := Init(path); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	defer func() {
		if sqlDB, err := DB.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	var count int64
	DB.Model(&Category{}).Count(&count)
	if count == 0 {
		t.Fatal("expected default categories after Init")
	}
}
