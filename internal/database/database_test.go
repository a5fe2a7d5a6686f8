package database

import (
	"path/filepath"
	"testing"

	"pocketbudget/internal/logger"
	"pocketbudget/internal/models"
)

func init() {
	logger.Init("test")
}

func TestConfig_DSN(t *testing.T) {
	pg := &Config{Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	if got, want := pg.DSN(), "host=db port=5432 user=u password=p dbname=n sslmode=disable"; got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
	if got, want := pg.MigrationURL(), "postgres://u:p@db:5432/n?sslmode=disable"; got != want {
		t.Errorf("MigrationURL() = %q, want %q", got, want)
	}

	lite := &Config{Driver: DriverSQLite, SQLitePath: "/tmp/x.db"}
	if lite.DSN() != "/tmp/x.db" {
		t.Errorf("sqlite DSN = %q", lite.DSN())
	}
}

func TestNewConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestManager_SQLiteMigrations(t *testing.T) {
	cfg := &Config{Driver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "test.db")}

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer func() { _ = m.Close() }()

	if err := m.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	user := &models.User{Email: "a@b.com", Password: "hash", IsActive: true}
	if err := m.DB().Create(user).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}
	if user.ID == "" {
		t.Error("expected generated user ID")
	}
	if !m.DB().Migrator().HasTable(&models.AuditLog{}) {
		t.Error("expected audit_logs table")
	}
}
