package repo

import (
	"NoteKeeper/internal/model"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// DefaultSQLitePath используется, если строка подключения не задана.
const DefaultSQLitePath = "notekeeper.db"

// InitDB открывает БД по строке подключения и применяет миграции.
// postgres://… и DSN вида "host=… user=…" открываются драйвером Postgres,
// всё остальное считается путём к файлу SQLite (modernc.org/sqlite, без cgo).
func InitDB(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	if IsPostgresDSN(dsn) {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		db, err = gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: SQLiteDSN(dsn)}, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if db.Dialector.Name() == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql.DB: %w", err)
		}
		// одно соединение: записи сериализуются внутри процесса, PRAGMA действуют всегда
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

// IsPostgresDSN сообщает, относится ли строка подключения к Postgres.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// SQLiteDSN дополняет путь к SQLite нужными PRAGMA.
func SQLiteDSN(dsn string) string {
	if dsn == "" {
		dsn = DefaultSQLitePath
	}
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
