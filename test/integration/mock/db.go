package mock

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbOnce   sync.Once
	sharedDB *Db
)

// Db wraps a shared in-memory SQLite database for the integration suite.
// One connection is opened per process; scenarios call ClearDB between runs.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens (once per process) the shared in-memory database, migrates the
// given models and returns the handle. The models map keys by conceptual table
// name so steps can resolve a model from a Gherkin table reference.
func NewDb(schema string, models map[string]any) *Db {
	dbOnce.Do(func() {
		sharedDB = openSharedDB(schema, models)
	})
	return sharedDB
}

func openSharedDB(schema string, models map[string]any) *Db {
	// cache=shared keeps every gorm session on the same in-memory database;
	// a single connection avoids SQLite table-lock races under migration.
	conn, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", schema))
	if err != nil {
		panic(fmt.Sprintf("open sqlite: %v", err))
	}
	conn.SetMaxOpenConns(1)

	gormDB, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("open gorm over sqlite: %v", err))
	}

	d := &Db{DbConn: gormDB, models: models}
	if err := d.migrate(); err != nil {
		panic(fmt.Sprintf("migrate test schema: %v", err))
	}
	return d
}

func (d *Db) migrate() error {
	all := make([]any, 0, len(d.models))
	for _, m := range d.models {
		all = append(all, m)
	}
	if err := d.DbConn.AutoMigrate(all...); err != nil {
		return err
	}
	for _, m := range all {
		if !d.DbConn.Migrator().HasTable(m) {
			return fmt.Errorf("table for %T missing after migration", m)
		}
	}
	return nil
}

// ClearDB truncates every registered table, including soft-deleted rows, so
// each scenario starts from an empty database.
func (d *Db) ClearDB() error {
	for _, m := range d.models {
		err := d.DbConn.
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(m).Error
		if err != nil {
			return fmt.Errorf("clear %T: %w", m, err)
		}
	}
	// Reset autoincrement counters where SQLite tracks them.
	err := d.DbConn.Exec("DELETE FROM sqlite_sequence").Error
	if err != nil && !strings.Contains(err.Error(), "no such table") {
		return err
	}
	return nil
}

// GetModel resolves a registered model by its table reference.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}
