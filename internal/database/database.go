// Package database opens the sqlite databases used by the client state
// store and the mock API.
package database

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrNotUnique        = errors.New("a resource with this value already exists")
)

// InMemory is the DSN of a private in-memory database.
const InMemory = ":memory:"

// Connect opens the sqlite database at dsn and migrates the schema of models.
func Connect(dsn string, models ...any) (*gorm.DB, error) {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	if !strings.Contains(dsn, "_pragma=foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn = fmt.Sprintf("%s%s_pragma=foreign_keys(1)", dsn, sep)
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour. An in-memory database lives only
	// as long as its connection, so that one is never recycled.
	if !strings.HasPrefix(dsn, InMemory) {
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	if err := registerCallbacks(db); err != nil {
		return nil, err
	}

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("error during DB migration: %w", err)
		}
	}

	return db, nil
}

// Close closes the connection pool of db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func registerCallbacks(db *gorm.DB) error {
	if err := db.Callback().Query().After("*").Register("trackspring:after_query", queryCallback); err != nil {
		return err
	}

	if err := db.Callback().Create().After("*").Register("trackspring:after_create", createUpdateCallback); err != nil {
		return err
	}

	if err := db.Callback().Update().After("*").Register("trackspring:after_update", createUpdateCallback); err != nil {
		return err
	}

	if err := db.Callback().Query().After("*").Register("trackspring:after_query_general", generalCallback); err != nil {
		return err
	}

	if err := db.Callback().Create().After("*").Register("trackspring:after_create_general", generalCallback); err != nil {
		return err
	}

	if err := db.Callback().Update().After("*").Register("trackspring:after_update_general", generalCallback); err != nil {
		return err
	}

	return db.Callback().Delete().After("*").Register("trackspring:after_delete_general", generalCallback)
}

var pluralIES = regexp.MustCompile("ies$")

// queryCallback replaces the generic "no record" error with one naming the resource.
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")
		name = pluralIES.ReplaceAllString(name, "y")
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed") {
		db.Error = fmt.Errorf("%w: %s", ErrNotUnique, strings.TrimPrefix(db.Error.Error(), "constraint failed: "))
	}
}

// generalCallback logs errors users cannot act on and replaces them with ErrGeneral.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in database/sql
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}
