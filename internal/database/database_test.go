package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackspring/client/internal/database"
)

type Note struct {
	ID   uint
	Name string `gorm:"uniqueIndex"`
}

func TestConnect(t *testing.T) {
	db, err := database.Connect(database.InMemory, &Note{})
	require.Nil(t, err)
	defer database.Close(db)

	require.Nil(t, db.Create(&Note{Name: "a"}).Error)

	var n Note
	require.Nil(t, db.First(&n, "name = ?", "a").Error)
	assert.Equal(t, "a", n.Name)
}

func TestNotFound(t *testing.T) {
	db, err := database.Connect(database.InMemory, &Note{})
	require.Nil(t, err)
	defer database.Close(db)

	var n Note
	err = db.First(&n, 42).Error
	assert.ErrorIs(t, err, database.ErrResourceNotFound)
	assert.Equal(t, "there is no note matching your query", err.Error())
}

func TestNotUnique(t *testing.T) {
	db, err := database.Connect(database.InMemory, &Note{})
	require.Nil(t, err)
	defer database.Close(db)

	require.Nil(t, db.Create(&Note{Name: "a"}).Error)
	assert.ErrorIs(t, db.Create(&Note{Name: "a"}).Error, database.ErrNotUnique)
}

func TestClosed(t *testing.T) {
	db, err := database.Connect(database.InMemory, &Note{})
	require.Nil(t, err)
	require.Nil(t, database.Close(db))

	var n Note
	assert.ErrorIs(t, db.First(&n).Error, database.ErrGeneral)
}

func TestConnectInvalidPath(t *testing.T) {
	_, err := database.Connect("/nonexistent/dir/state.db", &Note{})
	assert.Error(t, err)
}
