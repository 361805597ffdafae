package repo

import (
	"NoteKeeper/internal/model"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB открывает отдельную in-memory SQLite (modernc.org/sqlite) с миграциями.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// fakeClock подменяет now возрастающими по секунде отметками.
func fakeClock(t *testing.T) {
	t.Helper()
	prev := now
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	t.Cleanup(func() { now = prev })
}

func mustUser(t *testing.T, db *gorm.DB, name string) int64 {
	t.Helper()
	u, err := NewUserRepository(db).CreateUser(context.Background(), &model.User{Username: name, Password: "digest"})
	require.NoError(t, err)
	return u.ID
}

func mustFolder(t *testing.T, db *gorm.DB, owner int64, name string, parent *int64) int64 {
	t.Helper()
	f := &model.Folder{OwnerID: owner, Name: name, ParentID: parent}
	require.NoError(t, NewFolderRepository(db).Create(context.Background(), f))
	return f.ID
}

func mustNote(t *testing.T, db *gorm.DB, owner int64, title string, folder *int64) int64 {
	t.Helper()
	n := &model.Note{OwnerID: owner, Title: title, Content: "content of " + title, FolderID: folder}
	require.NoError(t, NewNoteRepository(db).Create(context.Background(), n))
	return n.ID
}

func ptr[T any](v T) *T { return &v }
