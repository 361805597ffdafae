package repo

import (
	"NoteKeeper/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(notes []model.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Title)
	}
	return out
}

func TestNoteRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	r := NewNoteRepository(db)
	ctx := context.Background()
	alice := mustUser(t, db, "alice")
	bob := mustUser(t, db, "bob")

	n := &model.Note{OwnerID: alice, Title: "Groceries", Content: "milk"}
	require.NoError(t, r.Create(ctx, n))
	assert.NotZero(t, n.ID)
	assert.Equal(t, []string{}, n.Tags)

	// дубликат заголовка у того же владельца
	err := r.Create(ctx, &model.Note{OwnerID: alice, Title: "Groceries", Content: "eggs"})
	assert.ErrorIs(t, err, ErrConflict)

	// другой владелец может использовать тот же заголовок
	require.NoError(t, r.Create(ctx, &model.Note{OwnerID: bob, Title: "Groceries", Content: "bread"}))

	got, err := r.GetByTitle(ctx, alice, "Groceries")
	require.NoError(t, err)
	assert.Equal(t, "milk", got.Content)
	assert.Equal(t, []string{}, got.Tags)

	_, err = r.GetByTitle(ctx, alice, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNoteRepository_CreateRejectsForeignFolder(t *testing.T) {
	db := newTestDB(t)
	r := NewNoteRepository(db)
	ctx := context.Background()
	alice := mustUser(t, db, "alice")
	bob := mustUser(t, db, "bob")
	bobs := mustFolder(t, db, bob, "Bob's", nil)

	err := r.Create(ctx, &model.Note{OwnerID: alice, Title: "x", Content: "y", FolderID: &bobs})
	assert.ErrorIs(t, err, ErrInvalidParent)

	err = r.Create(ctx, &model.Note{OwnerID: alice, Title: "x", Content: "y", FolderID: ptr(int64(777))})
	assert.ErrorIs(t, err, ErrInvalidParent)
}

func TestNoteRepository_ListOrderAndLimit(t *testing.T) {
	fakeClock(t)
	db := newTestDB(t)
	r := NewNoteRepository(db)
	ctx := context.Background()
	alice := mustUser(t, db, "alice")

	mustNote(t, db, alice, "first", nil)
	mustNote(t, db, alice, "second", nil)
	mustNote(t, db, alice, "third", nil)

	notes, err := r.ListByOwner(ctx, alice, 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "second", "first"}, titles(notes))

	// изменение текста поднимает заметку наверх
	require.NoError(t, r.UpdateContent(ctx, alice, "first", "edited"))
	notes, err = r.ListByOwner(ctx, alice, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "third"}, titles(notes))
	assert.Equal(t, "edited", notes[0].Content)
	assert.True(t, notes[0].ModifiedAt.After(notes[0].CreatedAt))
}

func TestNoteRepository_UpdateForeignIsNotFound(t *testing.T) {
	db := newTestDB(t)
	r := NewNoteRepository(db)
	ctx := context.Background()
	alice := mustUser(t, db, "alice")
	bob := mustUser(t, db, "bob")
	mustNote(t, db, alice, "secret", nil)

	assert.ErrorIs(t, r.UpdateContent(ctx, bob, "secret", "pwned"), ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, bob, "secret"), ErrNotFound)
	assert.ErrorIs(t, r.Rename(ctx, bob, "secret", "x"), ErrNotFound)
	_, err := r.AddTags(ctx, bob, "secret", []string{"t"})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := r.GetByTitle(ctx, alice, "secret")
	require.NoError(t, err)
	assert.Equal(t, "content of secret", got.Content)
}

func TestNoteRepository_Rename(t *testing.T) {
	db := newTestDB(t)
	r := NewNoteRepository(db)
	ctx := context.Background()
	alice := mustUser(t, db, "alice")
	mustNote(t, db, alice, "a", nil)
	mustNote(t, db, alice, "b", nil)

	assert.ErrorIs(t, r.Rename(ctx, alice, "a", "b"), ErrConflict)
	require.NoError(t, r.Rename(ctx, alice, "a", "c"))

	_, err := r.GetByTitle(ctx, alice, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.GetByTitle(ctx, alice, "c")
	assert.NoError(t, err)
}

func TestNoteRepository_SetFolderAndReminder(t *testing.T) {
	db := newTestDB(t)
	r := NewNoteRepository(db)
	ctx := context.Background()
	alice := mustUser(t, db, "alice")
	bob := mustUser(t, db, "bob")
	folder := mustFolder(t, db, alice, "F", nil)
	foreign := mustFolder(t, db, bob, "G", nil)
	mustNote(t, db, alice, "n", nil)

	require.NoError(t, r.SetFolder(ctx, alice, "n", &folder))
	assert.ErrorIs(t, r.SetFolder(ctx, alice, "n", &foreign), ErrInvalidParent)
	assert.ErrorIs(t, r.SetFolder(ctx, alice, "missing", &folder), ErrNotFound)

	got, err := r.GetByTitle(ctx, alice, "n")
	require.NoError(t, err)
	require.NotNil(t, got.FolderID)
	assert.Equal(t, folder, *got.FolderID)

	require.NoError(t, r.SetFolder(ctx, alice, "n", nil))
	require.NoError(t, r.SetReminderDate(ctx, alice, "n", ptr("2024-05-01")))
	got, err = r.GetByTitle(ctx, alice, "n")
	require.NoError(t, err)
	assert.Nil(t, got.FolderID)
	require.NotNil(t, got.ReminderDate)
	assert.Equal(t, "2024-05-01", *got.ReminderDate)
}

func TestNoteRepository_DeleteUnlinksTodosAndTags(t *testing.T) {
	db := newTestDB(t)
	r := NewNoteRepository(db)
	todos := NewTodoRepository(db)
	ctx := context.Background()
	alice := mustUser(t, db, "alice")
	mustNote(t, db, alice, "plan", nil)

	_, err := r.AddTags(ctx, alice, "plan", []string{"work"})
	require.NoError(t, err)
	todo := &model.Todo{OwnerID: alice, Title: "do it"}
	require.NoError(t, todos.Create(ctx, todo, "plan", nil))
	require.NotNil(t, todo.NoteID)

	require.NoError(t, r.Delete(ctx, alice, "plan"))

	var links int64
	require.NoError(t, db.Table("note_tags").Count(&links).Error)
	assert.Zero(t, links)

	list, err := todos.List(ctx, alice, model.TodoFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].NoteID)
	assert.Nil(t, list[0].NoteTitle)

	// тег остаётся в реестре
	var tags int64
	require.NoError(t, db.Model(&model.Tag{}).Count(&tags).Error)
	assert.EqualValues(t, 1, tags)
}

func TestNoteRepository_Search(t *testing.T) {
	fakeClock(t)
	db := newTestDB(t)
	r := NewNoteRepository(db)
	ctx := context.Background()
	alice := mustUser(t, db, "alice")
	bob := mustUser(t, db, "bob")

	require.NoError(t, r.Create(ctx, &model.Note{OwnerID: alice, Title: "Recipes", Content: "pasta and sauce"}))
	require.NoError(t, r.Create(ctx, &model.Note{OwnerID: alice, Title: "Pasta shapes", Content: "penne"}))
	require.NoError(t, r.Create(ctx, &model.Note{OwnerID: alice, Title: "Discount", Content: "50% off"}))
	require.NoError(t, r.Create(ctx, &model.Note{OwnerID: bob, Title: "pasta", Content: "bob's"}))

	got, err := r.Search(ctx, alice, "asta")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pasta shapes", "Recipes"}, titles(got))

	// символы подстановки LIKE ищутся буквально
	got, err = r.Search(ctx, alice, "%")
	require.NoError(t, err)
	assert.Equal(t, []string{"Discount"}, titles(got))

	got, err = r.Search(ctx, alice, "_")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% \_a\\b`, escapeLike(`50% _a\b`))
}
