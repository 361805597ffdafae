package repo

import (
	"NoteKeeper/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepository_GetOrCreateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	r := NewTagRepository(db)
	ctx := context.Background()

	id1, err := r.GetOrCreate(ctx, "go")
	require.NoError(t, err)
	id2, err := r.GetOrCreate(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	// регистр сохраняется: это другой тег
	id3, err := r.GetOrCreate(ctx, "Go")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)
}

func TestTagRepository_AttachReturnsFullSet(t *testing.T) {
	db := newTestDB(t)
	r := NewTagRepository(db)
	ctx := context.Background()
	alice := mustUser(t, db, "alice")
	bob := mustUser(t, db, "bob")
	note := mustNote(t, db, alice, "n", nil)

	got, err := r.Attach(ctx, alice, model.TagKindNote, note, []string{"b", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = r.Attach(ctx, alice, model.TagKindNote, note, []string{"a", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	_, err = r.Attach(ctx, bob, model.TagKindNote, note, []string{"x"})
	assert.ErrorIs(t, err, ErrNotFound)

	tags, err := r.TagsFor(ctx, model.TagKindNote, note)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, tags)

	var count int64
	require.NoError(t, db.Model(&model.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestTagRepository_ListForOwner(t *testing.T) {
	db := newTestDB(t)
	r := NewTagRepository(db)
	ctx := context.Background()
	alice := mustUser(t, db, "alice")
	bob := mustUser(t, db, "bob")

	n1 := mustNote(t, db, alice, "n1", nil)
	n2 := mustNote(t, db, alice, "n2", nil)
	_, err := r.Attach(ctx, alice, model.TagKindNote, n1, []string{"work", "home"})
	require.NoError(t, err)
	_, err = r.Attach(ctx, alice, model.TagKindNote, n2, []string{"work"})
	require.NoError(t, err)

	todo := &model.Todo{OwnerID: alice, Title: "t"}
	require.NoError(t, NewTodoRepository(db).Create(ctx, todo, "", []string{"work", "urgent"}))

	bobNote := mustNote(t, db, bob, "b", nil)
	_, err = r.Attach(ctx, bob, model.TagKindNote, bobNote, []string{"private"})
	require.NoError(t, err)

	usage, err := r.ListForOwner(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []model.TagUsage{
		{Name: "home", Notes: 1},
		{Name: "urgent", Todos: 1},
		{Name: "work", Notes: 2, Todos: 1},
	}, usage)
}

func TestUniqueNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, uniqueNames([]string{"a", "b", "a"}))
	assert.Equal(t, []string{}, uniqueNames(nil))
}
