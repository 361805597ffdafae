package repo

import (
	"NoteKeeper/internal/model"
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository — глобальный реестр тегов и их связи с заметками и задачами.
type TagRepository interface {
	// GetOrCreate возвращает id тега с указанным именем, создавая его при первом обращении.
	GetOrCreate(ctx context.Context, name string) (int64, error)

	// TagsFor возвращает имена тегов сущности, отсортированные по имени.
	TagsFor(ctx context.Context, kind model.TagKind, entityID int64) ([]string, error)

	// Attach привязывает теги к сущности владельца и возвращает итоговый набор тегов.
	// Повторная привязка уже имеющегося тега ничего не меняет.
	Attach(ctx context.Context, ownerID int64, kind model.TagKind, entityID int64, names []string) ([]string, error)

	// ListForOwner возвращает теги, которые используются заметками или задачами владельца.
	ListForOwner(ctx context.Context, ownerID int64) ([]model.TagUsage, error)
}

type tagRepo struct {
	db *gorm.DB
}

// NewTagRepository создаёт реализацию реестра тегов.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepo{db: db}
}

func (r *tagRepo) GetOrCreate(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		id, err = getOrCreateTag(tx, name)
		return err
	})
	return id, err
}

func (r *tagRepo) TagsFor(ctx context.Context, kind model.TagKind, entityID int64) ([]string, error) {
	return tagsFor(r.db.WithContext(ctx), kind, entityID)
}

func (r *tagRepo) Attach(ctx context.Context, ownerID int64, kind model.TagKind, entityID int64, names []string) ([]string, error) {
	var result []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureOwned(tx, kind, ownerID, entityID); err != nil {
			return err
		}
		if err := attachTags(tx, kind, entityID, names); err != nil {
			return err
		}
		var err error
		result, err = tagsFor(tx, kind, entityID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type tagCountRow struct {
	Name string
	Cnt  int64
}

func (r *tagRepo) ListForOwner(ctx context.Context, ownerID int64) ([]model.TagUsage, error) {
	usage := map[string]*model.TagUsage{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, kind := range []model.TagKind{model.TagKindNote, model.TagKindTodo} {
			t, err := tablesFor(kind)
			if err != nil {
				return err
			}
			var rows []tagCountRow
			err = tx.Table(t.join).
				Select("tags.name AS name, COUNT(*) AS cnt").
				Joins("JOIN tags ON tags.id = " + t.join + ".tag_id").
				Joins("JOIN " + t.owner + " ON " + t.owner + ".id = " + t.join + "." + t.fk).
				Where(t.owner+".owner_id = ?", ownerID).
				Group("tags.name").
				Scan(&rows).Error
			if err != nil {
				return fmt.Errorf("count %s tags: %w", kind, err)
			}
			for _, row := range rows {
				u, ok := usage[row.Name]
				if !ok {
					u = &model.TagUsage{Name: row.Name}
					usage[row.Name] = u
				}
				if kind == model.TagKindNote {
					u.Notes = row.Cnt
				} else {
					u.Todos = row.Cnt
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.TagUsage, 0, len(usage))
	for _, u := range usage {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// tagTables — таблицы, участвующие в связи тегов с сущностью одного типа.
type tagTables struct {
	owner string // таблица сущности с колонкой owner_id
	join  string // таблица связей
	fk    string // колонка связи со стороны сущности
}

func tablesFor(kind model.TagKind) (tagTables, error) {
	switch kind {
	case model.TagKindNote:
		return tagTables{owner: "notes", join: "note_tags", fk: "note_id"}, nil
	case model.TagKindTodo:
		return tagTables{owner: "todos", join: "todo_tags", fk: "todo_id"}, nil
	default:
		return tagTables{}, fmt.Errorf("unknown tag kind %q", kind)
	}
}

// ensureOwned проверяет, что сущность существует и принадлежит владельцу.
func ensureOwned(tx *gorm.DB, kind model.TagKind, ownerID, entityID int64) error {
	t, err := tablesFor(kind)
	if err != nil {
		return err
	}
	var n int64
	if err := tx.Table(t.owner).Where("id = ? AND owner_id = ?", entityID, ownerID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// getOrCreateTag вставляет тег, если его нет; гонку одинаковых вставок поглощает уникальный индекс.
func getOrCreateTag(tx *gorm.DB, name string) (int64, error) {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&model.Tag{Name: name}).Error
	if err != nil {
		return 0, translate(err)
	}
	var tag model.Tag
	if err := tx.Where("name = ?", name).Take(&tag).Error; err != nil {
		return 0, translate(err)
	}
	return tag.ID, nil
}

// attachTags создаёт недостающие теги и связи. Вызывается внутри транзакции.
func attachTags(tx *gorm.DB, kind model.TagKind, entityID int64, names []string) error {
	for _, name := range uniqueNames(names) {
		tagID, err := getOrCreateTag(tx, name)
		if err != nil {
			return fmt.Errorf("tag %q: %w", name, err)
		}
		var link any
		switch kind {
		case model.TagKindNote:
			link = &model.NoteTag{NoteID: entityID, TagID: tagID}
		case model.TagKindTodo:
			link = &model.TodoTag{TodoID: entityID, TagID: tagID}
		default:
			return fmt.Errorf("unknown tag kind %q", kind)
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error; err != nil {
			return fmt.Errorf("link tag %q: %w", name, translate(err))
		}
	}
	return nil
}

func tagsFor(tx *gorm.DB, kind model.TagKind, entityID int64) ([]string, error) {
	byID, err := tagsForMany(tx, kind, []int64{entityID})
	if err != nil {
		return nil, err
	}
	names := byID[entityID]
	if names == nil {
		names = []string{}
	}
	return names, nil
}

type entityTagRow struct {
	EntityID int64
	Name     string
}

// tagsForMany загружает теги для набора сущностей одним запросом.
func tagsForMany(tx *gorm.DB, kind model.TagKind, ids []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	var rows []entityTagRow
	err = tx.Table(t.join).
		Select(t.join + "." + t.fk + " AS entity_id, tags.name AS name").
		Joins("JOIN tags ON tags.id = " + t.join + ".tag_id").
		Where(t.join+"."+t.fk+" IN ?", ids).
		Order("tags.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load %s tags: %w", kind, err)
	}
	for _, row := range rows {
		out[row.EntityID] = append(out[row.EntityID], row.Name)
	}
	return out, nil
}

// deleteLinks удаляет связи сущности с тегами; сами теги остаются.
func deleteLinks(tx *gorm.DB, kind model.TagKind, entityID int64) error {
	t, err := tablesFor(kind)
	if err != nil {
		return err
	}
	return tx.Exec("DELETE FROM "+t.join+" WHERE "+t.fk+" = ?", entityID).Error
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
