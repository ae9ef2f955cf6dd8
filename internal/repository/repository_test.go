package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"form-service/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.Form{}, &domain.FormField{}, &domain.Message{}, &domain.MessageValue{}))
	return db
}

func seedForm(t *testing.T, db *gorm.DB, name string) *domain.Form {
	form := &domain.Form{Name: name, Active: true, Options: datatypes.NewJSONType(domain.FormOptions{Honeypot: "hp"})}
	require.NoError(t, NewFormRepository(db).Create(context.Background(), form))
	return form
}

func seedField(t *testing.T, db *gorm.DB, formID uint, name string, fieldType domain.FieldType, order int, active bool) *domain.FormField {
	field := &domain.FormField{FormID: formID, Name: name, Type: fieldType, Order: order, Active: active, Required: active, IndexView: active}
	require.NoError(t, NewFieldRepository(db).Create(context.Background(), field))
	return field
}

func TestFormRepository_CreateFindUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFormRepository(db)
	ctx := context.Background()

	form := seedForm(t, db, "Contact")
	require.NotZero(t, form.ID)

	found, err := repo.FindByID(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, "Contact", found.Name)
	assert.Equal(t, "hp", found.Honeypot())

	found.Active = false
	found.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.FindByID(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", reloaded.Name)
	assert.False(t, reloaded.Active)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFormRepository_FindAllAndCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFormRepository(db)
	ctx := context.Background()

	first := seedForm(t, db, "First")
	second := seedForm(t, db, "Second")

	forms, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, first.ID, forms[0].ID)
	assert.Equal(t, second.ID, forms[1].ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestFormRepository_FindByIDWithFields(t *testing.T) {
	db := setupTestDB(t)
	form := seedForm(t, db, "Contact")
	seedField(t, db, form.ID, "msg", domain.FieldTypeTextarea, 2, true)
	seedField(t, db, form.ID, "email", domain.FieldTypeEmail, 1, true)
	seedField(t, db, form.ID, "old", domain.FieldTypeText, 0, false)

	loaded, err := NewFormRepository(db).FindByIDWithFields(context.Background(), form.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Fields, 3)
	assert.Equal(t, []string{"old", "email", "msg"}, []string{loaded.Fields[0].Name, loaded.Fields[1].Name, loaded.Fields[2].Name})
}

func TestFieldRepository_FindActiveByForm_OrderAndTies(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFieldRepository(db)
	form := seedForm(t, db, "Contact")
	other := seedForm(t, db, "Other")

	seedField(t, db, form.ID, "b", domain.FieldTypeText, 1, true)
	seedField(t, db, form.ID, "a", domain.FieldTypeText, 1, true)
	seedField(t, db, form.ID, "first", domain.FieldTypeText, 0, true)
	seedField(t, db, form.ID, "gone", domain.FieldTypeText, 0, false)
	seedField(t, db, other.ID, "elsewhere", domain.FieldTypeText, 0, true)

	fields, err := repo.FindActiveByForm(context.Background(), form.ID)
	require.NoError(t, err)

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"first", "b", "a"}, names)
}

func TestFieldRepository_SoftDeleteBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFieldRepository(db)
	ctx := context.Background()
	form := seedForm(t, db, "Contact")
	other := seedForm(t, db, "Other")

	f1 := seedField(t, db, form.ID, "one", domain.FieldTypeText, 1, true)
	f2 := seedField(t, db, form.ID, "two", domain.FieldTypeText, 2, true)
	foreign := seedField(t, db, other.ID, "foreign", domain.FieldTypeText, 1, true)

	affected, err := repo.SoftDeleteBatch(ctx, form.ID, []uint{f2.ID, foreign.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	reloaded, err := repo.FindByFormAndID(ctx, form.ID, f2.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Active)
	assert.False(t, reloaded.Required)
	assert.False(t, reloaded.IndexView)
	assert.Equal(t, "two", reloaded.Name)

	kept, err := repo.FindByFormAndID(ctx, form.ID, f1.ID)
	require.NoError(t, err)
	assert.True(t, kept.Active)

	untouched, err := repo.FindByFormAndID(ctx, other.ID, foreign.ID)
	require.NoError(t, err)
	assert.True(t, untouched.Active)

	affected, err = repo.SoftDeleteBatch(ctx, form.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestFieldRepository_Lookups(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFieldRepository(db)
	ctx := context.Background()
	form := seedForm(t, db, "Contact")

	f1 := seedField(t, db, form.ID, "upload", domain.FieldTypeFile, 1, true)
	f2 := seedField(t, db, form.ID, "items", domain.FieldTypeList, 2, false)

	ids, err := repo.FindIDsByForm(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{f1.ID, f2.ID}, ids)

	byIDs, err := repo.FindByIDs(ctx, []uint{f2.ID})
	require.NoError(t, err)
	require.Len(t, byIDs, 1)
	assert.Equal(t, "items", byIDs[0].Name)

	empty, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = repo.FindByFormAndID(ctx, form.ID+1, f1.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMessageRepository_FindByForm(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()
	form := seedForm(t, db, "Contact")
	other := seedForm(t, db, "Other")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var created []*domain.Message
	for i := 0; i < 3; i++ {
		msg := &domain.Message{
			BaseModel: domain.BaseModel{CreatedAt: base.Add(time.Duration(i) * time.Hour)},
			FormID:    form.ID,
			Values: []domain.MessageValue{
				{FieldID: 1, Value: "a"},
				{FieldID: 2, Value: "b"},
			},
		}
		require.NoError(t, repo.Create(ctx, msg))
		created = append(created, msg)
	}
	require.NoError(t, repo.Create(ctx, &domain.Message{FormID: other.ID}))

	all, err := repo.FindByForm(ctx, form.ID, 0, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, created[2].ID, all[0].ID, "newest first")
	assert.Len(t, all[0].Values, 2)

	limit := 1
	page, err := repo.FindByForm(ctx, form.ID, 1, &limit)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, created[1].ID, page[0].ID)

	// offset without a limit is ignored
	ignored, err := repo.FindByForm(ctx, form.ID, 2, nil)
	require.NoError(t, err)
	assert.Len(t, ignored, 3)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestMessageRepository_FindByFormAndID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()
	form := seedForm(t, db, "Contact")
	other := seedForm(t, db, "Other")

	msg := &domain.Message{FormID: form.ID, Values: []domain.MessageValue{{FieldID: 7, Value: "x"}}}
	require.NoError(t, repo.Create(ctx, msg))

	found, err := repo.FindByFormAndID(ctx, form.ID, msg.ID)
	require.NoError(t, err)
	require.Len(t, found.Values, 1)
	assert.Equal(t, uint(7), found.Values[0].FieldID)

	_, err = repo.FindByFormAndID(ctx, other.ID, msg.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
