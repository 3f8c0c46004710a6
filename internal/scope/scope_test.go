package scope

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection so the in-memory database is shared.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Tenant{}, &model.Page{}, &model.Sermon{}, &model.Event{}, &model.FormSubmission{}))
	return db
}

func seedPage(t *testing.T, db *gorm.DB, tenantID uint, slug string) *model.Page {
	t.Helper()
	page := &model.Page{Slug: slug, Title: "Title " + slug}
	page.SetTenantID(tenantID)
	require.NoError(t, db.Create(page).Error)
	return page
}

func TestCreateStampsTenant(t *testing.T) {
	db := testDB(t)
	h := For(db, 7)

	page := &model.Page{Slug: "welcome", Title: "Welcome"}
	// A forged tenant id on the inbound row must not survive.
	page.SetTenantID(99)
	require.NoError(t, Create(h, page))

	var stored model.Page
	require.NoError(t, db.First(&stored, page.ID).Error)
	assert.Equal(t, uint(7), stored.OwnerTenantID())
}

func TestFindIsTenantFiltered(t *testing.T) {
	db := testDB(t)
	seedPage(t, db, 1, "ours-a")
	seedPage(t, db, 1, "ours-b")
	seedPage(t, db, 2, "theirs")

	var pages []model.Page
	require.NoError(t, Find(For(db, 1), &pages))
	require.Len(t, pages, 2)
	for _, p := range pages {
		assert.Equal(t, uint(1), p.OwnerTenantID())
	}
}

func TestFirstForeignRowReadsAsMissing(t *testing.T) {
	db := testDB(t)
	foreign := seedPage(t, db, 2, "theirs")

	h := For(db, 1)

	var byForeignID model.Page
	errForeign := First(h, &byForeignID, foreign.ID)

	var byAbsentID model.Page
	errAbsent := First(h, &byAbsentID, uint(9999))

	// A row owned by another tenant and a row that does not exist must be
	// indistinguishable to the caller.
	assert.ErrorIs(t, errForeign, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, errAbsent, gorm.ErrRecordNotFound)
	assert.Equal(t, errForeign.Error(), errAbsent.Error())
}

func TestSaveRejectsCrossTenantRow(t *testing.T) {
	db := testDB(t)
	foreign := seedPage(t, db, 2, "theirs")

	foreign.Title = "Hijacked"
	err := Save(For(db, 1), foreign)
	assert.ErrorIs(t, err, ErrCrossTenant)

	var stored model.Page
	require.NoError(t, db.First(&stored, foreign.ID).Error)
	assert.Equal(t, "Title theirs", stored.Title)
}

func TestUpdatesScopedAndTenantColumnImmutable(t *testing.T) {
	db := testDB(t)
	ours := seedPage(t, db, 1, "ours")
	foreign := seedPage(t, db, 2, "theirs")

	h := For(db, 1)

	rows, err := Updates[model.Page](h, ours.ID, map[string]interface{}{
		"title":     "Renamed",
		"tenant_id": 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	var stored model.Page
	require.NoError(t, db.First(&stored, ours.ID).Error)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Equal(t, uint(1), stored.OwnerTenantID(), "tenant_id must not be rewritable")

	rows, err = Updates[model.Page](h, foreign.ID, map[string]interface{}{"title": "Hijacked"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows, "foreign row must not match")
}

func TestDeleteScoped(t *testing.T) {
	db := testDB(t)
	ours := seedPage(t, db, 1, "ours")
	foreign := seedPage(t, db, 2, "theirs")

	h := For(db, 1)

	rows, err := Delete[model.Page](h, foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	rows, err = Delete[model.Page](h, ours.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	var remaining []model.Page
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, foreign.ID, remaining[0].ID)
}

func TestCount(t *testing.T) {
	db := testDB(t)
	seedPage(t, db, 1, "a")
	seedPage(t, db, 1, "b")
	seedPage(t, db, 2, "c")

	n, err := Count[model.Page](For(db, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = Count[model.Page](For(db, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestIsolationAcrossEntityTypes(t *testing.T) {
	db := testDB(t)

	one := For(db, 1)
	two := For(db, 2)

	require.NoError(t, Create(one, &model.Sermon{Title: "Sermon One"}))
	require.NoError(t, Create(two, &model.Sermon{Title: "Sermon Two"}))
	require.NoError(t, Create(one, &model.Event{Title: "Picnic"}))
	require.NoError(t, Create(two, &model.FormSubmission{FormName: "contact", Payload: "{}"}))

	var sermons []model.Sermon
	require.NoError(t, Find(one, &sermons))
	require.Len(t, sermons, 1)
	assert.Equal(t, "Sermon One", sermons[0].Title)

	var events []model.Event
	require.NoError(t, Find(two, &events))
	assert.Empty(t, events)

	var submissions []model.FormSubmission
	require.NoError(t, Find(one, &submissions))
	assert.Empty(t, submissions)
}

func TestQueryComposesWithConditions(t *testing.T) {
	db := testDB(t)
	published := seedPage(t, db, 1, "pub")
	require.NoError(t, db.Model(published).Update("published", true).Error)
	seedPage(t, db, 1, "draft")
	foreignPub := seedPage(t, db, 2, "other-pub")
	require.NoError(t, db.Model(foreignPub).Update("published", true).Error)

	var pages []model.Page
	require.NoError(t, Query[model.Page](For(db, 1)).Where("published = ?", true).Find(&pages).Error)
	require.Len(t, pages, 1)
	assert.Equal(t, "pub", pages[0].Slug)
}
