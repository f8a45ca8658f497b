package content

import (
	"testing"
	"time"

	"github.com/BuildLoopLLC/clearview-core/internal/database"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db)
}

func TestCreateThenFetchByIDRoundTrip(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(&CreateContentDTO{
		Section:     "hero",
		Subsection:  "main",
		ContentType: "richtext",
		Content:     "<h1>Welcome</h1>",
		Metadata:    map[string]interface{}{"name": "headline", "icon": "sun"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.FetchByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "hero", got.Section)
	assert.Equal(t, "main", got.Subsection)
	assert.Equal(t, "richtext", got.ContentType)
	assert.Equal(t, "<h1>Welcome</h1>", got.Content)
	assert.Equal(t, "headline", got.Name())
	assert.Equal(t, "sun", got.Metadata["icon"])
	assert.True(t, got.IsActive)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateInactiveStaysInactive(t *testing.T) {
	svc := newTestService(t)

	inactive := false
	created, err := svc.Create(&CreateContentDTO{
		Section:  "hero",
		Content:  "draft",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, created.IsActive)

	// the stored row must carry the caller's value, not a column default
	got, err := svc.FetchByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsActive)

	items, err := svc.FetchSection("hero", "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetchByIDMissingReturnsNil(t *testing.T) {
	svc := newTestService(t)
	got, err := svc.FetchByID("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFetchSectionExcludesInactive(t *testing.T) {
	svc := newTestService(t)

	visible, err := svc.Create(&CreateContentDTO{Section: "about", Content: "shown"})
	require.NoError(t, err)
	inactive := false
	_, err = svc.Create(&CreateContentDTO{Section: "about", Content: "hidden", IsActive: &inactive})
	require.NoError(t, err)

	items, err := svc.FetchSection("about", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, visible.ID, items[0].ID)

	all, err := svc.FetchSectionAll("about", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFetchSectionEmptyIsNotAnError(t *testing.T) {
	svc := newTestService(t)
	items, err := svc.FetchSection("nowhere", "")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestFetchSectionOrdering(t *testing.T) {
	svc := newTestService(t)

	two := 2
	zero := 0
	first, err := svc.Create(&CreateContentDTO{Section: "events", Content: "a", Order: &two})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := svc.Create(&CreateContentDTO{Section: "events", Content: "b", Order: &two})
	require.NoError(t, err)
	third, err := svc.Create(&CreateContentDTO{Section: "events", Content: "c", Order: &zero})
	require.NoError(t, err)

	items, err := svc.FetchSection("events", "")
	require.NoError(t, err)
	require.Len(t, items, 3)

	// order ascending, ties broken by creation time.
	assert.Equal(t, third.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
	assert.Equal(t, second.ID, items[2].ID)
}

func TestCreateDefaultsOrderToEndOfSection(t *testing.T) {
	svc := newTestService(t)

	five := 5
	_, err := svc.Create(&CreateContentDTO{Section: "gallery", Content: "a", Order: &five})
	require.NoError(t, err)

	appended, err := svc.Create(&CreateContentDTO{Section: "gallery", Content: "b"})
	require.NoError(t, err)
	assert.Equal(t, 6, appended.OrderNum)

	other, err := svc.Create(&CreateContentDTO{Section: "elsewhere", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, 0, other.OrderNum, "order counts per section")
}

func TestEmptyPatchOnlyTouchesUpdatedAt(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(&CreateContentDTO{
		Section:  "hero",
		Content:  "original",
		Metadata: map[string]interface{}{"name": "headline"},
	})
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	updated, err := svc.Update(created.ID, &UpdateContentDTO{})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, created.Section, updated.Section)
	assert.Equal(t, created.Content, updated.Content)
	assert.Equal(t, created.Metadata, updated.Metadata)
	assert.Equal(t, created.OrderNum, updated.OrderNum)
	assert.Equal(t, created.IsActive, updated.IsActive)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestSoftHideViaUpdate(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(&CreateContentDTO{Section: "hero", Content: "x"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(created.ID, &UpdateContentDTO{IsActive: &inactive})
	require.NoError(t, err)

	items, err := svc.FetchSection("hero", "")
	require.NoError(t, err)
	assert.Empty(t, items)

	// Direct lookup still resolves the hidden row.
	got, err := svc.FetchByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsActive)
}

func TestDeleteIsHard(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(&CreateContentDTO{Section: "hero", Content: "x"})
	require.NoError(t, err)

	ok, err := svc.Delete(created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := svc.FetchByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err = svc.Delete(created.ID)
	require.NoError(t, err)
	assert.False(t, ok, "second delete finds nothing")
}

func TestReorderAppliesSubmittedOrder(t *testing.T) {
	svc := newTestService(t)

	a, _ := svc.Create(&CreateContentDTO{Section: "staff", Content: "a"})
	b, _ := svc.Create(&CreateContentDTO{Section: "staff", Content: "b"})
	c, _ := svc.Create(&CreateContentDTO{Section: "staff", Content: "c"})

	err := svc.Reorder([]ReorderPair{
		{ID: c.ID, Order: 0},
		{ID: a.ID, Order: 1},
		{ID: b.ID, Order: 2},
	})
	require.NoError(t, err)

	items, err := svc.FetchSection("staff", "")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, []string{items[0].ID, items[1].ID, items[2].ID})
}

func TestReorderIsAllOrNothing(t *testing.T) {
	svc := newTestService(t)

	a, _ := svc.Create(&CreateContentDTO{Section: "staff", Content: "a"})
	b, _ := svc.Create(&CreateContentDTO{Section: "staff", Content: "b"})

	err := svc.Reorder([]ReorderPair{
		{ID: a.ID, Order: 7},
		{ID: "missing-id", Order: 8},
	})
	require.Error(t, err)

	gotA, err := svc.FetchByID(a.ID)
	require.NoError(t, err)
	gotB, err := svc.FetchByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, gotA.OrderNum, "failed batch must not leak partial orders")
	assert.Equal(t, b.OrderNum, gotB.OrderNum)
}
