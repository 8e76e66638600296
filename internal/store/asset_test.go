package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"techpartner-api-server/internal/models"
	"techpartner-api-server/internal/store"
)

func newAsset(t *testing.T, s *store.Store) models.Asset {
	t.Helper()
	a, err := s.UpsertAsset(models.Asset{
		LocationID: "loc_1",
		TypeID:     "type_ac",
		Brand:      "Daikin",
		Model:      "FTKC25",
	})
	require.NoError(t, err)
	return a
}

func TestUpsertAsset_RequiresLocationAndType(t *testing.T) {
	s := store.New(nil)

	_, err := s.UpsertAsset(models.Asset{TypeID: "type_ac"})
	require.ErrorIs(t, err, store.ErrValidation)

	_, err = s.UpsertAsset(models.Asset{LocationID: "loc_1"})
	require.ErrorIs(t, err, store.ErrValidation)
}

func TestUpsertAsset_RequiresIssueWhenNotNormal(t *testing.T) {
	s := store.New(nil)

	_, err := s.UpsertAsset(models.Asset{
		LocationID: "loc_1",
		TypeID:     "type_ac",
		Cond:       models.CondBroken,
	})
	require.ErrorIs(t, err, store.ErrValidation)
}

func TestUpsertAsset_MergePreservesPMFields(t *testing.T) {
	s := store.New(nil)
	a := newAsset(t, s)

	// PM engine ghi service/next_pm_date
	_, err := s.UpsertAsset(models.Asset{
		ID:         a.ID,
		LocationID: a.LocationID,
		TypeID:     a.TypeID,
		Service:    "2026-01-10",
		NextPMDate: "2026-04-10",
	})
	require.NoError(t, err)

	// edit thường không đụng service/next_pm_date
	merged, err := s.UpsertAsset(models.Asset{
		ID:         a.ID,
		LocationID: "loc_2",
		TypeID:     a.TypeID,
		Brand:      "Panasonic",
	})
	require.NoError(t, err)
	require.Equal(t, "loc_2", merged.LocationID)
	require.Equal(t, "Panasonic", merged.Brand)
	require.Equal(t, "2026-01-10", merged.Service)
	require.Equal(t, "2026-04-10", merged.NextPMDate)
}

func TestUpsertAsset_NormalClearsIssue(t *testing.T) {
	s := store.New(nil)
	a := newAsset(t, s)

	_, err := s.UpsertAsset(models.Asset{
		ID:         a.ID,
		LocationID: a.LocationID,
		TypeID:     a.TypeID,
		Cond:       models.CondBroken,
		Issue:      "kompresor mati",
	})
	require.NoError(t, err)

	merged, err := s.UpsertAsset(models.Asset{
		ID:         a.ID,
		LocationID: a.LocationID,
		TypeID:     a.TypeID,
		Cond:       models.CondNormal,
	})
	require.NoError(t, err)
	require.Equal(t, models.CondNormal, merged.Cond)
	require.Empty(t, merged.Issue)
}

func TestBulkSetCondition(t *testing.T) {
	s := store.New(nil)
	a := newAsset(t, s)
	b := newAsset(t, s)

	updated, err := s.BulkSetCondition([]string{a.ID, b.ID, "missing"}, models.CondNeedService)
	require.NoError(t, err)
	require.Equal(t, 2, updated)

	// đưa về Normal phải xóa issue
	updated, err = s.BulkSetCondition([]string{a.ID}, models.CondNormal)
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	got, ok := s.Asset(a.ID)
	require.True(t, ok)
	require.Equal(t, models.CondNormal, got.Cond)
	require.Empty(t, got.Issue)

	_, err = s.BulkSetCondition([]string{a.ID}, "Hancur")
	require.ErrorIs(t, err, store.ErrValidation)
}

func TestBulkDeleteAssets(t *testing.T) {
	s := store.New(nil)
	a := newAsset(t, s)
	b := newAsset(t, s)

	removed := s.BulkDeleteAssets([]string{a.ID, "missing"})
	require.Equal(t, 1, removed)

	_, ok := s.Asset(a.ID)
	require.False(t, ok)
	_, ok = s.Asset(b.ID)
	require.True(t, ok)
}

func TestLookups_FallbackLabels(t *testing.T) {
	s := store.New(nil)

	require.Equal(t, "Gedung Utama - Lantai 1", s.LocationName("loc_1"))
	require.Equal(t, "Lokasi Umum", s.LocationName("nope"))
	require.Equal(t, "Air Conditioner (AC)", s.TypeName("type_ac"))
	require.Equal(t, "Lain-lain", s.TypeName("nope"))
}

func TestAddActivityAndFinance_NewestFirst(t *testing.T) {
	s := store.New(nil)

	_, err := s.AddActivity(models.Activity{Title: "Cek genset"})
	require.NoError(t, err)
	second, err := s.AddActivity(models.Activity{Title: "Bersihkan filter AC"})
	require.NoError(t, err)

	acts := s.Activities()
	require.Len(t, acts, 2)
	require.Equal(t, second.ID, acts[0].ID)

	_, err = s.AddFinance(models.Finance{Item: "Freon R32", Cost: 350000})
	require.NoError(t, err)
	last, err := s.AddFinance(models.Finance{Item: "Kapasitor", Cost: 80000})
	require.NoError(t, err)

	fins := s.Finances()
	require.Len(t, fins, 2)
	require.Equal(t, last.ID, fins[0].ID)

	_, err = s.AddFinance(models.Finance{Item: "Refund", Cost: -1})
	require.ErrorIs(t, err, store.ErrValidation)
}
