package services

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/shopadmin/internal/client/client"
	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/dmitrijs2005/shopadmin/internal/client/policy"
	"github.com/dmitrijs2005/shopadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestLoginAsAdmin_FetchesProducts(t *testing.T) {
	h := newHarness(t)
	h.api.SetProducts(product(1, "Relay", 3), product(2, "Sensor", 0))

	require.Zero(t, h.svc.Products.Len())
	h.login(t, admin)

	assert.True(t, h.svc.Session.IsAuthenticated())
	assert.Equal(t, 1, h.api.Count(http.MethodGet, "/api/products"))
	got := h.svc.Products.All()
	require.Len(t, got, 2)
	assert.Equal(t, "Relay", got[0].Title)
	assert.Equal(t, h.api.URL+"/uploads", h.svc.Products.UploadsBase())
}

func TestProducts_NoFetchWhileAnonymous(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.svc.Products.FetchAll(ctx)
	require.ErrorIs(t, h.svc.Products.Reconcile(ctx), common.ErrNotAuthenticated)
	require.ErrorIs(t, h.svc.Products.UpdateQuantity(ctx, "1", 1), common.ErrNotAuthenticated)
	assert.Empty(t, h.api.Requests())
}

func TestClerkQuantityUpdate_OneCallThenRefetch(t *testing.T) {
	h := newHarness(t)
	h.api.SetProducts(product(42, "Relay", 3))
	h.login(t, clerk)
	h.api.ResetLog()

	require.NoError(t, h.svc.Products.UpdateQuantity(context.Background(), "42", 10))

	reqs := h.api.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPut, reqs[0].Method)
	assert.Equal(t, "/api/products/42/quantity", reqs[0].Path)
	assert.Equal(t, map[string]any{"quantity": float64(10)}, reqs[0].JSON())
	assert.Equal(t, http.MethodGet, reqs[1].Method)
	assert.Equal(t, "/api/products", reqs[1].Path)

	p, ok := h.svc.Products.GetByID("42")
	require.True(t, ok)
	assert.Equal(t, 10, p.Quantity)
}

func TestClerkUpdate_OnlyQuantityKeySetIsExecuted(t *testing.T) {
	inactive := models.StatusInactive
	tests := []struct {
		name  string
		patch models.ProductPatch
		err   error
	}{
		{"quantity", models.ProductPatch{Quantity: ptr(5)}, nil},
		{"quantity and status", models.ProductPatch{Quantity: ptr(5), Status: &inactive}, policy.ErrDenied},
		{"status", models.ProductPatch{Status: &inactive}, policy.ErrDenied},
		{"price", models.ProductPatch{PriceCustomer: ptr(1.5)}, policy.ErrDenied},
		{"title and quantity", models.ProductPatch{Title: ptr("x"), Quantity: ptr(1)}, policy.ErrDenied},
		{"specifications", models.ProductPatch{Specifications: []models.Specification{}}, policy.ErrDenied},
		{"empty", models.ProductPatch{}, common.ErrEmptyPatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.api.SetProducts(product(7, "Relay", 3))
			h.login(t, clerk)
			h.api.ResetLog()

			err := h.svc.Products.Update(context.Background(), "7", tt.patch)
			if tt.err == nil {
				require.NoError(t, err)
				assert.Equal(t, 1, h.api.Count(http.MethodPut, "/api/products/7/quantity"))
				return
			}
			require.ErrorIs(t, err, tt.err)
			assert.Empty(t, h.api.Requests())
		})
	}
}

func TestClerkDelete_NeverCallsNetwork(t *testing.T) {
	h := newHarness(t)
	h.api.SetProducts(product(1, "Relay", 3), product(2, "Cable", 0))
	h.login(t, clerk)
	h.api.ResetLog()
	ctx := context.Background()

	for _, id := range []models.ID{"1", "2", "missing"} {
		require.ErrorIs(t, h.svc.Products.Delete(ctx, id), policy.ErrDenied)
	}
	require.ErrorIs(t, h.svc.Products.SetStatus(ctx, "1", models.StatusInactive), policy.ErrDenied)
	require.ErrorIs(t, h.svc.Products.Add(ctx, models.ProductDraft{Title: "x"}), policy.ErrDenied)
	require.ErrorIs(t, h.svc.Products.Save(ctx, "1", models.ProductDraft{Title: "x"}), policy.ErrDenied)
	assert.Empty(t, h.api.Requests())
}

func TestUnknownRole_FailsClosed(t *testing.T) {
	h := newHarness(t)
	h.api.SetProducts(product(1, "Relay", 3))
	h.login(t, odd)

	assert.True(t, h.svc.Session.IsAuthenticated())
	assert.Zero(t, h.svc.Products.Len())
	assert.Zero(t, h.api.Count(http.MethodGet, "/api/products"))
	require.ErrorIs(t, h.svc.Products.UpdateQuantity(context.Background(), "1", 2), policy.ErrDenied)
}

func TestAdminMutations_SnapshotEqualsFreshFetch(t *testing.T) {
	h := newHarness(t)
	h.api.SetProducts(product(1, "Relay", 3), product(2, "Cable", 5))
	h.login(t, admin)
	ctx := context.Background()

	check := func() {
		t.Helper()
		fresh := NewProductService(h.svc.Products.client, h.svc.Session, h.svc.Products.log)
		require.NoError(t, fresh.Reconcile(ctx))
		assert.Equal(t, fresh.All(), h.svc.Products.All())
	}

	require.NoError(t, h.svc.Products.SetStatus(ctx, "1", models.StatusInactive))
	p, _ := h.svc.Products.GetByID("1")
	assert.Equal(t, models.StatusInactive, p.Status)
	check()

	require.NoError(t, h.svc.Products.Update(ctx, "2", models.ProductPatch{Title: ptr("Cable XL"), PriceSpecial: ptr(7.5)}))
	last := h.api.Requests()[len(h.api.Requests())-2]
	assert.Equal(t, "/api/products/2", last.Path)
	assert.Equal(t, map[string]any{"title": "Cable XL", "price3": 7.5}, last.JSON())
	check()

	require.NoError(t, h.svc.Products.Delete(ctx, "1"))
	_, ok := h.svc.Products.GetByID("1")
	assert.False(t, ok)
	check()
}

func TestAdminAddAndSave(t *testing.T) {
	h := newHarness(t)
	h.login(t, admin)
	ctx := context.Background()

	img := filepath.Join(t.TempDir(), "a.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o600))

	require.NoError(t, h.svc.Products.Add(ctx, models.ProductDraft{
		Title: "Relay", Subtitle: "R1", Description: "d", CategoryID: "1",
		PriceCustomer: 3, PricePartner: 2, PriceSpecial: 1, Quantity: 4,
		MainPhoto: img, GalleryPhotos: []string{img},
	}))
	all := h.svc.Products.All()
	require.Len(t, all, 1)
	added := all[0]
	assert.Equal(t, h.api.URL+"/uploads/a.png", added.MainPhoto)
	assert.Equal(t, []string{h.api.URL + "/uploads/a.png"}, added.GalleryPhotos)

	loaded, err := h.svc.Products.Get(ctx, added.ID)
	require.NoError(t, err)
	d := models.DraftFromProduct(loaded)
	d.Title = "Relay v2"
	d.RemoveImages = []string{models.MediaName(loaded.GalleryPhotos[0])}
	require.NoError(t, h.svc.Products.Save(ctx, added.ID, d))

	saved, ok := h.svc.Products.GetByID(added.ID)
	require.True(t, ok)
	assert.Equal(t, "Relay v2", saved.Title)
	assert.Empty(t, saved.GalleryPhotos)
}

func TestMutationFailure_NoRefetchAndReported(t *testing.T) {
	h := newHarness(t)
	h.api.SetProducts(product(1, "Relay", 3))
	h.login(t, admin)
	h.api.ResetLog()
	h.api.FailNext(http.MethodDelete, "/api/products/1", http.StatusForbidden)

	err := h.svc.Products.Delete(context.Background(), "1")
	require.ErrorIs(t, err, client.ErrForbidden)
	assert.Zero(t, h.api.Count(http.MethodGet, "/api/products"))
	_, ok := h.svc.Products.GetByID("1")
	assert.True(t, ok)
}

func TestNegativeQuantity_RejectedLocally(t *testing.T) {
	h := newHarness(t)
	h.login(t, admin)
	h.api.ResetLog()

	err := h.svc.Products.UpdateQuantity(context.Background(), "1", -1)
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, h.api.Requests())
}

func TestFetch_MalformedSpecificationsBecomeEmpty(t *testing.T) {
	h := newHarness(t)
	rec := product(9, "Relay", 1)
	rec["specifications"] = "{not json"
	rec["imageUrls"] = `["a.jpg"]`
	h.api.SetProducts(rec)

	h.login(t, admin)

	p, ok := h.svc.Products.GetByID("9")
	require.True(t, ok)
	assert.Equal(t, []models.Specification{}, p.Specifications)
	assert.Equal(t, []string{h.api.URL + "/uploads/a.jpg"}, p.GalleryPhotos)
}

func TestFetch_TransportErrorKeepsSnapshot(t *testing.T) {
	h := newHarness(t)
	h.api.SetProducts(product(1, "Relay", 3))
	h.login(t, admin)
	before := h.svc.Products.All()

	h.api.SetProducts()
	h.api.FailNext(http.MethodGet, "/api/products", http.StatusInternalServerError)
	h.svc.Products.FetchAll(context.Background())

	assert.Equal(t, before, h.svc.Products.All())
}

func TestLogout_ClearsSnapshots(t *testing.T) {
	h := newHarness(t)
	h.api.SetProducts(product(1, "Relay", 3))
	h.api.SetCategories(map[string]any{"id": 1, "name": "Relays"})
	h.login(t, admin)
	require.Equal(t, 1, h.svc.Products.Len())

	h.svc.Session.Logout(context.Background())

	assert.Zero(t, h.svc.Products.Len())
	assert.Zero(t, h.svc.Categories.Len())
}

func TestCountByCategory(t *testing.T) {
	h := newHarness(t)
	p3 := product(3, "C", 1)
	p3["categoryId"] = 2
	h.api.SetProducts(product(1, "A", 1), product(2, "B", 1), p3)
	h.login(t, admin)

	assert.Equal(t, map[string]int{"1": 2, "2": 1}, h.svc.Products.CountByCategory())
}
