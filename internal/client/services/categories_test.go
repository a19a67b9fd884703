package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/shopadmin/internal/client/policy"
	"github.com/dmitrijs2005/shopadmin/internal/client/validation"
	"github.com/dmitrijs2005/shopadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryAdd_DuplicateDifferentCaseRejected(t *testing.T) {
	h := newHarness(t)
	h.api.SetCategories(map[string]any{"id": 1, "name": "sensors"})
	h.login(t, admin)
	h.api.ResetLog()

	err := h.svc.Categories.Add(context.Background(), "Sensors")

	require.ErrorIs(t, err, common.ErrValidation)
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Category already exists", verr.Fields[0].Message)
	assert.Zero(t, h.api.Count(http.MethodPost, "/api/categories"))
	assert.Empty(t, h.api.Requests())
}

func TestCategoryAdd_TrimsAndRefetches(t *testing.T) {
	h := newHarness(t)
	h.api.SetCategories(map[string]any{"id": 1, "name": "sensors"})
	h.login(t, admin)
	h.api.ResetLog()

	require.NoError(t, h.svc.Categories.Add(context.Background(), "  Relays "))

	reqs := h.api.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, map[string]any{"name": "Relays"}, reqs[0].JSON())
	assert.Equal(t, "/api/categories", reqs[1].Path)
	assert.Equal(t, http.MethodGet, reqs[1].Method)
	assert.Equal(t, 2, h.svc.Categories.Len())
	assert.Equal(t, "sensors", h.svc.Categories.Name("1"))
	assert.Equal(t, "99", h.svc.Categories.Name("99"))
}

func TestCategoryAdd_ClerkDenied(t *testing.T) {
	h := newHarness(t)
	h.login(t, clerk)
	h.api.ResetLog()

	require.ErrorIs(t, h.svc.Categories.Add(context.Background(), "Relays"), policy.ErrDenied)
	assert.Empty(t, h.api.Requests())
}
