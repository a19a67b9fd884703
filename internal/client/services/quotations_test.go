package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/dmitrijs2005/shopadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedQuotations(h *harness) {
	h.api.SetQuotations(
		map[string]any{
			"id": 1, "name": "Ann", "email": "ann@x.io", "phone": "1", "userType": "special",
			"partner":          map[string]any{"company": "ACME", "address": "Main st"},
			"items":            []any{map[string]any{"productId": 42, "title": "Relay", "quantity": 2, "price": "9.5"}},
			"quotationPdfPath": "/uploads/q-1.pdf",
		},
		map[string]any{"id": 2, "name": "Bob", "email": "bob@x.io", "userType": "customer", "items": []any{}},
	)
	h.api.SetUpload("q-1.pdf", []byte("%PDF"))
}

func TestQuotations_FetchAndDocument(t *testing.T) {
	h := newHarness(t)
	seedQuotations(h)
	h.login(t, admin)
	ctx := context.Background()

	q, ok := h.svc.Quotations.GetByID("1")
	require.True(t, ok)
	assert.Equal(t, models.RequesterSpecialPartner, q.RequesterKind)
	assert.Equal(t, "ACME", q.CompanyName())
	assert.Equal(t, 19.0, q.Total())

	url, err := h.svc.Quotations.DocumentURL(q)
	require.NoError(t, err)
	assert.Equal(t, h.api.URL+"/uploads/q-1.pdf", url)

	var buf bytes.Buffer
	require.NoError(t, h.svc.Quotations.Download(ctx, "1", &buf))
	assert.Equal(t, "%PDF", buf.String())

	q2, _ := h.svc.Quotations.GetByID("2")
	_, err = h.svc.Quotations.DocumentURL(q2)
	require.ErrorIs(t, err, ErrNoDocument)
	require.ErrorIs(t, h.svc.Quotations.Download(ctx, "2", &buf), ErrNoDocument)
	require.ErrorIs(t, h.svc.Quotations.Download(ctx, "404", &buf), common.ErrNotFound)
}

func TestContacts_Fetch(t *testing.T) {
	h := newHarness(t)
	h.api.SetContacts(map[string]any{
		"firstName": "Ann", "lastName": "Lee", "email": "ann@x.io",
		"comment": "Call me", "submissionDate": "2024-05-01T10:00:00Z",
	})
	h.login(t, admin)

	c, ok := h.svc.Contacts.GetByID("ann@x.io")
	require.True(t, ok)
	assert.Equal(t, "Call me", c.Message)
	assert.Equal(t, 2024, c.SubmittedAt.Year())
}

func TestReadOnlyContexts_HiddenFromClerk(t *testing.T) {
	h := newHarness(t)
	seedQuotations(h)
	h.login(t, clerk)

	assert.Zero(t, h.svc.Quotations.Len())
	assert.Zero(t, h.svc.Contacts.Len())
	assert.Zero(t, h.svc.Categories.Len())
}
