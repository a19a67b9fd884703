package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/shopadmin/internal/client/client"
	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/dmitrijs2005/shopadmin/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/shopadmin/internal/logging"
	"github.com/dmitrijs2005/shopadmin/internal/testutil/fakeapi"
	"github.com/stretchr/testify/require"
)

const password = "secret"

var (
	admin = models.Identity{ID: "1", Email: "admin@shop.test", Name: "Admin", Role: models.RoleAdmin}
	clerk = models.Identity{ID: "2", Email: "store@shop.test", Name: "Store", Role: models.RoleStoreClerk}
	odd   = models.Identity{ID: "3", Email: "odd@shop.test", Name: "Odd", Role: "auditor"}
)

type harness struct {
	api *fakeapi.Server
	db  *sql.DB
	svc *Services
}

// newHarness wires the real HTTP client and services against a fake backend
// and an in-memory database.
func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	api := fakeapi.New(t)
	api.AddAccount(admin.Email, password, admin, "")
	api.AddAccount(clerk.Email, password, clerk, "")
	api.AddAccount(odd.Email, password, odd, "")

	db, err := client.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	c, err := client.NewHTTPClient(ctx, api.URL, cookies.NewSQLiteRepository(db), logging.Nop())
	require.NoError(t, err)

	return &harness{api: api, db: db, svc: New(c, db, logging.Nop())}
}

func (h *harness) login(t *testing.T, who models.Identity) {
	t.Helper()
	require.True(t, h.svc.Session.Login(context.Background(), who.Email, password))
}

func (h *harness) metadata(t *testing.T, key string) []byte {
	t.Helper()
	var v []byte
	err := h.db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return nil
	}
	require.NoError(t, err)
	return v
}

func product(id any, title string, qty int) map[string]any {
	return map[string]any{
		"id": id, "title": title, "titleSub": "M-" + title, "description": "d",
		"categoryId": 1, "price1": 10, "price2": 9, "price3": 8,
		"quantity": qty, "status": "active",
	}
}
