package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/shopadmin/internal/client/models"
)

// Client is the backend REST contract used by the session store and the
// resource contexts. Product and partner listings are returned as raw records;
// their normalization belongs to the models package.
type Client interface {
	BaseURL() string

	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
	// Logout notifies the backend and forgets the local session credentials
	// even when the notification fails.
	Logout(ctx context.Context) error
	ValidateSession(ctx context.Context) error
	SetBearerToken(token string)

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)

	ListPartners(ctx context.Context) ([]map[string]any, error)
	GetPartner(ctx context.Context, id models.ID) (map[string]any, error)
	CreatePartner(ctx context.Context, p models.Partner) error
	UpdatePartner(ctx context.Context, id models.ID, p models.Partner) error
	UpdatePartnerType(ctx context.Context, id models.ID, t models.PartnerType) error
	VerifyPartner(ctx context.Context, id models.ID) error
	DeletePartner(ctx context.Context, id models.ID) error

	ListProducts(ctx context.Context) ([]map[string]any, error)
	GetProduct(ctx context.Context, id models.ID) (map[string]any, error)
	CreateProduct(ctx context.Context, d models.ProductDraft) error
	UpdateProduct(ctx context.Context, id models.ID, d models.ProductDraft) error
	PatchProduct(ctx context.Context, id models.ID, body map[string]any) error
	UpdateProductQuantity(ctx context.Context, id models.ID, quantity int) error
	DeleteProduct(ctx context.Context, id models.ID) error

	ListQuotations(ctx context.Context) ([]models.Quotation, error)
	ListContacts(ctx context.Context) ([]models.ContactSubmission, error)

	// Download streams the file at path, relative to the base URL, into w.
	Download(ctx context.Context, path string, w io.Writer) error
}
