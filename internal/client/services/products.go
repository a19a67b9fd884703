package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopadmin/internal/client/client"
	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/dmitrijs2005/shopadmin/internal/client/policy"
	"github.com/dmitrijs2005/shopadmin/internal/client/validation"
	"github.com/dmitrijs2005/shopadmin/internal/common"
	"github.com/dmitrijs2005/shopadmin/internal/logging"
)

// ProductService is the product resource context. Updates go through the
// role policy first: a store clerk may send quantity-only updates and
// nothing else, and a refused update never reaches the network.
type ProductService struct {
	*snapshot[models.Product]
	client client.Client
}

func NewProductService(c client.Client, session Session, log logging.Logger) *ProductService {
	p := &ProductService{client: c}
	p.snapshot = newSnapshot(policy.Products, session, log, p.load,
		func(p models.Product) models.ID { return p.ID })
	return p
}

// UploadsBase is the URL prefix media filenames resolve against.
func (p *ProductService) UploadsBase() string {
	return p.client.BaseURL() + "/uploads"
}

func (p *ProductService) normalize(ctx context.Context, rec map[string]any) models.Product {
	product, warnings := models.ProductFromRecord(rec, p.UploadsBase())
	for _, w := range warnings {
		p.log.Warn(ctx, "product field decoded to default", "error", w)
	}
	return product
}

func (p *ProductService) load(ctx context.Context) ([]models.Product, error) {
	recs, err := p.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(recs))
	for _, rec := range recs {
		products = append(products, p.normalize(ctx, rec))
	}
	return products, nil
}

// Get loads one product from the backend, for the edit form.
func (p *ProductService) Get(ctx context.Context, id models.ID) (models.Product, error) {
	if err := p.guard(policy.Read); err != nil {
		return models.Product{}, err
	}
	rec, err := p.client.GetProduct(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return p.normalize(ctx, rec), nil
}

// Add creates a product from the full form, media included.
func (p *ProductService) Add(ctx context.Context, d models.ProductDraft) error {
	if err := p.guard(policy.Create); err != nil {
		return err
	}
	if err := p.client.CreateProduct(ctx, d); err != nil {
		return fmt.Errorf("add product: %w", err)
	}
	p.afterMutation(ctx)
	return nil
}

// Save replaces a product from the full form, media included.
func (p *ProductService) Save(ctx context.Context, id models.ID, d models.ProductDraft) error {
	if err := p.guard(policy.Update); err != nil {
		return err
	}
	if err := p.client.UpdateProduct(ctx, id, d); err != nil {
		return fmt.Errorf("save product %s: %w", id, err)
	}
	p.afterMutation(ctx)
	return nil
}

// Update applies a partial update. A patch touching quantity alone goes to
// the quantity endpoint; any other patch is an admin-only JSON update.
func (p *ProductService) Update(ctx context.Context, id models.ID, patch models.ProductPatch) error {
	if !p.session.IsAuthenticated() {
		return common.ErrNotAuthenticated
	}
	fields := patch.Fields()
	if len(fields) == 0 {
		return common.ErrEmptyPatch
	}
	if err := policy.CheckProductPatch(p.session.Role(), fields); err != nil {
		return err
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return &validation.Error{Fields: []validation.FieldError{
			{Field: models.FieldQuantity, Message: "Quantity must be a non-negative number"},
		}}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return &validation.Error{Fields: []validation.FieldError{
			{Field: models.FieldStatus, Message: "Status must be active or inactive"},
		}}
	}

	var err error
	if patch.QuantityOnly() {
		err = p.client.UpdateProductQuantity(ctx, id, *patch.Quantity)
	} else {
		var body map[string]any
		if body, err = patch.Body(); err == nil {
			err = p.client.PatchProduct(ctx, id, body)
		}
	}
	if err != nil {
		return fmt.Errorf("update product %s: %w", id, err)
	}
	p.afterMutation(ctx)
	return nil
}

func (p *ProductService) UpdateQuantity(ctx context.Context, id models.ID, quantity int) error {
	return p.Update(ctx, id, models.QuantityPatch(quantity))
}

func (p *ProductService) SetStatus(ctx context.Context, id models.ID, status models.ProductStatus) error {
	return p.Update(ctx, id, models.ProductPatch{Status: &status})
}

// Delete is refused locally for every role but admin.
func (p *ProductService) Delete(ctx context.Context, id models.ID) error {
	if err := p.guard(policy.Delete); err != nil {
		return err
	}
	if err := p.client.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	p.afterMutation(ctx)
	return nil
}

// CountByCategory returns how many snapshot products reference each category.
func (p *ProductService) CountByCategory() map[string]int {
	counts := make(map[string]int)
	for _, prod := range p.All() {
		counts[prod.CategoryID]++
	}
	return counts
}
