package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shopadmin/internal/client/client"
	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/dmitrijs2005/shopadmin/internal/client/policy"
	"github.com/dmitrijs2005/shopadmin/internal/client/validation"
	"github.com/dmitrijs2005/shopadmin/internal/logging"
)

type CategoryService struct {
	*snapshot[models.Category]
	client client.Client
}

func NewCategoryService(c client.Client, session Session, log logging.Logger) *CategoryService {
	s := &CategoryService{client: c}
	s.snapshot = newSnapshot(policy.Categories, session, log, c.ListCategories,
		func(c models.Category) models.ID { return c.ID })
	return s
}

// Add creates a category. The name is checked against the snapshot first,
// so a duplicate never reaches the backend.
func (s *CategoryService) Add(ctx context.Context, name string) error {
	if err := s.guard(policy.Create); err != nil {
		return err
	}
	if err := validation.Category(name, s.All()).Err(); err != nil {
		return err
	}
	if _, err := s.client.CreateCategory(ctx, strings.TrimSpace(name)); err != nil {
		return fmt.Errorf("add category: %w", err)
	}
	s.afterMutation(ctx)
	return nil
}

// Name returns the category name for id, or id itself when unknown.
func (s *CategoryService) Name(id string) string {
	if c, ok := s.GetByID(models.ID(id)); ok {
		return c.Name
	}
	return id
}
