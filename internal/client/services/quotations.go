package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/shopadmin/internal/client/client"
	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/dmitrijs2005/shopadmin/internal/client/policy"
	"github.com/dmitrijs2005/shopadmin/internal/common"
	"github.com/dmitrijs2005/shopadmin/internal/logging"
)

// QuotationService is read-only: quotations come from the public quoting
// flow.
type QuotationService struct {
	*snapshot[models.Quotation]
	client client.Client
}

func NewQuotationService(c client.Client, session Session, log logging.Logger) *QuotationService {
	s := &QuotationService{client: c}
	s.snapshot = newSnapshot(policy.Quotations, session, log, c.ListQuotations,
		func(q models.Quotation) models.ID { return q.ID })
	return s
}

// DocumentURL resolves the quotation's generated PDF against the base URL.
func (s *QuotationService) DocumentURL(q models.Quotation) (string, error) {
	if !q.HasDocument() {
		return "", ErrNoDocument
	}
	return s.client.BaseURL() + "/" + strings.TrimLeft(q.DocumentPath, "/"), nil
}

// Download writes the PDF of quotation id into w.
func (s *QuotationService) Download(ctx context.Context, id models.ID, w io.Writer) error {
	if err := s.guard(policy.Read); err != nil {
		return err
	}
	q, ok := s.GetByID(id)
	if !ok {
		return fmt.Errorf("quotation %s: %w", id, common.ErrNotFound)
	}
	if !q.HasDocument() {
		return ErrNoDocument
	}
	if err := s.client.Download(ctx, q.DocumentPath, w); err != nil {
		return fmt.Errorf("download quotation %s: %w", id, err)
	}
	return nil
}
