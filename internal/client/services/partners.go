package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopadmin/internal/client/client"
	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/dmitrijs2005/shopadmin/internal/client/policy"
	"github.com/dmitrijs2005/shopadmin/internal/client/validation"
	"github.com/dmitrijs2005/shopadmin/internal/logging"
)

// PartnerService is the partner resource context.
type PartnerService struct {
	*snapshot[models.Partner]
	client client.Client
}

func NewPartnerService(c client.Client, session Session, log logging.Logger) *PartnerService {
	p := &PartnerService{client: c}
	p.snapshot = newSnapshot(policy.Partners, session, log, p.load,
		func(p models.Partner) models.ID { return p.ID })
	return p
}

// load skips records that cannot be decoded.
func (p *PartnerService) load(ctx context.Context) ([]models.Partner, error) {
	recs, err := p.client.ListPartners(ctx)
	if err != nil {
		return nil, err
	}
	partners := make([]models.Partner, 0, len(recs))
	for _, rec := range recs {
		partner, err := models.PartnerFromRecord(rec)
		if err != nil {
			p.log.Warn(ctx, "skipping partner record", "id", rec["id"], "error", err)
			continue
		}
		partners = append(partners, partner)
	}
	return partners, nil
}

// Details loads the full record of one partner.
func (p *PartnerService) Details(ctx context.Context, id models.ID) (models.Partner, error) {
	if err := p.guard(policy.Read); err != nil {
		return models.Partner{}, err
	}
	rec, err := p.client.GetPartner(ctx, id)
	if err != nil {
		return models.Partner{}, fmt.Errorf("get partner %s: %w", id, err)
	}
	return models.PartnerFromRecord(rec)
}

func (p *PartnerService) Add(ctx context.Context, partner models.Partner) error {
	if err := p.guard(policy.Create); err != nil {
		return err
	}
	if err := validation.Partner(partner).Err(); err != nil {
		return err
	}
	if err := p.client.CreatePartner(ctx, partner); err != nil {
		return fmt.Errorf("add partner: %w", err)
	}
	p.afterMutation(ctx)
	return nil
}

func (p *PartnerService) Update(ctx context.Context, id models.ID, partner models.Partner) error {
	if err := p.guard(policy.Update); err != nil {
		return err
	}
	if err := validation.Partner(partner).Err(); err != nil {
		return err
	}
	if err := p.client.UpdatePartner(ctx, id, partner); err != nil {
		return fmt.Errorf("update partner %s: %w", id, err)
	}
	p.afterMutation(ctx)
	return nil
}

// UpdateType switches a partner between normal and special.
func (p *PartnerService) UpdateType(ctx context.Context, id models.ID, t models.PartnerType) error {
	if err := p.guard(policy.Update); err != nil {
		return err
	}
	if !t.Valid() {
		return &validation.Error{Fields: []validation.FieldError{
			{Field: "type", Message: "Partner type must be normal or special"},
		}}
	}
	if err := p.client.UpdatePartnerType(ctx, id, t); err != nil {
		return fmt.Errorf("update partner %s type: %w", id, err)
	}
	p.afterMutation(ctx)
	return nil
}

// Verify marks a partner verified. There is no way back.
func (p *PartnerService) Verify(ctx context.Context, id models.ID) error {
	if err := p.guard(policy.Verify); err != nil {
		return err
	}
	if cur, ok := p.GetByID(id); ok && cur.Verified {
		return ErrAlreadyVerified
	}
	if err := p.client.VerifyPartner(ctx, id); err != nil {
		return fmt.Errorf("verify partner %s: %w", id, err)
	}
	p.afterMutation(ctx)
	return nil
}

func (p *PartnerService) Delete(ctx context.Context, id models.ID) error {
	if err := p.guard(policy.Delete); err != nil {
		return err
	}
	if err := p.client.DeletePartner(ctx, id); err != nil {
		return fmt.Errorf("delete partner %s: %w", id, err)
	}
	p.afterMutation(ctx)
	return nil
}
