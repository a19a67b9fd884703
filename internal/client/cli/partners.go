package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/shopadmin/internal/client/models"
)

func (a *App) ListPartners(_ context.Context, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return errUsage
		}
		a.partners.page = n
	}

	var rows []models.Partner
	for _, p := range a.svc.Partners.All() {
		if matches(a.partners.query, p.Name, p.Email, p.Phone, p.Address, p.CompanyName) {
			rows = append(rows, p)
		}
	}

	start, end, current, pages := page(len(rows), a.partners.page, a.config.PageSize)
	a.partners.page = current

	tw := newTable(a.out, "ID", "NAME", "EMAIL", "PHONE", "COMPANY", "TYPE", "VERIFIED")
	for _, p := range rows[start:end] {
		row(tw, p.ID, p.Name, p.Email, p.Phone, truncate(p.Address, 24), p.Type, yesNo(p.Verified))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if a.partners.query != "" {
		a.printf("Filter: %q\n", a.partners.query)
	}
	a.printf("Page %d/%d (%d partners)\n", current, pages, len(rows))
	return nil
}

func (a *App) SearchPartners(ctx context.Context, args []string) error {
	a.partners = listState{query: strings.Join(args, " "), page: 1}
	return a.ListPartners(ctx, nil)
}

// ShowPartner loads the full record, optional attributes included.
func (a *App) ShowPartner(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := a.svc.Partners.Details(ctx, models.ID(args[0]))
	if err != nil {
		return err
	}

	a.printf("%s <%s>\n", p.Name, p.Email)
	a.printf("ID:        %s\n", p.ID)
	a.printf("Phone:     %s\n", p.Phone)
	a.printf("Company:   %s\n", p.Address)
	a.printf("Type:      %s\n", p.Type)
	a.printf("Verified:  %s\n", yesNo(p.Verified))
	for _, attr := range models.PartnerAttrs {
		if v := *p.Attr(attr.Attr); v != "" {
			a.printf("%s: %s\n", attr.Label, v)
		}
	}
	return nil
}

func (a *App) AddPartner(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	p := models.Partner{Type: models.PartnerNormal}
	if err := a.askPartner(&p); err != nil {
		return err
	}
	if err := a.svc.Partners.Add(ctx, p); err != nil {
		return err
	}
	a.printf("Partner %q registered\n", p.Name)
	return nil
}

func (a *App) EditPartner(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id := models.ID(args[0])
	p, err := a.svc.Partners.Details(ctx, id)
	if err != nil {
		return err
	}
	if err := a.askPartner(&p); err != nil {
		return err
	}
	if err := a.svc.Partners.Update(ctx, id, p); err != nil {
		return err
	}
	a.printf("Partner %q saved\n", p.Name)
	return nil
}

// askPartner prompts for the core fields and then the optional attributes,
// keeping current values on empty input.
func (a *App) askPartner(p *models.Partner) error {
	fields := []struct {
		label string
		dst   *string
	}{
		{"Name", &p.Name},
		{"Email", &p.Email},
		{"Phone", &p.Phone},
		{"Company name", &p.Address},
	}
	for _, f := range fields {
		v, err := a.ask(f.label, *f.dst)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	more, err := a.confirm("Edit additional details?")
	if err != nil || !more {
		return err
	}
	for _, attr := range models.PartnerAttrs {
		dst := p.Attr(attr.Attr)
		v, err := a.ask(attr.Label, *dst)
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}

func (a *App) SetPartnerType(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	t := models.PartnerType(strings.ToLower(args[1]))
	if err := a.svc.Partners.UpdateType(ctx, models.ID(args[0]), t); err != nil {
		return err
	}
	a.printf("Partner %s is now %s\n", args[0], t)
	return nil
}

func (a *App) VerifyPartner(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := a.svc.Partners.Verify(ctx, models.ID(args[0])); err != nil {
		return err
	}
	a.printf("Partner %s verified\n", args[0])
	return nil
}

func (a *App) DeletePartner(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	ok, err := a.confirm(fmt.Sprintf("Delete partner %s?", args[0]))
	if err != nil || !ok {
		return err
	}
	if err := a.svc.Partners.Delete(ctx, models.ID(args[0])); err != nil {
		return err
	}
	a.printf("Partner %s deleted\n", args[0])
	return nil
}
