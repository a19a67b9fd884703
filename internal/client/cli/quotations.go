package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/dmitrijs2005/shopadmin/internal/common"
	"github.com/dmitrijs2005/shopadmin/internal/filex"
)

func (a *App) ListQuotations(_ context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	tw := newTable(a.out, "ID", "NAME", "EMAIL", "COMPANY", "REQUESTER", "ITEMS", "TOTAL", "PDF")
	for _, q := range a.svc.Quotations.All() {
		row(tw, q.ID, q.Name, q.Email, truncate(q.CompanyName(), 24), q.RequesterKind,
			len(q.Items), money(q.Total()), yesNo(q.HasDocument()))
	}
	return tw.Flush()
}

func (a *App) ShowQuotation(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id := models.ID(args[0])
	q, ok := a.svc.Quotations.GetByID(id)
	if !ok {
		return fmt.Errorf("quotation %s: %w", id, common.ErrNotFound)
	}

	a.printf("Quotation %s for %s <%s>, %s\n", q.ID, q.Name, q.Email, q.Phone)
	if c := q.CompanyName(); c != "" {
		a.printf("Company: %s\n", c)
	}
	if addr := q.Address(); addr != "" {
		a.printf("Address: %s\n", addr)
	}
	if u, err := a.svc.Quotations.DocumentURL(q); err == nil {
		a.printf("PDF:     %s\n", u)
	}

	tw := newTable(a.out, "PRODUCT", "MODEL", "QTY", "PRICE", "TOTAL")
	for _, it := range q.Items {
		row(tw, it.Title, it.Model, it.Quantity, money(float64(it.Price)), money(it.Total()))
	}
	row(tw, "", "", "", "", money(q.Total()))
	return tw.Flush()
}

// DownloadQuotation saves the quotation PDF to a local file. A failed
// download leaves no file behind.
func (a *App) DownloadQuotation(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	path := args[1]
	if err := filex.EnsureParentDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = a.svc.Quotations.Download(ctx, models.ID(args[0]), f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}
	a.printf("Saved %s\n", path)
	return nil
}
