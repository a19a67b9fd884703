package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/shopadmin/internal/client/policy"
	"github.com/dmitrijs2005/shopadmin/internal/client/services"
	"github.com/dmitrijs2005/shopadmin/internal/common"
)

func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	ok := a.svc.Session.Login(ctx, email, string(password))
	clear(password)
	if !ok {
		a.println("Login failed: check your email and password")
		return nil
	}

	id, _ := a.svc.Session.Identity()
	a.printf("Logged in as %s (%s)\n", id.Name, id.Role)
	a.products, a.partners = listState{page: 1}, listState{page: 1}
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	a.svc.Session.Logout(ctx)
	a.println("Logged out")
	return nil
}

// Forget is logout plus removal of everything stored locally.
func (a *App) Forget(ctx context.Context, _ []string) error {
	ok, err := a.confirm("Remove the stored session from this machine?")
	if err != nil || !ok {
		return err
	}
	if err := a.svc.Session.Forget(ctx); err != nil {
		return err
	}
	a.println("Local session data removed")
	return nil
}

func (a *App) Whoami(_ context.Context, _ []string) error {
	id, ok := a.svc.Session.Identity()
	if !ok {
		return common.ErrNotAuthenticated
	}
	a.printf("%s <%s> role=%s\n", id.Name, id.Email, id.Role)
	return nil
}

// Refresh reconciles every context the role can see.
func (a *App) Refresh(ctx context.Context, _ []string) error {
	contexts := []services.Reconciler{
		a.svc.Products, a.svc.Categories, a.svc.Partners, a.svc.Quotations, a.svc.Contacts,
	}
	var errs []error
	for _, c := range contexts {
		if err := c.Reconcile(ctx); err != nil && !errors.Is(err, policy.ErrDenied) {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	a.println("Refreshed")
	return nil
}
