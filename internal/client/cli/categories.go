package cli

import (
	"context"
	"strings"
)

// ListCategories shows each category with the number of products in it.
func (a *App) ListCategories(_ context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	counts := a.svc.Products.CountByCategory()
	tw := newTable(a.out, "ID", "NAME", "PRODUCTS")
	for _, c := range a.svc.Categories.All() {
		row(tw, c.ID, c.Name, counts[string(c.ID)])
	}
	return tw.Flush()
}

func (a *App) AddCategory(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if name == "" {
		var err error
		if name, err = getSimpleText(a.reader, "Category name", a.out); err != nil {
			return err
		}
	}
	if err := a.svc.Categories.Add(ctx, name); err != nil {
		return err
	}
	a.printf("Category %q created\n", strings.TrimSpace(name))
	return nil
}
