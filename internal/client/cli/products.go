package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/dmitrijs2005/shopadmin/internal/client/policy"
	"github.com/dmitrijs2005/shopadmin/internal/client/validation"
	"github.com/dmitrijs2005/shopadmin/internal/common"
)

func (a *App) ListProducts(_ context.Context, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return errUsage
		}
		a.products.page = n
	}

	var rows []models.Product
	for _, p := range a.svc.Products.All() {
		if matches(a.products.query, p.Title, p.Description) {
			rows = append(rows, p)
		}
	}

	start, end, current, pages := page(len(rows), a.products.page, a.config.PageSize)
	a.products.page = current

	showCategory := policy.Visible(a.role(), policy.Categories)
	tw := newTable(a.out, "ID", "NAME", "MODEL", "CATEGORY", "QTY", "PRICE", "STATUS")
	for _, p := range rows[start:end] {
		category := p.CategoryID
		if showCategory {
			category = a.svc.Categories.Name(p.CategoryID)
		}
		row(tw, p.ID, truncate(p.Title, 32), p.Subtitle, category, p.Quantity, money(p.PriceCustomer), p.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if a.products.query != "" {
		a.printf("Filter: %q\n", a.products.query)
	}
	a.printf("Page %d/%d (%d products)\n", current, pages, len(rows))
	return nil
}

// SearchProducts sets the product filter and shows the first page. No
// argument clears the filter.
func (a *App) SearchProducts(ctx context.Context, args []string) error {
	a.products = listState{query: strings.Join(args, " "), page: 1}
	return a.ListProducts(ctx, nil)
}

func (a *App) ShowProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := a.product(ctx, models.ID(args[0]))
	if err != nil {
		return err
	}

	a.printf("%s (%s)\n", p.Title, p.Subtitle)
	a.printf("ID:           %s\n", p.ID)
	a.printf("Status:       %s\n", p.Status)
	a.printf("Category:     %s\n", a.svc.Categories.Name(p.CategoryID))
	a.printf("Quantity:     %d\n", p.Quantity)
	a.printf("Prices:       customer %s / partner %s / special %s\n",
		money(p.PriceCustomer), money(p.PricePartner), money(p.PriceSpecial))
	a.printf("Description:  %s\n", p.Description)
	if p.About != "" {
		a.printf("About:        %s\n", p.About)
	}
	if !p.CreatedAt.IsZero() {
		a.printf("Created:      %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	}

	if len(p.Specifications) > 0 {
		a.println("Specifications:")
		tw := newTable(a.out, "  LABEL", "VALUE")
		for _, s := range p.Specifications {
			row(tw, "  "+s.Label, s.Value)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if p.MainPhoto != "" {
		a.println("Main photo:", p.MainPhoto)
	}
	for _, u := range p.GalleryPhotos {
		a.println("Gallery:   ", u)
	}
	for _, u := range p.Videos {
		a.println("Video:     ", u)
	}
	return nil
}

// product prefers the snapshot and falls back to the backend.
func (a *App) product(ctx context.Context, id models.ID) (models.Product, error) {
	if p, ok := a.svc.Products.GetByID(id); ok {
		return p, nil
	}
	return a.svc.Products.Get(ctx, id)
}

func (a *App) AddProduct(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	a.printCategoryChoices()

	d, err := a.askProductForm(validation.ProductForm{})
	if err != nil {
		return err
	}
	d.Status = models.StatusActive

	if d.Specifications, err = a.askSpecifications(); err != nil {
		return err
	}
	if d.MainPhoto, err = a.ask("Main photo file", ""); err != nil {
		return err
	}
	if d.GalleryPhotos, err = a.askList("Gallery photo files, comma-separated"); err != nil {
		return err
	}
	if d.Videos, err = a.askList("Video files, comma-separated"); err != nil {
		return err
	}

	if err := a.svc.Products.Add(ctx, d); err != nil {
		return err
	}
	a.printf("Product %q created\n", d.Title)
	return nil
}

func (a *App) EditProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id := models.ID(args[0])
	p, err := a.svc.Products.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printCategoryChoices()

	d, err := a.askProductForm(validation.FormFromProduct(p))
	if err != nil {
		return err
	}
	d.Status = p.Status
	d.Specifications = p.Specifications

	replace, err := a.confirm(fmt.Sprintf("Replace the %d specification rows?", len(p.Specifications)))
	if err != nil {
		return err
	}
	if replace {
		if d.Specifications, err = a.askSpecifications(); err != nil {
			return err
		}
	}

	if d.MainPhoto, err = a.ask("New main photo file (empty keeps the current one)", ""); err != nil {
		return err
	}
	if d.GalleryPhotos, err = a.askList("Gallery photo files to add"); err != nil {
		return err
	}
	if d.RemoveImages, err = a.askRemovals("Gallery photos", p.GalleryPhotos); err != nil {
		return err
	}
	if d.Videos, err = a.askList("Video files to add"); err != nil {
		return err
	}
	if d.RemoveVideos, err = a.askRemovals("Videos", p.Videos); err != nil {
		return err
	}

	if err := a.svc.Products.Save(ctx, id, d); err != nil {
		return err
	}
	a.printf("Product %q saved\n", d.Title)
	return nil
}

// askProductForm fills the scalar form fields, keeping f's values on empty
// input, and validates the result.
func (a *App) askProductForm(f validation.ProductForm) (models.ProductDraft, error) {
	fields := []struct {
		label string
		dst   *string
	}{
		{"Product name", &f.Title},
		{"Model number", &f.Subtitle},
		{"Description", &f.Description},
		{"About", &f.About},
		{"Category", &f.CategoryID},
		{"Customer price", &f.PriceCustomer},
		{"Partner price", &f.PricePartner},
		{"Special price", &f.PriceSpecial},
		{"Quantity", &f.Quantity},
	}
	for _, fl := range fields {
		v, err := a.ask(fl.label, *fl.dst)
		if err != nil {
			return models.ProductDraft{}, err
		}
		*fl.dst = v
	}
	f.CategoryID = a.resolveCategory(f.CategoryID)

	d, res := validation.Product(f)
	if !res.OK() {
		return models.ProductDraft{}, res.Err()
	}
	return d, nil
}

func (a *App) printCategoryChoices() {
	cats := a.svc.Categories.All()
	if len(cats) == 0 {
		return
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, fmt.Sprintf("%s=%s", c.ID, c.Name))
	}
	a.println("Categories:", strings.Join(names, ", "))
}

// resolveCategory accepts a category id or a category name.
func (a *App) resolveCategory(input string) string {
	input = strings.TrimSpace(input)
	for _, c := range a.svc.Categories.All() {
		if string(c.ID) == input {
			return input
		}
	}
	for _, c := range a.svc.Categories.All() {
		if strings.EqualFold(c.Name, input) {
			return string(c.ID)
		}
	}
	return input
}

func (a *App) askSpecifications() ([]models.Specification, error) {
	lines, err := GetLines(a.reader, "Specifications as label=value", a.out)
	if err != nil {
		return nil, err
	}
	return parseSpecifications(lines), nil
}

func parseSpecifications(lines []string) []models.Specification {
	specs := []models.Specification{}
	for _, l := range lines {
		label, value, _ := strings.Cut(l, "=")
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		specs = append(specs, models.Specification{Label: label, Value: strings.TrimSpace(value)})
	}
	return specs
}

func (a *App) askList(prompt string) ([]string, error) {
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	return splitList(v), nil
}

// askRemovals lists the stored media and returns the file names picked for
// removal. Names that are not stored are ignored.
func (a *App) askRemovals(label string, urls []string) ([]string, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	stored := make(map[string]bool, len(urls))
	names := make([]string, 0, len(urls))
	for _, u := range urls {
		n := models.MediaName(u)
		stored[n] = true
		names = append(names, n)
	}
	a.printf("%s: %s\n", label, strings.Join(names, ", "))

	picked, err := a.askList(label + " to remove")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, n := range picked {
		if stored[n] {
			out = append(out, n)
		}
	}
	return out, nil
}

// SetQuantity is the one product update a store clerk may make.
func (a *App) SetQuantity(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	q, res := validation.Quantity(args[1])
	if !res.OK() {
		return res.Err()
	}
	id := models.ID(args[0])
	if err := a.svc.Products.UpdateQuantity(ctx, id, q); err != nil {
		return err
	}
	a.printf("Quantity of %s set to %d\n", id, q)
	return nil
}

func (a *App) ToggleStatus(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id := models.ID(args[0])
	p, ok := a.svc.Products.GetByID(id)
	if !ok {
		return fmt.Errorf("product %s: %w", id, common.ErrNotFound)
	}
	next := p.Status.Toggle()
	if err := a.svc.Products.SetStatus(ctx, id, next); err != nil {
		return err
	}
	a.printf("Product %q is now %s\n", p.Title, next)
	return nil
}

func (a *App) DeleteProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id := models.ID(args[0])
	ok, err := a.confirm(fmt.Sprintf("Delete product %s?", id))
	if err != nil || !ok {
		return err
	}
	if err := a.svc.Products.Delete(ctx, id); err != nil {
		return err
	}
	a.printf("Product %s deleted\n", id)
	return nil
}
