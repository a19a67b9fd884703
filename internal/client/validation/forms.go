package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/spf13/cast"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Category checks a new category name against the existing ones. Names are
// compared trimmed and case-insensitively.
func Category(name string, existing []models.Category) Result {
	var r Result
	name = strings.TrimSpace(name)
	if name == "" {
		r.add("name", "Category name is required")
		return r
	}
	for _, c := range existing {
		if strings.EqualFold(strings.TrimSpace(c.Name), name) {
			r.add("name", "Category already exists")
			break
		}
	}
	return r
}

// Partner checks the required fields of the partner form. The address field
// holds the company name on that form.
func Partner(p models.Partner) Result {
	var r Result
	r.require("firstName", p.Name, "Partner name is required")
	if strings.TrimSpace(p.Email) == "" {
		r.add("email", "Email is required")
	} else if !emailPattern.MatchString(p.Email) {
		r.add("email", "Enter a valid email")
	}
	r.require("phone", p.Phone, "Phone number is required")
	r.require("address", p.Address, "Company name is required")
	return r
}

// ProductForm is the product form as typed by the user.
type ProductForm struct {
	Title         string
	Subtitle      string
	Description   string
	About         string
	CategoryID    string
	PriceCustomer string
	PricePartner  string
	PriceSpecial  string
	Quantity      string
}

// FormFromProduct seeds a form from a stored product.
func FormFromProduct(p models.Product) ProductForm {
	return ProductForm{
		Title:         p.Title,
		Subtitle:      p.Subtitle,
		Description:   p.Description,
		About:         p.About,
		CategoryID:    p.CategoryID,
		PriceCustomer: cast.ToString(p.PriceCustomer),
		PricePartner:  cast.ToString(p.PricePartner),
		PriceSpecial:  cast.ToString(p.PriceSpecial),
		Quantity:      strconv.Itoa(p.Quantity),
	}
}

// Product checks the full product form and, when it passes, returns its
// scalar fields as a draft. Media and specifications are left to the caller.
func Product(f ProductForm) (models.ProductDraft, Result) {
	var r Result
	r.require(models.FieldTitle, f.Title, "Product name is required")
	r.require(models.FieldSubtitle, f.Subtitle, "Model number is required")
	r.require(models.FieldDescription, f.Description, "Description is required")
	r.require(models.FieldCategoryID, f.CategoryID, "Category is required")

	d := models.ProductDraft{
		Title:       strings.TrimSpace(f.Title),
		Subtitle:    strings.TrimSpace(f.Subtitle),
		Description: strings.TrimSpace(f.Description),
		About:       f.About,
		CategoryID:  strings.TrimSpace(f.CategoryID),
	}

	prices := []struct {
		field string
		text  string
		label string
		dst   *float64
	}{
		{models.FieldPriceCustomer, f.PriceCustomer, "Customer Price", &d.PriceCustomer},
		{models.FieldPricePartner, f.PricePartner, "Partner Price", &d.PricePartner},
		{models.FieldPriceSpecial, f.PriceSpecial, "Special Price", &d.PriceSpecial},
	}
	for _, p := range prices {
		v, err := cast.ToFloat64E(strings.TrimSpace(p.text))
		if err != nil || v <= 0 {
			r.add(p.field, p.label+" must be positive")
			continue
		}
		*p.dst = v
	}

	q, err := parseQuantity(f.Quantity)
	if err != nil {
		r.add(models.FieldQuantity, "Quantity must be non-negative")
	}
	d.Quantity = q

	return d, r
}

// Quantity checks the single field a store clerk may edit.
func Quantity(text string) (int, Result) {
	var r Result
	q, err := parseQuantity(text)
	if err != nil {
		r.add(models.FieldQuantity, "Quantity must be a non-negative number")
	}
	return q, r
}

var errNegativeQuantity = errors.New("quantity is negative")

// parseQuantity reads a base-10 integer >= 0. cast would read a leading zero
// as octal, so strconv is used here.
func parseQuantity(text string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, err
	}
	if q < 0 {
		return 0, errNegativeQuantity
	}
	return q, nil
}
