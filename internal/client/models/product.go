package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusInactive ProductStatus = "inactive"
)

func (s ProductStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Toggle returns the opposite status.
func (s ProductStatus) Toggle() ProductStatus {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// Specification is one (label, value) row of a product's spec sheet.
type Specification struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Product wire keys.
const (
	FieldTitle          = "title"
	FieldSubtitle       = "titleSub"
	FieldDescription    = "description"
	FieldAbout          = "about"
	FieldCategoryID     = "categoryId"
	FieldPriceCustomer  = "price1"
	FieldPricePartner   = "price2"
	FieldPriceSpecial   = "price3"
	FieldQuantity       = "quantity"
	FieldStatus         = "status"
	FieldSpecifications = "specifications"
)

type Product struct {
	ID             ID
	Title          string
	Subtitle       string
	Description    string
	About          string
	CategoryID     string
	PriceCustomer  float64
	PricePartner   float64
	PriceSpecial   float64
	Quantity       int
	Status         ProductStatus
	Specifications []Specification
	// Media references are absolute URLs under the uploads path.
	MainPhoto     string
	GalleryPhotos []string
	Videos        []string
	CreatedAt     time.Time
}

// ProductFromRecord normalizes one raw product record. uploadsBase is the URL
// prefix media filenames are resolved against.
//
// The media lists and the specification list may arrive as JSON arrays or as
// strings holding serialized JSON. A value that cannot be decoded becomes an
// empty list; each such fallback is reported in warnings and never fails the
// record.
func ProductFromRecord(rec map[string]any, uploadsBase string) (Product, []error) {
	var warnings []error
	warn := func(field string, err error) {
		warnings = append(warnings, fmt.Errorf("product %v field %s: %w", rec["id"], field, err))
	}

	p := Product{
		ID:          ID(cast.ToString(rec["id"])),
		Title:       cast.ToString(rec[FieldTitle]),
		Subtitle:    cast.ToString(rec[FieldSubtitle]),
		Description: cast.ToString(rec[FieldDescription]),
		About:       cast.ToString(rec[FieldAbout]),
		CategoryID:  cast.ToString(rec[FieldCategoryID]),
		Status:      ProductStatus(cast.ToString(rec[FieldStatus])),
	}
	if !p.Status.Valid() {
		p.Status = StatusInactive
	}

	prices := []struct {
		key string
		dst *float64
	}{
		{FieldPriceCustomer, &p.PriceCustomer},
		{FieldPricePartner, &p.PricePartner},
		{FieldPriceSpecial, &p.PriceSpecial},
	}
	for _, pr := range prices {
		if rec[pr.key] == nil {
			continue
		}
		v, err := cast.ToFloat64E(rec[pr.key])
		if err != nil {
			warn(pr.key, err)
			continue
		}
		*pr.dst = v
	}

	if rec[FieldQuantity] != nil {
		q, err := cast.ToIntE(rec[FieldQuantity])
		if err != nil {
			warn(FieldQuantity, err)
		} else {
			p.Quantity = q
		}
	}

	if name := cast.ToString(rec["mainPhoto"]); name != "" {
		p.MainPhoto = MediaURL(uploadsBase, name)
	}

	var images, videos []string
	if err := decodeJSONField(rec["imageUrls"], &images); err != nil {
		warn("imageUrls", err)
		images = nil
	}
	if err := decodeJSONField(rec["videoUrls"], &videos); err != nil {
		warn("videoUrls", err)
		videos = nil
	}
	if err := decodeJSONField(rec[FieldSpecifications], &p.Specifications); err != nil {
		warn(FieldSpecifications, err)
		p.Specifications = nil
	}
	if p.Specifications == nil {
		p.Specifications = []Specification{}
	}

	p.GalleryPhotos = make([]string, 0, len(images))
	for _, name := range images {
		p.GalleryPhotos = append(p.GalleryPhotos, MediaURL(uploadsBase, name))
	}
	p.Videos = make([]string, 0, len(videos))
	for _, name := range videos {
		p.Videos = append(p.Videos, MediaURL(uploadsBase, name))
	}

	if raw := rec["createdAt"]; raw != nil && raw != "" {
		t, err := cast.ToTimeE(raw)
		if err != nil {
			warn("createdAt", err)
		} else {
			p.CreatedAt = t
		}
	}

	return p, warnings
}

// decodeJSONField fills dst from a value that is either already structured
// or a string of serialized JSON. nil and "" leave dst untouched.
func decodeJSONField(v any, dst any) error {
	switch value := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		return json.Unmarshal([]byte(value), dst)
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, dst)
	}
}

// MediaURL resolves a stored media filename against the uploads base.
// Values that already are absolute URLs are returned unchanged.
func MediaURL(uploadsBase, name string) string {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name
	}
	return strings.TrimRight(uploadsBase, "/") + "/" + strings.TrimLeft(name, "/")
}

// MediaName is the inverse of MediaURL: the stored filename of a media URL.
func MediaName(url string) string {
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

// ProductPatch is a partial product update. A nil field is not part of the
// update; Fields reports the wire keys that are.
type ProductPatch struct {
	Title          *string
	Subtitle       *string
	Description    *string
	About          *string
	CategoryID     *string
	PriceCustomer  *float64
	PricePartner   *float64
	PriceSpecial   *float64
	Quantity       *int
	Status         *ProductStatus
	Specifications []Specification
}

// QuantityPatch builds a patch touching quantity only.
func QuantityPatch(q int) ProductPatch {
	return ProductPatch{Quantity: &q}
}

// Fields returns the wire keys present in the patch.
func (p ProductPatch) Fields() []string {
	var keys []string
	add := func(present bool, key string) {
		if present {
			keys = append(keys, key)
		}
	}
	add(p.Title != nil, FieldTitle)
	add(p.Subtitle != nil, FieldSubtitle)
	add(p.Description != nil, FieldDescription)
	add(p.About != nil, FieldAbout)
	add(p.CategoryID != nil, FieldCategoryID)
	add(p.PriceCustomer != nil, FieldPriceCustomer)
	add(p.PricePartner != nil, FieldPricePartner)
	add(p.PriceSpecial != nil, FieldPriceSpecial)
	add(p.Quantity != nil, FieldQuantity)
	add(p.Status != nil, FieldStatus)
	add(p.Specifications != nil, FieldSpecifications)
	return keys
}

// QuantityOnly reports whether the patch touches exactly the quantity field.
func (p ProductPatch) QuantityOnly() bool {
	f := p.Fields()
	return len(f) == 1 && f[0] == FieldQuantity
}

// Body renders the patch as a JSON request body. Specifications travel as a
// serialized JSON string, the way the backend stores them.
func (p ProductPatch) Body() (map[string]any, error) {
	body := make(map[string]any)
	if p.Title != nil {
		body[FieldTitle] = *p.Title
	}
	if p.Subtitle != nil {
		body[FieldSubtitle] = *p.Subtitle
	}
	if p.Description != nil {
		body[FieldDescription] = *p.Description
	}
	if p.About != nil {
		body[FieldAbout] = *p.About
	}
	if p.CategoryID != nil {
		body[FieldCategoryID] = *p.CategoryID
	}
	if p.PriceCustomer != nil {
		body[FieldPriceCustomer] = *p.PriceCustomer
	}
	if p.PricePartner != nil {
		body[FieldPricePartner] = *p.PricePartner
	}
	if p.PriceSpecial != nil {
		body[FieldPriceSpecial] = *p.PriceSpecial
	}
	if p.Quantity != nil {
		body[FieldQuantity] = *p.Quantity
	}
	if p.Status != nil {
		body[FieldStatus] = string(*p.Status)
	}
	if p.Specifications != nil {
		b, err := json.Marshal(p.Specifications)
		if err != nil {
			return nil, err
		}
		body[FieldSpecifications] = string(b)
	}
	return body, nil
}

// ProductDraft is the full product form sent as multipart on create and on
// full update. Media fields hold local file paths to upload; RemoveImages and
// RemoveVideos name stored files to drop on update.
type ProductDraft struct {
	Title          string
	Subtitle       string
	Description    string
	About          string
	CategoryID     string
	PriceCustomer  float64
	PricePartner   float64
	PriceSpecial   float64
	Quantity       int
	Status         ProductStatus
	Specifications []Specification

	MainPhoto     string
	GalleryPhotos []string
	Videos        []string
	RemoveImages  []string
	RemoveVideos  []string
}

// DraftFromProduct seeds an edit form from a stored product.
func DraftFromProduct(p Product) ProductDraft {
	specs := make([]Specification, len(p.Specifications))
	copy(specs, p.Specifications)
	return ProductDraft{
		Title:          p.Title,
		Subtitle:       p.Subtitle,
		Description:    p.Description,
		About:          p.About,
		CategoryID:     p.CategoryID,
		PriceCustomer:  p.PriceCustomer,
		PricePartner:   p.PricePartner,
		PriceSpecial:   p.PriceSpecial,
		Quantity:       p.Quantity,
		Status:         p.Status,
		Specifications: specs,
	}
}

// FormValue is one text part of the multipart product form.
type FormValue struct {
	Key   string
	Value string
}

// FormValues returns the text parts of the multipart form in a stable order.
// Specification rows with an empty label are dropped.
func (d ProductDraft) FormValues() ([]FormValue, error) {
	specs := make([]Specification, 0, len(d.Specifications))
	for _, s := range d.Specifications {
		if strings.TrimSpace(s.Label) == "" {
			continue
		}
		specs = append(specs, s)
	}
	specJSON, err := json.Marshal(specs)
	if err != nil {
		return nil, err
	}

	status := d.Status
	if !status.Valid() {
		status = StatusActive
	}

	values := []FormValue{
		{FieldTitle, d.Title},
		{FieldSubtitle, d.Subtitle},
		{FieldDescription, d.Description},
		{FieldAbout, d.About},
		{FieldCategoryID, d.CategoryID},
		{FieldPriceCustomer, cast.ToString(d.PriceCustomer)},
		{FieldPricePartner, cast.ToString(d.PricePartner)},
		{FieldPriceSpecial, cast.ToString(d.PriceSpecial)},
		{FieldQuantity, cast.ToString(d.Quantity)},
		{FieldStatus, string(status)},
		{FieldSpecifications, string(specJSON)},
	}

	if len(d.RemoveImages) > 0 {
		b, err := json.Marshal(d.RemoveImages)
		if err != nil {
			return nil, err
		}
		values = append(values, FormValue{"removeImages", string(b)})
	}
	if len(d.RemoveVideos) > 0 {
		b, err := json.Marshal(d.RemoveVideos)
		if err != nil {
			return nil, err
		}
		values = append(values, FormValue{"removeVideos", string(b)})
	}
	return values, nil
}

// FormFile is one file part of the multipart product form.
type FormFile struct {
	Field string
	Path  string
}

func (d ProductDraft) FormFiles() []FormFile {
	var files []FormFile
	if d.MainPhoto != "" {
		files = append(files, FormFile{"mainPhoto", d.MainPhoto})
	}
	for _, p := range d.GalleryPhotos {
		files = append(files, FormFile{"galleryPhotos", p})
	}
	for _, p := range d.Videos {
		files = append(files, FormFile{"videos", p})
	}
	return files
}
