package fakeapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

var productTextFields = []string{"title", "titleSub", "description", "about", "categoryId", "status", "specifications"}

var productNumberFields = []string{"price1", "price2", "price3", "quantity"}

func (s *Server) listProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Products())
}

func (s *Server) getProduct(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.products, c.Param("id"))
	if i < 0 {
		return fail(c, http.StatusNotFound, "Product not found")
	}
	return c.JSON(http.StatusOK, s.products[i])
}

func (s *Server) createProduct(c echo.Context) error {
	if !isMultipart(c) {
		return fail(c, http.StatusBadRequest, "multipart form expected")
	}
	rec := map[string]any{"createdAt": time.Now().UTC().Format(time.RFC3339)}
	if err := applyProductForm(c, rec); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	rec["id"] = s.newID()
	s.products = append(s.products, rec)
	s.mu.Unlock()
	return c.JSON(http.StatusCreated, rec)
}

func (s *Server) updateProduct(c echo.Context) error {
	id := c.Param("id")

	update := map[string]any{}
	if isMultipart(c) {
		s.mu.Lock()
		if i := indexOf(s.products, id); i >= 0 {
			update = clone(s.products[i])
		}
		s.mu.Unlock()
		if err := applyProductForm(c, update); err != nil {
			return fail(c, http.StatusBadRequest, err.Error())
		}
	} else if err := c.Bind(&update); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.products, id)
	if i < 0 {
		return fail(c, http.StatusNotFound, "Product not found")
	}
	for k, v := range update {
		if k == "id" {
			continue
		}
		s.products[i][k] = v
	}
	return c.JSON(http.StatusOK, s.products[i])
}

func (s *Server) updateQuantity(c echo.Context) error {
	var body struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil || body.Quantity == nil || *body.Quantity < 0 {
		return fail(c, http.StatusBadRequest, "quantity must be a non-negative integer")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.products, c.Param("id"))
	if i < 0 {
		return fail(c, http.StatusNotFound, "Product not found")
	}
	s.products[i]["quantity"] = *body.Quantity
	return c.JSON(http.StatusOK, s.products[i])
}

func (s *Server) deleteProduct(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.products, c.Param("id"))
	if i < 0 {
		return fail(c, http.StatusNotFound, "Product not found")
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return c.NoContent(http.StatusNoContent)
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// applyProductForm copies the multipart product form into rec. Uploaded files
// are recorded by filename only; removeImages and removeVideos drop names from
// the stored lists.
func applyProductForm(c echo.Context, rec map[string]any) error {
	form, err := c.MultipartForm()
	if err != nil {
		return err
	}

	for _, k := range productTextFields {
		if v, ok := form.Value[k]; ok && len(v) > 0 {
			rec[k] = v[0]
		}
	}
	for _, k := range productNumberFields {
		if v, ok := form.Value[k]; ok && len(v) > 0 {
			n, err := strconv.ParseFloat(v[0], 64)
			if err != nil {
				return err
			}
			rec[k] = n
		}
	}

	images := storedNames(rec["imageUrls"])
	videos := storedNames(rec["videoUrls"])
	if v := form.Value["removeImages"]; len(v) > 0 {
		images = without(images, v[0])
	}
	if v := form.Value["removeVideos"]; len(v) > 0 {
		videos = without(videos, v[0])
	}

	if fs := form.File["mainPhoto"]; len(fs) > 0 {
		rec["mainPhoto"] = fs[0].Filename
	}
	for _, f := range form.File["galleryPhotos"] {
		images = append(images, f.Filename)
	}
	for _, f := range form.File["videos"] {
		videos = append(videos, f.Filename)
	}

	b, _ := json.Marshal(images)
	rec["imageUrls"] = string(b)
	b, _ = json.Marshal(videos)
	rec["videoUrls"] = string(b)
	return nil
}

func storedNames(v any) []string {
	names := []string{}
	switch list := v.(type) {
	case string:
		_ = json.Unmarshal([]byte(list), &names)
	case []any:
		for _, n := range list {
			if s, ok := n.(string); ok {
				names = append(names, s)
			}
		}
	case []string:
		names = append(names, list...)
	}
	return names
}

func without(names []string, removeJSON string) []string {
	var remove []string
	if err := json.Unmarshal([]byte(removeJSON), &remove); err != nil {
		return names
	}
	drop := make(map[string]bool, len(remove))
	for _, r := range remove {
		drop[r] = true
	}
	out := names[:0]
	for _, n := range names {
		if !drop[n] {
			out = append(out, n)
		}
	}
	return out
}
