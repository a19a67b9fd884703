package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/dmitrijs2005/shopadmin/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/shopadmin/internal/common"
	"github.com/dmitrijs2005/shopadmin/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	pathLogin      = "/api/admin/login"
	pathLogout     = "/api/admin/logout"
	pathValidate   = "/api/admin/validate-token"
	pathCategories = "/api/categories"
	pathPartners   = "/api/partner-form"
	pathProducts   = "/api/products"
	pathQuotations = "/api/quotations"
	pathContacts   = "/api/contact"
)

// HTTPClient talks to the admin backend over REST. It is safe for concurrent
// use.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	jar     *persistentJar
	log     logging.Logger

	mu     sync.RWMutex
	bearer string

	now func() time.Time
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for baseURL. When store is not nil the
// session cookies are loaded from it and written back on every change.
func NewHTTPClient(ctx context.Context, baseURL string, store cookies.Repository, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server address %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server address %q: scheme must be http or https", baseURL)
	}

	jar, err := newPersistentJar(ctx, u, store, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load cookies: %w", err)
	}

	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Jar: jar},
		jar:     jar,
		log:     log,
		now:     time.Now,
	}, nil
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL.String()
}

func (c *HTTPClient) SetBearerToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bearer = token
}

// usableBearer returns the bearer token unless it is a JWT whose exp claim
// has passed. Opaque tokens are always used.
func (c *HTTPClient) usableBearer() string {
	c.mu.RLock()
	token := c.bearer
	c.mu.RUnlock()
	if token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return token
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return token
	}
	if !exp.After(c.now()) {
		return ""
	}
	return token
}

type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	bearer      bool
}

func jsonRequest(method, path string, v any) (request, error) {
	r := request{method: method, path: path}
	if v == nil {
		return r, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return r, fmt.Errorf("failed to marshal request body: %w", err)
	}
	r.body = bytes.NewReader(b)
	r.contentType = "application/json"
	return r, nil
}

func (c *HTTPClient) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL.String() + "/" + strings.TrimLeft(path, "/")
}

// do sends r and returns the response when its status is 2xx. The caller
// must close the body.
func (c *HTTPClient) do(ctx context.Context, r request) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.resolve(r.path), r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.bearer {
		if token := c.usableBearer(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.log.Debug(ctx, "request failed", "method", r.method, "path", r.path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request", "method", r.method, "path", r.path, "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	return resp, nil
}

// call sends r and decodes a JSON response into target when it is not nil.
func (c *HTTPClient) call(ctx context.Context, r request, target any) error {
	resp, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if target == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) callJSON(ctx context.Context, method, path string, body, target any) error {
	r, err := jsonRequest(method, path, body)
	if err != nil {
		return err
	}
	return c.call(ctx, r, target)
}

// errorMessage extracts {"error": ...} or {"message": ...} from a failed
// response, falling back to the raw text.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

// Session

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	var res models.LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.callJSON(ctx, http.MethodPost, pathLogin, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.callJSON(ctx, http.MethodPost, pathLogout, struct{}{}, nil)
	c.jar.Reset()
	c.SetBearerToken("")
	return err
}

func (c *HTTPClient) ValidateSession(ctx context.Context) error {
	return c.callJSON(ctx, http.MethodGet, pathValidate, nil, nil)
}

// Categories

func (c *HTTPClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var res []models.Category
	if err := c.callJSON(ctx, http.MethodGet, pathCategories, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	var res models.Category
	if err := c.callJSON(ctx, http.MethodPost, pathCategories, map[string]string{"name": name}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Partners

func (c *HTTPClient) ListPartners(ctx context.Context) ([]map[string]any, error) {
	var res []map[string]any
	if err := c.callJSON(ctx, http.MethodGet, pathPartners+"/submissions", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) GetPartner(ctx context.Context, id models.ID) (map[string]any, error) {
	var res map[string]any
	if err := c.callJSON(ctx, http.MethodGet, pathPartners+"/submissions/"+url.PathEscape(id.String()), nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) CreatePartner(ctx context.Context, p models.Partner) error {
	p.ID = ""
	return c.callJSON(ctx, http.MethodPost, pathPartners+"/admin-submit", p, nil)
}

func (c *HTTPClient) UpdatePartner(ctx context.Context, id models.ID, p models.Partner) error {
	p.ID = id
	return c.callJSON(ctx, http.MethodPut, pathPartners+"/submissions/"+url.PathEscape(id.String()), p, nil)
}

func (c *HTTPClient) UpdatePartnerType(ctx context.Context, id models.ID, t models.PartnerType) error {
	path := pathPartners + "/submissions/" + url.PathEscape(id.String()) + "/type"
	return c.callJSON(ctx, http.MethodPatch, path, map[string]string{"type": string(t)}, nil)
}

func (c *HTTPClient) VerifyPartner(ctx context.Context, id models.ID) error {
	return c.callJSON(ctx, http.MethodPost, pathPartners+"/verify-submission/"+url.PathEscape(id.String()), nil, nil)
}

func (c *HTTPClient) DeletePartner(ctx context.Context, id models.ID) error {
	return c.callJSON(ctx, http.MethodDelete, pathPartners+"/submissions/"+url.PathEscape(id.String()), nil, nil)
}

// Products

func productPath(id models.ID) string {
	return pathProducts + "/" + url.PathEscape(id.String())
}

func (c *HTTPClient) ListProducts(ctx context.Context) ([]map[string]any, error) {
	var res []map[string]any
	if err := c.callJSON(ctx, http.MethodGet, pathProducts, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id models.ID) (map[string]any, error) {
	var res map[string]any
	if err := c.callJSON(ctx, http.MethodGet, productPath(id), nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, d models.ProductDraft) error {
	r, err := multipartRequest(http.MethodPost, pathProducts, d)
	if err != nil {
		return err
	}
	return c.call(ctx, r, nil)
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id models.ID, d models.ProductDraft) error {
	r, err := multipartRequest(http.MethodPut, productPath(id), d)
	if err != nil {
		return err
	}
	r.bearer = true
	return c.call(ctx, r, nil)
}

func (c *HTTPClient) PatchProduct(ctx context.Context, id models.ID, body map[string]any) error {
	r, err := jsonRequest(http.MethodPut, productPath(id), body)
	if err != nil {
		return err
	}
	r.bearer = true
	return c.call(ctx, r, nil)
}

func (c *HTTPClient) UpdateProductQuantity(ctx context.Context, id models.ID, quantity int) error {
	r, err := jsonRequest(http.MethodPut, productPath(id)+"/quantity", map[string]int{models.FieldQuantity: quantity})
	if err != nil {
		return err
	}
	r.bearer = true
	return c.call(ctx, r, nil)
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id models.ID) error {
	r := request{method: http.MethodDelete, path: productPath(id), bearer: true}
	return c.call(ctx, r, nil)
}

// multipartRequest renders a product draft as a multipart form. Files are
// read from the local paths named in the draft.
func multipartRequest(method, path string, d models.ProductDraft) (request, error) {
	values, err := d.FormValues()
	if err != nil {
		return request{}, fmt.Errorf("failed to encode product form: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, v := range values {
		if err := w.WriteField(v.Key, v.Value); err != nil {
			return request{}, err
		}
	}
	for _, f := range d.FormFiles() {
		if err := attachFile(w, f); err != nil {
			return request{}, err
		}
	}
	if err := w.Close(); err != nil {
		return request{}, err
	}

	return request{method: method, path: path, body: &buf, contentType: w.FormDataContentType()}, nil
}

func attachFile(w *multipart.Writer, f models.FormFile) error {
	src, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Field, err)
	}
	defer src.Close()

	part, err := w.CreateFormFile(f.Field, filepath.Base(f.Path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to read %s: %w", f.Path, err)
	}
	return nil
}

// Read-only collections

func (c *HTTPClient) ListQuotations(ctx context.Context) ([]models.Quotation, error) {
	var res []models.Quotation
	if err := c.callJSON(ctx, http.MethodGet, pathQuotations, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) ListContacts(ctx context.Context) ([]models.ContactSubmission, error) {
	var res []models.ContactSubmission
	if err := c.callJSON(ctx, http.MethodGet, pathContacts, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) Download(ctx context.Context, path string, w io.Writer) error {
	if path == "" {
		return errors.New("empty download path")
	}
	resp, err := c.do(ctx, request{method: http.MethodGet, path: path})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to download %s: %w", path, err)
	}
	return nil
}
