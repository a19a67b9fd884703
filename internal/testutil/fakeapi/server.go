// Package fakeapi is an in-process stand-in for the admin backend. It serves
// the REST contract the client speaks, keeps its collections in memory and
// records every request it receives so tests can count network calls.
package fakeapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie issued by the login endpoint.
const SessionCookieName = "admin_session"

// Request is one recorded call.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body into a map.
func (r Request) JSON() map[string]any {
	var m map[string]any
	_ = json.Unmarshal(r.Body, &m)
	return m
}

type account struct {
	password string
	identity models.Identity
	token    string
}

// Server is the fake backend. Seed collections with the Set* methods before
// the client runs; all methods are safe for concurrent use.
type Server struct {
	URL string

	mu       sync.Mutex
	srv      *httptest.Server
	requests []Request
	failures map[string]int
	accounts map[string]account
	sessions map[string]models.Identity
	nextID   int

	categories []map[string]any
	products   []map[string]any
	partners   []map[string]any
	quotations []map[string]any
	contacts   []map[string]any
	uploads    map[string][]byte
}

// New starts a fake backend that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		failures: make(map[string]int),
		accounts: make(map[string]account),
		sessions: make(map[string]models.Identity),
		uploads:  make(map[string][]byte),
		nextID:   1000,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(s.record, s.injectFailures)
	s.routes(e)

	s.srv = httptest.NewServer(e)
	s.URL = s.srv.URL
	t.Cleanup(s.srv.Close)
	return s
}

func (s *Server) routes(e *echo.Echo) {
	e.POST("/api/admin/login", s.login)
	e.POST("/api/admin/logout", s.logout)
	e.GET("/api/admin/validate-token", s.validate, s.requireSession)

	e.GET("/api/categories", s.listCategories)
	e.POST("/api/categories", s.createCategory, s.requireSession)

	e.GET("/api/products", s.listProducts)
	e.GET("/api/products/:id", s.getProduct)
	e.POST("/api/products", s.createProduct, s.requireSession)
	e.PUT("/api/products/:id", s.updateProduct, s.requireSession)
	e.PUT("/api/products/:id/quantity", s.updateQuantity, s.requireSession)
	e.DELETE("/api/products/:id", s.deleteProduct, s.requireSession)

	e.GET("/api/partner-form/submissions", s.listPartners, s.requireSession)
	e.GET("/api/partner-form/submissions/:id", s.getPartner, s.requireSession)
	e.POST("/api/partner-form/admin-submit", s.createPartner, s.requireSession)
	e.PUT("/api/partner-form/submissions/:id", s.updatePartner, s.requireSession)
	e.PATCH("/api/partner-form/submissions/:id/type", s.updatePartnerType, s.requireSession)
	e.POST("/api/partner-form/verify-submission/:id", s.verifyPartner, s.requireSession)
	e.DELETE("/api/partner-form/submissions/:id", s.deletePartner, s.requireSession)

	e.GET("/api/quotations", s.listQuotations, s.requireSession)
	e.GET("/api/contact", s.listContacts, s.requireSession)

	e.GET("/uploads/:name", s.getUpload)
}

// record stores the request before any other middleware can reject it.
func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(body))
		}
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: req.Method,
			Path:   req.URL.Path,
			Header: req.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()
		return next(c)
	}
}

func (s *Server) injectFailures(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		code, ok := s.failures[failureKey(c.Request().Method, c.Request().URL.Path)]
		s.mu.Unlock()
		if ok {
			return fail(c, code, "injected failure")
		}
		return next(c)
	}
}

func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := s.sessionOf(c); !ok {
			return fail(c, http.StatusUnauthorized, "not authenticated")
		}
		return next(c)
	}
}

func (s *Server) sessionOf(c echo.Context) (models.Identity, bool) {
	ck, err := c.Cookie(SessionCookieName)
	if err != nil {
		return models.Identity{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.sessions[ck.Value]
	return id, ok
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

func failureKey(method, path string) string {
	return method + " " + path
}

// AddAccount registers credentials accepted by the login endpoint. token is
// returned alongside the user when not empty.
func (s *Server) AddAccount(email, password string, id models.Identity, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = account{password: password, identity: id, token: token}
}

// FailNext makes every request to method and path answer with code until
// ClearFailures is called.
func (s *Server) FailNext(method, path string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[failureKey(method, path)] = code
}

func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]int)
}

// RevokeSessions invalidates every issued session cookie.
func (s *Server) RevokeSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]models.Identity)
}

// Requests returns a copy of the request log.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many recorded requests match method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// ResetLog forgets recorded requests.
func (s *Server) ResetLog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *Server) SetCategories(recs ...map[string]any) { s.set(&s.categories, recs) }
func (s *Server) SetProducts(recs ...map[string]any)   { s.set(&s.products, recs) }
func (s *Server) SetPartners(recs ...map[string]any)   { s.set(&s.partners, recs) }
func (s *Server) SetQuotations(recs ...map[string]any) { s.set(&s.quotations, recs) }
func (s *Server) SetContacts(recs ...map[string]any)   { s.set(&s.contacts, recs) }

// SetUpload stores a file served under /uploads/<name>.
func (s *Server) SetUpload(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[name] = data
}

func (s *Server) set(dst *[]map[string]any, recs []map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*dst = cloneAll(recs)
}

// Products returns a copy of the stored product records.
func (s *Server) Products() []map[string]any   { return s.get(&s.products) }
func (s *Server) Partners() []map[string]any   { return s.get(&s.partners) }
func (s *Server) Categories() []map[string]any { return s.get(&s.categories) }

func (s *Server) get(src *[]map[string]any) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(*src)
}

func cloneAll(recs []map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(recs))
	for _, r := range recs {
		out = append(out, clone(r))
	}
	return out
}

func clone(r map[string]any) map[string]any {
	m := make(map[string]any, len(r))
	for k, v := range r {
		m[k] = v
	}
	return m
}

func (s *Server) newID() string {
	s.nextID++
	return strconv.Itoa(s.nextID)
}

func indexOf(recs []map[string]any, id string) int {
	for i, r := range recs {
		if idString(r["id"]) == id {
			return i
		}
	}
	return -1
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	default:
		return ""
	}
}

// Session handlers

func (s *Server) login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	s.mu.Lock()
	acc, ok := s.accounts[body.Email]
	if !ok || acc.password != body.Password {
		s.mu.Unlock()
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}
	sid := uuid.NewString()
	s.sessions[sid] = acc.identity
	s.mu.Unlock()

	c.SetCookie(&http.Cookie{Name: SessionCookieName, Value: sid, Path: "/", HttpOnly: true})

	res := map[string]any{"user": acc.identity}
	if acc.token != "" {
		res["token"] = acc.token
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) logout(c echo.Context) error {
	if ck, err := c.Cookie(SessionCookieName); err == nil {
		s.mu.Lock()
		delete(s.sessions, ck.Value)
		s.mu.Unlock()
	}
	c.SetCookie(&http.Cookie{Name: SessionCookieName, Value: "", Path: "/", MaxAge: -1})
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

func (s *Server) validate(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"valid": true})
}

// Categories

func (s *Server) listCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Categories())
}

func (s *Server) createCategory(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil || body.Name == "" {
		return fail(c, http.StatusBadRequest, "name is required")
	}
	s.mu.Lock()
	rec := map[string]any{"id": s.newID(), "name": body.Name}
	s.categories = append(s.categories, rec)
	s.mu.Unlock()
	return c.JSON(http.StatusCreated, rec)
}

// Read-only collections

func (s *Server) listQuotations(c echo.Context) error {
	return c.JSON(http.StatusOK, s.get(&s.quotations))
}

func (s *Server) listContacts(c echo.Context) error {
	return c.JSON(http.StatusOK, s.get(&s.contacts))
}

func (s *Server) getUpload(c echo.Context) error {
	s.mu.Lock()
	data, ok := s.uploads[c.Param("name")]
	s.mu.Unlock()
	if !ok {
		return fail(c, http.StatusNotFound, "file not found")
	}
	return c.Blob(http.StatusOK, "application/pdf", data)
}
