package fakeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) listPartners(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Partners())
}

func (s *Server) getPartner(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.partners, c.Param("id"))
	if i < 0 {
		return fail(c, http.StatusNotFound, "Submission not found")
	}
	return c.JSON(http.StatusOK, s.partners[i])
}

func (s *Server) createPartner(c echo.Context) error {
	rec := map[string]any{}
	if err := c.Bind(&rec); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if rec["type"] == nil || rec["type"] == "" {
		rec["type"] = "normal"
	}
	rec["verified"] = false

	s.mu.Lock()
	rec["id"] = s.newID()
	s.partners = append(s.partners, rec)
	s.mu.Unlock()
	return c.JSON(http.StatusCreated, rec)
}

func (s *Server) updatePartner(c echo.Context) error {
	update := map[string]any{}
	if err := c.Bind(&update); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	return s.patchPartner(c, update)
}

func (s *Server) updatePartnerType(c echo.Context) error {
	var body struct {
		Type string `json:"type"`
	}
	if err := c.Bind(&body); err != nil || (body.Type != "normal" && body.Type != "special") {
		return fail(c, http.StatusBadRequest, "type must be normal or special")
	}
	return s.patchPartner(c, map[string]any{"type": body.Type})
}

func (s *Server) verifyPartner(c echo.Context) error {
	return s.patchPartner(c, map[string]any{"verified": true})
}

func (s *Server) patchPartner(c echo.Context, update map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.partners, c.Param("id"))
	if i < 0 {
		return fail(c, http.StatusNotFound, "Submission not found")
	}
	for k, v := range update {
		if k == "id" {
			continue
		}
		s.partners[i][k] = v
	}
	return c.JSON(http.StatusOK, s.partners[i])
}

func (s *Server) deletePartner(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.partners, c.Param("id"))
	if i < 0 {
		return fail(c, http.StatusNotFound, "Submission not found")
	}
	s.partners = append(s.partners[:i], s.partners[i+1:]...)
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted"})
}
