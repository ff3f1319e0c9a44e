// Package api exposes the categoriser over HTTP as JSON, mirroring the
// actions a browser front end dispatches.
package api

import (
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/ChasNicholls/spendlite/internal/importer"
	"github.com/ChasNicholls/spendlite/internal/rules"
	"github.com/ChasNicholls/spendlite/internal/state"
	"github.com/ChasNicholls/spendlite/internal/view"
)

// Response is the JSON envelope for every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	View    *view.Model `json:"view,omitempty"`
}

// Server serialises dispatches: one pipeline runs at a time, matching the
// single-flight event model of the state package.
type Server struct {
	mu  sync.Mutex
	app *state.App
}

// New builds the fiber app with all routes registered.
func New(app *state.App) *fiber.App {
	s := &Server{app: app}

	f := fiber.New(fiber.Config{DisableStartupMessage: true})
	f.Get("/api/health", s.handleHealth)
	f.Get("/api/view", s.handleView)
	f.Post("/api/import", s.handleImport)
	f.Get("/api/rules", s.handleGetRules)
	f.Put("/api/rules", s.handleSetRules)
	f.Post("/api/rules/upsert", s.handleUpsertRule)
	f.Put("/api/filters", s.handleFilters)
	f.Post("/api/page/delta", s.handlePageDelta)
	f.Get("/api/totals.txt", s.handleTotalsText)
	return f
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "engine": "fiber"})
}

func (s *Server) handleView(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderView(c)
}

func (s *Server) handleImport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no statement file in request")
	}

	format := c.FormValue("format", "statement")
	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("unknown statement format %q", format))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "reading statement upload")
	}
	defer f.Close()

	txns, err := parser.Parse(f)
	if err != nil {
		// hard collaborator failure: surface it and abort the import
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.app.Dispatch(state.LoadTransactions{Transactions: txns})
	return s.renderView(c)
}

func (s *Server) handleGetRules(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(rules.NormalizeText(s.app.RuleText))
}

type setRulesRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSetRules(c *fiber.Ctx) error {
	var req setRulesRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid rules payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.app.Dispatch(state.SetRuleText{Text: req.Text})
	return s.renderView(c)
}

type upsertRuleRequest struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
}

func (s *Server) handleUpsertRule(c *fiber.Ctx) error {
	var req upsertRuleRequest
	if err := c.BodyParser(&req); err != nil || req.Keyword == "" || req.Category == "" {
		return writeError(c, fiber.StatusBadRequest, "keyword and category are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.app.Dispatch(state.UpsertRule{Keyword: req.Keyword, Category: req.Category})
	return s.renderView(c)
}

// filtersRequest uses pointers so an absent field leaves that filter alone.
type filtersRequest struct {
	Month    *string `json:"month"`
	Category *string `json:"category"`
	Page     *int    `json:"page"`
}

func (s *Server) handleFilters(c *fiber.Ctx) error {
	var req filtersRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid filters payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if req.Month != nil {
		s.app.Dispatch(state.SetMonthFilter{Month: *req.Month})
	}
	if req.Category != nil {
		s.app.Dispatch(state.SetCategoryFilter{Category: *req.Category})
	}
	if req.Page != nil {
		s.app.Dispatch(state.SetPage{Page: *req.Page})
	}
	return s.renderView(c)
}

type pageDeltaRequest struct {
	Delta int `json:"delta"`
}

func (s *Server) handlePageDelta(c *fiber.Ctx) error {
	var req pageDeltaRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid page payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.app.Dispatch(state.PageDelta{Delta: req.Delta})
	return s.renderView(c)
}

func (s *Server) handleTotalsText(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vm := s.app.View()
	label := view.TotalsLabel(vm.MonthFilter, s.app.Transactions)
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(view.RenderTotalsText(vm.Totals, vm.GrandTotal, label))
}

func (s *Server) renderView(c *fiber.Ctx) error {
	vm := s.app.View()
	return c.JSON(Response{Success: true, View: &vm})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(Response{Success: false, Error: msg})
}
