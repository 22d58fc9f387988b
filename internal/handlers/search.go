package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"tripsearch/internal/metrics"
	"tripsearch/internal/models"
	"tripsearch/internal/search"
	"tripsearch/internal/validation"
)

// SearchHandler renders the HTML search surface. It goes through the same
// resolver as the JSON API; any divergence between the two entry points is
// a regression.
type SearchHandler struct {
	resolver *search.Resolver
}

// NewSearchHandler creates a new search page handler.
func NewSearchHandler(resolver *search.Resolver) *SearchHandler {
	return &SearchHandler{resolver: resolver}
}

// Index renders the empty search page.
func (h *SearchHandler) Index(c fiber.Ctx) error {
	return c.Render("search", fiber.Map{
		"Title": "Trip Search",
	})
}

// Search resolves the q parameter and renders the result or its diagnostics.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	query := c.Query("q")
	if valid, msg := validation.ValidateQuery(query); !valid {
		return c.Render("search", fiber.Map{
			"Title": "Trip Search",
			"Error": msg,
		})
	}
	query = validation.NormalizeQuery(query)

	result, err := h.resolver.Resolve(c.Context(), query, search.Options{})
	if err != nil {
		if errors.Is(err, search.ErrInvalidQuery) {
			return c.Render("search", fiber.Map{
				"Title": "Trip Search",
				"Error": "Please enter a search query.",
			})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "search is temporarily unavailable")
	}

	if !result.Found {
		metrics.RecordResolution(search.Normalize(query), "none", models.OutcomeNotFound)
		return c.Render("search", fiber.Map{
			"Title":       "Trip Search",
			"Query":       query,
			"Diagnostics": result.Diagnostics,
		})
	}

	metrics.RecordResolution(search.Normalize(query), string(result.Strategy), models.OutcomeResolved)
	return c.Render("search", fiber.Map{
		"Title":  "Trip Search",
		"Query":  query,
		"Result": result,
	})
}
