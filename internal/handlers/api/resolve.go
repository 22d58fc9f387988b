package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"tripsearch/internal/cache"
	"tripsearch/internal/metrics"
	"tripsearch/internal/models"
	"tripsearch/internal/search"
	"tripsearch/internal/validation"
)

// ResolveRequest is the closed request body for a resolution call.
// Unknown fields are ignored at the boundary; everything the resolver
// needs is right here.
type ResolveRequest struct {
	Query             string `json:"query"`
	IncludeEverything bool   `json:"include_everything"`
	StrategyHint      string `json:"strategy_hint"`
}

// ResolveHandler exposes the search resolver over JSON.
type ResolveHandler struct {
	resolver *search.Resolver
	cache    *cache.ResultCache
}

// NewResolveHandler creates a new API resolve handler. cache may be nil.
func NewResolveHandler(resolver *search.Resolver, resultCache *cache.ResultCache) *ResolveHandler {
	return &ResolveHandler{resolver: resolver, cache: resultCache}
}

// Resolve answers a free-text trip/client lookup.
func (h *ResolveHandler) Resolve(c fiber.Ctx) error {
	var req ResolveRequest
	if err := c.Bind().Body(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateQuery(req.Query); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	query := validation.NormalizeQuery(req.Query)

	var hint models.Strategy
	if req.StrategyHint != "" {
		hint = models.Strategy(req.StrategyHint)
		if !hint.Valid() {
			return jsonError(c, fiber.StatusBadRequest, "unknown strategy hint")
		}
	}

	cacheKey := cache.Key(search.Normalize(query), req.IncludeEverything)
	if cached := h.cache.Get(cacheKey); cached != nil {
		return jsonSuccess(c, cached)
	}

	result, err := h.resolver.Resolve(c.Context(), query, search.Options{
		IncludeEverything: req.IncludeEverything,
		StrategyHint:      hint,
	})
	if err != nil {
		if errors.Is(err, search.ErrInvalidQuery) {
			return jsonError(c, fiber.StatusBadRequest, "query is required")
		}
		return jsonError(c, fiber.StatusInternalServerError, "search is temporarily unavailable")
	}

	if !result.Found {
		metrics.RecordResolution(search.Normalize(query), "none", models.OutcomeNotFound)
		return jsonNotFound(c, result.Diagnostics)
	}

	metrics.RecordResolution(search.Normalize(query), string(result.Strategy), models.OutcomeResolved)
	h.cache.Set(cacheKey, result)
	return jsonSuccess(c, result)
}
