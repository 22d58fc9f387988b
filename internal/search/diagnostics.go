package search

import (
	"context"
	"time"

	"tripsearch/internal/models"
)

// Suggestion is a "did you mean" pointer to a recently-modified record.
type Suggestion struct {
	NaturalKey  string             `json:"natural_key"`
	ContextType models.ContextType `json:"context_type"`
	Hint        string             `json:"hint"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Diagnostics is the not-found bundle: what was tried, plus nearby records
// to guide query reformulation.
type Diagnostics struct {
	Message         string            `json:"message"`
	NormalizedQuery string            `json:"normalized_query"`
	Terms           []WeightedTerm    `json:"terms"`
	Tier            string            `json:"tier"`
	StrategiesTried []models.Strategy `json:"strategies_tried"`
	RecentTrips     []Suggestion      `json:"recent_trips"`
	RecentClients   []Suggestion      `json:"recent_clients"`
}

// composeDiagnostics fetches recently-modified trips and clients as
// suggestions. Suggestion fetches are best-effort: a timeout here degrades
// to an emptier bundle, never an error.
func (r *Resolver) composeDiagnostics(ctx context.Context, q *Query, tried []models.Strategy, message string) *Diagnostics {
	d := &Diagnostics{
		Message:         message,
		NormalizedQuery: q.Normalized,
		Terms:           q.Terms,
		Tier:            q.Tier.String(),
		StrategiesTried: tried,
	}

	var trips []models.Trip
	err := r.guard(ctx, func(gctx context.Context) error {
		var err error
		trips, err = r.store.RecentTrips(gctx, r.cfg.TripSuggestions)
		return err
	})
	if err != nil {
		r.logger.Warn("diagnostics trip suggestions unavailable", "error", err)
	}
	for _, t := range trips {
		d.RecentTrips = append(d.RecentTrips, Suggestion{
			NaturalKey:  t.Name,
			ContextType: models.ContextTrip,
			Hint:        t.Summary(),
			UpdatedAt:   t.UpdatedAt,
		})
	}

	var clients []models.Client
	err = r.guard(ctx, func(gctx context.Context) error {
		var err error
		clients, err = r.store.RecentClients(gctx, r.cfg.ClientSuggestions)
		return err
	})
	if err != nil {
		r.logger.Warn("diagnostics client suggestions unavailable", "error", err)
	}
	for _, c := range clients {
		d.RecentClients = append(d.RecentClients, Suggestion{
			NaturalKey:  c.Email,
			ContextType: models.ContextClient,
			Hint:        c.Summary(),
			UpdatedAt:   c.UpdatedAt,
		})
	}

	return d
}
