package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lostmyescape/referral-tracker/internal/domain/models"
	resp "github.com/lostmyescape/referral-tracker/internal/lib/api/response"
	"github.com/lostmyescape/referral-tracker/internal/lib/logger/sl"
	"github.com/lostmyescape/referral-tracker/internal/services/referral"
)

type Response struct {
	resp.Response
	Found bool         `json:"found"`
	User  *models.User `json:"user,omitempty"`
	Stats models.Stats `json:"stats"`
}

//go:generate mockery --name=StatsProvider --dir=. --output=./mocks --filename=stats_provider_mock.go --outpkg=mocks
type StatsProvider interface {
	Stats(ctx context.Context, wallet string) (referral.StatsResult, error)
}

// New serves GET /stats/{wallet}. An unknown wallet is a 200 with zero
// values, never an error: dashboards poll this without special-casing.
func New(log *slog.Logger, provider StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.stats.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		wallet := chi.URLParam(r, "wallet")

		res, err := provider.Stats(r.Context(), wallet)
		if err != nil {
			log.Error("failed to load stats", sl.Err(err))
			resp.NewJSON(w, r, http.StatusInternalServerError, resp.Error("internal error"))

			return
		}

		out := Response{
			Response: resp.OK(),
			Found:    res.Found,
			Stats:    res.Stats,
		}
		if res.Found {
			user := res.User
			out.User = &user
		}

		log.Info("stats served",
			slog.String("wallet", wallet),
			slog.Bool("found", res.Found),
		)

		resp.NewJSON(w, r, http.StatusOK, out)
	}
}
