package track

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lostmyescape/referral-tracker/internal/domain/models"
	resp "github.com/lostmyescape/referral-tracker/internal/lib/api/response"
	"github.com/lostmyescape/referral-tracker/internal/lib/logger/sl"
	"github.com/lostmyescape/referral-tracker/internal/services/referral"
)

// Policy for clicks carrying a code no user owns. The source deployments
// disagreed on this, so it is configuration, not a constant.
const (
	PolicyReject   = "reject"
	PolicyRedirect = "redirect"
)

//go:generate mockery --name=ClickRecorder --dir=. --output=./mocks --filename=click_recorder_mock.go --outpkg=mocks
type ClickRecorder interface {
	RecordClick(ctx context.Context, code, ip, userAgent, referrer string) (models.ClickEvent, error)
}

// Redirect serves the attribution hop: GET /r/{code} records the click and
// sends the visitor on to the configured destination.
func Redirect(log *slog.Logger, recorder ClickRecorder, destination, unknownPolicy string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.track.Redirect"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		code := chi.URLParam(r, "code")

		_, err := recorder.RecordClick(r.Context(), code, clientIP(r), r.UserAgent(), r.Referer())
		if errors.Is(err, referral.ErrCodeNotFound) {
			if unknownPolicy == PolicyRedirect {
				log.Info("unknown code, redirecting without recording", slog.String("code", code))
				http.Redirect(w, r, destination, http.StatusFound)
				return
			}

			log.Info("unknown code rejected", slog.String("code", code))
			resp.NewJSON(w, r, http.StatusNotFound, resp.Error("referral code not found"))

			return
		}

		if err != nil {
			log.Error("failed to record click", sl.Err(err))
			resp.NewJSON(w, r, http.StatusInternalServerError, resp.Error("internal error"))

			return
		}

		log.Info("click recorded", slog.String("code", code))

		http.Redirect(w, r, destination, http.StatusFound)
	}
}

// Report serves the client-reported variant: POST /track/{code} records the
// click and returns a JSON status instead of redirecting.
func Report(log *slog.Logger, recorder ClickRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.track.Report"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		code := chi.URLParam(r, "code")

		_, err := recorder.RecordClick(r.Context(), code, clientIP(r), r.UserAgent(), r.Referer())
		if errors.Is(err, referral.ErrCodeNotFound) {
			log.Info("unknown code rejected", slog.String("code", code))
			resp.NewJSON(w, r, http.StatusNotFound, resp.Error("referral code not found"))

			return
		}

		if err != nil {
			log.Error("failed to record click", sl.Err(err))
			resp.NewJSON(w, r, http.StatusInternalServerError, resp.Error("internal error"))

			return
		}

		log.Info("click recorded", slog.String("code", code))

		resp.NewJSON(w, r, http.StatusOK, resp.OK())
	}
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// peer address. Extraction failures return "" and the service substitutes
// its sentinel, so a malformed header never rejects a click.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
