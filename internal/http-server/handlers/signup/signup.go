package signup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/lostmyescape/referral-tracker/internal/domain/models"
	resp "github.com/lostmyescape/referral-tracker/internal/lib/api/response"
	"github.com/lostmyescape/referral-tracker/internal/lib/logger/sl"
	"github.com/lostmyescape/referral-tracker/internal/services/referral"
)

type Request struct {
	Name          string `json:"name" validate:"required"`
	WalletAddress string `json:"walletAddress" validate:"required"`
}

type Response struct {
	resp.Response
	User models.User `json:"user"`
}

//go:generate mockery --name=UserRegistrar --dir=. --output=./mocks --filename=user_registrar_mock.go --outpkg=mocks
type UserRegistrar interface {
	SignUp(ctx context.Context, name, wallet string) (models.User, error)
}

func New(log *slog.Logger, registrar UserRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.signup.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			resp.NewJSON(w, r, http.StatusBadRequest, resp.Error("invalid request body"))

			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err := validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			resp.NewJSON(w, r, http.StatusBadRequest, resp.ValidationError(validateErr))

			return
		}

		user, err := registrar.SignUp(r.Context(), req.Name, req.WalletAddress)
		if err != nil {
			if errors.Is(err, referral.ErrInvalidInput) {
				log.Error("invalid signup input", sl.Err(err))
				resp.NewJSON(w, r, http.StatusBadRequest, resp.Error("name and walletAddress are required"))
				return
			}

			log.Error("failed to sign up user", sl.Err(err))
			resp.NewJSON(w, r, http.StatusInternalServerError, resp.Error("failed to sign up"))
			return
		}

		log.Info("user signed up", slog.Int64("id", user.ID))

		resp.NewJSON(w, r, http.StatusOK, Response{
			Response: resp.OK(),
			User:     user,
		})
	}
}
