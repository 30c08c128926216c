package referral

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lostmyescape/referral-tracker/internal/domain/models"
	"github.com/lostmyescape/referral-tracker/internal/kafka"
	"github.com/lostmyescape/referral-tracker/internal/lib/link"
	"github.com/lostmyescape/referral-tracker/internal/lib/logger/sl"
	"github.com/lostmyescape/referral-tracker/internal/lib/random"
	"github.com/lostmyescape/referral-tracker/internal/storage"
)

// Referral issues codes and attributes clicks. Uniqueness of wallets and
// codes is guaranteed by the store's unique indexes; the lookups here only
// reduce how often an insert bounces.
type Referral struct {
	log           *slog.Logger
	usrSaver      UserSaver
	usrProvider   UserProvider
	clickSaver    ClickSaver
	statsProvider ClickStatsProvider
	codeCache     CodeCache
	producer      ProducerProvider
	links         *link.Builder
	codeLength    int
}

//go:generate mockery --name=UserSaver --dir=. --output=./mocks --filename=user_saver_mock.go --outpkg=mocks
type UserSaver interface {
	SaveUser(ctx context.Context, name, wallet, code, referralLink string) (models.User, error)
}

//go:generate mockery --name=UserProvider --dir=. --output=./mocks --filename=user_provider_mock.go --outpkg=mocks
type UserProvider interface {
	UserByWallet(ctx context.Context, wallet string) (models.User, error)
	UserByCode(ctx context.Context, code string) (models.User, error)
}

//go:generate mockery --name=ClickSaver --dir=. --output=./mocks --filename=click_saver_mock.go --outpkg=mocks
type ClickSaver interface {
	SaveClick(ctx context.Context, userID int64, code, ip, userAgent, referrer string) (models.ClickEvent, error)
}

//go:generate mockery --name=ClickStatsProvider --dir=. --output=./mocks --filename=click_stats_provider_mock.go --outpkg=mocks
type ClickStatsProvider interface {
	CountClicks(ctx context.Context, userID int64) (int64, error)
	CountDistinctIP(ctx context.Context, userID int64) (int64, error)
	ClicksPerDay(ctx context.Context, userID int64) ([]models.DayCount, error)
}

//go:generate mockery --name=CodeCache --dir=. --output=./mocks --filename=code_cache_mock.go --outpkg=mocks
type CodeCache interface {
	UserByCode(ctx context.Context, code string) (models.User, error)
	SetUserByCode(ctx context.Context, user models.User) error
}

//go:generate mockery --name=ProducerProvider --dir=. --output=./mocks --filename=producer_provider_mock.go --outpkg=mocks
type ProducerProvider interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

var (
	ErrInvalidInput = errors.New("name and wallet address are required")
	ErrCodeNotFound = errors.New("referral code not found")
)

// Sentinel values for absent click metadata. Stored instead of NULL so
// the aggregate queries need no special cases.
const (
	MetaUnknown = "unknown"
	MetaDirect  = "direct"
)

// New returns a new instance of the Referral service
func New(
	log *slog.Logger,
	userSaver UserSaver,
	userProvider UserProvider,
	clickSaver ClickSaver,
	statsProvider ClickStatsProvider,
	codeCache CodeCache,
	producer ProducerProvider,
	links *link.Builder,
	codeLength int,
) *Referral {
	return &Referral{
		log:           log,
		usrSaver:      userSaver,
		usrProvider:   userProvider,
		clickSaver:    clickSaver,
		statsProvider: statsProvider,
		codeCache:     codeCache,
		producer:      producer,
		links:         links,
		codeLength:    codeLength,
	}
}

// SignUp registers a wallet and issues its referral code. Idempotent per
// wallet: a second signup returns the stored record unchanged and never
// generates a new code.
func (r *Referral) SignUp(ctx context.Context, name, wallet string) (models.User, error) {
	const op = "referral.SignUp"

	name = strings.TrimSpace(name)
	wallet = strings.TrimSpace(wallet)

	if name == "" || wallet == "" {
		return models.User{}, ErrInvalidInput
	}

	log := r.log.With(
		slog.String("op", op),
		slog.String("wallet", wallet),
	)

	user, err := r.usrProvider.UserByWallet(ctx, wallet)
	if err == nil {
		log.Info("wallet already registered, returning existing user")
		return user, nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		log.Error("failed to look up wallet", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return models.User{}, fmt.Errorf("%s: %w", op, err)
		}

		code := random.NewRandomCode(r.codeLength)

		// cheap pre-check; the unique index is the actual guarantee
		_, err := r.usrProvider.UserByCode(ctx, code)
		if err == nil {
			log.Warn("referral code collision, drawing again", slog.String("code", code))
			continue
		}
		if !errors.Is(err, storage.ErrUserNotFound) {
			log.Error("failed to check code uniqueness", sl.Err(err))
			return models.User{}, fmt.Errorf("%s: %w", op, err)
		}

		user, err = r.usrSaver.SaveUser(ctx, name, wallet, code, r.links.Build(code))
		if errors.Is(err, storage.ErrCodeExists) {
			log.Warn("referral code raced another signup, drawing again")
			continue
		}
		if errors.Is(err, storage.ErrWalletExists) {
			// a concurrent signup for the same wallet won the insert
			log.Info("wallet registered concurrently, returning existing user")

			user, err = r.usrProvider.UserByWallet(ctx, wallet)
			if err != nil {
				log.Error("failed to re-fetch user", sl.Err(err))
				return models.User{}, fmt.Errorf("%s: %w", op, err)
			}
			return user, nil
		}
		if err != nil {
			log.Error("failed to save user", sl.Err(err))
			return models.User{}, fmt.Errorf("%s: %w", op, err)
		}

		if err := r.producer.Publish(ctx, kafka.EventUserRegistered, user); err != nil {
			log.Warn("failed to publish registration event", sl.Err(err))
		}

		log.Info("user registered", slog.String("code", user.ReferralCode))

		return user, nil
	}
}

// RecordClick validates the code and appends one click event. Clicks for
// unknown codes are rejected and never stored. Missing metadata degrades
// to sentinel values, never to an error.
func (r *Referral) RecordClick(ctx context.Context, code, ip, userAgent, referrer string) (models.ClickEvent, error) {
	const op = "referral.RecordClick"

	code = strings.TrimSpace(code)
	if code == "" {
		return models.ClickEvent{}, ErrCodeNotFound
	}

	log := r.log.With(
		slog.String("op", op),
		slog.String("code", code),
	)

	user, err := r.resolveCode(ctx, code, log)
	if err != nil {
		return models.ClickEvent{}, err
	}

	if ip == "" {
		ip = MetaUnknown
	}
	if userAgent == "" {
		userAgent = MetaUnknown
	}
	if referrer == "" {
		referrer = MetaDirect
	}

	click, err := r.clickSaver.SaveClick(ctx, user.ID, code, ip, userAgent, referrer)
	if err != nil {
		log.Error("failed to save click", sl.Err(err))
		return models.ClickEvent{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := r.producer.Publish(ctx, kafka.EventClickRecorded, click); err != nil {
		log.Warn("failed to publish click event", sl.Err(err))
	}

	log.Info("click recorded", slog.Int64("user_id", user.ID))

	return click, nil
}

func (r *Referral) resolveCode(ctx context.Context, code string, log *slog.Logger) (models.User, error) {
	const op = "referral.resolveCode"

	user, err := r.codeCache.UserByCode(ctx, code)
	if err == nil {
		return user, nil
	}

	user, err = r.usrProvider.UserByCode(ctx, code)
	if errors.Is(err, storage.ErrUserNotFound) {
		log.Info("unknown referral code")
		return models.User{}, ErrCodeNotFound
	}
	if err != nil {
		log.Error("failed to look up code", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := r.codeCache.SetUserByCode(ctx, user); err != nil {
		log.Warn("failed to cache user by code", sl.Err(err))
	}

	return user, nil
}

// StatsResult is what a stats read returns. Found is false for unknown
// wallets; the counters are then zero and ClicksByDay is empty. Dashboards
// poll this unconditionally, so an unknown wallet is not an error.
type StatsResult struct {
	Found bool
	User  models.User
	Stats models.Stats
}

// Stats aggregates a wallet's clicks: total, distinct IPs and a sparse
// ascending per-day series of UTC calendar days.
func (r *Referral) Stats(ctx context.Context, wallet string) (StatsResult, error) {
	const op = "referral.Stats"

	wallet = strings.TrimSpace(wallet)

	log := r.log.With(
		slog.String("op", op),
		slog.String("wallet", wallet),
	)

	empty := StatsResult{
		Stats: models.Stats{ClicksByDay: []models.DayCount{}},
	}

	user, err := r.usrProvider.UserByWallet(ctx, wallet)
	if errors.Is(err, storage.ErrUserNotFound) {
		return empty, nil
	}
	if err != nil {
		log.Error("failed to look up wallet", sl.Err(err))
		return StatsResult{}, fmt.Errorf("%s: %w", op, err)
	}

	total, err := r.statsProvider.CountClicks(ctx, user.ID)
	if err != nil {
		log.Error("failed to count clicks", sl.Err(err))
		return StatsResult{}, fmt.Errorf("%s: %w", op, err)
	}

	unique, err := r.statsProvider.CountDistinctIP(ctx, user.ID)
	if err != nil {
		log.Error("failed to count distinct ips", sl.Err(err))
		return StatsResult{}, fmt.Errorf("%s: %w", op, err)
	}

	byDay, err := r.statsProvider.ClicksPerDay(ctx, user.ID)
	if err != nil {
		log.Error("failed to bucket clicks by day", sl.Err(err))
		return StatsResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if byDay == nil {
		byDay = []models.DayCount{}
	}

	return StatsResult{
		Found: true,
		User:  user,
		Stats: models.Stats{
			TotalClicks:  total,
			UniqueClicks: unique,
			ClicksByDay:  byDay,
		},
	}, nil
}
