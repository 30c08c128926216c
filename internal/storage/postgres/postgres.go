package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/lostmyescape/referral-tracker/internal/config"
	"github.com/lostmyescape/referral-tracker/internal/domain/models"
	"github.com/lostmyescape/referral-tracker/internal/lib/logger/sl"
	"github.com/lostmyescape/referral-tracker/internal/storage"
)

type Storage struct {
	DB *sql.DB
}

// NewStorage waits for postgres to accept connections and returns a storage object
func NewStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) *Storage {
	ctx, cancel := context.WithTimeout(ctx, time.Second*60)
	defer cancel()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			panic("timeout waiting for postgresql")
		case <-ticker.C:
			conn, err := connect(cfg)
			if err == nil {
				log.Info("postgresql connected successfully")
				return conn
			}
			log.Error("postgresql not ready, retrying...", sl.Err(err))
		}
	}
}

func connect(cfg *config.Config) (*Storage, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Storage.Host,
		cfg.Storage.Port,
		cfg.Storage.User,
		cfg.Storage.Password,
		cfg.Storage.DbName,
		cfg.Storage.SslMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgresql connection error: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgresql ping failed: %w", err)
	}

	return &Storage{DB: db}, nil
}

// SaveUser inserts a new affiliate. Unique violations map to sentinel
// errors so the service layer can recover from signup and code races.
func (s *Storage) SaveUser(ctx context.Context, name, wallet, code, referralLink string) (models.User, error) {
	const op = "storage.postgres.SaveUser"

	query := `
		INSERT INTO users(name, wallet_address, referral_code, referral_link)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	user := models.User{
		Name:          name,
		WalletAddress: wallet,
		ReferralCode:  code,
		ReferralLink:  referralLink,
	}

	err := s.DB.QueryRowContext(ctx, query, name, wallet, code, referralLink).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23505" {
				if pqErr.Constraint == "users_wallet_address_key" {
					return models.User{}, storage.ErrWalletExists
				}
				if pqErr.Constraint == "users_referral_code_key" {
					return models.User{}, storage.ErrCodeExists
				}
			}
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) UserByWallet(ctx context.Context, wallet string) (models.User, error) {
	const op = "storage.postgres.UserByWallet"

	query := `
		SELECT id, name, wallet_address, referral_code, referral_link, created_at, updated_at
		FROM users
		WHERE wallet_address = $1`

	return s.scanUser(ctx, op, query, wallet)
}

func (s *Storage) UserByCode(ctx context.Context, code string) (models.User, error) {
	const op = "storage.postgres.UserByCode"

	query := `
		SELECT id, name, wallet_address, referral_code, referral_link, created_at, updated_at
		FROM users
		WHERE referral_code = $1`

	return s.scanUser(ctx, op, query, code)
}

func (s *Storage) scanUser(ctx context.Context, op, query, arg string) (models.User, error) {
	var user models.User

	err := s.DB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.WalletAddress,
		&user.ReferralCode,
		&user.ReferralLink,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, storage.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// SaveClick appends one click event. Events are never updated or deleted.
func (s *Storage) SaveClick(ctx context.Context, userID int64, code, ip, userAgent, referrer string) (models.ClickEvent, error) {
	const op = "storage.postgres.SaveClick"

	query := `
		INSERT INTO click_events(user_id, referral_code, ip, user_agent, referrer)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	click := models.ClickEvent{
		UserID:       userID,
		ReferralCode: code,
		IP:           ip,
		UserAgent:    userAgent,
		Referrer:     referrer,
	}

	err := s.DB.QueryRowContext(ctx, query, userID, code, ip, userAgent, referrer).
		Scan(&click.ID, &click.CreatedAt)
	if err != nil {
		return models.ClickEvent{}, fmt.Errorf("%s: %w", op, err)
	}

	return click, nil
}

func (s *Storage) CountClicks(ctx context.Context, userID int64) (int64, error) {
	const op = "storage.postgres.CountClicks"

	var total int64

	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM click_events WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return total, nil
}

func (s *Storage) CountDistinctIP(ctx context.Context, userID int64) (int64, error) {
	const op = "storage.postgres.CountDistinctIP"

	var unique int64

	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT ip) FROM click_events WHERE user_id = $1`, userID,
	).Scan(&unique)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return unique, nil
}

// ClicksPerDay buckets a user's clicks by UTC calendar day, sparse and
// ascending. Days with no clicks are absent from the result.
func (s *Storage) ClicksPerDay(ctx context.Context, userID int64) ([]models.DayCount, error) {
	const op = "storage.postgres.ClicksPerDay"

	query := `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*) AS c
		FROM click_events
		WHERE user_id = $1
		GROUP BY day
		ORDER BY day ASC`

	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var days []models.DayCount

	for rows.Next() {
		var dc models.DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		days = append(days, dc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return days, nil
}
