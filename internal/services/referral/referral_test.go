package referral

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/lostmyescape/referral-tracker/internal/domain/models"
	"github.com/lostmyescape/referral-tracker/internal/lib/link"
	"github.com/lostmyescape/referral-tracker/internal/lib/logger/handlers/slogdiscard"
	"github.com/lostmyescape/referral-tracker/internal/services/referral/mocks"
	"github.com/lostmyescape/referral-tracker/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var codeRe = regexp.MustCompile(`^[a-z0-9]{9}$`)

type deps struct {
	usrSaver      *mocks.UserSaver
	usrProvider   *mocks.UserProvider
	clickSaver    *mocks.ClickSaver
	statsProvider *mocks.ClickStatsProvider
	codeCache     *mocks.CodeCache
	producer      *mocks.ProducerProvider
}

func newService(t *testing.T) (*Referral, deps) {
	t.Helper()

	d := deps{
		usrSaver:      mocks.NewUserSaver(t),
		usrProvider:   mocks.NewUserProvider(t),
		clickSaver:    mocks.NewClickSaver(t),
		statsProvider: mocks.NewClickStatsProvider(t),
		codeCache:     mocks.NewCodeCache(t),
		producer:      mocks.NewProducerProvider(t),
	}

	links, err := link.NewBuilder(link.StylePath, "http://localhost:8080", "")
	require.NoError(t, err)

	svc := New(
		slogdiscard.NewDiscardLogger(),
		d.usrSaver,
		d.usrProvider,
		d.clickSaver,
		d.statsProvider,
		d.codeCache,
		d.producer,
		links,
		9,
	)

	return svc, d
}

func TestSignUp_InvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		userName string
		wallet   string
	}{
		{
			name:     "empty name",
			userName: "",
			wallet:   "0xABC",
		},
		{
			name:     "empty wallet",
			userName: "Alice",
			wallet:   "",
		},
		{
			name:     "whitespace only",
			userName: "   ",
			wallet:   "\t",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newService(t)

			_, err := svc.SignUp(context.Background(), tc.userName, tc.wallet)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSignUp_NewWallet(t *testing.T) {
	svc, d := newService(t)

	d.usrProvider.On("UserByWallet", mock.Anything, "0xABC").
		Return(models.User{}, storage.ErrUserNotFound).
		Once()
	d.usrProvider.On("UserByCode", mock.Anything, mock.AnythingOfType("string")).
		Return(models.User{}, storage.ErrUserNotFound).
		Once()
	d.usrSaver.On("SaveUser", mock.Anything, "Alice", "0xABC",
		mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(func(_ context.Context, name, wallet, code, refLink string) (models.User, error) {
			return models.User{
				ID:            1,
				Name:          name,
				WalletAddress: wallet,
				ReferralCode:  code,
				ReferralLink:  refLink,
				CreatedAt:     time.Now(),
				UpdatedAt:     time.Now(),
			}, nil
		}).
		Once()
	d.producer.On("Publish", mock.Anything, "user.registered", mock.Anything).
		Return(nil).
		Once()

	user, err := svc.SignUp(context.Background(), "  Alice ", " 0xABC ")
	require.NoError(t, err)

	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "0xABC", user.WalletAddress)
	assert.Regexp(t, codeRe, user.ReferralCode)
	assert.Equal(t, "http://localhost:8080/r/"+user.ReferralCode, user.ReferralLink)
}

func TestSignUp_ExistingWallet(t *testing.T) {
	svc, d := newService(t)

	existing := models.User{
		ID:            7,
		Name:          "Alice",
		WalletAddress: "0xABC",
		ReferralCode:  "abc123xyz",
		ReferralLink:  "http://localhost:8080/r/abc123xyz",
	}

	d.usrProvider.On("UserByWallet", mock.Anything, "0xABC").
		Return(existing, nil).
		Twice()

	first, err := svc.SignUp(context.Background(), "Alice", "0xABC")
	require.NoError(t, err)

	second, err := svc.SignUp(context.Background(), "Someone Else", "0xABC")
	require.NoError(t, err)

	assert.Equal(t, first.ReferralCode, second.ReferralCode)
	assert.Equal(t, first.ReferralLink, second.ReferralLink)
	d.usrSaver.AssertNotCalled(t, "SaveUser")
}

func TestSignUp_CodeCollisionRetries(t *testing.T) {
	svc, d := newService(t)

	taken := models.User{ID: 2, ReferralCode: "taken"}

	d.usrProvider.On("UserByWallet", mock.Anything, "0xABC").
		Return(models.User{}, storage.ErrUserNotFound).
		Once()
	// first draw collides, second one is free
	d.usrProvider.On("UserByCode", mock.Anything, mock.AnythingOfType("string")).
		Return(taken, nil).
		Once()
	d.usrProvider.On("UserByCode", mock.Anything, mock.AnythingOfType("string")).
		Return(models.User{}, storage.ErrUserNotFound).
		Once()
	d.usrSaver.On("SaveUser", mock.Anything, "Alice", "0xABC",
		mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(models.User{ID: 3, WalletAddress: "0xABC"}, nil).
		Once()
	d.producer.On("Publish", mock.Anything, "user.registered", mock.Anything).
		Return(nil).
		Once()

	_, err := svc.SignUp(context.Background(), "Alice", "0xABC")
	require.NoError(t, err)
}

func TestSignUp_WalletRaceReturnsExisting(t *testing.T) {
	svc, d := newService(t)

	winner := models.User{
		ID:            5,
		Name:          "Alice",
		WalletAddress: "0xABC",
		ReferralCode:  "winner123",
	}

	d.usrProvider.On("UserByWallet", mock.Anything, "0xABC").
		Return(models.User{}, storage.ErrUserNotFound).
		Once()
	d.usrProvider.On("UserByCode", mock.Anything, mock.AnythingOfType("string")).
		Return(models.User{}, storage.ErrUserNotFound).
		Once()
	d.usrSaver.On("SaveUser", mock.Anything, "Alice", "0xABC",
		mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(models.User{}, storage.ErrWalletExists).
		Once()
	d.usrProvider.On("UserByWallet", mock.Anything, "0xABC").
		Return(winner, nil).
		Once()

	user, err := svc.SignUp(context.Background(), "Alice", "0xABC")
	require.NoError(t, err)

	assert.Equal(t, winner.ReferralCode, user.ReferralCode)
	d.producer.AssertNotCalled(t, "Publish")
}

func TestSignUp_CodeRaceRetries(t *testing.T) {
	svc, d := newService(t)

	d.usrProvider.On("UserByWallet", mock.Anything, "0xABC").
		Return(models.User{}, storage.ErrUserNotFound).
		Once()
	d.usrProvider.On("UserByCode", mock.Anything, mock.AnythingOfType("string")).
		Return(models.User{}, storage.ErrUserNotFound).
		Twice()
	// the pre-check passed but another writer took the code first
	d.usrSaver.On("SaveUser", mock.Anything, "Alice", "0xABC",
		mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(models.User{}, storage.ErrCodeExists).
		Once()
	d.usrSaver.On("SaveUser", mock.Anything, "Alice", "0xABC",
		mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(models.User{ID: 9, WalletAddress: "0xABC"}, nil).
		Once()
	d.producer.On("Publish", mock.Anything, "user.registered", mock.Anything).
		Return(nil).
		Once()

	_, err := svc.SignUp(context.Background(), "Alice", "0xABC")
	require.NoError(t, err)
}

func TestRecordClick_UnknownCode(t *testing.T) {
	svc, d := newService(t)

	d.codeCache.On("UserByCode", mock.Anything, "nosuchcode").
		Return(models.User{}, errors.New("cache miss")).
		Once()
	d.usrProvider.On("UserByCode", mock.Anything, "nosuchcode").
		Return(models.User{}, storage.ErrUserNotFound).
		Once()

	_, err := svc.RecordClick(context.Background(), "nosuchcode", "1.2.3.4", "curl", "")

	assert.ErrorIs(t, err, ErrCodeNotFound)
	d.clickSaver.AssertNotCalled(t, "SaveClick")
	d.usrSaver.AssertNotCalled(t, "SaveUser")
}

func TestRecordClick_EmptyCode(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.RecordClick(context.Background(), "  ", "1.2.3.4", "curl", "")

	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestRecordClick_SentinelDefaults(t *testing.T) {
	svc, d := newService(t)

	user := models.User{ID: 4, ReferralCode: "abc123xyz"}

	d.codeCache.On("UserByCode", mock.Anything, "abc123xyz").
		Return(models.User{}, errors.New("cache miss")).
		Once()
	d.usrProvider.On("UserByCode", mock.Anything, "abc123xyz").
		Return(user, nil).
		Once()
	d.codeCache.On("SetUserByCode", mock.Anything, user).
		Return(nil).
		Once()
	d.clickSaver.On("SaveClick", mock.Anything, int64(4), "abc123xyz",
		"unknown", "unknown", "direct").
		Return(models.ClickEvent{ID: 1, UserID: 4, ReferralCode: "abc123xyz"}, nil).
		Once()
	d.producer.On("Publish", mock.Anything, "click.recorded", mock.Anything).
		Return(nil).
		Once()

	click, err := svc.RecordClick(context.Background(), "abc123xyz", "", "", "")
	require.NoError(t, err)

	assert.Equal(t, int64(4), click.UserID)
}

func TestRecordClick_CacheHitSkipsStore(t *testing.T) {
	svc, d := newService(t)

	user := models.User{ID: 4, ReferralCode: "abc123xyz"}

	d.codeCache.On("UserByCode", mock.Anything, "abc123xyz").
		Return(user, nil).
		Once()
	d.clickSaver.On("SaveClick", mock.Anything, int64(4), "abc123xyz",
		"1.2.3.4", "curl", "https://x.example").
		Return(models.ClickEvent{ID: 2, UserID: 4}, nil).
		Once()
	d.producer.On("Publish", mock.Anything, "click.recorded", mock.Anything).
		Return(nil).
		Once()

	_, err := svc.RecordClick(context.Background(), "abc123xyz", "1.2.3.4", "curl", "https://x.example")
	require.NoError(t, err)

	d.usrProvider.AssertNotCalled(t, "UserByCode")
}

func TestRecordClick_PublishFailureIsNotFatal(t *testing.T) {
	svc, d := newService(t)

	user := models.User{ID: 4, ReferralCode: "abc123xyz"}

	d.codeCache.On("UserByCode", mock.Anything, "abc123xyz").
		Return(user, nil).
		Once()
	d.clickSaver.On("SaveClick", mock.Anything, int64(4), "abc123xyz",
		"1.2.3.4", "curl", "direct").
		Return(models.ClickEvent{ID: 3, UserID: 4}, nil).
		Once()
	d.producer.On("Publish", mock.Anything, "click.recorded", mock.Anything).
		Return(errors.New("broker down")).
		Once()

	_, err := svc.RecordClick(context.Background(), "abc123xyz", "1.2.3.4", "curl", "")
	require.NoError(t, err)
}

func TestStats_UnknownWallet(t *testing.T) {
	svc, d := newService(t)

	d.usrProvider.On("UserByWallet", mock.Anything, "0xNOBODY").
		Return(models.User{}, storage.ErrUserNotFound).
		Once()

	res, err := svc.Stats(context.Background(), "0xNOBODY")
	require.NoError(t, err)

	assert.False(t, res.Found)
	assert.Zero(t, res.Stats.TotalClicks)
	assert.Zero(t, res.Stats.UniqueClicks)
	assert.NotNil(t, res.Stats.ClicksByDay)
	assert.Empty(t, res.Stats.ClicksByDay)
}

func TestStats_Aggregates(t *testing.T) {
	svc, d := newService(t)

	user := models.User{ID: 4, WalletAddress: "0xABC", ReferralCode: "abc123xyz"}
	byDay := []models.DayCount{
		{Day: "2026-08-30", Count: 1},
		{Day: "2026-08-31", Count: 2},
	}

	d.usrProvider.On("UserByWallet", mock.Anything, "0xABC").
		Return(user, nil).
		Once()
	d.statsProvider.On("CountClicks", mock.Anything, int64(4)).
		Return(int64(3), nil).
		Once()
	d.statsProvider.On("CountDistinctIP", mock.Anything, int64(4)).
		Return(int64(2), nil).
		Once()
	d.statsProvider.On("ClicksPerDay", mock.Anything, int64(4)).
		Return(byDay, nil).
		Once()

	res, err := svc.Stats(context.Background(), "0xABC")
	require.NoError(t, err)

	assert.True(t, res.Found)
	assert.Equal(t, int64(3), res.Stats.TotalClicks)
	assert.Equal(t, int64(2), res.Stats.UniqueClicks)
	assert.Equal(t, byDay, res.Stats.ClicksByDay)

	var sum int64
	for _, dc := range res.Stats.ClicksByDay {
		sum += dc.Count
	}
	assert.Equal(t, res.Stats.TotalClicks, sum)
}

func TestStats_StorageError(t *testing.T) {
	svc, d := newService(t)

	d.usrProvider.On("UserByWallet", mock.Anything, "0xABC").
		Return(models.User{}, errors.New("connection refused")).
		Once()

	_, err := svc.Stats(context.Background(), "0xABC")

	require.Error(t, err)
}
