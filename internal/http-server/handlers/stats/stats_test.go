package stats

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lostmyescape/referral-tracker/internal/domain/models"
	"github.com/lostmyescape/referral-tracker/internal/http-server/handlers/stats/mocks"
	"github.com/lostmyescape/referral-tracker/internal/lib/logger/handlers/slogdiscard"
	"github.com/lostmyescape/referral-tracker/internal/services/referral"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsHandler(t *testing.T) {
	found := referral.StatsResult{
		Found: true,
		User: models.User{
			ID:            1,
			Name:          "Alice",
			WalletAddress: "0xABC",
			ReferralCode:  "abc123xyz",
		},
		Stats: models.Stats{
			TotalClicks:  3,
			UniqueClicks: 2,
			ClicksByDay: []models.DayCount{
				{Day: "2026-08-30", Count: 1},
				{Day: "2026-08-31", Count: 2},
			},
		},
	}

	empty := referral.StatsResult{
		Stats: models.Stats{ClicksByDay: []models.DayCount{}},
	}

	cases := []struct {
		name       string
		wallet     string
		mockResult referral.StatsResult
		mockError  error
		wantCode   int
		wantFound  bool
	}{
		{
			name:       "Known wallet",
			wallet:     "0xABC",
			mockResult: found,
			wantCode:   http.StatusOK,
			wantFound:  true,
		},
		{
			name:       "Unknown wallet is still 200",
			wallet:     "0xNOBODY",
			mockResult: empty,
			wantCode:   http.StatusOK,
			wantFound:  false,
		},
		{
			name:      "Stats error",
			wallet:    "0xABC",
			mockError: errors.New("unexpected error"),
			wantCode:  http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			providerMock := mocks.NewStatsProvider(t)

			providerMock.On("Stats", mock.Anything, tc.wallet).
				Return(tc.mockResult, tc.mockError).
				Once()

			r := chi.NewRouter()
			r.Get("/stats/{wallet}", New(slogdiscard.NewDiscardLogger(), providerMock))

			ts := httptest.NewServer(r)
			defer ts.Close()

			resp, err := http.Get(ts.URL + "/stats/" + tc.wallet)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantCode, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			if tc.mockError != nil {
				assert.Contains(t, string(body), "internal error")
				return
			}

			var out Response
			require.NoError(t, json.Unmarshal(body, &out))

			assert.Equal(t, "OK", out.Status)
			assert.Equal(t, tc.wantFound, out.Found)

			if tc.wantFound {
				require.NotNil(t, out.User)
				assert.Equal(t, tc.mockResult.User.ReferralCode, out.User.ReferralCode)
				assert.Equal(t, tc.mockResult.Stats.TotalClicks, out.Stats.TotalClicks)
			} else {
				assert.Nil(t, out.User)
				assert.Zero(t, out.Stats.TotalClicks)
				assert.Empty(t, out.Stats.ClicksByDay)
			}
		})
	}
}
