package fitbit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/digitaldrywood/healthpulse/internal/credentials"
	"github.com/digitaldrywood/healthpulse/internal/metrics"
)

type tokenRecorder struct {
	saved map[string]*oauth2.Token
}

func (r *tokenRecorder) Load(vendor string) (credentials.Credentials, error) {
	return credentials.Credentials{}, errors.New("not implemented")
}

func (r *tokenRecorder) SaveToken(vendor string, tok *oauth2.Token) error {
	if r.saved == nil {
		r.saved = make(map[string]*oauth2.Token)
	}
	r.saved[vendor] = tok
	return nil
}

func newTestClient(srvURL string, store credentials.Store) *Client {
	c := NewClient(credentials.Credentials{
		Vendor:       "fitbit",
		ClientID:     "id",
		ClientSecret: "secret",
		AccessToken:  "test-token",
		RefreshToken: "test-refresh",
	}, store)
	c.baseURL = srvURL
	return c
}

func TestSleepSumsSessions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/1.2/user/-/sleep/date/2024-01-01.json", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{
			"sleep": [
				{
					"minutesAsleep": 400, "timeInBed": 430, "efficiency": 90,
					"levels": {"summary": {"deep": {"minutes": 80}, "light": {"minutes": 220}, "rem": {"minutes": 100}, "wake": {"minutes": 30}}}
				},
				{
					"minutesAsleep": 45, "timeInBed": 50, "efficiency": 95,
					"levels": {"summary": {"light": {"minutes": 45}}}
				}
			]
		}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	sum, err := c.Sleep(context.Background(), "2024-01-01")
	require.NoError(t, err)

	require.Equal(t, 445.0, sum.TotalMinutesAsleep)
	require.Equal(t, 480.0, sum.TotalTimeInBed)
	require.Equal(t, 95.0, sum.Efficiency) // max across sessions
	require.Equal(t, 80.0, sum.DeepSleepMinutes)
	require.Equal(t, 265.0, sum.LightSleepMinutes)
	require.Equal(t, 100.0, sum.RemSleepMinutes)
	require.Equal(t, 30.0, sum.AwakeMinutes)
}

func TestSleepNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sleep": []}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	_, err := c.Sleep(context.Background(), "2024-01-01")
	require.ErrorIs(t, err, metrics.ErrNoData)
}

func TestHeartRateAggregatesIntraday(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/1/user/-/activities/heart/date/2024-01-01/1d/1min.json", r.URL.Path)
		fmt.Fprint(w, `{
			"activities-heart": [{"dateTime": "2024-01-01", "value": {"restingHeartRate": 52}}],
			"activities-heart-intraday": {
				"dataset": [
					{"time": "00:00:00", "value": 60},
					{"time": "00:01:00", "value": 48},
					{"time": "00:02:00", "value": 120}
				],
				"datasetInterval": 1,
				"datasetType": "minute"
			}
		}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	sum, err := c.HeartRate(context.Background(), "2024-01-01")
	require.NoError(t, err)

	require.Equal(t, 52.0, sum.RestingHeartRate)
	require.Equal(t, 48.0, sum.MinHeartRate)
	require.Equal(t, 120.0, sum.MaxHeartRate)
	require.Equal(t, 76.0, sum.AvgHeartRate)
}

func TestStressWithoutReadiness(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/1/user/-/hrv/date/2024-01-01.json":
			fmt.Fprint(w, `{"hrv": [{"dateTime": "2024-01-01", "value": {"dailyRmssd": 34.5}}]}`)
		default:
			// Readiness is premium-only; a basic account gets 403.
			http.Error(w, "forbidden", http.StatusForbidden)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	sum, err := c.Stress(context.Background(), "2024-01-01")
	require.NoError(t, err)

	require.Equal(t, 34.5, sum.HRVScore)
	require.False(t, sum.HasStressScore)
}

func TestStressWithReadiness(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/1/user/-/hrv/date/2024-01-01.json":
			fmt.Fprint(w, `{"hrv": [{"value": {"dailyRmssd": 40}}]}`)
		case "/1/user/-/readiness/date/2024-01-01.json":
			fmt.Fprint(w, `{"readiness": [{"value": {"stressBalance": 12}}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	sum, err := c.Stress(context.Background(), "2024-01-01")
	require.NoError(t, err)

	require.Equal(t, 40.0, sum.HRVScore)
	require.True(t, sum.HasStressScore)
	require.Equal(t, 12.0, sum.StressScore)
}

func TestGetClassifiesAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	_, err := c.Sleep(context.Background(), "2024-01-01")

	var authErr *metrics.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "fitbit", authErr.Vendor)
}

func TestGetClassifiesServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	_, err := c.Sleep(context.Background(), "2024-01-01")

	var transportErr *metrics.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestConnectRefreshesOnceOnExpiredToken(t *testing.T) {
	var refreshCalls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth2/token":
			refreshCalls++
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token": "fresh-token", "refresh_token": "fresh-refresh", "token_type": "Bearer", "expires_in": 3600}`)
		case "/1/user/-/profile.json":
			if r.Header.Get("Authorization") == "Bearer fresh-token" {
				fmt.Fprint(w, `{"user": {"fullName": "Test"}}`)
				return
			}
			http.Error(w, "expired", http.StatusUnauthorized)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store := &tokenRecorder{}
	c := newTestClient(srv.URL, store)
	c.conf.Endpoint.TokenURL = srv.URL + "/oauth2/token"

	require.NoError(t, c.Connect(context.Background()))
	require.Equal(t, 1, refreshCalls)
	require.Equal(t, "fresh-token", c.token.AccessToken)

	// Refreshed token was persisted through the store.
	require.NotNil(t, store.saved["fitbit"])
	require.Equal(t, "fresh-token", store.saved["fitbit"].AccessToken)
}

func TestConnectFailsAfterSingleRefresh(t *testing.T) {
	var refreshCalls, probeCalls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth2/token":
			refreshCalls++
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token": "still-bad", "refresh_token": "r", "token_type": "Bearer", "expires_in": 3600}`)
		default:
			probeCalls++
			http.Error(w, "expired", http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	c.conf.Endpoint.TokenURL = srv.URL + "/oauth2/token"

	err := c.Connect(context.Background())
	var authErr *metrics.AuthError
	require.ErrorAs(t, err, &authErr)

	require.Equal(t, 1, refreshCalls)
	require.Equal(t, 2, probeCalls)
}

func TestConnectFatalWhenRefreshFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth2/token":
			http.Error(w, "bad refresh token", http.StatusBadRequest)
		default:
			http.Error(w, "expired", http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	c.conf.Endpoint.TokenURL = srv.URL + "/oauth2/token"

	err := c.Connect(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "token refresh failed")
}
