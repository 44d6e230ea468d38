// Package fitbit is a client for the Fitbit Web API covering the sleep,
// heart rate and HRV endpoints, normalized into the shared metric records.
package fitbit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/oauth2"

	"github.com/digitaldrywood/healthpulse/internal/credentials"
	"github.com/digitaldrywood/healthpulse/internal/metrics"
)

const (
	DefaultBaseURL = "https://api.fitbit.com"
	AuthURL        = "https://www.fitbit.com/oauth2/authorize"
	TokenURL       = "https://api.fitbit.com/oauth2/token"
)

// Scopes requested during authorization, matching what the data fetchers
// touch plus profile for the connection probe.
var Scopes = []string{"activity", "heartrate", "location", "nutrition", "profile", "settings", "sleep", "social", "weight"}

// OAuthConfig builds the Fitbit OAuth2 endpoint configuration. Fitbit
// requires client credentials via basic auth at the token URL.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   AuthURL,
			TokenURL:  TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	conf       *oauth2.Config
	token      *oauth2.Token
	store      credentials.Store
}

func NewClient(creds credentials.Credentials, store credentials.Store) *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		conf:       OAuthConfig(creds.ClientID, creds.ClientSecret, ""),
		token: &oauth2.Token{
			AccessToken:  creds.AccessToken,
			RefreshToken: creds.RefreshToken,
		},
		store: store,
	}
}

func (c *Client) Name() string { return "fitbit" }

// Connect verifies the token with a profile probe. A rejected token gets
// exactly one refresh-and-retry; any second failure is returned to the
// caller, which treats it as fatal.
func (c *Client) Connect(ctx context.Context) error {
	refreshed := false

	err := retry.Do(ctx, retry.WithMaxRetries(1, retry.NewConstant(time.Second)), func(ctx context.Context) error {
		err := c.probe(ctx)

		var authErr *metrics.AuthError
		if errors.As(err, &authErr) && !refreshed {
			fmt.Printf("Fitbit token expired, refreshing: %v\n", err)
			refreshed = true
			if rerr := c.refreshToken(ctx); rerr != nil {
				return rerr
			}
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return err
	}

	fmt.Println("Fitbit connection successful.")
	return nil
}

func (c *Client) probe(ctx context.Context) error {
	var resp profileResponse
	return c.get(ctx, "/1/user/-/profile.json", &resp)
}

func (c *Client) refreshToken(ctx context.Context) error {
	src := c.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: c.token.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return fmt.Errorf("fitbit token refresh failed: %w", err)
	}

	c.token = tok
	if c.store != nil {
		if err := c.store.SaveToken(c.Name(), tok); err != nil {
			log.Printf("Failed to persist refreshed Fitbit token: %v", err)
		}
	}

	fmt.Println("Fitbit token refreshed successfully.")
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &metrics.TransportError{Vendor: c.Name(), Op: "GET " + path, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &metrics.TransportError{Vendor: c.Name(), Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &metrics.AuthError{Vendor: c.Name(), Err: fmt.Errorf("GET %s: %s", path, resp.Status)}
	case resp.StatusCode != http.StatusOK:
		return &metrics.TransportError{Vendor: c.Name(), Op: "GET " + path, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &metrics.TransportError{Vendor: c.Name(), Op: "decode " + path, Err: err}
	}
	return nil
}
