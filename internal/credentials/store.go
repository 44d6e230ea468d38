// Package credentials is the single place the process reads vendor OAuth
// credentials from and writes refreshed tokens back to. Client id and
// secret come from the environment; access and refresh tokens come from a
// per-vendor token file once one exists, falling back to the environment
// for the first run after the auth helper.
package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
)

type Credentials struct {
	Vendor       string
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string
}

// Store is injected into the vendor client factories so nothing mutates
// process-wide state to persist a refreshed token.
type Store interface {
	Load(vendor string) (Credentials, error)
	SaveToken(vendor string, tok *oauth2.Token) error
}

// FileStore reads static credentials from the environment and persists
// tokens as JSON files under dir, the same shape the auth helpers write.
type FileStore struct {
	dir string

	// getenv is swapped in tests
	getenv func(string) string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, getenv: os.Getenv}
}

func (s *FileStore) Load(vendor string) (Credentials, error) {
	prefix := strings.ToUpper(vendor) + "_"

	creds := Credentials{
		Vendor:       vendor,
		ClientID:     s.getenv(prefix + "CLIENT_ID"),
		ClientSecret: s.getenv(prefix + "CLIENT_SECRET"),
	}

	if creds.ClientID == "" || creds.ClientSecret == "" {
		return Credentials{}, fmt.Errorf("%sCLIENT_ID and %sCLIENT_SECRET environment variables are required", prefix, prefix)
	}

	// A saved token file takes precedence over the env pair; refreshed
	// tokens land there and the env copy goes stale.
	if tok, err := s.tokenFromFile(vendor); err == nil {
		creds.AccessToken = tok.AccessToken
		creds.RefreshToken = tok.RefreshToken
		return creds, nil
	}

	creds.AccessToken = s.getenv(prefix + "ACCESS_TOKEN")
	creds.RefreshToken = s.getenv(prefix + "REFRESH_TOKEN")

	if creds.AccessToken == "" || creds.RefreshToken == "" {
		return Credentials{}, fmt.Errorf("%sACCESS_TOKEN and %sREFRESH_TOKEN not found; run '%s-auth <client_id> <client_secret>' first", prefix, prefix, vendor)
	}

	return creds, nil
}

func (s *FileStore) SaveToken(vendor string, tok *oauth2.Token) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create credentials directory: %v", err)
	}

	f, err := os.OpenFile(s.tokenPath(vendor), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to save %s token: %v", vendor, err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(tok)
}

func (s *FileStore) tokenFromFile(vendor string) (*oauth2.Token, error) {
	f, err := os.Open(s.tokenPath(vendor))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("token file for %s is empty", vendor)
	}
	return tok, nil
}

func (s *FileStore) tokenPath(vendor string) string {
	return filepath.Join(s.dir, vendor+"_token.json")
}
