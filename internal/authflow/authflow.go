// Package authflow runs the browser OAuth2 authorization-code flow used by
// the per-vendor auth helpers: open the vendor consent page, catch the
// redirect on a local one-shot listener, and exchange the code for tokens.
package authflow

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/oauth2"
)

type Flow struct {
	Config *oauth2.Config

	// ListenAddr is where the callback listener binds. It must match the
	// host and port of Config.RedirectURL registered with the vendor.
	ListenAddr string

	// OpenBrowser launches the user's browser; overridable in tests.
	OpenBrowser func(url string) error

	// addr holds the bound listener address once Run starts, which can
	// differ from ListenAddr when the port is 0.
	addr string
}

func New(config *oauth2.Config, listenAddr string) *Flow {
	return &Flow{
		Config:      config,
		ListenAddr:  listenAddr,
		OpenBrowser: openBrowser,
	}
}

// Run blocks until the vendor redirects back with an authorization code,
// then exchanges it. The listener handles exactly one authorization
// request and is shut down before the exchange.
func (f *Flow) Run(ctx context.Context) (*oauth2.Token, error) {
	state, err := randomState()
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp", f.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("unable to listen on %s: %v", f.ListenAddr, err)
	}
	f.addr = ln.Addr().String()

	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			fmt.Fprintf(w, "Error: No authorization code received")
			errChan <- fmt.Errorf("callback contained no authorization code")
			return
		}
		if got := r.URL.Query().Get("state"); got != state {
			fmt.Fprintf(w, "Error: State mismatch")
			errChan <- fmt.Errorf("state mismatch in callback")
			return
		}

		fmt.Fprintf(w, `
			<html>
				<head><title>Authorization Successful</title></head>
				<body>
					<h1>Authorization Successful!</h1>
					<p>You can close this window and return to the terminal.</p>
				</body>
			</html>
		`)

		codeChan <- code
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(ln); err != http.ErrServerClosed {
			log.Printf("Callback server error: %v", err)
		}
	}()

	authURL := f.Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Printf("Opening browser for authorization...\n")
	fmt.Printf("If the browser doesn't open automatically, visit:\n%v\n", authURL)

	if err := f.OpenBrowser(authURL); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}

	fmt.Printf("Waiting for authorization on %s...\n", f.Config.RedirectURL)

	var authCode string
	select {
	case authCode = <-codeChan:
	case err = <-errChan:
	case <-ctx.Done():
		err = ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(shutdownCtx)

	if err != nil {
		return nil, err
	}

	fmt.Println("Authorization callback received.")

	tok, err := f.Config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to exchange authorization code: %v", err)
	}

	return tok, nil
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("unable to generate state: %v", err)
	}
	return hex.EncodeToString(b), nil
}

// openBrowser tries to open the URL in a browser
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	default:
		return fmt.Errorf("unsupported platform")
	}
}
