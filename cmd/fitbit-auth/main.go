// Command fitbit-auth runs the one-time OAuth2 authorization flow against
// Fitbit and prints the tokens to copy into the env file.
//
// Usage: fitbit-auth <client_id> <client_secret>
//
// The Redirect URI in the Fitbit application settings must be set to
// http://127.0.0.1:8080.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/digitaldrywood/healthpulse/internal/authflow"
	"github.com/digitaldrywood/healthpulse/internal/config"
	"github.com/digitaldrywood/healthpulse/internal/credentials"
	"github.com/digitaldrywood/healthpulse/internal/fitbit"
)

const redirectURI = "http://127.0.0.1:8080"

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: fitbit-auth <client_id> <client_secret>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	conf := fitbit.OAuthConfig(os.Args[1], os.Args[2], redirectURI)
	flow := authflow.New(conf, "127.0.0.1:8080")

	fmt.Println("\n--- Fitbit API Authorization ---")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tok, err := flow.Run(ctx)
	if err != nil {
		log.Fatalf("Authorization failed: %v", err)
	}

	store := credentials.NewFileStore(cfg.DataDir)
	if err := store.SaveToken("fitbit", tok); err != nil {
		log.Printf("Failed to save token file: %v", err)
	}

	fmt.Println("\n--- SUCCESS! ---")
	fmt.Println("Your Fitbit API tokens have been generated.")
	fmt.Println("Copy these into your env file:")
	fmt.Println()
	fmt.Printf("FITBIT_ACCESS_TOKEN=%q\n", tok.AccessToken)
	fmt.Printf("FITBIT_REFRESH_TOKEN=%q\n", tok.RefreshToken)
}
