package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// NewOAuthClient builds an authenticated HTTP client for the Calendar
// API using an installed-app OAuth flow with token caching: the token is
// read from tokenPath when present and otherwise obtained interactively
// and saved there for subsequent runs.
//
// A missing or unreadable credentials file is a configuration error and
// must abort the run.
func NewOAuthClient(ctx context.Context, credentialsPath, tokenPath string) (*http.Client, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("oauth: read client credentials %q: %w", credentialsPath, err)
	}

	conf, err := google.ConfigFromJSON(b, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("oauth: parse client credentials: %w", err)
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		tok, err = tokenFromWeb(ctx, conf)
		if err != nil {
			return nil, fmt.Errorf("oauth: interactive flow: %w", err)
		}
		if err := saveToken(tokenPath, tok); err != nil {
			log.Printf("token save failed path=%q err=%v", tokenPath, err)
		} else {
			log.Printf("token saved path=%q", tokenPath)
		}
	}

	// conf.Client refreshes expired tokens transparently using the
	// refresh token.
	return conf.Client(ctx, tok), nil
}

// NewService wraps an authenticated client in a Calendar API service.
func NewService(ctx context.Context, client *http.Client) (*gcal.Service, error) {
	svc, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("oauth: create calendar service: %w", err)
	}
	return svc, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token %q: %w", path, err)
	}
	return tok, nil
}

// tokenFromWeb runs the manual copy-paste consent flow: print the
// consent URL, read the authorization code from stdin, exchange it.
func tokenFromWeb(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	authURL := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following link in your browser, then paste the authorization code:\n%v\n> ", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("read authorization code: %w", err)
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(tok)
}
