package config

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleOAuth builds the oauth2 config for the Google login flow. It
// returns nil when the client id or secret is not configured so the auth
// handler can report the feature as unavailable.
func (c Config) GoogleOAuth() *oauth2.Config {
	if c.GoogleClientID == "" || c.GoogleClientSecret == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     c.GoogleClientID,
		ClientSecret: c.GoogleClientSecret,
		RedirectURL:  c.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}
