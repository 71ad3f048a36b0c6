// Package openid is responsible for the federated sign-in exchange with the
// OpenID Connect identity provider.
package openid

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

var errNoIDToken = errors.New("token response missing id_token")

// New creates a Client for the identity provider at the passed issuer URL.
func New(
	ctx context.Context,
	issuer string,
	clientID string,
	clientSecret string,
	redirectURL string,
) (*Client, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider: %w", err)
	}

	return &Client{
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  redirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// Client wraps the provider-specific portions of the authorization-code
// flow.
type Client struct {
	config   oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// AuthCodeURL builds the provider URL the client is redirected to. The state
// must be a cryptographically-secure pseudo-random value; see the rand
// package.
func (c Client) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state)
}

// Exchange trades the authorization code for a verified identity.
func (c Client) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	raw, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errNoIDToken
	}

	idToken, err := c.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	identity := new(Identity)
	if err := idToken.Claims(identity); err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}

	return identity, nil
}

// Identity is the subset of OpenID Connect claims Roamvista uses.
type Identity struct {
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	AvatarURL   string `json:"picture"`
}
