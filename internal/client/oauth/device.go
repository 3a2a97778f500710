// Package oauth obtains Google ID tokens for the google-login exchange.
package oauth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ErrNoIDToken means the provider answered without an id_token.
var ErrNoIDToken = errors.New("token response carries no id_token")

// CredentialSource yields a credential for AuthFlow.LoginWithOAuthCredential.
type CredentialSource interface {
	Credential(ctx context.Context) (string, error)
}

// SourceFunc adapts a function to CredentialSource.
type SourceFunc func(ctx context.Context) (string, error)

func (f SourceFunc) Credential(ctx context.Context) (string, error) { return f(ctx) }

// Prompt shows the user where to approve the device and which code to enter.
type Prompt func(verificationURI, userCode string)

// DeviceFlowSource runs the OAuth 2.0 device authorization grant (RFC 8628)
// and returns the ID token from the final token response.
type DeviceFlowSource struct {
	config oauth2.Config
	prompt Prompt
}

// NewGoogleDeviceFlow targets Google's endpoints with the openid scopes.
func NewGoogleDeviceFlow(clientID, clientSecret string, prompt Prompt) *DeviceFlowSource {
	return NewDeviceFlowSource(oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}, prompt)
}

func NewDeviceFlowSource(config oauth2.Config, prompt Prompt) *DeviceFlowSource {
	return &DeviceFlowSource{config: config, prompt: prompt}
}

// Credential blocks until the user approves, the grant expires or ctx is done.
func (s *DeviceFlowSource) Credential(ctx context.Context) (string, error) {
	da, err := s.config.DeviceAuth(ctx)
	if err != nil {
		return "", fmt.Errorf("device authorization: %w", err)
	}

	uri := da.VerificationURIComplete
	if uri == "" {
		uri = da.VerificationURI
	}
	if s.prompt != nil {
		s.prompt(uri, da.UserCode)
	}

	tok, err := s.config.DeviceAccessToken(ctx, da)
	if err != nil {
		return "", fmt.Errorf("device token: %w", err)
	}

	idToken, _ := tok.Extra("id_token").(string)
	if idToken == "" {
		return "", ErrNoIDToken
	}
	return idToken, nil
}
