package controller

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// Auth drives the login, registration and password-recovery flows and
// owns the only write paths into the session store.
type Auth struct {
	base
}

// NewAuth constructs an Auth controller.
func NewAuth(deps Deps) *Auth {
	return &Auth{base{deps: deps}}
}

// loginResponse is the payload returned by the login endpoint.
type loginResponse struct {
	Token   string `json:"token"`
	IsAdmin bool   `json:"isAdmin"`
}

// messageResponse is the generic {"message": ...} payload.
type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a token and stores it together with
// the admin flag from the response. The flag issued here is the single
// source of truth for role gating; it is never re-derived from token
// claims.
func (a *Auth) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	err := a.deps.Gateway.Do(ctx, http.MethodPost, "/auth/login",
		map[string]string{"email": email, "password": password}, "", &resp)
	if err != nil {
		return err
	}
	if err := a.deps.Session.SetCredential(resp.Token, resp.IsAdmin); err != nil {
		return err
	}
	a.deps.Log.Info("logged in", zap.Bool("admin", resp.IsAdmin))
	return nil
}

// Register creates an account. The server sends a verification email;
// the account stays unusable until Verify succeeds.
func (a *Auth) Register(ctx context.Context, name, email, password string) (string, error) {
	var resp messageResponse
	err := a.deps.Gateway.Do(ctx, http.MethodPost, "/auth/register",
		map[string]string{"name": name, "email": email, "password": password}, "", &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Verify redeems an email verification token.
func (a *Auth) Verify(ctx context.Context, token string) (string, error) {
	var resp messageResponse
	err := a.deps.Gateway.Do(ctx, http.MethodGet,
		"/auth/verify?token="+url.QueryEscape(token), nil, "", &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ForgotPassword requests a password-reset email.
func (a *Auth) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	err := a.deps.Gateway.Do(ctx, http.MethodPost, "/auth/forgot-password",
		map[string]string{"email": email}, "", &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ResetPassword redeems a reset token for a new password.
func (a *Auth) ResetPassword(ctx context.Context, token, password string) (string, error) {
	var resp messageResponse
	err := a.deps.Gateway.Do(ctx, http.MethodPost, "/auth/reset-password",
		map[string]string{"token": token, "password": password}, "", &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Logout clears the credential and runs the session-end hook so the
// notification poller stops before its next authorized fetch.
func (a *Auth) Logout() error {
	if err := a.deps.Session.Clear(); err != nil {
		return err
	}
	if a.deps.OnSessionEnd != nil {
		a.deps.OnSessionEnd()
	}
	a.deps.Log.Info("logged out")
	return nil
}
