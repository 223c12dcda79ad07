package api

import (
	"context"
	"net/http"

	"github.com/octabyte/becas-client/enums"
	"github.com/octabyte/becas-client/models"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `json:"-" validate:"omitempty,eqfield=NewPassword"`
}

// Login authenticates with email and password. A 2xx response is only
// accepted when it carries both a user and an access token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*models.LoginResponse, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	body, err := c.send(ctx, request{
		resource:  enums.AuthResource,
		operation: "login",
		method:    http.MethodPost,
		path:      "/auth/login",
		body:      req,
		fallback:  "Error al iniciar sesión",
	})
	if err != nil {
		return nil, err
	}

	resp, err := decode[models.LoginResponse]("login", body)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &Error{Operation: "login", StatusCode: http.StatusOK, Message: orDefault(resp.Message, "Error al iniciar sesión")}
	}
	if resp.Data.User == nil || resp.Data.Tokens == nil || resp.Data.Tokens.AccessToken == "" {
		return nil, ErrInvalidAuthResponse
	}
	return resp, nil
}

// ForgotPassword asks the server to email a reset link.
func (c *Client) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*models.Envelope, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	body, err := c.send(ctx, request{
		resource:  enums.AuthResource,
		operation: "forgot-password",
		method:    http.MethodPost,
		path:      "/auth/forgot-password",
		body:      req,
		fallback:  "Error al solicitar la recuperación de contraseña",
	})
	if err != nil {
		return nil, err
	}
	return decode[models.Envelope]("forgot-password", body)
}

func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*models.Envelope, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	body, err := c.send(ctx, request{
		resource:  enums.AuthResource,
		operation: "reset-password",
		method:    http.MethodPost,
		path:      "/auth/reset-password",
		body:      req,
		fallback:  "Error al restablecer la contraseña",
	})
	if err != nil {
		return nil, err
	}
	return decode[models.Envelope]("reset-password", body)
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Logout invalidates the session server-side. The response body is ignored.
func (c *Client) Logout(ctx context.Context, accessToken, refreshToken string) error {
	_, err := c.send(ctx, request{
		resource:  enums.AuthResource,
		operation: "logout",
		method:    http.MethodPost,
		path:      "/auth/logout",
		token:     accessToken,
		body:      logoutRequest{RefreshToken: refreshToken},
		fallback:  "Error al cerrar sesión",
	})
	return err
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
