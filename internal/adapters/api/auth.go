package api

import (
	"context"
	"net/http"

	"fisiomaster-admin/internal/platform/httpclient"
	"fisiomaster-admin/internal/session"
)

const usersPath = "users/"

// AuthClient habla con los endpoints de usuarios del backend.
// No persiste nada: eso es del session.Manager.
type AuthClient struct {
	http *httpclient.Client
}

func NewAuthClient(h *httpclient.Client) *AuthClient {
	return &AuthClient{http: h}
}

type credentialsRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (c *AuthClient) Register(ctx context.Context, name, email, password string) (session.Session, error) {
	var out authResponse
	in := credentialsRequest{Name: name, Email: email, Password: password}
	if err := c.http.DoJSON(ctx, http.MethodPost, usersPath, nil, in, &out); err != nil {
		return session.Session{}, mapAuthError(err)
	}
	return session.Session{Name: out.Name, Email: out.Email, Token: out.Token}, nil
}

func (c *AuthClient) Login(ctx context.Context, email, password string) (session.Session, error) {
	var out authResponse
	in := credentialsRequest{Email: email, Password: password}
	if err := c.http.DoJSON(ctx, http.MethodPost, usersPath+"login", nil, in, &out); err != nil {
		return session.Session{}, mapAuthError(err)
	}
	return session.Session{Name: out.Name, Email: out.Email, Token: out.Token}, nil
}
