// Package oauth login com Google (authorization code + userinfo).
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/pkg/config"
)

const defaultUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

var _ ports.GoogleAuthenticator = (*GoogleProvider)(nil)

// GoogleProvider implementa ports.GoogleAuthenticator.
type GoogleProvider struct {
	cfg         *oauth2.Config
	userInfoURL string
}

// NewGoogleProvider devolve nil se o Google não estiver configurado.
func NewGoogleProvider(cfg config.GoogleConfig) *GoogleProvider {
	if !cfg.Enabled() {
		return nil
	}
	return &GoogleProvider{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: defaultUserInfoURL,
	}
}

// AuthCodeURL URL de consentimento do Google.
func (g *GoogleProvider) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type userInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// Exchange troca o código pelo token e busca o perfil.
func (g *GoogleProvider) Exchange(ctx context.Context, code string) (*ports.GoogleProfile, error) {
	if code == "" {
		return nil, errors.New("google: código vazio")
	}
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google: troca do código: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("google: userinfo request: %w", err)
	}
	resp, err := g.cfg.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, fmt.Errorf("google: userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google: userinfo HTTP %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&info); err != nil {
		return nil, fmt.Errorf("google: userinfo inválido: %w", err)
	}
	return &ports.GoogleProfile{
		Subject:       info.Sub,
		Email:         info.Email,
		EmailVerified: info.EmailVerified,
		Name:          info.Name,
	}, nil
}
