package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/limpcred/limpcred-api/pkg/config"
)

func TestNewGoogleProvider_Disabled(t *testing.T) {
	assert.Nil(t, NewGoogleProvider(config.GoogleConfig{}))
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	g := NewGoogleProvider(config.GoogleConfig{ClientID: "cid", ClientSecret: "sec", RedirectURL: "http://localhost/cb"})
	require.NotNil(t, g)

	u, err := url.Parse(g.AuthCodeURL("st4te"))
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "cid", q.Get("client_id"))
	assert.Equal(t, "st4te", q.Get("state"))
	assert.Equal(t, "http://localhost/cb", q.Get("redirect_uri"))
	assert.Contains(t, q.Get("scope"), "email")
}

func TestGoogleProvider_Exchange(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.Form.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"sub":"123","email":"ana@limpcred.com.br","email_verified":true,"name":"Ana"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g := NewGoogleProvider(config.GoogleConfig{ClientID: "cid", ClientSecret: "sec"})
	g.cfg.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	g.userInfoURL = srv.URL + "/userinfo"

	p, err := g.Exchange(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "123", p.Subject)
	assert.Equal(t, "ana@limpcred.com.br", p.Email)
	assert.True(t, p.EmailVerified)

	_, err = g.Exchange(context.Background(), "")
	assert.Error(t, err)
}
