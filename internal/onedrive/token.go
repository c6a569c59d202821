package onedrive

import (
	"context"
	"errors"
	"sync"

	"github.com/bagdasarian/staff-portal/internal/config"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var graphScopes = []string{"https://graph.microsoft.com/.default"}

// ErrNoCredentials ни один способ получения токена не настроен.
var ErrNoCredentials = errors.New("onedrive: no credentials configured")

// TokenProvider отдает токен из кэша, пока он валиден. Иначе сначала пробует
// тихое обновление по refresh token, затем client credentials.
type TokenProvider struct {
	mu       sync.Mutex
	cached   *oauth2.Token
	silent   oauth2.TokenSource
	fallback oauth2.TokenSource
	log      zerolog.Logger
}

func NewTokenProvider(ctx context.Context, cfg config.GraphConfig, log zerolog.Logger) *TokenProvider {
	p := &TokenProvider{log: log}

	if cfg.RefreshToken != "" {
		oc := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: cfg.TokenURL, AuthStyle: oauth2.AuthStyleInParams},
			Scopes:       append([]string{"offline_access"}, graphScopes...),
		}
		p.silent = oc.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	}

	if cfg.ClientSecret != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       graphScopes,
			AuthStyle:    oauth2.AuthStyleInParams,
		}
		p.fallback = cc.TokenSource(ctx)
	}

	return p
}

// NewStaticTokenProvider провайдер с заранее выданными источниками, удобен в тестах.
func NewStaticTokenProvider(silent, fallback oauth2.TokenSource, log zerolog.Logger) *TokenProvider {
	return &TokenProvider{silent: silent, fallback: fallback, log: log}
}

func (p *TokenProvider) Token() (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached.Valid() {
		return p.cached, nil
	}

	var errs []error
	for _, src := range []struct {
		name string
		ts   oauth2.TokenSource
	}{
		{"refresh_token", p.silent},
		{"client_credentials", p.fallback},
	} {
		if src.ts == nil {
			continue
		}
		tok, err := src.ts.Token()
		if err != nil {
			p.log.Warn().Err(err).Str("grant", src.name).Msg("graph token acquisition failed")
			errs = append(errs, err)
			continue
		}
		p.cached = tok
		return tok, nil
	}

	if len(errs) == 0 {
		return nil, ErrNoCredentials
	}
	return nil, errors.Join(errs...)
}

// Invalidate сбрасывает кэш, например после 401 от Graph.
func (p *TokenProvider) Invalidate() {
	p.mu.Lock()
	p.cached = nil
	p.mu.Unlock()
}
