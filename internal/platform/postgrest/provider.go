package postgrest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gastrobase/recipe-api/internal/store"
)

// defaultTimeout bounds every data-plane and identity-plane round trip.
const defaultTimeout = 10 * time.Second

// Config holds the connection settings for the hosted backend.
type Config struct {
	// URL is the project base URL, without the /rest/v1 suffix.
	URL string
	// AnonKey is the public api key used for anonymous handles and the
	// identity plane.
	AnonKey string
	// ServiceKey is the privileged service-role key backing the admin
	// handle. Optional; without it Admin returns a nil handle.
	ServiceKey string
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Provider hands out request-scoped data-plane handles and owns the
// process-wide admin handle.
type Provider struct {
	baseURL string
	anonKey string
	http    *http.Client
	admin   *Client
	auth    *authService
	log     *slog.Logger
}

var _ store.Provider = (*Provider)(nil)

// NewProvider validates the configuration and opens the admin handle. The
// admin handle lives until Close.
func NewProvider(cfg Config, log *slog.Logger) (*Provider, error) {
	if log == nil {
		log = slog.Default()
	}
	if cfg.URL == "" {
		return nil, errors.New("backend URL is required")
	}
	if cfg.AnonKey == "" {
		return nil, errors.New("backend anon key is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	p := &Provider{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		anonKey: cfg.AnonKey,
		http:    httpClient,
		log:     log.With(slog.String("component", "postgrest_provider")),
	}
	p.auth = &authService{
		baseURL: p.baseURL,
		apiKey:  cfg.AnonKey,
		http:    httpClient,
		log:     p.log,
	}
	if cfg.ServiceKey != "" {
		p.admin = p.newClient(cfg.ServiceKey, cfg.ServiceKey)
		p.log.Info("admin backend handle opened")
	}
	return p, nil
}

// Anonymous acquires a handle with no attached identity beyond the api key.
func (p *Provider) Anonymous(_ context.Context) (store.Client, error) {
	return p.newClient(p.anonKey, p.anonKey), nil
}

// WithToken acquires a handle that attaches the given bearer token.
func (p *Provider) WithToken(_ context.Context, accessToken string) (store.Client, error) {
	if accessToken == "" {
		return nil, store.ErrNoClient
	}
	return p.newClient(p.anonKey, accessToken), nil
}

// Admin returns the process-wide service-role handle, or nil when no
// service key was configured.
func (p *Provider) Admin() store.Client {
	if p.admin == nil {
		return nil
	}
	return p.admin
}

// Auth returns the identity slice of the backend.
func (p *Provider) Auth() store.AuthService {
	return p.auth
}

// Close releases the admin handle.
func (p *Provider) Close(_ context.Context) error {
	if p.admin != nil {
		p.log.Info("closing admin backend handle")
		return p.admin.Close()
	}
	return nil
}

func (p *Provider) newClient(apiKey, bearer string) *Client {
	return &Client{
		baseURL: p.baseURL,
		apiKey:  apiKey,
		bearer:  bearer,
		http:    p.http,
		log:     p.log,
	}
}
