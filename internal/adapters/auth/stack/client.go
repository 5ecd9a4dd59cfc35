package stack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wickenico/plantos/internal/platform/httpclient"
	"github.com/wickenico/plantos/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("stack client not configured")
	ErrUnauthorized  = errors.New("stack unauthorized")
	ErrUpstream      = errors.New("stack upstream error")
)

// Config del cliente contra el proveedor de sesión hosteado.
// BaseURL y ProjectID vienen de env vars en quien lo instancia.
type Config struct {
	BaseURL   string
	ProjectID string
	Timeout   time.Duration
}

type Client struct {
	http      *httpclient.Client
	projectID string
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:      hc,
		projectID: strings.TrimSpace(cfg.ProjectID),
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && strings.TrimSpace(c.http.BaseURL) != ""
}

// CurrentUser consulta al proveedor por la sesión detrás del token.
// Contrato mínimo: un id no vacío. No se asume nada más del shape.
func (c *Client) CurrentUser(ctx context.Context, sessionToken string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	sessionToken = strings.TrimSpace(sessionToken)
	if sessionToken == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	headers := map[string]string{
		"Authorization": "Bearer " + sessionToken,
	}
	if c.projectID != "" {
		headers["X-Stack-Project-Id"] = c.projectID
	}

	var out struct {
		ID           string `json:"id"`
		PrimaryEmail string `json:"primary_email"`
	}

	err := c.http.DoJSON(ctx, http.MethodGet, "/api/v1/users/me", headers, nil, &out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) {
			if he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden {
				return auth.Claims{}, ErrUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrUpstream, he.StatusCode)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out.ID = strings.TrimSpace(out.ID)
	if out.ID == "" {
		return auth.Claims{}, errors.New("stack response missing user id")
	}

	return auth.Claims{
		UserID: out.ID,
		Email:  strings.TrimSpace(out.PrimaryEmail),
	}, nil
}
