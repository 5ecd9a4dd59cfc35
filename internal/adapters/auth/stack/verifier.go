package stack

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wickenico/plantos/internal/ports/auth"
)

var (
	ErrTokenEmpty = errors.New("token is empty")
)

// Verifier implementa auth.AuthVerifier contra el proveedor de sesión.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.CurrentUser(ctx, token)
	if err != nil {
		// El middleware ya decide si corta o sigue sin claims.
		return auth.Claims{}, fmt.Errorf("stack verify failed: %w", err)
	}

	claims.UserID = strings.TrimSpace(claims.UserID)
	if claims.UserID == "" {
		return auth.Claims{}, errors.New("stack claims missing user id")
	}

	return claims, nil
}
