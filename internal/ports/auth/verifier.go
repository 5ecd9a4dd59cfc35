package auth

import "context"

// AuthVerifier verifica un token de sesión y devuelve claims o error.
// Único contrato contra el proveedor de identidad externo.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
