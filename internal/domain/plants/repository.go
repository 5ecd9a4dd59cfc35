package plants

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven los adapters cuando el id no existe.
// Se define acá para que el service no dependa de ningún adapter concreto.
var ErrNotFound = errors.New("plant not found")

type Repository interface {
	Create(ctx context.Context, p Plant) error
	// Update reemplaza el registro completo. ErrNotFound si el id no existe.
	Update(ctx context.Context, p Plant) error
	// GetByID no filtra por owner: el id opaco es el control de acceso
	// (decisión deliberada, ver detalle en el service).
	GetByID(ctx context.Context, id string) (Plant, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Plant, error)
	// Delete borra duro, sin tombstone. ErrNotFound si el id no existe.
	Delete(ctx context.Context, id string) error
}
