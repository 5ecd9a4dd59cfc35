package plants

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wickenico/plantos/internal/platform/logger"
)

var (
	// ErrUnauthenticated: escritura owner-scoped sin identidad resuelta.
	// La operación no toca storage.
	ErrUnauthenticated = errors.New("not authenticated")
)

type Service struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time

	// onMutate es el hook de refresco post-mutación (el "revalidate" del
	// listado). Advisory, best-effort: nunca transaccional con el write.
	onMutate func(op, ownerUserID string)
}

// Operaciones que reporta el hook de refresco.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// SetRefreshHook registra el callback que se dispara tras cada mutación
// exitosa, con la operación que la originó. Puede ser nil (default): no
// pasa nada.
func (s *Service) SetRefreshHook(fn func(op, ownerUserID string)) {
	s.onMutate = fn
}

// Create estampa owner e id frescos y persiste. El owner viene ya resuelto
// por el Identity Resolver (middleware); acá solo se exige que exista.
func (s *Service) Create(ctx context.Context, ownerUserID string, f NormalizedFields) (Plant, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Plant{}, ErrUnauthenticated
	}

	now := s.now()
	p := Plant{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyFields(&p, f)

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("plant create failed", map[string]any{"owner": ownerUserID, "err": err.Error()})
		return Plant{}, err
	}

	s.refresh(OpCreate, ownerUserID)
	return p, nil
}

// GetByID NO filtra por owner. El id es un uuid opaco y exponer un registro
// suelto por su id no abre el resto del inventario del dueño; la página de
// detalle decide aparte si muestra contenido o invita a loguearse.
func (s *Service) GetByID(ctx context.Context, id string) (Plant, error) {
	return s.repo.GetByID(ctx, id)
}

// List devuelve las plantas del owner ya filtradas por término y categoría.
// Si storage falla, loguea y devuelve el error; el handler degrada a un
// resultado "unavailable" en vez de romper la navegación.
func (s *Service) List(ctx context.Context, ownerUserID, searchTerm, category string) ([]Plant, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrUnauthenticated
	}

	items, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		s.log.Error("plant list failed", map[string]any{"owner": ownerUserID, "err": err.Error()})
		return nil, err
	}

	return Filter(items, searchTerm, category), nil
}

// Update reemplaza todos los campos editables y RE-ESTAMPA el owner con el
// caller actual, incondicionalmente. Editar un registro lo reasigna a quien
// edita. Comportamiento observado y documentado en tests; no lo "arregles"
// en silencio.
func (s *Service) Update(ctx context.Context, id, callerOwnerID string, f NormalizedFields) (Plant, error) {
	callerOwnerID = strings.TrimSpace(callerOwnerID)
	if callerOwnerID == "" {
		return Plant{}, ErrUnauthenticated
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Plant{}, err
	}

	p := current
	p.OwnerUserID = callerOwnerID
	p.UpdatedAt = s.now()
	applyFields(&p, f)

	if err := s.repo.Update(ctx, p); err != nil {
		s.log.Error("plant update failed", map[string]any{"plant_id": id, "err": err.Error()})
		return Plant{}, err
	}

	s.refresh(OpUpdate, callerOwnerID)
	return p, nil
}

// Delete borra duro y devuelve el estado previo del registro.
// Segundo delete sobre el mismo id => ErrNotFound, no silencio.
func (s *Service) Delete(ctx context.Context, id, callerOwnerID string) (Plant, error) {
	callerOwnerID = strings.TrimSpace(callerOwnerID)
	if callerOwnerID == "" {
		return Plant{}, ErrUnauthenticated
	}

	prior, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Plant{}, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("plant delete failed", map[string]any{"plant_id": id, "err": err.Error()})
		return Plant{}, err
	}

	s.refresh(OpDelete, callerOwnerID)
	return prior, nil
}

func (s *Service) refresh(op, ownerUserID string) {
	if s.onMutate != nil {
		s.onMutate(op, ownerUserID)
	}
}

// applyFields vuelca los campos normalizados sobre el registro.
// Reemplazo total de lo editable: no hay semántica de patch parcial.
func applyFields(p *Plant, f NormalizedFields) {
	p.Name = f.Name
	p.Category = f.Category
	p.Nickname = f.Nickname
	p.Species = f.Species
	p.PotSize = f.PotSize
	p.Location = f.Location
	p.Sunlight = f.Sunlight
	p.HumidityNeeds = f.HumidityNeeds
	p.SoilType = f.SoilType
	p.FertilizerType = f.FertilizerType
	p.Origin = f.Origin
	p.Height = f.Height
	p.WaterCycle = f.WaterCycle
	p.LastWatered = f.LastWatered
	p.LastRepotted = f.LastRepotted
	p.ReferenceLinks = f.ReferenceLinks
	p.Notes = f.Notes
	p.Description = f.Description
	p.ImageURL = f.ImageURL
	p.IsFavorite = f.IsFavorite
	p.IsDead = f.IsDead
}
