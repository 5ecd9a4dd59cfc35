package plants

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wickenico/plantos/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/plants", func(pr chi.Router) {
		pr.Post("/", createPlantHandler(svc))
		pr.Get("/", listPlantsHandler(svc))

		// Detalle por slug ("<id>--<nombre>") o por id pelado.
		// Sin auth a propósito: ver getPlantHandler.
		pr.Get("/{slug}", getPlantHandler(svc))

		pr.Put("/{plantID}", updatePlantHandler(svc))
		pr.Delete("/{plantID}", deletePlantHandler(svc))
	})

	r.Get("/plant-categories", listCategoriesHandler())
}

// plantFormRequest es el body de create y update: el formulario crudo.
// Los numéricos y fechas viajan como string porque así los emiten los
// controles; la normalización es responsabilidad del server.
type plantFormRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`

	Nickname string `json:"nickname"`
	Species  string `json:"species"`
	PotSize  string `json:"pot_size"`
	Location string `json:"location"`

	Sunlight       string `json:"sunlight"`
	HumidityNeeds  string `json:"humidity_needs"`
	SoilType       string `json:"soil_type"`
	FertilizerType string `json:"fertilizer_type"`
	Origin         string `json:"origin"`

	Height       string `json:"height"`
	WaterCycle   string `json:"water_cycle"`
	LastWatered  string `json:"last_watered"`  // YYYY-MM-DD
	LastRepotted string `json:"last_repotted"` // YYYY-MM-DD

	ReferenceLinks string `json:"reference_links"` // separado por comas

	Notes       string `json:"notes"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`

	IsFavorite bool `json:"is_favorite"`
	IsDead     bool `json:"is_dead"`
}

type plantResponse struct {
	ID          string `json:"id"`
	OwnerUserID string `json:"owner_user_id"`
	Slug        string `json:"slug"`

	Name     string `json:"name"`
	Category string `json:"category"`

	Nickname string `json:"nickname,omitempty"`
	Species  string `json:"species,omitempty"`
	PotSize  string `json:"pot_size,omitempty"`
	Location string `json:"location"`

	Sunlight       string `json:"sunlight,omitempty"`
	HumidityNeeds  string `json:"humidity_needs,omitempty"`
	SoilType       string `json:"soil_type,omitempty"`
	FertilizerType string `json:"fertilizer_type,omitempty"`
	Origin         string `json:"origin,omitempty"`

	Height     *float64 `json:"height"`
	WaterCycle *int     `json:"water_cycle"`

	LastWatered  *time.Time `json:"last_watered"`
	LastRepotted *time.Time `json:"last_repotted"`

	ReferenceLinks []string `json:"reference_links"`

	Notes       string `json:"notes,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`

	IsFavorite bool `json:"is_favorite"`
	IsDead     bool `json:"is_dead"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// listPlantsResponse es el sobre del listado: success=false significa que
// storage no estuvo disponible y la UI debe renderizar su fallback en vez
// de romper la navegación.
type listPlantsResponse struct {
	Success    bool            `json:"success"`
	UserPlants []plantResponse `json:"user_plants"`
}

type validationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

// createPlantHandler godoc
// @Summary Crear planta
// @Description Da de alta una planta en el inventario del usuario autenticado. El owner se estampa del lado del server; el body nunca lo trae. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags plants
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body plantFormRequest true "Formulario crudo; numéricos y fechas como string"
// @Success 201 {object} plantResponse
// @Failure 400 {object} validationErrorResponse
// @Failure 401 {string} string "unauthorized"
// @Router /plants [post]
func createPlantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req plantFormRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		fields, err := Normalize(toRawForm(req))
		if err != nil {
			writeValidationError(w, err)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, fields)
		if err != nil {
			if errors.Is(err, ErrUnauthenticated) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toPlantResponse(p))
	}
}

// listPlantsHandler godoc
// @Summary Listar plantas del usuario
// @Description Lista el inventario propio, opcionalmente filtrado por término de búsqueda (substring, case-insensitive, contra name/nickname/pot_size/location/height) y por categoría (igualdad exacta). Si storage falla, responde 200 con success=false.
// @Tags plants
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param q query string false "Término de búsqueda"
// @Param category query string false "Categoría exacta"
// @Success 200 {object} listPlantsResponse
// @Failure 401 {string} string "unauthorized"
// @Router /plants [get]
func listPlantsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query().Get("q")
		category := r.URL.Query().Get("category")

		items, err := svc.List(r.Context(), claims.UserID, q, category)
		if err != nil {
			// Degradación deliberada: el listado roto no tira abajo la
			// página, la UI muestra su estado vacío/error.
			writeJSON(w, http.StatusOK, listPlantsResponse{
				Success:    false,
				UserPlants: []plantResponse{},
			})
			return
		}

		out := make([]plantResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPlantResponse(p))
		}

		writeJSON(w, http.StatusOK, listPlantsResponse{
			Success:    true,
			UserPlants: out,
		})
	}
}

// getPlantHandler godoc
// @Summary Detalle de una planta
// @Description Resuelve por slug ("<id>--<nombre-kebab>") o por id directo. No exige autenticación: el uuid opaco es el control de acceso y un registro suelto no expone el resto del inventario del dueño.
// @Tags plants
// @Produce json
// @Param slug path string true "Slug o id de la planta"
// @Success 200 {object} plantResponse
// @Failure 404 {string} string "plant not found"
// @Router /plants/{slug} [get]
func getPlantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := FromSlug(chi.URLParam(r, "slug"))

		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "plant not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPlantResponse(p))
	}
}

// updatePlantHandler godoc
// @Summary Editar planta
// @Description Reemplazo completo de los campos editables (no es PATCH). El owner se re-estampa con el caller actual en cada edición.
// @Tags plants
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param plantID path string true "ID de la planta"
// @Param payload body plantFormRequest true "Formulario crudo completo"
// @Success 200 {object} plantResponse
// @Failure 400 {object} validationErrorResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "plant not found"
// @Router /plants/{plantID} [put]
func updatePlantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req plantFormRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		fields, err := Normalize(toRawForm(req))
		if err != nil {
			writeValidationError(w, err)
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "plantID"), claims.UserID, fields)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "plant not found", http.StatusNotFound)
			case errors.Is(err, ErrUnauthenticated):
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPlantResponse(updated))
	}
}

// deletePlantHandler godoc
// @Summary Borrar planta
// @Description Borrado duro, sin papelera. Devuelve el estado previo del registro. Un segundo delete sobre el mismo id responde 404.
// @Tags plants
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param plantID path string true "ID de la planta"
// @Success 200 {object} plantResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "plant not found"
// @Router /plants/{plantID} [delete]
func deletePlantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		prior, err := svc.Delete(r.Context(), chi.URLParam(r, "plantID"), claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "plant not found", http.StatusNotFound)
			case errors.Is(err, ErrUnauthenticated):
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPlantResponse(prior))
	}
}

// listCategoriesHandler godoc
// @Summary Categorías sugeridas
// @Description Lista las categorías que el combo del formulario ofrece. Son sugerencias, no un enum: el data layer acepta cualquier string.
// @Tags plants
// @Produce json
// @Success 200 {array} string
// @Router /plant-categories [get]
func listCategoriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		cats := SuggestedCategories()
		out := make([]string, 0, len(cats))
		for _, c := range cats {
			out = append(out, string(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toRawForm(req plantFormRequest) RawPlantForm {
	return RawPlantForm{
		Name:           req.Name,
		Category:       req.Category,
		Nickname:       req.Nickname,
		Species:        req.Species,
		PotSize:        req.PotSize,
		Location:       req.Location,
		Sunlight:       req.Sunlight,
		HumidityNeeds:  req.HumidityNeeds,
		SoilType:       req.SoilType,
		FertilizerType: req.FertilizerType,
		Origin:         req.Origin,
		Height:         req.Height,
		WaterCycle:     req.WaterCycle,
		LastWatered:    req.LastWatered,
		LastRepotted:   req.LastRepotted,
		ReferenceLinks: req.ReferenceLinks,
		Notes:          req.Notes,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		IsFavorite:     req.IsFavorite,
		IsDead:         req.IsDead,
	}
}

func toPlantResponse(p Plant) plantResponse {
	links := p.ReferenceLinks
	if links == nil {
		links = []string{}
	}
	return plantResponse{
		ID:             p.ID,
		OwnerUserID:    p.OwnerUserID,
		Slug:           ToSlug(p.ID, p.Name),
		Name:           p.Name,
		Category:       p.Category,
		Nickname:       p.Nickname,
		Species:        p.Species,
		PotSize:        p.PotSize,
		Location:       p.Location,
		Sunlight:       p.Sunlight,
		HumidityNeeds:  p.HumidityNeeds,
		SoilType:       p.SoilType,
		FertilizerType: p.FertilizerType,
		Origin:         p.Origin,
		Height:         p.Height,
		WaterCycle:     p.WaterCycle,
		LastWatered:    p.LastWatered,
		LastRepotted:   p.LastRepotted,
		ReferenceLinks: links,
		Notes:          p.Notes,
		Description:    p.Description,
		ImageURL:       p.ImageURL,
		IsFavorite:     p.IsFavorite,
		IsDead:         p.IsDead,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func writeValidationError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, validationErrorResponse{
			Error:  "validation failed",
			Fields: ve.Fields,
		})
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// writeJSON vive acá y no en un helper compartido: un solo módulo de
// dominio no justifica todavía un paquete común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
