package plants

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RawPlantForm es el payload tal cual llega de los controles del formulario:
// todo string, sin tipar. Nunca entra directo al repositorio; siempre pasa
// por Normalize.
type RawPlantForm struct {
	Name     string
	Category string

	Nickname string
	Species  string
	PotSize  string
	Location string

	Sunlight       string
	HumidityNeeds  string
	SoilType       string
	FertilizerType string
	Origin         string

	Height       string
	WaterCycle   string
	LastWatered  string
	LastRepotted string

	// ReferenceLinks viene como texto separado por comas.
	ReferenceLinks string

	Notes       string
	Description string
	ImageURL    string

	IsFavorite bool
	IsDead     bool
}

// NormalizedFields son los campos editables ya canónicos, listos para
// estampar owner/id/fechas y persistir.
type NormalizedFields struct {
	Name     string
	Category string

	Nickname string
	Species  string
	PotSize  string
	Location string

	Sunlight       string
	HumidityNeeds  string
	SoilType       string
	FertilizerType string
	Origin         string

	Height     *float64
	WaterCycle *int

	LastWatered  *time.Time
	LastRepotted *time.Time

	ReferenceLinks []string

	Notes       string
	Description string
	ImageURL    string

	IsFavorite bool
	IsDead     bool
}

// ValidationError nombra TODOS los campos ofensivos, no solo el primero,
// para que la UI pueda marcar el formulario completo de una vez.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// dateLayout: los inputs type=date mandan YYYY-MM-DD.
const dateLayout = "2006-01-02"

// Normalize convierte el formulario crudo en campos canónicos.
// Función pura: no toca storage ni sesión. Reglas:
//   - strings se recortan; vacío tras recorte = ausente (""),
//     salvo los requeridos: name, category, location, water_cycle.
//   - height: vacío = nil; no numérico o negativo = error de validación.
//   - water_cycle: requerido, entero positivo.
//   - fechas: vacío = nil; no vacío = medianoche UTC del día indicado.
//   - reference_links: split por coma, recorte, se descartan vacíos,
//     se conserva orden y duplicados.
func Normalize(raw RawPlantForm) (NormalizedFields, error) {
	var bad []string

	out := NormalizedFields{
		Name:           strings.TrimSpace(raw.Name),
		Category:       strings.TrimSpace(raw.Category),
		Nickname:       strings.TrimSpace(raw.Nickname),
		Species:        strings.TrimSpace(raw.Species),
		PotSize:        strings.TrimSpace(raw.PotSize),
		Location:       strings.TrimSpace(raw.Location),
		Sunlight:       strings.TrimSpace(raw.Sunlight),
		HumidityNeeds:  strings.TrimSpace(raw.HumidityNeeds),
		SoilType:       strings.TrimSpace(raw.SoilType),
		FertilizerType: strings.TrimSpace(raw.FertilizerType),
		Origin:         strings.TrimSpace(raw.Origin),
		Notes:          strings.TrimSpace(raw.Notes),
		Description:    strings.TrimSpace(raw.Description),
		ImageURL:       strings.TrimSpace(raw.ImageURL),
		ReferenceLinks: splitLinks(raw.ReferenceLinks),
		IsFavorite:     raw.IsFavorite,
		IsDead:         raw.IsDead,
	}

	// Requeridos primero, en orden fijo para salida estable.
	if out.Name == "" {
		bad = append(bad, "name")
	}
	if out.Category == "" {
		bad = append(bad, "category")
	}
	if out.Location == "" {
		bad = append(bad, "location")
	}

	wc, ok := parseOptionalInt(raw.WaterCycle)
	switch {
	case !ok:
		bad = append(bad, "water_cycle")
	case wc == nil:
		// Requerido en el esquema extendido: vacío es falla, no null.
		bad = append(bad, "water_cycle")
	case *wc <= 0:
		bad = append(bad, "water_cycle")
	default:
		out.WaterCycle = wc
	}

	h, ok := parseOptionalFloat(raw.Height)
	switch {
	case !ok:
		bad = append(bad, "height")
	case h != nil && *h < 0:
		bad = append(bad, "height")
	default:
		out.Height = h
	}

	lw, ok := parseOptionalDate(raw.LastWatered)
	if !ok {
		bad = append(bad, "last_watered")
	} else {
		out.LastWatered = lw
	}

	lr, ok := parseOptionalDate(raw.LastRepotted)
	if !ok {
		bad = append(bad, "last_repotted")
	} else {
		out.LastRepotted = lr
	}

	if len(bad) > 0 {
		return NormalizedFields{}, &ValidationError{Fields: bad}
	}
	return out, nil
}

// parseOptionalFloat: "" => (nil, true); numérico => (&v, true);
// basura => (nil, false). Nunca paniquea.
func parseOptionalFloat(s string) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

func parseOptionalInt(s string) (*int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// parseOptionalDate ancla la fecha a medianoche UTC para que el DATE de la
// base no corra de día según el timezone del server.
func parseOptionalDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func splitLinks(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
