package plants

import "time"

// Category define las categorías sugeridas en el formulario.
// No es un enum forzado a nivel de datos: el usuario puede escribir la suya.
type Category string

const (
	CategoryIndoor    Category = "Indoor"
	CategoryOutdoor   Category = "Outdoor"
	CategorySucculent Category = "Succulent"
	CategoryHerb      Category = "Herb"
	CategoryTropical  Category = "Tropical"
	CategoryFlowering Category = "Flowering"
	CategoryFoliage   Category = "Foliage"
	CategoryCactus    Category = "Cactus"
)

// SuggestedCategories se expone para que la UI arme su combo.
func SuggestedCategories() []Category {
	return []Category{
		CategoryIndoor,
		CategoryOutdoor,
		CategorySucculent,
		CategoryHerb,
		CategoryTropical,
		CategoryFlowering,
		CategoryFoliage,
		CategoryCactus,
	}
}

// Plant representa una planta del inventario personal de un usuario.
// Esquema canónico: la variante botánica extendida. La variante vieja
// (price/stock) quedó deprecada y no se mezcla acá.
type Plant struct {
	ID          string
	OwnerUserID string

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

	// Height en cm; nil = no informada.
	Height *float64
	// WaterCycle en días entre riegos.
	WaterCycle *int

	LastWatered  *time.Time
	LastRepotted *time.Time

	// ReferenceLinks nunca contiene strings vacíos (ver normalize.go).
	ReferenceLinks []string

	Notes       string
	Description string
	ImageURL    string

	IsFavorite bool
	IsDead     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
