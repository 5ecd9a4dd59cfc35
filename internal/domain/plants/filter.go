package plants

import (
	"strconv"
	"strings"
)

// Filter calcula el subconjunto visible de las plantas de un usuario.
// Función pura y determinística; preserva el orden relativo de entrada.
//
// Predicado combinado = búsqueda AND categoría:
//   - búsqueda: substring case-insensitive contra name, nickname, pot_size,
//     location y la forma string de height. Término vacío matchea todo.
//     Campos ausentes nunca matchean y nunca fallan.
//   - categoría: igualdad exacta case-sensitive; vacía = matchea todo.
func Filter(in []Plant, searchTerm, category string) []Plant {
	term := strings.ToLower(searchTerm)

	out := make([]Plant, 0, len(in))
	for _, p := range in {
		if !matchesSearch(p, term) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p Plant, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Nickname), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.PotSize), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Location), term) {
		return true
	}
	if p.Height != nil {
		h := strconv.FormatFloat(*p.Height, 'f', -1, 64)
		if strings.Contains(h, term) {
			return true
		}
	}
	return false
}
