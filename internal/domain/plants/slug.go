package plants

import (
	"regexp"
	"strings"
)

// slugDelim separa el id del fragmento legible del nombre.
// El id es lo único que importa para resolver la ruta; el nombre es
// decorativo y puede perderse sin romper nada.
const slugDelim = "--"

var whitespaceRun = regexp.MustCompile(`\s+`)

// ToSlug arma el identificador de ruta: "<id>--<nombre-en-kebab>".
// kebab = minúsculas + cada corrida de espacios colapsada a un guión.
// La puntuación pasa tal cual; el prefijo id ya evita colisiones.
func ToSlug(id, name string) string {
	kebab := whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
	return id + slugDelim + kebab
}

// FromSlug recupera el id: todo lo anterior al PRIMER "--".
// Cualquier cola (incluso con más "--" adentro) se descarta.
// Un slug sin delimitador se trata como id pelado, así la misma ruta
// acepta /plants/<uuid> directo.
func FromSlug(slug string) string {
	id, _, _ := strings.Cut(slug, slugDelim)
	return id
}
