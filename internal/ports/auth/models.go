package auth

// Claims es lo que el proveedor de sesión garantiza: un id opaco de usuario.
// Email puede venir o no según el proveedor; nunca se usa para decidir acceso.
type Claims struct {
	UserID string
	Email  string
}
