package models

import "github.com/octabyte/becas-client/enums"

// User is the authenticated identity returned by the login endpoint.
type User struct {
	ID       string     `json:"id"`
	Email    string     `json:"email"`
	Nombre   string     `json:"nombre"`
	Apellido string     `json:"apellido,omitempty"`
	Role     enums.Role `json:"role"`
	Activo   bool       `json:"activo"`
}

// DisplayName joins nombre and apellido.
func (u User) DisplayName() string {
	if u.Apellido == "" {
		return u.Nombre
	}
	return u.Nombre + " " + u.Apellido
}

type UserPage struct {
	Usuarios   []User `json:"usuarios"`
	Total      int    `json:"total"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	TotalPages int    `json:"totalPages"`
}
