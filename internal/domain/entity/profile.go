package entity

import "time"

// Profile datos públicos del usuario del proveedor de autenticación (tabla profiles).
type Profile struct {
	ID        string // mismo ID que el sujeto del JWT
	Email     string
	FullName  string
	IsAdmin   bool
	CreatedAt time.Time
}
