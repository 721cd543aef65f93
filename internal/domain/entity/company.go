package entity

import "time"

// Company es el perfil de empresa de un usuario. La misma tabla sirve como catálogo
// de contrapartes (clientes) al facturar.
type Company struct {
	ID                 string
	UserID             string // dueño del perfil
	Name               string
	Address            string
	RegistrationNumber string // único en todo el sistema
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
