package entity

import "time"

// User representa un freelancer registrado. CompanyID apunta a su propia empresa (si ya la creó).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Address      string // dirección del emisor; obligatoria para facturar
	CompanyID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasAddress indica si el usuario puede emitir facturas.
func (u *User) HasAddress() bool {
	return u != nil && u.Address != ""
}
