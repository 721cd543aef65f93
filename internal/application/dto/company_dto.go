package dto

import "time"

// CreateCompanyRequest entrada para crear la empresa del usuario.
type CreateCompanyRequest struct {
	Name               string `json:"name" validate:"required,max=200"`
	Address            string `json:"address" validate:"required,max=500"`
	RegistrationNumber string `json:"registration_number" validate:"required,max=64"`
}

// UpdateCompanyRequest entrada para actualizar la empresa (campos opcionales, no vacíos si vienen).
type UpdateCompanyRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address            *string `json:"address" validate:"omitempty,min=1,max=500"`
	RegistrationNumber *string `json:"registration_number" validate:"omitempty,min=1,max=64"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Name               string    `json:"name"`
	Address            string    `json:"address"`
	RegistrationNumber string    `json:"registration_number"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
