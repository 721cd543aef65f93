package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/freelance-forge-api/internal/application/dto"
	"github.com/jhoicas/freelance-forge-api/internal/domain"
	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
	"github.com/jhoicas/freelance-forge-api/internal/domain/repository"
)

// CompanyTxRunner ejecuta la creación de la empresa y el enlace usuario→empresa en una transacción.
type CompanyTxRunner interface {
	RunCompany(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error) error
}

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	txRunner CompanyTxRunner
	repo     repository.CompanyRepository
	now      func() time.Time
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(txRunner CompanyTxRunner, repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{txRunner: txRunner, repo: repo, now: time.Now}
}

// Create crea la empresa del usuario y la enlaza a su perfil.
// ErrConflict si el usuario ya tiene empresa; ErrDuplicate si el número de registro ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, userID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	address := strings.TrimSpace(in.Address)
	regNumber := strings.TrimSpace(in.RegistrationNumber)
	if name == "" || address == "" || regNumber == "" {
		return nil, fmt.Errorf("%w: name, address y registration_number son obligatorios", domain.ErrInvalidInput)
	}

	now := uc.now().UTC()
	company := &entity.Company{
		ID:                 uuid.New().String(),
		UserID:             userID,
		Name:               name,
		Address:            address,
		RegistrationNumber: regNumber,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	err := uc.txRunner.RunCompany(ctx, func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error {
		user, err := userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUnauthorized
		}
		existing, err := companyRepo.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if existing != nil || user.CompanyID != "" {
			return fmt.Errorf("%w: el usuario ya tiene una empresa", domain.ErrConflict)
		}
		if err := companyRepo.Create(ctx, company); err != nil {
			return err
		}
		user.CompanyID = company.ID
		user.UpdatedAt = now
		return userRepo.Update(ctx, user)
	})
	if err != nil {
		if domain.IsDomainError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("company: crear: %w", err)
	}
	return entityToCompanyResponse(company), nil
}

// List lista todas las empresas con paginación (sirven de catálogo de clientes).
func (uc *CompanyUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("company: listar: %w", err)
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("company: contar: %w", err)
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// GetMine devuelve la empresa del usuario. ErrNotFound si aún no la creó.
func (uc *CompanyUseCase) GetMine(ctx context.Context, userID string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("company: obtener: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("%w: company not found", domain.ErrNotFound)
	}
	return entityToCompanyResponse(company), nil
}

// UpdateMine aplica una actualización parcial; los campos presentes no pueden quedar vacíos.
func (uc *CompanyUseCase) UpdateMine(ctx context.Context, userID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("company: obtener: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("%w: company not found", domain.ErrNotFound)
	}
	set := func(dst *string, v *string, field string) error {
		if v == nil {
			return nil
		}
		s := strings.TrimSpace(*v)
		if s == "" {
			return fmt.Errorf("%w: %s no puede estar vacío", domain.ErrInvalidInput, field)
		}
		*dst = s
		return nil
	}
	if err := set(&company.Name, in.Name, "name"); err != nil {
		return nil, err
	}
	if err := set(&company.Address, in.Address, "address"); err != nil {
		return nil, err
	}
	if err := set(&company.RegistrationNumber, in.RegistrationNumber, "registration_number"); err != nil {
		return nil, err
	}
	company.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, company); err != nil {
		if domain.IsDomainError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("company: actualizar: %w", err)
	}
	return entityToCompanyResponse(company), nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                 c.ID,
		UserID:             c.UserID,
		Name:               c.Name,
		Address:            c.Address,
		RegistrationNumber: c.RegistrationNumber,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
