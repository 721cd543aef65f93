package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/freelance-forge-api/internal/application/dto"
	"github.com/jhoicas/freelance-forge-api/internal/domain"
	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
	"github.com/jhoicas/freelance-forge-api/internal/domain/invoicing"
	"github.com/jhoicas/freelance-forge-api/internal/domain/repository"
)

// InvoiceUseCase CRUD de facturas con cálculo de totales en el servidor.
type InvoiceUseCase struct {
	txRunner     InvoiceTxRunner
	invoiceRepo  repository.InvoiceRepository
	userRepo     repository.UserRepository
	companyRepo  repository.CompanyRepository
	templateRepo repository.InvoiceTemplateRepository
	now          func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner InvoiceTxRunner,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	templateRepo repository.InvoiceTemplateRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		userRepo:     userRepo,
		companyRepo:  companyRepo,
		templateRepo: templateRepo,
		now:          time.Now,
	}
}

// Create valida la entrada, calcula totales, asigna el consecutivo IN-xxxxx y guarda
// cabecera y líneas en una sola transacción. La dirección del usuario es obligatoria.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("invoice: obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.HasAddress() {
		return nil, fmt.Errorf("%w: la dirección del usuario es obligatoria para facturar", domain.ErrInvalidInput)
	}

	now := uc.now().UTC()
	inv := &entity.Invoice{
		ID:          uuid.New().String(),
		UserID:      userID,
		UserAddress: user.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.apply(ctx, inv, in); err != nil {
		return nil, err
	}

	err = uc.txRunner.RunInvoicing(ctx, func(invoiceRepo repository.InvoiceRepository, counterRepo repository.InvoiceCounterRepository) error {
		seq, err := counterRepo.Next(ctx, userID)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = invoicing.FormatNumber(seq)
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		return invoiceRepo.ReplaceItems(ctx, inv.ID, inv.Items)
	})
	if err != nil {
		return nil, fmt.Errorf("invoice: crear: %w", err)
	}
	return entityToInvoiceResponse(inv, true), nil
}

// List devuelve las facturas del usuario (sin líneas), más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, userID string) (*dto.InvoiceListResponse, error) {
	list, err := uc.invoiceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("invoice: listar: %w", err)
	}
	out := &dto.InvoiceListResponse{Items: make([]dto.InvoiceResponse, 0, len(list))}
	for _, inv := range list {
		out.Items = append(out.Items, *entityToInvoiceResponse(inv, false))
	}
	return out, nil
}

// Get devuelve la factura con sus líneas. ErrNotFound si no existe, ErrForbidden si es de otro usuario.
func (uc *InvoiceUseCase) Get(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return entityToInvoiceResponse(inv, true), nil
}

// Update reemplaza cliente, moneda, fecha, descripción y líneas, y recalcula el total.
// El número de factura y la dirección del emisor se conservan de la creación.
func (uc *InvoiceUseCase) Update(ctx context.Context, userID, id string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, inv, in); err != nil {
		return nil, err
	}
	inv.UpdatedAt = uc.now().UTC()

	err = uc.txRunner.RunInvoicing(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.InvoiceCounterRepository) error {
		if err := invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
		return invoiceRepo.ReplaceItems(ctx, inv.ID, inv.Items)
	})
	if err != nil {
		return nil, fmt.Errorf("invoice: actualizar: %w", err)
	}
	return entityToInvoiceResponse(inv, true), nil
}

// Delete borra la factura y sus líneas.
func (uc *InvoiceUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.loadOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := uc.invoiceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("invoice: borrar: %w", err)
	}
	return nil
}

func (uc *InvoiceUseCase) loadOwned(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invoice: obtener: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if !inv.IsOwnedBy(userID) {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

// apply vuelca la petición sobre inv: referencias, copias del cliente, moneda, fecha, líneas y total.
func (uc *InvoiceUseCase) apply(ctx context.Context, inv *entity.Invoice, in dto.InvoiceRequest) error {
	currency, err := invoicing.NormalizeCurrency(in.Currency)
	if err != nil {
		return err
	}
	date, err := parseDate(in.Date, uc.now())
	if err != nil {
		return err
	}
	items, err := buildItems(inv.ID, in.Items)
	if err != nil {
		return err
	}
	total, err := invoicing.ComputeTotals(items)
	if err != nil {
		return err
	}

	clientName := strings.TrimSpace(in.ClientName)
	clientAddress := strings.TrimSpace(in.ClientAddress)
	if in.CompanyID != "" {
		client, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
		if err != nil {
			return fmt.Errorf("invoice: obtener empresa cliente: %w", err)
		}
		if client == nil {
			return fmt.Errorf("%w: la empresa cliente no existe", domain.ErrInvalidInput)
		}
		if clientName == "" {
			clientName = client.Name
		}
		if clientAddress == "" {
			clientAddress = client.Address
		}
	}
	if in.TemplateID != "" {
		tpl, err := uc.templateRepo.GetByID(ctx, in.TemplateID)
		if err != nil {
			return fmt.Errorf("invoice: obtener plantilla: %w", err)
		}
		if tpl == nil {
			return fmt.Errorf("%w: la plantilla no existe", domain.ErrInvalidInput)
		}
		if tpl.UserID != inv.UserID {
			return domain.ErrForbidden
		}
	}

	inv.CompanyID = in.CompanyID
	inv.TemplateID = in.TemplateID
	inv.ClientName = clientName
	inv.ClientAddress = clientAddress
	inv.Description = strings.TrimSpace(in.Description)
	inv.Currency = currency
	inv.Date = date
	inv.Items = items
	inv.TotalAmount = total
	return nil
}

func buildItems(invoiceID string, in []dto.LineItemRequest) ([]entity.LineItem, error) {
	items := make([]entity.LineItem, 0, len(in))
	for _, it := range in {
		desc := strings.TrimSpace(it.Description)
		if desc == "" {
			return nil, fmt.Errorf("%w: cada línea necesita una descripción", domain.ErrInvalidInput)
		}
		useQuantity := true
		if it.UseQuantity != nil {
			useQuantity = *it.UseQuantity
		}
		items = append(items, entity.LineItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoiceID,
			Description: desc,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			UseQuantity: useQuantity,
		})
	}
	return items, nil
}

// parseDate interpreta YYYY-MM-DD; vacío es la fecha de hoy (UTC).
func parseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q inválida, formato YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return t, nil
}

func entityToInvoiceResponse(inv *entity.Invoice, withItems bool) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CompanyID:     inv.CompanyID,
		TemplateID:    inv.TemplateID,
		ClientName:    inv.ClientName,
		ClientAddress: inv.ClientAddress,
		UserAddress:   inv.UserAddress,
		Description:   inv.Description,
		Currency:      inv.Currency,
		Date:          inv.Date.Format(dto.DateLayout),
		TotalAmount:   inv.TotalAmount,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	if withItems {
		out.Items = make([]dto.LineItemResponse, 0, len(inv.Items))
		for _, it := range inv.Items {
			out.Items = append(out.Items, dto.LineItemResponse{
				ID:          it.ID,
				Position:    it.Position,
				Description: it.Description,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				UseQuantity: it.UseQuantity,
				LineTotal:   it.LineTotal,
			})
		}
	}
	return out
}
