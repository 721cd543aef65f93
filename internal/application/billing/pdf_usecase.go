package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/freelance-forge-api/internal/domain"
	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
	"github.com/jhoicas/freelance-forge-api/internal/domain/repository"
)

// PDFUseCase genera el PDF de una factura a partir de su plantilla HTML.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	userRepo     repository.UserRepository
	companyRepo  repository.CompanyRepository
	templateRepo repository.InvoiceTemplateRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	templateRepo repository.InvoiceTemplateRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		userRepo:     userRepo,
		companyRepo:  companyRepo,
		templateRepo: templateRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF carga la factura, elige la plantilla (templateID explícito, la de la
// factura o la plantilla por defecto), sustituye los marcadores y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//   - domain.ErrForbidden        si la factura o la plantilla no pertenecen al usuario.
//   - domain.ErrInvalidInput     si la plantilla indicada no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(
	ctx context.Context,
	userID, invoiceID, templateID string,
) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	if _, err := uuid.Parse(invoiceID); err != nil {
		return nil, "", domain.ErrNotFound
	}
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if !inv.IsOwnedBy(userID) {
		return nil, "", domain.ErrForbidden
	}

	// ── 2. Plantilla ──────────────────────────────────────────────────────────
	if templateID == "" {
		templateID = inv.TemplateID
	}
	tplHTML, err := uc.templateHTML(ctx, userID, templateID)
	if err != nil {
		return nil, "", err
	}

	// ── 3. Emisor ─────────────────────────────────────────────────────────────
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener usuario: %w", err)
	}
	var company *entity.Company
	if user != nil {
		company, err = uc.companyRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
		}
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	doc := RenderedDocument{
		Title: "Invoice " + inv.InvoiceNumber,
		HTML:  RenderTemplate(tplHTML, TemplateData{Invoice: inv, User: user, Company: company}),
	}
	if company != nil {
		doc.Author = company.Name
	}
	pdfBytes, err = uc.generator.RenderHTML(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("factura_%s.pdf", inv.ID)
	return pdfBytes, filename, nil
}

func (uc *PDFUseCase) templateHTML(ctx context.Context, userID, templateID string) (string, error) {
	if templateID == "" {
		return DefaultTemplateHTML, nil
	}
	if _, err := uuid.Parse(templateID); err != nil {
		return "", fmt.Errorf("%w: template_id inválido", domain.ErrInvalidInput)
	}
	tpl, err := uc.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return "", fmt.Errorf("pdf: obtener plantilla: %w", err)
	}
	if tpl == nil {
		return "", fmt.Errorf("%w: la plantilla no existe", domain.ErrInvalidInput)
	}
	if tpl.UserID != userID {
		return "", domain.ErrForbidden
	}
	return tpl.HTML, nil
}
