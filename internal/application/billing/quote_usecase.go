package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/devis-renovation-api/internal/application/dto"
	"github.com/jhoicas/devis-renovation-api/internal/domain"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/domain/pricing"
	"github.com/jhoicas/devis-renovation-api/internal/domain/repository"
	"github.com/jhoicas/devis-renovation-api/pkg/logger"
)

const numberLayout = "20060102150405"

// QuoteDefaults valores por defecto de configuración.
type QuoteDefaults struct {
	ValidityDays int
}

// QuoteUseCase ciclo de vida del devis: creación, lectura, actualización, estado y borrado.
// Todas las operaciones están acotadas al usuario propietario.
type QuoteUseCase struct {
	quotes   repository.QuoteRepository
	profiles CompanyProfileProvider
	defaults QuoteDefaults
	log      *logger.Logger
	now      func() time.Time
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(
	quotes repository.QuoteRepository,
	profiles CompanyProfileProvider,
	defaults QuoteDefaults,
	log *logger.Logger,
) *QuoteUseCase {
	if defaults.ValidityDays <= 0 {
		defaults.ValidityDays = entity.DefaultValidityDays
	}
	if log == nil {
		log = logger.Nop()
	}
	return &QuoteUseCase{quotes: quotes, profiles: profiles, defaults: defaults, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *QuoteUseCase) WithClock(now func() time.Time) *QuoteUseCase {
	uc.now = now
	return uc
}

// Create crea un devis en estado draft. Condiciones de pago: petición → empresa → integradas;
// TVA: petición → empresa; validez: petición → configuración (30 días).
func (uc *QuoteUseCase) Create(ctx context.Context, userID string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	inputs, err := toLineInputs(in.Lines)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("quote: perfil de empresa: %w", err)
	}

	terms := profile.DefaultPaymentTerms
	if in.PaymentTerms != nil {
		terms = dto.ToPaymentTerms(*in.PaymentTerms)
	}
	if terms.IsZero() {
		terms = entity.DefaultPaymentTerms()
	}
	if err := terms.Validate(); err != nil {
		return nil, fmt.Errorf("%w: payment_terms: %s", domain.ErrInvalidInput, err.Error())
	}

	taxRate := profile.DefaultTaxRate
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	}
	if err := validateTaxRate(taxRate); err != nil {
		return nil, err
	}

	validity := uc.defaults.ValidityDays
	if in.ValidityDays != nil {
		validity = *in.ValidityDays
	}

	now := uc.now().UTC()
	q := &entity.Quote{
		ID:           uuid.New().String(),
		UserID:       userID,
		Number:       "DEV-" + now.Format(numberLayout),
		Client:       dto.ToClient(in.Client),
		CreatedAt:    now,
		ValidityDays: validity,
		ValidUntil:   now.AddDate(0, 0, validity),
		TaxRate:      taxRate,
		Status:       entity.QuoteDraft,
		PaymentTerms: terms,
		Notes:        in.Notes,
		Lines:        uc.buildLines(inputs),
		UpdatedAt:    now,
	}
	pricing.ApplyTotals(q)

	if err := uc.quotes.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("quote: guardar: %w", err)
	}
	uc.log.Info().Str("user_id", userID).Str("quote_id", q.ID).Str("number", q.Number).
		Str("total_ttc", q.TotalTTC.StringFixed(2)).Msg("devis creado")
	return dto.FromQuote(q), nil
}

// Get devuelve el devis del usuario.
func (uc *QuoteUseCase) Get(ctx context.Context, userID, id string) (*dto.QuoteResponse, error) {
	q, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return dto.FromQuote(q), nil
}

// Update reemplaza los campos presentes. Nuevas líneas o nueva TVA recalculan los totales;
// nueva validez recalcula la fecha límite desde la creación.
func (uc *QuoteUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateQuoteRequest) (*dto.QuoteResponse, error) {
	q, err := uc.loadEditable(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	recompute := false
	if in.Client != nil {
		q.Client = dto.ToClient(*in.Client)
	}
	if in.TaxRate != nil {
		if err := validateTaxRate(*in.TaxRate); err != nil {
			return nil, err
		}
		q.TaxRate = *in.TaxRate
		recompute = true
	}
	if in.ValidityDays != nil {
		q.ValidityDays = *in.ValidityDays
		q.ValidUntil = q.CreatedAt.AddDate(0, 0, q.ValidityDays)
	}
	if in.PaymentTerms != nil {
		terms := dto.ToPaymentTerms(*in.PaymentTerms)
		if err := terms.Validate(); err != nil {
			return nil, fmt.Errorf("%w: payment_terms: %s", domain.ErrInvalidInput, err.Error())
		}
		q.PaymentTerms = terms
	}
	if in.Notes != nil {
		q.Notes = *in.Notes
	}
	if in.Status != nil {
		status, err := parseSettableStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		q.Status = status
	}
	if in.Lines != nil {
		inputs, err := toLineInputs(*in.Lines)
		if err != nil {
			return nil, err
		}
		q.Lines = uc.buildLines(inputs)
		recompute = true
	}
	if recompute {
		pricing.ApplyTotals(q)
	}

	q.UpdatedAt = uc.now().UTC()
	if err := uc.quotes.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("quote: actualizar: %w", err)
	}
	return dto.FromQuote(q), nil
}

// Patch cambia estado, cliente o notas.
func (uc *QuoteUseCase) Patch(ctx context.Context, userID, id string, in dto.PatchQuoteRequest) (*dto.QuoteResponse, error) {
	q, err := uc.loadEditable(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Status != nil {
		status, err := parseSettableStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		q.Status = status
	}
	if in.Client != nil {
		q.Client = dto.ToClient(*in.Client)
	}
	if in.Notes != nil {
		q.Notes = *in.Notes
	}
	q.UpdatedAt = uc.now().UTC()
	if err := uc.quotes.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("quote: actualizar: %w", err)
	}
	return dto.FromQuote(q), nil
}

// Delete elimina el devis. Un devis facturado no se puede borrar mientras exista su factura.
func (uc *QuoteUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.loadEditable(ctx, userID, id); err != nil {
		return err
	}
	if err := uc.quotes.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("quote: borrar: %w", err)
	}
	return nil
}

// List devis del usuario, más recientes primero; status vacío = todos.
func (uc *QuoteUseCase) List(ctx context.Context, userID, status string) ([]dto.QuoteSummaryResponse, error) {
	st := entity.QuoteStatus(status)
	if status != "" && !st.Valid() {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, status)
	}
	list, err := uc.quotes.List(ctx, userID, st)
	if err != nil {
		return nil, fmt.Errorf("quote: listar: %w", err)
	}
	return dto.FromQuoteSummaries(list), nil
}

func (uc *QuoteUseCase) load(ctx context.Context, userID, id string) (*entity.Quote, error) {
	q, err := uc.quotes.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("quote: obtener: %w", err)
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return q, nil
}

func (uc *QuoteUseCase) loadEditable(ctx context.Context, userID, id string) (*entity.Quote, error) {
	q, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if q.Status == entity.QuoteInvoiced {
		return nil, fmt.Errorf("%w: el devis %s está facturado; borre la factura primero", domain.ErrConflict, q.Number)
	}
	return q, nil
}

// buildLines calcula las líneas y deja constancia en debug de los precios fuera de banda.
func (uc *QuoteUseCase) buildLines(inputs []pricing.LineInput) []entity.LineItem {
	for _, in := range inputs {
		if pricing.WasClamped(in) {
			uc.log.Debug().
				Str("reference", in.ReferenceName).
				Str("requested", in.AdjustedPrice.String()).
				Str("min", in.PriceMin.String()).
				Str("max", in.PriceMax.String()).
				Str("applied", in.DefaultPrice.String()).
				Msg("precio ajustado fuera de banda; se aplica el precio por defecto")
		}
	}
	return pricing.BuildLines(inputs)
}

// toLineInputs valida y convierte las líneas solicitadas. Un precio ajustado fuera de banda
// no es un error: el calculador lo sustituye por el precio por defecto.
func toLineInputs(lines []dto.LineItemRequest) ([]pricing.LineInput, error) {
	out := make([]pricing.LineInput, 0, len(lines))
	for i, l := range lines {
		cat := entity.LineCategory(l.Category)
		switch cat {
		case entity.CategoryKitchen, entity.CategoryPartition, entity.CategoryPaint, entity.CategoryFlooring, entity.CategoryOther:
		default:
			return nil, fmt.Errorf("%w: lines[%d]: categoría desconocida %q", domain.ErrInvalidInput, i, l.Category)
		}
		if !l.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: lines[%d]: quantity debe ser positiva", domain.ErrInvalidInput, i)
		}
		if l.PriceMin.IsNegative() || l.PriceMin.GreaterThan(l.PriceMax) {
			return nil, fmt.Errorf("%w: lines[%d]: banda de precio inválida", domain.ErrInvalidInput, i)
		}
		if l.DefaultPrice.IsNegative() {
			return nil, fmt.Errorf("%w: lines[%d]: default_price no puede ser negativo", domain.ErrInvalidInput, i)
		}
		out = append(out, pricing.LineInput{
			Category:      cat,
			ReferenceID:   l.ReferenceID,
			ReferenceName: l.ReferenceName,
			Description:   l.Description,
			Quantity:      l.Quantity,
			Unit:          l.Unit,
			PriceMin:      l.PriceMin,
			PriceMax:      l.PriceMax,
			DefaultPrice:  l.DefaultPrice,
			AdjustedPrice: l.AdjustedPrice,
			Complimentary: l.Complimentary,
			Options:       dto.ToLineOptions(l.Options),
		})
	}
	return out, nil
}

func validateTaxRate(rate decimal.Decimal) error {
	if !entity.ValidTaxRate(rate) {
		return fmt.Errorf("%w: tax_rate debe estar entre 0 y 100 con dos decimales como máximo", domain.ErrInvalidInput)
	}
	return nil
}

// parseSettableStatus acepta los estados que el usuario puede fijar; invoiced solo lo asigna la facturación.
func parseSettableStatus(s string) (entity.QuoteStatus, error) {
	status := entity.QuoteStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, s)
	}
	if status == entity.QuoteInvoiced {
		return "", fmt.Errorf("%w: el estado invoiced se asigna al crear la factura", domain.ErrInvalidInput)
	}
	return status, nil
}
