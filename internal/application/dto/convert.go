package dto

import "github.com/jhoicas/devis-renovation-api/internal/domain/entity"

// ── Conversión DTO ↔ entidad ────────────────────────────────────────────────

// ToPaymentTerms convierte el DTO de condiciones de pago a entidad.
func ToPaymentTerms(in PaymentTermsDTO) entity.PaymentTerms {
	out := entity.PaymentTerms{Mode: in.Mode, NetDays: in.NetDays}
	for _, i := range in.Installments {
		out.Installments = append(out.Installments, entity.Installment{Label: i.Label, Percent: i.Percent})
	}
	return out
}

// FromPaymentTerms convierte las condiciones de pago a DTO.
func FromPaymentTerms(t entity.PaymentTerms) PaymentTermsDTO {
	out := PaymentTermsDTO{Mode: t.Mode, NetDays: t.NetDays}
	for _, i := range t.Installments {
		out.Installments = append(out.Installments, InstallmentDTO{Label: i.Label, Percent: i.Percent})
	}
	return out
}

// ToClient convierte el DTO de cliente a entidad.
func ToClient(c ClientDTO) entity.Client {
	return entity.Client{
		LastName:   c.LastName,
		FirstName:  c.FirstName,
		Address:    c.Address,
		PostalCode: c.PostalCode,
		City:       c.City,
		Phone:      c.Phone,
		Email:      c.Email,
	}
}

// FromClient convierte el cliente a DTO.
func FromClient(c entity.Client) ClientDTO {
	return ClientDTO{
		LastName:   c.LastName,
		FirstName:  c.FirstName,
		Address:    c.Address,
		PostalCode: c.PostalCode,
		City:       c.City,
		Phone:      c.Phone,
		Email:      c.Email,
	}
}

// ToLineOptions convierte opciones de línea (nil se conserva).
func ToLineOptions(o *LineOptionsDTO) *entity.LineOptions {
	if o == nil {
		return nil
	}
	return &entity.LineOptions{
		ACClass:         o.ACClass,
		Underlay:        o.Underlay,
		WorktopMaterial: o.WorktopMaterial,
		UpperCabinets:   o.UpperCabinets,
		LowerCabinets:   o.LowerCabinets,
		Appliances:      o.Appliances,
		FinishType:      o.FinishType,
		Extras:          o.Extras,
	}
}

func fromLineOptions(o *entity.LineOptions) *LineOptionsDTO {
	if o == nil {
		return nil
	}
	return &LineOptionsDTO{
		ACClass:         o.ACClass,
		Underlay:        o.Underlay,
		WorktopMaterial: o.WorktopMaterial,
		UpperCabinets:   o.UpperCabinets,
		LowerCabinets:   o.LowerCabinets,
		Appliances:      o.Appliances,
		FinishType:      o.FinishType,
		Extras:          o.Extras,
	}
}

// FromLines convierte las líneas calculadas a DTO.
func FromLines(lines []entity.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineItemResponse{
			ID:            l.ID,
			Category:      string(l.Category),
			ReferenceID:   l.ReferenceID,
			ReferenceName: l.ReferenceName,
			Description:   l.Description,
			Quantity:      l.Quantity,
			Unit:          l.Unit,
			PriceMin:      l.PriceMin,
			PriceMax:      l.PriceMax,
			DefaultPrice:  l.DefaultPrice,
			AdjustedPrice: l.AdjustedPrice,
			Subtotal:      l.Subtotal,
			Complimentary: l.Complimentary,
			Options:       fromLineOptions(l.Options),
		})
	}
	return out
}

// FromQuote construye la respuesta completa de un devis.
func FromQuote(q *entity.Quote) *QuoteResponse {
	if q == nil {
		return nil
	}
	return &QuoteResponse{
		ID:           q.ID,
		Number:       q.Number,
		Client:       FromClient(q.Client),
		CreatedAt:    q.CreatedAt,
		ValidityDays: q.ValidityDays,
		ValidUntil:   q.ValidUntil,
		TaxRate:      q.TaxRate,
		TotalHT:      q.TotalHT,
		TotalTVA:     q.TotalTVA,
		TotalTTC:     q.TotalTTC,
		Status:       string(q.Status),
		PaymentTerms: FromPaymentTerms(q.PaymentTerms),
		Notes:        q.Notes,
		Lines:        FromLines(q.Lines),
		UpdatedAt:    q.UpdatedAt,
	}
}

// FromQuoteSummaries convierte filas de listado.
func FromQuoteSummaries(list []entity.QuoteSummary) []QuoteSummaryResponse {
	out := make([]QuoteSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, QuoteSummaryResponse{
			ID:         s.ID,
			Number:     s.Number,
			ClientName: s.ClientName,
			CreatedAt:  s.CreatedAt,
			TotalTTC:   s.TotalTTC,
			Status:     string(s.Status),
		})
	}
	return out
}

// FromInvoice construye la respuesta completa de una factura.
func FromInvoice(inv *entity.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &InvoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		QuoteID:      inv.QuoteID,
		QuoteNumber:  inv.QuoteNumber,
		Client:       FromClient(inv.Client),
		CreatedAt:    inv.CreatedAt,
		PaidAt:       inv.PaidAt,
		TaxRate:      inv.TaxRate,
		TotalHT:      inv.TotalHT,
		TotalTVA:     inv.TotalTVA,
		TotalTTC:     inv.TotalTTC,
		Status:       string(inv.Status),
		PaymentTerms: FromPaymentTerms(inv.PaymentTerms),
		Notes:        inv.Notes,
		Lines:        FromLines(inv.Lines),
	}
}

// FromInvoiceSummaries convierte filas de listado.
func FromInvoiceSummaries(list []entity.InvoiceSummary) []InvoiceSummaryResponse {
	out := make([]InvoiceSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, InvoiceSummaryResponse{
			ID:          s.ID,
			Number:      s.Number,
			QuoteID:     s.QuoteID,
			QuoteNumber: s.QuoteNumber,
			ClientName:  s.ClientName,
			CreatedAt:   s.CreatedAt,
			PaidAt:      s.PaidAt,
			TotalTTC:    s.TotalTTC,
			Status:      string(s.Status),
		})
	}
	return out
}

// FromCompanyProfile convierte el perfil de empresa.
func FromCompanyProfile(p *entity.CompanyProfile) *CompanyProfileResponse {
	if p == nil {
		return nil
	}
	return &CompanyProfileResponse{
		CompanyName:         p.CompanyName,
		Address:             p.Address,
		PostalCode:          p.PostalCode,
		City:                p.City,
		Phone:               p.Phone,
		Email:               p.Email,
		SIRET:               p.SIRET,
		VATNumber:           p.VATNumber,
		Insurance:           p.Insurance,
		DefaultPaymentTerms: FromPaymentTerms(p.DefaultPaymentTerms),
		DefaultTaxRate:      p.DefaultTaxRate,
		LegalMentions:       p.LegalMentions,
		WarrantyText:        p.WarrantyText,
		UpdatedAt:           p.UpdatedAt,
	}
}

// FromReferenceItems convierte ítems de catálogo.
func FromReferenceItems(items []entity.ReferenceItem) []ReferenceItemResponse {
	out := make([]ReferenceItemResponse, 0, len(items))
	for _, it := range items {
		bands := make([]PriceBandDTO, 0, len(it.Bands))
		for _, b := range it.Bands {
			bands = append(bands, PriceBandDTO{Code: b.Code, Min: b.Min, Max: b.Max})
		}
		out = append(out, ReferenceItemResponse{
			ID:          it.ID,
			Catalog:     string(it.Catalog),
			Name:        it.Name,
			Type:        it.Type,
			Category:    it.Category,
			Description: it.Description,
			Unit:        it.Unit,
			ACClass:     it.ACClass,
			Bands:       bands,
		})
	}
	return out
}
