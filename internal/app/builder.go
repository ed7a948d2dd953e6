package app

import (
	"fmt"

	"hotelavail/internal/domain"
)

// ResponseBuilder prices one offer per requested destination. Net price,
// markup and the supplier hotel code come from the configured pricing block;
// a full deployment would resolve them per destination from a rate source.
type ResponseBuilder struct {
	rules domain.Rules
}

func NewResponseBuilder(rules domain.Rules) *ResponseBuilder {
	return &ResponseBuilder{rules: rules}
}

// Build emits offers in destination order with sequential "A#<n>" ids. An
// empty destination list yields an empty, non-nil slice so it serializes as
// a JSON array.
func (b *ResponseBuilder) Build(req domain.ValidatedRequest) []domain.PricedOffer {
	p := b.rules.Pricing
	offers := make([]domain.PricedOffer, 0, len(req.Destinations))
	for i := range req.Destinations {
		offers = append(offers, domain.PricedOffer{
			ID:                fmt.Sprintf("A#%d", i+1),
			HotelCodeSupplier: p.SupplierHotelCode,
			Market:            req.Market,
			Price: domain.Price{
				Currency:        p.NetCurrency,
				Net:             p.NetPrice,
				SellingPrice:    SellingPrice(p.NetPrice, p.MarkupPercent),
				SellingCurrency: req.Currency,
				Markup:          p.MarkupPercent,
				ExchangeRate:    p.ExchangeRate,
			},
		})
	}
	return offers
}

// SellingPrice applies a percentage markup on top of a net price. The result
// is intentionally not rounded; callers serialize it as-is.
func SellingPrice(net, markupPercent float64) float64 {
	return net * (1 + markupPercent/100)
}
