package domain

// PricedOffer is one entry of the wire response. Field order and JSON names
// match the established response contract of the integration, including its
// mixed camel/snake casing, and must not be reordered or renamed.
type PricedOffer struct {
	ID                string `json:"id"`
	HotelCodeSupplier string `json:"hotelCodeSupplier"`
	Market            string `json:"market"`
	Price             Price  `json:"price"`
}

// Price is the pricing block of one offer. MinimumSellingPrice is always
// serialized, as a JSON null when unset.
type Price struct {
	MinimumSellingPrice *float64 `json:"minimumSellingPrice"`
	Currency            string   `json:"currency"`
	Net                 float64  `json:"net"`
	SellingPrice        float64  `json:"selling_price"`
	SellingCurrency     string   `json:"selling_currency"`
	Markup              float64  `json:"markup"`
	ExchangeRate        float64  `json:"exchange_rate"`
}
