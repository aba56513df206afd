package storeapi

// Wire shapes for the commerce API's cart resource. The payload is
// third-party output and varies by plugin version, so every field is
// tolerated as absent; amounts arrive as integer minor-unit strings
// paired with a currency_minor_unit exponent.

type Cart struct {
	Items         []CartItem        `json:"items"`
	ItemsCount    int               `json:"items_count"`
	Totals        CartTotals        `json:"totals"`
	Coupons       []Coupon          `json:"coupons"`
	ShippingRates []ShippingPackage `json:"shipping_rates"`
}

type CartItem struct {
	Key      string     `json:"key"`
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	Quantity int        `json:"quantity"`
	Images   []Image    `json:"images"`
	Prices   ItemPrices `json:"prices"`
	Totals   ItemTotals `json:"totals"`
}

type Image struct {
	ID  int    `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type ItemPrices struct {
	Price             string `json:"price"`
	RegularPrice      string `json:"regular_price"`
	SalePrice         string `json:"sale_price"`
	CurrencyMinorUnit int    `json:"currency_minor_unit"`
}

type ItemTotals struct {
	LineSubtotal      string `json:"line_subtotal"`
	LineTotal         string `json:"line_total"`
	CurrencyMinorUnit int    `json:"currency_minor_unit"`
}

type CartTotals struct {
	TotalItems        string `json:"total_items"`
	TotalPrice        string `json:"total_price"`
	TotalShipping     string `json:"total_shipping"`
	TotalTax          string `json:"total_tax"`
	CurrencyCode      string `json:"currency_code"`
	CurrencyMinorUnit int    `json:"currency_minor_unit"`
}

type Coupon struct {
	Code   string       `json:"code"`
	Totals CouponTotals `json:"totals"`
}

type CouponTotals struct {
	TotalDiscount     string `json:"total_discount"`
	CurrencyMinorUnit int    `json:"currency_minor_unit"`
}

type ShippingPackage struct {
	ShippingRates []ShippingRate `json:"shipping_rates"`
}

type ShippingRate struct {
	RateID string `json:"rate_id"`
	Name   string `json:"name"`
	Price  string `json:"price"`
}
