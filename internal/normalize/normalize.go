// Package normalize projects the commerce API's wire cart into the
// display-ready model. All functions are pure; malformed upstream
// amounts degrade to a zero price instead of failing, since this
// layer processes third-party output.
package normalize

import (
	"github.com/shopspring/decimal"

	"clinic-storefront/internal/domain"
	"clinic-storefront/internal/storeapi"
)

// Cart builds the normalized cart from the raw wire cart. The result
// depends only on the input, so normalizing the same response twice
// yields structurally equal carts.
func Cart(raw *storeapi.Cart) *domain.Cart {
	minorUnit := raw.Totals.CurrencyMinorUnit

	items := make([]domain.CartItem, 0, len(raw.Items))
	for _, item := range raw.Items {
		items = append(items, domain.CartItem{
			Key:          item.Key,
			ProductID:    item.ID,
			ProductName:  item.Name,
			ProductSlug:  item.Slug,
			Image:        firstImage(item.Images),
			Quantity:     item.Quantity,
			LineTotal:    Price(item.Totals.LineTotal, item.Totals.CurrencyMinorUnit),
			LineSubtotal: Price(item.Totals.LineSubtotal, item.Totals.CurrencyMinorUnit),
		})
	}

	coupons := make([]domain.AppliedCoupon, 0, len(raw.Coupons))
	for _, coupon := range raw.Coupons {
		coupons = append(coupons, domain.AppliedCoupon{
			Code:           coupon.Code,
			DiscountAmount: Price(coupon.Totals.TotalDiscount, minorUnit),
		})
	}

	methods := make([]domain.ShippingMethodGroup, 0, len(raw.ShippingRates))
	for _, pkg := range raw.ShippingRates {
		rates := make([]domain.ShippingRate, 0, len(pkg.ShippingRates))
		for _, rate := range pkg.ShippingRates {
			rates = append(rates, domain.ShippingRate{
				ID:    rate.RateID,
				Label: rate.Name,
				Cost:  Price(rate.Price, minorUnit),
			})
		}
		methods = append(methods, domain.ShippingMethodGroup{Rates: rates})
	}

	return &domain.Cart{
		Items:                    items,
		ItemCount:                raw.ItemsCount,
		Subtotal:                 Price(raw.Totals.TotalItems, minorUnit),
		Total:                    Price(raw.Totals.TotalPrice, minorUnit),
		ShippingTotal:            Price(raw.Totals.TotalShipping, minorUnit),
		TotalTax:                 Price(raw.Totals.TotalTax, minorUnit),
		AppliedCoupons:           coupons,
		AvailableShippingMethods: methods,
	}
}

// Price renders an integer minor-unit amount as a display currency
// string: "1999" with exponent 2 becomes "$19.99". A missing or
// non-numeric amount renders as "$0.00"; an absent exponent defaults
// to cents.
func Price(amount string, minorUnit int) string {
	if minorUnit <= 0 {
		minorUnit = 2
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		d = decimal.Zero
	}
	return "$" + d.Shift(int32(-minorUnit)).StringFixed(2)
}

func firstImage(images []storeapi.Image) domain.Image {
	if len(images) == 0 {
		return domain.Image{}
	}
	return domain.Image{SourceURL: images[0].Src, AltText: images[0].Alt}
}
