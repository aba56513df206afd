package domain

// Cart is the display-ready cart model shared across the UI. It is
// derived wholesale from the commerce API's wire representation and
// replaced, never patched, on every synchronization response. All
// monetary fields are pre-formatted currency strings.
type Cart struct {
	Items                    []CartItem            `json:"items"`
	ItemCount                int                   `json:"itemCount"`
	Subtotal                 string                `json:"subtotal"`
	Total                    string                `json:"total"`
	ShippingTotal            string                `json:"shippingTotal"`
	TotalTax                 string                `json:"totalTax"`
	AppliedCoupons           []AppliedCoupon       `json:"appliedCoupons"`
	AvailableShippingMethods []ShippingMethodGroup `json:"availableShippingMethods"`
}

type CartItem struct {
	Key          string `json:"key"`
	ProductID    int    `json:"productId"`
	ProductName  string `json:"productName"`
	ProductSlug  string `json:"productSlug"`
	Image        Image  `json:"image"`
	Quantity     int    `json:"quantity"`
	LineTotal    string `json:"lineTotal"`
	LineSubtotal string `json:"lineSubtotal"`
}

type Image struct {
	SourceURL string `json:"sourceUrl"`
	AltText   string `json:"altText"`
}

type AppliedCoupon struct {
	Code           string `json:"code"`
	DiscountAmount string `json:"discountAmount"`
}

type ShippingMethodGroup struct {
	Rates []ShippingRate `json:"rates"`
}

type ShippingRate struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Cost  string `json:"cost"`
}
