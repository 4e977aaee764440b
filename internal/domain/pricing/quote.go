package pricing

// Quote is the server-side breakdown of a checkout, in integer currency units.
type Quote struct {
	BasePrice       int64
	Quantity        int
	Subtotal        int64
	Taxes           int64
	Discount        int64
	Total           int64
	DiscountClamped bool
}
