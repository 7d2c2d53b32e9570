package order

import (
	"github.com/shopspring/decimal"

	"github.com/lincyaw/storefront/internal/domain/shared/valueobject"
)

// Pricing policy constants
var (
	// FreeShippingThreshold is the items subtotal above which shipping
	// is free
	FreeShippingThreshold = decimal.NewFromInt(100)

	// FlatShippingFee applies to orders at or below the threshold
	FlatShippingFee = decimal.NewFromInt(10)

	// TaxRate is the flat tax applied to the items subtotal
	TaxRate = decimal.NewFromFloat(0.15)
)

// PricingBreakdown holds the computed order totals, each rounded to
// two decimal places
type PricingBreakdown struct {
	ItemsPrice    decimal.Decimal
	ShippingPrice decimal.Decimal
	TaxPrice      decimal.Decimal
	TotalPrice    decimal.Decimal
}

// TotalMoney returns the grand total as a Money value object
func (p PricingBreakdown) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.TotalPrice)
}

// ComputePricing derives the order totals from its line items:
// itemsPrice is the sum of unit price times quantity, shipping is free
// above the threshold and flat otherwise, tax is a flat rate on the
// items subtotal
func ComputePricing(items []Item) PricingBreakdown {
	itemsPrice := decimal.Zero
	for _, item := range items {
		itemsPrice = itemsPrice.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	itemsPrice = itemsPrice.Round(2)

	shipping := FlatShippingFee
	if itemsPrice.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := itemsPrice.Mul(TaxRate).Round(2)
	total := itemsPrice.Add(shipping).Add(tax).Round(2)

	return PricingBreakdown{
		ItemsPrice:    itemsPrice,
		ShippingPrice: shipping,
		TaxPrice:      tax,
		TotalPrice:    total,
	}
}
