package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/vegmart/vegmart/internal/domain"
)

// ResolvePrice returns the unit price a customer pays for the given
// quantity. The wholesale tier applies only when the customer is a
// wholesale account AND the quantity meets the product's minimum wholesale
// quantity; everything else pays retail. Pure function, no side effects.
func ResolvePrice(p *domain.Product, wholesale bool, quantity float64) decimal.Decimal {
	if wholesale && quantity >= p.MinWholesaleQty {
		return p.WholesalePrice
	}
	return p.RetailPrice
}
