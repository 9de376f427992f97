package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/internal/webserver"
)

type purchasePayload struct {
	ProductId   int64           `json:"product_id,string" validate:"required"`
	SupplierId  int64           `json:"supplier_id,string" validate:"required"`
	Quantity    float64         `json:"quantity" validate:"required,gt=0"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	PurchasedAt *time.Time      `json:"purchased_at"`
}

func registerPurchaseRoutes() {
	webserver.ApiGET("/ledger/purchases", listPurchases)
	webserver.ApiGET("/ledger/purchases/:id", getPurchase)
	webserver.ApiPOST("/ledger/purchases", createPurchase)
}

func listPurchases(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	page, pageSize := parsePagination(c)

	var productID int64
	if v := c.QueryParam("product_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			productID = id
		}
	}

	rows, total, err := ledgerSvc.ListPurchases(c.Request().Context(), productID, page, pageSize)
	if err != nil {
		return failErr(c, err)
	}
	return paged(c, rows, total, page, pageSize)
}

func getPurchase(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid purchase ID", nil)
	}
	p, err := ledgerSvc.GetPurchase(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, p)
}

// createPurchase records an inventory receipt: the ledger row is appended
// and the product's stock incremented in one transaction.
func createPurchase(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	var payload purchasePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse purchase", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}

	p := domain.Purchase{
		ProductId:   payload.ProductId,
		SupplierId:  payload.SupplierId,
		Quantity:    payload.Quantity,
		CostPerUnit: payload.CostPerUnit,
	}
	if payload.PurchasedAt != nil {
		p.PurchasedAt = *payload.PurchasedAt
	}
	if err := ledgerSvc.RecordPurchase(c.Request().Context(), &p); err != nil {
		return failErr(c, err)
	}
	return ok(c, p)
}
