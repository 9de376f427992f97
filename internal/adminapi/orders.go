package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/internal/order"
	"github.com/vegmart/vegmart/internal/webserver"
)

func registerOrderRoutes() {
	// Customer checkout and history
	webserver.ApiPOST("/store/checkout", checkout)
	webserver.ApiGET("/store/orders", myOrders)

	// Salesperson workflow
	webserver.ApiGET("/sales/orders/pending", pendingOrders)
	webserver.ApiGET("/sales/orders", salespersonOrders)
	webserver.ApiPOST("/sales/orders/:id/claim", claimOrder)
	webserver.ApiPUT("/sales/orders/:id/status", updateOrderStatus)

	// Admin listing
	webserver.ApiGET("/system/orders", listOrders)
	webserver.ApiGET("/system/orders/:id", getOrder)
}

// checkout converts the caller's cart into an order. This is the single
// order-creation entry point; there is deliberately no raw
// product/quantity variant.
func checkout(c echo.Context) error {
	actor, err := requireRole(c, domain.RoleCustomer)
	if err != nil {
		return err
	}
	var delivery order.DeliveryDetails
	if err := c.Bind(&delivery); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse delivery details", nil)
	}
	if err := c.Validate(&delivery); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}

	o, err := orderSvc.CreateOrder(c.Request().Context(), actor, delivery)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, o)
}

func myOrders(c echo.Context) error {
	actor, err := requireRole(c, domain.RoleCustomer)
	if err != nil {
		return err
	}
	rows, err := orderSvc.GetOrdersForCustomer(c.Request().Context(), actor.ID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, rows)
}

func pendingOrders(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleSalesperson, domain.RoleAdmin); err != nil {
		return err
	}
	rows, err := orderSvc.GetPendingOrders(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, rows)
}

func salespersonOrders(c echo.Context) error {
	actor, err := requireRole(c, domain.RoleSalesperson, domain.RoleAdmin)
	if err != nil {
		return err
	}
	rows, err := orderSvc.GetOrdersForSalesperson(c.Request().Context(), actor.ID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, rows)
}

func claimOrder(c echo.Context) error {
	actor, err := requireRole(c, domain.RoleSalesperson, domain.RoleAdmin)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	o, err := orderSvc.ClaimOrder(c.Request().Context(), id, actor)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, o)
}

type statusPayload struct {
	Status string `json:"status" validate:"required"`
}

func updateOrderStatus(c echo.Context) error {
	actor, err := requireRole(c, domain.RoleSalesperson, domain.RoleAdmin)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", nil)
	}

	o, err := orderSvc.UpdateOrderStatus(c.Request().Context(), id, strings.ToUpper(strings.TrimSpace(payload.Status)), actor)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, o)
}

func listOrders(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	page, pageSize := parsePagination(c)
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	rows, total, err := orderSvc.ListOrders(c.Request().Context(), status, page, pageSize)
	if err != nil {
		return failErr(c, err)
	}
	return paged(c, rows, total, page, pageSize)
}

func getOrder(c echo.Context) error {
	actor, err := requireRole(c, domain.RoleAdmin, domain.RoleSalesperson, domain.RoleCustomer)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	o, err := orderSvc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	// Customers may only see their own orders.
	if actor.Role == domain.RoleCustomer && o.CustomerId != actor.ID {
		return fail(c, http.StatusForbidden, "UNAUTHORIZED", "Not your order", nil)
	}
	return ok(c, o)
}
