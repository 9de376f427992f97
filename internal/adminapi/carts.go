package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/internal/webserver"
)

type cartItemPayload struct {
	ProductId int64   `json:"product_id,string" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required"`
}

func registerCartRoutes() {
	webserver.ApiGET("/store/cart", getCart)
	webserver.ApiPOST("/store/cart/items", addCartItem)
	webserver.ApiPUT("/store/cart/items", updateCartItem)
	webserver.ApiDELETE("/store/cart/items/:productId", removeCartItem)
	webserver.ApiDELETE("/store/cart", clearCart)
}

func getCart(c echo.Context) error {
	actor, err := requireRole(c, domain.RoleCustomer)
	if err != nil {
		return err
	}
	cart, err := cartSvc.GetOrCreate(c.Request().Context(), actor.ID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, cart)
}

func addCartItem(c echo.Context) error {
	actor, err := requireRole(c, domain.RoleCustomer)
	if err != nil {
		return err
	}
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}

	cart, err := cartSvc.AddItem(c.Request().Context(), actor, payload.ProductId, payload.Quantity)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, cart)
}

func updateCartItem(c echo.Context) error {
	actor, err := requireRole(c, domain.RoleCustomer)
	if err != nil {
		return err
	}
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", nil)
	}

	cart, err := cartSvc.UpdateQuantity(c.Request().Context(), actor, payload.ProductId, payload.Quantity)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, cart)
}

func removeCartItem(c echo.Context) error {
	actor, err := requireRole(c, domain.RoleCustomer)
	if err != nil {
		return err
	}
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := cartSvc.RemoveItem(c.Request().Context(), actor.ID, productID); err != nil {
		return failErr(c, err)
	}
	cart, err := cartSvc.GetOrCreate(c.Request().Context(), actor.ID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, cart)
}

func clearCart(c echo.Context) error {
	actor, err := requireRole(c, domain.RoleCustomer)
	if err != nil {
		return err
	}
	if err := cartSvc.Clear(c.Request().Context(), actor.ID); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"cleared": true})
}
