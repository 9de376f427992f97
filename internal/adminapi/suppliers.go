package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/internal/webserver"
)

type supplierPayload struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Remark      string `json:"remark"`
}

func registerSupplierRoutes() {
	webserver.ApiGET("/catalog/suppliers", listSuppliers)
	webserver.ApiGET("/catalog/suppliers/:id", getSupplier)
	webserver.ApiPOST("/catalog/suppliers", createSupplier)
	webserver.ApiPUT("/catalog/suppliers/:id", updateSupplier)
	webserver.ApiDELETE("/catalog/suppliers/:id", deleteSupplier)
}

func listSuppliers(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	page, pageSize := parsePagination(c)
	rows, total, err := catalogSvc.ListSuppliers(c.Request().Context(), page, pageSize)
	if err != nil {
		return failErr(c, err)
	}
	return paged(c, rows, total, page, pageSize)
}

func getSupplier(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid supplier ID", nil)
	}
	sp, err := catalogSvc.GetSupplier(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, sp)
}

func createSupplier(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	var payload supplierPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse supplier", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}

	sp := domain.Supplier{
		Name:        strings.TrimSpace(payload.Name),
		ContactName: payload.ContactName,
		Phone:       payload.Phone,
		Email:       payload.Email,
		Address:     payload.Address,
		Remark:      payload.Remark,
	}
	if err := catalogSvc.CreateSupplier(c.Request().Context(), &sp); err != nil {
		return failErr(c, err)
	}
	return ok(c, sp)
}

func updateSupplier(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid supplier ID", nil)
	}
	var payload supplierPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse supplier", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}

	sp := domain.Supplier{
		ID:          id,
		Name:        strings.TrimSpace(payload.Name),
		ContactName: payload.ContactName,
		Phone:       payload.Phone,
		Email:       payload.Email,
		Address:     payload.Address,
		Remark:      payload.Remark,
	}
	if err := catalogSvc.UpdateSupplier(c.Request().Context(), &sp); err != nil {
		return failErr(c, err)
	}
	updated, err := catalogSvc.GetSupplier(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, updated)
}

func deleteSupplier(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid supplier ID", nil)
	}
	if err := catalogSvc.DeleteSupplier(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}
