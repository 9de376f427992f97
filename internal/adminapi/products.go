package adminapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/internal/webserver"
)

type productPayload struct {
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	ImageUrl        string          `json:"image_url"`
	RetailPrice     decimal.Decimal `json:"retail_price"`
	WholesalePrice  decimal.Decimal `json:"wholesale_price"`
	MinWholesaleQty float64         `json:"min_wholesale_qty"`
	Stock           float64         `json:"stock"`
	SupplierId      int64           `json:"supplier_id,string"`
}

func registerProductRoutes() {
	// Storefront listing is readable by any authenticated role.
	webserver.ApiGET("/store/products", listAvailableProducts)

	webserver.ApiGET("/catalog/products", listProducts)
	webserver.ApiGET("/catalog/products/:id", getProduct)
	webserver.ApiPOST("/catalog/products", createProduct)
	webserver.ApiPUT("/catalog/products/:id", updateProduct)
	webserver.ApiDELETE("/catalog/products/:id", deleteProduct)
}

func listAvailableProducts(c echo.Context) error {
	rows, err := catalogSvc.ListAvailableProducts(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, rows)
}

func listProducts(c echo.Context) error {
	// Pagination: accept both perPage (front-end) and pageSize
	page, pageSize := parsePagination(c)
	if perPage := c.QueryParam("perPage"); perPage != "" {
		if ps, err := strconv.Atoi(perPage); err == nil && ps > 0 && ps <= 500 {
			pageSize = ps
		}
	}

	q := strings.TrimSpace(c.QueryParam("q"))
	rows, total, err := catalogSvc.ListProducts(c.Request().Context(), q, page, pageSize)
	if err != nil {
		return failErr(c, err)
	}
	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := catalogSvc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}

	p := domain.Product{
		Name:            strings.TrimSpace(payload.Name),
		Description:     payload.Description,
		Category:        payload.Category,
		ImageUrl:        strings.TrimSpace(payload.ImageUrl),
		RetailPrice:     payload.RetailPrice,
		WholesalePrice:  payload.WholesalePrice,
		MinWholesaleQty: payload.MinWholesaleQty,
		Stock:           payload.Stock,
		SupplierId:      payload.SupplierId,
	}
	if err := catalogSvc.CreateProduct(c.Request().Context(), &p); err != nil {
		return failErr(c, err)
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}

	p := domain.Product{
		ID:              id,
		Name:            strings.TrimSpace(payload.Name),
		Description:     payload.Description,
		Category:        payload.Category,
		ImageUrl:        strings.TrimSpace(payload.ImageUrl),
		RetailPrice:     payload.RetailPrice,
		WholesalePrice:  payload.WholesalePrice,
		MinWholesaleQty: payload.MinWholesaleQty,
		Stock:           payload.Stock,
		SupplierId:      payload.SupplierId,
	}
	if err := catalogSvc.UpdateProduct(c.Request().Context(), &p); err != nil {
		return failErr(c, err)
	}
	updated, err := catalogSvc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, updated)
}

func deleteProduct(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := catalogSvc.DeleteProduct(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}
