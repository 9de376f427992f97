package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/internal/identity"
	"github.com/vegmart/vegmart/internal/webserver"
)

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerPayload struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Password  string `json:"password" validate:"required,min=6"`
	FullName  string `json:"full_name" validate:"required"`
	Wholesale bool   `json:"wholesale"`
}

func registerAuthRoutes() {
	webserver.PubPOST("/auth/login", login)
	webserver.PubPOST("/auth/register", registerCustomer)
	webserver.ApiGET("/system/users", listUsers)
	webserver.ApiPOST("/system/users", createUser)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
	}

	u, err := identitySvc.Authenticate(c.Request().Context(), payload.Username, payload.Password)
	if err != nil {
		return failErr(c, err)
	}
	token, err := identity.IssueToken(u, appConfig.Web.JwtSecret)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"token": token, "user": u})
}

// registerCustomer is the public self-registration endpoint; it only ever
// creates CUSTOMER accounts. Staff accounts are created by an admin.
func registerCustomer(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}

	u, err := identitySvc.Register(c.Request().Context(), payload.Username, payload.Password,
		payload.FullName, domain.RoleCustomer, payload.Wholesale)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, u)
}

func listUsers(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	page, pageSize := parsePagination(c)
	rows, total, err := identitySvc.ListUsers(c.Request().Context(), c.QueryParam("role"), page, pageSize)
	if err != nil {
		return failErr(c, err)
	}
	return paged(c, rows, total, page, pageSize)
}

type createUserPayload struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Password  string `json:"password" validate:"required,min=6"`
	FullName  string `json:"full_name" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=ADMIN SALESPERSON CUSTOMER"`
	Wholesale bool   `json:"wholesale"`
}

func createUser(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	var payload createUserPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse user", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}

	u, err := identitySvc.Register(c.Request().Context(), payload.Username, payload.Password,
		payload.FullName, payload.Role, payload.Wholesale)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, u)
}
