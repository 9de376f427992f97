package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/internal/webserver"
	"github.com/vegmart/vegmart/pkg/errs"
)

type apiResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Detail  interface{} `json:"detail,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type pagedResponse struct {
	Code     string      `json:"code"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, apiResponse{Code: "OK", Data: data})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, apiResponse{Code: code, Message: message, Detail: detail})
}

func paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, pagedResponse{Code: "OK", Data: data, Total: total, Page: page, PageSize: pageSize})
}

// failErr maps the service error taxonomy onto HTTP statuses.
func failErr(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case errs.KindValidation:
		status = http.StatusBadRequest
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindInsufficientStock, errs.KindInvalidStateTransition:
		status = http.StatusConflict
	case errs.KindUnauthorized:
		status = http.StatusForbidden
	}
	return fail(c, status, string(kind), err.Error(), nil)
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// requireRole resolves the actor and checks it against the allowed roles.
// Returns nil actor when the check fails and the response is written.
func requireRole(c echo.Context, roles ...string) (*domain.User, error) {
	actor := webserver.GetActor(c)
	if actor == nil {
		return nil, fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
	}
	for _, r := range roles {
		if actor.Role == r {
			return actor, nil
		}
	}
	return nil, fail(c, http.StatusForbidden, "UNAUTHORIZED", "Insufficient role", nil)
}
