package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/internal/webserver"
)

func registerAnalyticsRoutes() {
	webserver.ApiGET("/analytics/profit", profitAnalysis)
	webserver.ApiGET("/analytics/trend", salesTrend)
	webserver.ApiGET("/analytics/salespersons", salespersonPerformance)
	webserver.ApiGET("/analytics/orders.csv", exportOrders)
}

func profitAnalysis(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	report, err := analyticsSvc.ProfitAnalysis(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, report)
}

func salesTrend(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	days := 7
	if v := c.QueryParam("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 365 {
			days = n
		}
	}
	trend, summary, err := analyticsSvc.SalesTrend(c.Request().Context(), days)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"trend": trend, "summary": summary})
}

func salespersonPerformance(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	performance, err := analyticsSvc.SalespersonPerformance(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, performance)
}

func exportOrders(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return analyticsSvc.ExportOrdersCSV(c.Request().Context(), c.Response())
}
