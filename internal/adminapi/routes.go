// Package adminapi exposes the platform over HTTP: storefront cart and
// checkout endpoints, salesperson order workflow, and the admin surfaces
// for catalog, suppliers, purchases, users and analytics.
package adminapi

import (
	"github.com/asaskevich/EventBus"
	"gorm.io/gorm"

	"github.com/vegmart/vegmart/config"
	"github.com/vegmart/vegmart/internal/analytics"
	"github.com/vegmart/vegmart/internal/cart"
	"github.com/vegmart/vegmart/internal/catalog"
	"github.com/vegmart/vegmart/internal/identity"
	"github.com/vegmart/vegmart/internal/ledger"
	"github.com/vegmart/vegmart/internal/order"
)

var (
	appConfig    *config.AppConfig
	catalogSvc   *catalog.Service
	cartSvc      *cart.Service
	orderSvc     *order.Service
	ledgerSvc    *ledger.Service
	analyticsSvc *analytics.Service
	identitySvc  *identity.Service
)

// Init wires the services and registers every route. Call after
// webserver.Init.
func Init(cfg *config.AppConfig, db *gorm.DB, bus EventBus.Bus) {
	appConfig = cfg
	catalogSvc = catalog.NewService(db)
	cartSvc = cart.NewService(db, catalogSvc)
	orderSvc = order.NewService(db, bus)
	ledgerSvc = ledger.NewService(db)
	analyticsSvc = analytics.NewService(db, ledgerSvc)
	identitySvc = identity.NewService(db)

	registerAuthRoutes()
	registerProductRoutes()
	registerSupplierRoutes()
	registerPurchaseRoutes()
	registerCartRoutes()
	registerOrderRoutes()
	registerAnalyticsRoutes()
}
