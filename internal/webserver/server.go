// Package webserver hosts the echo HTTP server. Handlers register
// themselves through the ApiGET/ApiPOST helpers; /api routes require a
// verified JWT, /pub routes do not.
package webserver

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"

	"github.com/vegmart/vegmart/config"
	"github.com/vegmart/vegmart/internal/domain"
	"github.com/vegmart/vegmart/internal/identity"
)

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

type WebServer struct {
	cfg  *config.AppConfig
	root *echo.Echo
	api  *echo.Group
	pub  *echo.Group
}

var server *WebServer

// Init builds the server and installs shared middleware.
func Init(cfg *config.AppConfig) *WebServer {
	e := echo.New()
	e.HideBanner = true
	// Request logging goes through zap; echo's own logger stays quiet.
	e.Logger.SetLevel(log.OFF)
	e.Validator = &payloadValidator{validate: validator.New()}
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	}))
	api := e.Group("/api")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.Web.JwtSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(identity.Claims)
		},
	}))

	pub := e.Group("/pub")

	server = &WebServer{cfg: cfg, root: e, api: api, pub: pub}
	return server
}

// Start blocks serving HTTP until the listener fails or is shut down.
func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	zap.L().Info("starting web server", zap.String("addr", addr))
	return s.root.Start(addr)
}

// Echo exposes the underlying engine for graceful shutdown.
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func ApiGET(path string, h echo.HandlerFunc)    { server.api.GET(path, h) }
func ApiPOST(path string, h echo.HandlerFunc)   { server.api.POST(path, h) }
func ApiPUT(path string, h echo.HandlerFunc)    { server.api.PUT(path, h) }
func ApiDELETE(path string, h echo.HandlerFunc) { server.api.DELETE(path, h) }

func PubGET(path string, h echo.HandlerFunc)  { server.pub.GET(path, h) }
func PubPOST(path string, h echo.HandlerFunc) { server.pub.POST(path, h) }

// GetActor rebuilds the authenticated actor from the verified JWT, or nil
// on public routes.
func GetActor(c echo.Context) *domain.User {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*identity.Claims)
	if !ok {
		return nil
	}
	return identity.ActorFromClaims(claims)
}
