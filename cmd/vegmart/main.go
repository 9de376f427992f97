package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vegmart/vegmart/config"
	"github.com/vegmart/vegmart/internal/adminapi"
	"github.com/vegmart/vegmart/internal/app"
	"github.com/vegmart/vegmart/internal/webserver"
)

var (
	configFile = flag.String("c", "vegmart.yml", "config file path")
	initDb     = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	showVer    = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("vegmart", version)
		return
	}

	cfg := config.LoadConfig(*configFile)
	cfg.InitDirs()

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	ws := webserver.Init(cfg)
	adminapi.Init(cfg, application.DB(), application.Bus())

	go func() {
		if err := ws.Start(); err != nil {
			zap.L().Error("web server stopped", zap.Error(err))
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ws.Echo().Shutdown(ctx); err != nil {
		zap.L().Error("shutdown error", zap.Error(err))
	}
	zap.L().Info("vegmart stopped")
}
