// @title Manassa API
// @version 1.0
// @description Backend server for the Manassa e-learning platform.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"log"
	"manassa_backend/internal/app"
	"manassa_backend/internal/config"
	"manassa_backend/pkg/configwatcher"
	"manassa_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if updated, ok := newCfg.(*config.Config); ok {
			*application.Config = *updated
			logger.Log.Info("Configuration reloaded")
		}
	})

	application.Run()
}
