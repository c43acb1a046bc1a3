// @title PrepZone Mock Test API
// @version 1.0
// @description Backend for the PrepZone multiple-choice mock test: quiz delivery, scoring, leaderboard, and admin question management.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/app"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/config"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
