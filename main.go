package main

import (
	"os"
	"strings"

	"whatsnexus/config"
	"whatsnexus/db"
	"whatsnexus/router"
	"whatsnexus/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// arquivo de config é opcional: sem ele, tudo vem de env/.env
	configPath := strings.TrimSpace(os.Getenv("CONFIG_PATH"))
	if configPath == "" {
		if _, err := os.Stat("config/config.json"); err == nil {
			configPath = "config/config.json"
		}
	}
	cfg := config.Get(configPath)

	database, err := db.Connect(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("falha ao conectar no banco")
	}
	defer database.Close()

	whatsapp := services.NewWhatsAppService(database, cfg)
	fila := services.NewFilaService(database, whatsapp)

	r := gin.New()
	r.Use(db.SetDBtoContext(database))
	router.Initialize(r, cfg, fila, whatsapp)

	logrus.Infof("WhatsNexus listening on :%s", cfg.ApiPort)
	if err := r.Run(":" + cfg.ApiPort); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
