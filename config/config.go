package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type WhatsAppConfiguration struct {
	PhoneNumberID string `json:"phone_number_id"`
	AccessToken   string `json:"access_token"`
	ApiVersion    string `json:"api_version"`
	VerifyToken   string `json:"verify_token"`
}

// IsConfigured diz se dá pra enviar mensagens (credenciais mínimas presentes).
func (w WhatsAppConfiguration) IsConfigured() bool {
	return strings.TrimSpace(w.PhoneNumberID) != "" && strings.TrimSpace(w.AccessToken) != ""
}

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	WhatsApp WhatsAppConfiguration `json:"whatsapp"`

	// Token estático para as rotas de painel/admin (login completo fica fora daqui).
	AdminToken string `json:"admin_token"`
}

// Get carrega o arquivo JSON de configuração e aplica overrides de ambiente
// para segredos (mesmos nomes de env do deploy: META_WA_*, WHATSAPP_VERIFY_TOKEN).
// Um .env local é carregado antes, se existir.
func Get(path string) Configuration {
	_ = godotenv.Load()

	var c Configuration
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			logrus.WithError(err).Fatal("não foi possível ler o arquivo de configuração")
		}
		if err := json.Unmarshal(b, &c); err != nil {
			logrus.WithError(err).Fatal("arquivo de configuração inválido")
		}
	}

	// overrides de ambiente (segredos nunca precisam estar no arquivo)
	if v := getenv("PORT"); v != "" {
		c.ApiPort = v
	}
	if v := getenv("META_WA_PHONE_NUMBER_ID"); v != "" {
		c.WhatsApp.PhoneNumberID = v
	}
	if v := getenv("META_WA_ACCESS_TOKEN"); v != "" {
		c.WhatsApp.AccessToken = v
	}
	if v := getenv("META_WA_API_VERSION"); v != "" {
		c.WhatsApp.ApiVersion = v
	}
	if v := getenv("WHATSAPP_VERIFY_TOKEN"); v != "" {
		c.WhatsApp.VerifyToken = v
	}
	if v := getenv("ADMIN_API_TOKEN"); v != "" {
		c.AdminToken = v
	}

	// defaults (pra evitar nil/zero chato)
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.WhatsApp.ApiVersion == "" {
		c.WhatsApp.ApiVersion = "v21.0"
	}

	return c
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
