package services_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"whatsnexus/models"
	"whatsnexus/services"
	"whatsnexus/tools"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// sqlite em memória é por conexão; uma conexão só garante o mesmo banco
	database.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	database.AutoMigrate(
		&models.Cliente{},
		&models.Agente{},
		&models.Atendimento{},
		&models.Contato{},
		&models.Mensagem{},
	)
	require.NoError(t, database.Error)

	return database
}

// newFakeGraph sobe um servidor que imita o endpoint /messages do Meta.
func newFakeGraph(t *testing.T, statusCode int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestWhatsApp(database *gorm.DB, baseURL string) *services.WhatsAppService {
	return &services.WhatsAppService{
		DB: database,
		Client: tools.WhatsAppClient{
			AccessToken:   "test-token",
			ApiVersion:    "v21.0",
			PhoneNumberID: "111222333",
			BaseURL:       baseURL,
		},
	}
}

func newAtendimento(t *testing.T, database *gorm.DB, clienteID int64, inicio string, status string) models.Atendimento {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, inicio)
	require.NoError(t, err)
	atendimento := models.Atendimento{
		ClienteID:    clienteID,
		Departamento: models.DEPARTAMENTO_SEM_DEPARTAMENTO,
		Status:       status,
		DataInicio:   &ts,
	}
	require.NoError(t, database.Create(&atendimento).Error)
	return atendimento
}

func countMensagens(t *testing.T, database *gorm.DB, direcao string) int {
	t.Helper()
	var n int
	require.NoError(t, database.Model(&models.Mensagem{}).Where("direcao = ?", direcao).Count(&n).Error)
	return n
}
