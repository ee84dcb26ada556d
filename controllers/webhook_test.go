package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"whatsnexus/config"
	"whatsnexus/controllers"
	dbpkg "whatsnexus/db"
	"whatsnexus/models"
	"whatsnexus/services"
	"whatsnexus/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
)

func setupWebhookRouter(t *testing.T, graphStatus int, graphBody string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	database.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	database.AutoMigrate(
		&models.Cliente{},
		&models.Agente{},
		&models.Atendimento{},
		&models.Contato{},
		&models.Mensagem{},
	)

	graph := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(graphStatus)
		_, _ = w.Write([]byte(graphBody))
	}))
	t.Cleanup(graph.Close)

	whatsapp := &services.WhatsAppService{
		DB: database,
		Client: tools.WhatsAppClient{
			AccessToken:   "test-token",
			ApiVersion:    "v21.0",
			PhoneNumberID: "111222333",
			BaseURL:       graph.URL,
		},
	}
	fila := services.NewFilaService(database, whatsapp)

	var cfg config.Configuration
	cfg.WhatsApp.VerifyToken = "topsecret"

	webhook := controllers.NewWebhookController(cfg, fila)

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	r.GET("/webhook/whatsapp", webhook.Verify)
	r.POST("/webhook/whatsapp", webhook.Receive)
	return r, database
}

func countRows(t *testing.T, database *gorm.DB, model any) int {
	t.Helper()
	var n int
	require.NoError(t, database.Model(model).Count(&n).Error)
	return n
}

func TestWebhookVerifyHandshake(t *testing.T) {
	r, _ := setupWebhookRouter(t, 200, `{}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=topsecret&hub.challenge=12345", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "12345", w.Body.String())
}

func TestWebhookVerifyTokenErrado(t *testing.T) {
	r, _ := setupWebhookRouter(t, 200, `{}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=errado&hub.challenge=12345", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestWebhookVerifyParametrosAusentes(t *testing.T) {
	r, _ := setupWebhookRouter(t, 200, `{}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhook/whatsapp", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestWebhookJSONInvalidoRespondeOKSemRegistros(t *testing.T) {
	r, database := setupWebhookRouter(t, 200, `{}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader("{nem json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	// contrato: sempre 200 pro Meta, mesmo com lixo
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0, countRows(t, database, &models.Contato{}))
	require.Equal(t, 0, countRows(t, database, &models.Mensagem{}))
	require.Equal(t, 0, countRows(t, database, &models.Atendimento{}))
}

const payloadGatilho = `{
  "object": "whatsapp_business_account",
  "entry": [{
    "id": "123",
    "changes": [{
      "field": "messages",
      "value": {
        "messaging_product": "whatsapp",
        "contacts": [{"profile": {"name": "Maria"}, "wa_id": "5511999999999"}],
        "messages": [{
          "from": "5511999999999",
          "id": "wamid.IN1",
          "timestamp": "1717243800",
          "type": "text",
          "text": {"body": "oi"}
        }]
      }
    }]
  }]
}`

func TestWebhookFluxoCompletoGatilho(t *testing.T) {
	r, database := setupWebhookRouter(t, 200,
		`{"messaging_product":"whatsapp","messages":[{"id":"wamid.OUT1"}]}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(payloadGatilho))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var cliente models.Cliente
	require.NoError(t, database.First(&cliente).Error)
	require.Equal(t, "5511999999999", cliente.Telefone)
	require.Equal(t, "Maria", cliente.Nome)

	var atendimento models.Atendimento
	require.NoError(t, database.First(&atendimento).Error)
	require.Equal(t, models.ATENDIMENTO_STATUS_AGUARDANDO, atendimento.Status)
	require.Equal(t, models.DEPARTAMENTO_SEM_DEPARTAMENTO, atendimento.Departamento)

	var entrada models.Mensagem
	require.NoError(t, database.Where("direcao = ?", models.MENSAGEM_DIRECAO_ENTRADA).First(&entrada).Error)
	require.Equal(t, "oi", entrada.Texto)
	require.Equal(t, models.MENSAGEM_STATUS_ENTREGUE, entrada.Status)
	require.Equal(t, "wamid.IN1", entrada.MetaMessageID)
	// timestamp vem do epoch do Meta, não do relógio do insert
	require.Equal(t, int64(1717243800), entrada.Timestamp.Unix())

	var saida models.Mensagem
	require.NoError(t, database.Where("direcao = ?", models.MENSAGEM_DIRECAO_SAIDA).First(&saida).Error)
	require.Equal(t, services.MenuDepartamentos, saida.Texto)
	require.Equal(t, models.MENSAGEM_STATUS_ENVIADA, saida.Status)
}

func TestWebhookMensagemSemFromOuSemTextoIgnorada(t *testing.T) {
	r, database := setupWebhookRouter(t, 200, `{}`)

	payload := `{
	  "entry": [{
	    "changes": [{
	      "value": {
	        "contacts": [
	          {"profile": {"name": "A"}, "wa_id": "111"},
	          {"profile": {"name": "B"}, "wa_id": "5511999999999"}
	        ],
	        "messages": [
	          {"id": "wamid.X", "timestamp": "1717243800", "type": "text", "text": {"body": "sem from"}},
	          {"from": "5511999999999", "id": "wamid.Y", "timestamp": "1717243800", "type": "image"}
	        ]
	      }
	    }]
	  }]
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// nada persiste: sem from e sem texto extraível caem antes do storage
	require.Equal(t, 0, countRows(t, database, &models.Contato{}))
	require.Equal(t, 0, countRows(t, database, &models.Mensagem{}))
}

func TestWebhookTimestampImparseavelCaiParaAgora(t *testing.T) {
	r, database := setupWebhookRouter(t, 200, `{}`)

	payload := `{
	  "entry": [{
	    "changes": [{
	      "value": {
	        "messages": [{
	          "from": "5511988887777",
	          "id": "wamid.Z",
	          "timestamp": "não-é-epoch",
	          "type": "text",
	          "text": {"body": "tudo bem?"}
	        }]
	      }
	    }]
	  }]
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var entrada models.Mensagem
	require.NoError(t, database.Where("direcao = ?", models.MENSAGEM_DIRECAO_ENTRADA).First(&entrada).Error)
	require.False(t, entrada.Timestamp.IsZero())
	// sem contacts no payload, o nome do contato cai no waid
	var contato models.Contato
	require.NoError(t, database.First(&contato).Error)
	require.Equal(t, "5511988887777", contato.Nome)
}
