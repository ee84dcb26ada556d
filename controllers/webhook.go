package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"whatsnexus/config"
	dbpkg "whatsnexus/db"
	"whatsnexus/models"
	"whatsnexus/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WebhookPayload cobre a estrutura aninhada e parcialmente opcional que o Meta
// entrega: entry -> changes -> value -> messages/contacts, com messages e
// contacts alinhados por índice.
type WebhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Field string `json:"field"`
			Value struct {
				MessagingProduct string `json:"messaging_product"`
				Contacts         []struct {
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
					WaID string `json:"wa_id"`
				} `json:"contacts"`
				Messages []struct {
					From      string `json:"from"`
					ID        string `json:"id"`
					Timestamp string `json:"timestamp"`
					Type      string `json:"type"`
					Text      *struct {
						Body string `json:"body"`
					} `json:"text,omitempty"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// WebhookController atende o webhook do WhatsApp (Meta). Config explícita,
// nada de estado global.
type WebhookController struct {
	Conf config.Configuration
	Fila *services.FilaService
}

func NewWebhookController(conf config.Configuration, fila *services.FilaService) *WebhookController {
	return &WebhookController{Conf: conf, Fila: fila}
}

// GET /webhook/whatsapp
//
// Handshake de verificação do painel do Meta:
// hub.mode=subscribe + hub.verify_token correto -> 200 com o challenge.
func (w *WebhookController) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "" && token != "" {
		if mode == "subscribe" && token == w.Conf.WhatsApp.VerifyToken {
			c.String(http.StatusOK, "%s", challenge)
			return
		}
		RespondError(c, "Token inválido", http.StatusForbidden)
		return
	}
	RespondError(c, "Parâmetros ausentes", http.StatusForbidden)
}

// POST /webhook/whatsapp
//
// Recebimento de mensagens. Responde 200 SEMPRE, inclusive com JSON quebrado
// ou falha de processamento: erro interno aqui viraria retry storm do Meta.
// Falhas vão pro log, nunca pro status HTTP.
func (w *WebhookController) Receive(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		logrus.WithError(err).Error("webhook: falha ao ler o corpo da requisição")
		RespondSuccess(c, gin.H{"status": "ok"})
		return
	}

	var payload WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		logrus.WithError(err).Warn("webhook: payload JSON inválido, descartado")
		RespondSuccess(c, gin.H{"status": "ok"})
		return
	}

	database := dbpkg.DBInstance(c)
	if database == nil {
		logrus.Error("webhook: db não configurado no contexto")
		RespondSuccess(c, gin.H{"status": "ok"})
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			value := change.Value
			for idx, message := range value.Messages {
				waid := strings.TrimSpace(message.From)
				if waid == "" {
					continue
				}

				nome := waid
				if idx < len(value.Contacts) {
					if n := strings.TrimSpace(value.Contacts[idx].Profile.Name); n != "" {
						nome = n
					}
				}

				// só type=text rende texto; os demais tipos caem fora
				// antes de tocar Contato/Mensagem/fila
				texto := ""
				if strings.ToLower(strings.TrimSpace(message.Type)) == "text" && message.Text != nil {
					texto = message.Text.Body
				}
				if texto == "" {
					continue
				}

				timestamp := resolveTimestamp(message.Timestamp)

				contato, err := services.UpsertContato(database, waid, nome, texto)
				if err != nil {
					logrus.WithError(err).WithField("waid", waid).Error("webhook: falha no upsert do contato")
					continue
				}

				// "recebida por nós" vira delivered; não há tratamento de
				// recibo de entrega real neste fluxo
				if _, err := services.AppendMensagem(database, contato, texto,
					models.MENSAGEM_DIRECAO_ENTRADA, models.MENSAGEM_STATUS_ENTREGUE,
					timestamp, message.ID); err != nil {
					logrus.WithError(err).WithField("waid", waid).Error("webhook: falha ao registrar mensagem")
					continue
				}

				if err := w.Fila.ProcessInbound(c.Request.Context(), waid, nome, texto); err != nil {
					logrus.WithError(err).WithField("waid", waid).Error("webhook: falha ao processar fila de atendimento")
				}
			}
		}
	}

	RespondSuccess(c, gin.H{"status": "ok"})
}

// resolveTimestamp converte o epoch-seconds (string) do Meta; ausente ou
// imparseável cai para agora.
func resolveTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now()
	}
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Now()
	}
	return time.Unix(seconds, 0)
}
