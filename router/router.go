package router

import (
	"whatsnexus/config"
	"whatsnexus/controllers"
	"whatsnexus/middleware"
	"whatsnexus/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Initialize amarra rotas e middlewares: webhook público (o Meta não manda
// token nosso) + rotas de painel/admin atrás do AdminAuth.
func Initialize(r *gin.Engine, cfg config.Configuration, fila *services.FilaService, whatsapp *services.WhatsAppService) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "ok")
	})

	// Webhook (WhatsApp/Meta)
	webhook := controllers.NewWebhookController(cfg, fila)
	r.GET("/webhook/whatsapp", webhook.Verify)
	r.POST("/webhook/whatsapp", webhook.Receive)

	mensagens := controllers.NewMensagensController(whatsapp)

	// Painel/admin (token estático)
	api := r.Group("/api")
	api.Use(middleware.AdminAuth(cfg.AdminToken))

	// Dashboard (thread de conversa + envio)
	api.GET("/contatos", Logger(), controllers.GetContatos)
	api.GET("/contatos/:id/mensagens", Logger(), controllers.GetMensagensByContato)
	api.POST("/contatos/:id/mensagens", Logger(), mensagens.SendToContato)
	api.POST("/mensagens", Logger(), mensagens.SendDireta)

	// Admin (fila de atendimento)
	api.GET("/clientes", Logger(), controllers.GetClientes)
	api.GET("/atendimentos", Logger(), controllers.GetAtendimentos)
	api.PUT("/atendimentos/:id", Logger(), controllers.UpdateAtendimento)
	api.GET("/agentes", Logger(), controllers.GetAgentes)
	api.POST("/agentes", Logger(), controllers.CreateAgente)
	api.DELETE("/agentes/:id", Logger(), controllers.DeleteAgente)

	logrus.Info("Routes initialized")
}
