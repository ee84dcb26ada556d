package controllers

import (
	"errors"
	"net/http"

	dbpkg "whatsnexus/db"
	"whatsnexus/models"
	"whatsnexus/services"
	"whatsnexus/tools"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MensagensController cobre os envios iniciados pelo painel (formulário do
// dashboard). Respostas automáticas da fila NÃO passam por aqui.
type MensagensController struct {
	WhatsApp *services.WhatsAppService
}

func NewMensagensController(whatsapp *services.WhatsAppService) *MensagensController {
	return &MensagensController{WhatsApp: whatsapp}
}

type SendMensagemInput struct {
	Texto string `json:"texto" form:"texto"`
}

func (in SendMensagemInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Texto, validation.Required, validation.Length(1, 4096)),
	)
}

type SendMensagemDiretaInput struct {
	Para  string `json:"para" form:"para"`
	Texto string `json:"texto" form:"texto"`
}

func (in SendMensagemDiretaInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Para, validation.Required),
		validation.Field(&in.Texto, validation.Required, validation.Length(1, 4096)),
	)
}

// POST /api/contatos/:id/mensagens (painel)
// Envia para o waid de um contato existente e devolve a Mensagem registrada —
// o status dela ("sent"/"failed") é o resultado da tentativa.
func (m *MensagensController) SendToContato(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var input SendMensagemInput
	if err := c.Bind(&input); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var contato models.Contato
	if err := db.First(&contato, id).Error; err != nil {
		RespondError(c, "contato não encontrado", http.StatusNotFound)
		return
	}

	mensagem, err := m.WhatsApp.SendText(c.Request.Context(), contato.WaID, input.Texto)
	if err != nil {
		if errors.Is(err, tools.ErrWhatsAppNotConfigured) {
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"mensagem": mensagem})
}

// POST /api/mensagens (painel)
// Envio direto para um telefone digitado; normaliza antes (formato do Cloud API).
func (m *MensagensController) SendDireta(c *gin.Context) {
	var input SendMensagemDiretaInput
	if err := c.Bind(&input); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	waid, err := tools.NormalizeWhatsAppTo(input.Para)
	if err != nil {
		RespondError(c, "telefone inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	mensagem, err := m.WhatsApp.SendText(c.Request.Context(), waid, input.Texto)
	if err != nil {
		if errors.Is(err, tools.ErrWhatsAppNotConfigured) {
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"mensagem": mensagem})
}
