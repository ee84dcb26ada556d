package controllers

import (
	"net/http"

	dbpkg "whatsnexus/db"
	"whatsnexus/models"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// GET /api/agentes (admin)
func GetAgentes(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var agentes []models.Agente
	if err := db.Order("nome asc").Find(&agentes).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"agentes": agentes})
}

type CreateAgenteInput struct {
	Nome  string `json:"nome" form:"nome"`
	Email string `json:"email" form:"email"`
}

func (in CreateAgenteInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Nome, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.Email, validation.Required, is.Email),
	)
}

// POST /api/agentes (admin)
func CreateAgente(c *gin.Context) {
	var input CreateAgenteInput
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

	agente := models.Agente{Nome: input.Nome, Email: input.Email}
	if err := db.Create(&agente).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"agente": agente})
}

// DELETE /api/agentes/:id (admin)
// Remoção limpa a referência nos atendimentos do agente (SET NULL), nunca
// apaga os atendimentos.
func DeleteAgente(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var agente models.Agente
	if err := db.First(&agente, id).Error; err != nil {
		RespondError(c, "agente não encontrado", http.StatusNotFound)
		return
	}

	if err := db.Model(&models.Atendimento{}).
		Where("agente_id = ?", agente.ID).
		Update("agente_id", nil).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if err := db.Delete(&agente).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"deleted": agente.ID})
}
