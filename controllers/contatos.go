package controllers

import (
	"net/http"

	dbpkg "whatsnexus/db"
	"whatsnexus/models"
	"whatsnexus/services"

	"github.com/gin-gonic/gin"
)

// GET /api/contatos (painel)
// Lista para a sidebar do dashboard, mais recentes primeiro.
func GetContatos(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var contatos []models.Contato
	if err := db.Order("updated_at desc").Find(&contatos).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"contatos": contatos})
}

// GET /api/contatos/:id/mensagens (painel)
func GetMensagensByContato(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
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

	mensagens, err := services.MensagensDoContato(db, contato.ID)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"contato": contato, "mensagens": mensagens})
}
