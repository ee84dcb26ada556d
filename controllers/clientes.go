package controllers

import (
	"net/http"

	dbpkg "whatsnexus/db"
	"whatsnexus/models"

	"github.com/gin-gonic/gin"
)

// GET /api/clientes (admin)
func GetClientes(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var clientes []models.Cliente
	if err := db.Order("nome asc, telefone asc").Find(&clientes).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"clientes": clientes})
}
