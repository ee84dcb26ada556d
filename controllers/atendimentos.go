package controllers

import (
	"net/http"

	dbpkg "whatsnexus/db"
	"whatsnexus/models"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// GET /api/atendimentos (admin)
// Filtros opcionais por query: status, departamento (mesmos filtros do admin
// original). Mais recentes primeiro.
func GetAtendimentos(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	query := db.Order("data_inicio desc")

	if status := c.Query("status"); status != "" {
		if !models.IsStatusAtendimentoValido(status) {
			RespondError(c, "status inválido", http.StatusBadRequest)
			return
		}
		query = query.Where("status = ?", status)
	}
	if departamento := c.Query("departamento"); departamento != "" {
		if !models.IsDepartamentoValido(departamento) {
			RespondError(c, "departamento inválido", http.StatusBadRequest)
			return
		}
		query = query.Where("departamento = ?", departamento)
	}

	var atendimentos []models.Atendimento
	if err := query.Find(&atendimentos).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"atendimentos": atendimentos})
}

type UpdateAtendimentoInput struct {
	Status       string `json:"status" form:"status"`
	Departamento string `json:"departamento" form:"departamento"`
	AgenteID     *int64 `json:"agente_id" form:"agente_id"`
}

func (in UpdateAtendimentoInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Status, validation.In(
			models.ATENDIMENTO_STATUS_AGUARDANDO,
			models.ATENDIMENTO_STATUS_EM_ATENDIMENTO,
			models.ATENDIMENTO_STATUS_FINALIZADO,
		)),
		validation.Field(&in.Departamento, validation.In(
			models.DEPARTAMENTO_COMERCIAL,
			models.DEPARTAMENTO_FINANCEIRO,
			models.DEPARTAMENTO_TECNICO,
			models.DEPARTAMENTO_SEM_DEPARTAMENTO,
		)),
	)
}

// PUT /api/atendimentos/:id (admin)
// Caminho externo de edição: assumir (EM_ATENDIMENTO + agente), encerrar
// (FINALIZADO) ou remanejar departamento. O pipeline de ingestão nunca encerra.
func UpdateAtendimento(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var input UpdateAtendimentoInput
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

	var atendimento models.Atendimento
	if err := db.First(&atendimento, id).Error; err != nil {
		RespondError(c, "atendimento não encontrado", http.StatusNotFound)
		return
	}

	if input.Status != "" {
		atendimento.Status = input.Status
	}
	if input.Departamento != "" {
		atendimento.Departamento = input.Departamento
	}
	if input.AgenteID != nil {
		if *input.AgenteID == 0 {
			atendimento.AgenteID = nil
		} else {
			var agente models.Agente
			if err := db.First(&agente, *input.AgenteID).Error; err != nil {
				RespondError(c, "agente não encontrado", http.StatusNotFound)
				return
			}
			atendimento.AgenteID = input.AgenteID
		}
	}

	if err := db.Save(&atendimento).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"atendimento": atendimento})
}
