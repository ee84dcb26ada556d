package models

import "time"

/************************************************
/**** MARK: ATENDIMENTO DEPARTAMENTO ****/
/************************************************/
const DEPARTAMENTO_COMERCIAL = "COMERCIAL"
const DEPARTAMENTO_FINANCEIRO = "FINANCEIRO"
const DEPARTAMENTO_TECNICO = "TECNICO"
const DEPARTAMENTO_SEM_DEPARTAMENTO = "SEM_DEPARTAMENTO"

/************************************************
/**** MARK: ATENDIMENTO STATUS ****/
/************************************************/
const ATENDIMENTO_STATUS_AGUARDANDO = "AGUARDANDO"
const ATENDIMENTO_STATUS_EM_ATENDIMENTO = "EM_ATENDIMENTO"
const ATENDIMENTO_STATUS_FINALIZADO = "FINALIZADO"

// Atendimento é um episódio da fila de suporte de um Cliente.
// O storage não impede múltiplos atendimentos abertos por cliente; o pipeline
// de ingestão só consulta o mais recente (ver services.AtendimentoAberto).
// FINALIZADO só é atingido via admin, nunca pelo pipeline.
type Atendimento struct {
	ID           int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ClienteID    int64      `gorm:"not null;index" json:"cliente_id"`
	Departamento string     `gorm:"not null;default:'SEM_DEPARTAMENTO'" json:"departamento" form:"departamento"`
	Status       string     `gorm:"not null;default:'AGUARDANDO';index" json:"status" form:"status"`
	DataInicio   *time.Time `gorm:"column:data_inicio;index" json:"data_inicio"`
	AgenteID     *int64     `gorm:"column:agente_id;index" json:"agente_id" form:"agente_id"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// DepartamentoLabel devolve o rótulo humano do departamento (usado na confirmação).
func DepartamentoLabel(departamento string) string {
	switch departamento {
	case DEPARTAMENTO_COMERCIAL:
		return "Comercial"
	case DEPARTAMENTO_FINANCEIRO:
		return "Financeiro"
	case DEPARTAMENTO_TECNICO:
		return "Técnico"
	default:
		return "Sem departamento"
	}
}

// IsDepartamentoValido valida valores vindos do admin.
func IsDepartamentoValido(departamento string) bool {
	switch departamento {
	case DEPARTAMENTO_COMERCIAL, DEPARTAMENTO_FINANCEIRO, DEPARTAMENTO_TECNICO, DEPARTAMENTO_SEM_DEPARTAMENTO:
		return true
	}
	return false
}

// IsStatusAtendimentoValido valida valores vindos do admin.
func IsStatusAtendimentoValido(status string) bool {
	switch status {
	case ATENDIMENTO_STATUS_AGUARDANDO, ATENDIMENTO_STATUS_EM_ATENDIMENTO, ATENDIMENTO_STATUS_FINALIZADO:
		return true
	}
	return false
}
