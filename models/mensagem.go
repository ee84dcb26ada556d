package models

import "time"

/************************************************
/**** MARK: MENSAGEM DIRECAO ****/
/************************************************/
const MENSAGEM_DIRECAO_ENTRADA = "in"
const MENSAGEM_DIRECAO_SAIDA = "out"

/************************************************
/**** MARK: MENSAGEM STATUS ****/
/************************************************/
const MENSAGEM_STATUS_ENFILEIRADA = "queued"
const MENSAGEM_STATUS_ENVIADA = "sent"
const MENSAGEM_STATUS_ENTREGUE = "delivered"
const MENSAGEM_STATUS_LIDA = "read"
const MENSAGEM_STATUS_FALHA = "failed"

// Mensagem é um registro append-only da thread de um Contato.
// Timestamp é o horário do evento (reportado pelo Meta para inbound),
// distinto do CreatedAt do registro. Exibição ordena por (timestamp, id) asc,
// então entregas fora de ordem não corrompem a cronologia.
type Mensagem struct {
	ID            int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ContatoID     int64      `gorm:"not null;index" json:"contato_id"`
	Texto         string     `gorm:"type:text;not null" json:"texto"`
	Direcao       string     `gorm:"not null" json:"direcao"`
	Status        string     `gorm:"not null;default:'queued'" json:"status"`
	Timestamp     time.Time  `gorm:"index" json:"timestamp"`
	MetaMessageID string     `gorm:"column:meta_message_id;default:''" json:"meta_message_id"`
	CreatedAt     *time.Time `json:"created_at"`
}
