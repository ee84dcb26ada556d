package models

import "time"

// Agente é quem assume atendimentos pelo painel. Remover um agente limpa a
// referência nos atendimentos dele (SET NULL), nunca apaga os atendimentos.
type Agente struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Nome      string     `gorm:"not null" json:"nome" form:"nome"`
	Email     string     `gorm:"not null;unique_index" json:"email" form:"email"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
