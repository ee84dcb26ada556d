package models

import "time"

// Cliente é a parte atendida pela fila de suporte, identificada pelo telefone
// (ex: 5511999999999). O nome pode chegar depois, via profile do WhatsApp.
type Cliente struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Telefone  string     `gorm:"not null;unique_index" json:"telefone" form:"telefone"`
	Nome      string     `gorm:"default:''" json:"nome" form:"nome"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
