package models

import "time"

// Contato é a identidade de mensageria (waid) que ancora a thread de mensagens.
// Cliente e Contato normalmente carregam o mesmo telefone cru, mas são entidades
// separadas com unicidades separadas.
type Contato struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Nome           string     `gorm:"not null" json:"nome"`
	WaID           string     `gorm:"column:waid;not null;unique_index" json:"waid"`
	UltimaMensagem string     `gorm:"column:ultima_mensagem;type:text" json:"ultima_mensagem"`
	CreatedAt      *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}
