package services

import (
	"time"

	"whatsnexus/models"

	"github.com/jinzhu/gorm"
)

// UpsertContato busca o Contato pelo waid; cria se não existir, senão atualiza
// só a ultima_mensagem (o nome do Contato nunca muda aqui — contraste com o
// Cliente, que promove nome de perfil). Seguro para chamadas repetidas com o
// mesmo waid: a unicidade fica no índice de waid.
func UpsertContato(database *gorm.DB, waid string, nome string, ultimaMensagem string) (*models.Contato, error) {
	var contato models.Contato
	err := database.Where("waid = ?", waid).First(&contato).Error
	if err == nil {
		if err := database.Model(&contato).Update("ultima_mensagem", ultimaMensagem).Error; err != nil {
			return nil, err
		}
		contato.UltimaMensagem = ultimaMensagem
		return &contato, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	contato = models.Contato{
		Nome:           nome,
		WaID:           waid,
		UltimaMensagem: ultimaMensagem,
	}
	if createErr := database.Create(&contato).Error; createErr != nil {
		// corrida entre entregas concorrentes do mesmo remetente: o índice
		// único derruba o insert perdedor; resolve relendo a linha vencedora.
		var vencedor models.Contato
		if lookupErr := database.Where("waid = ?", waid).First(&vencedor).Error; lookupErr != nil {
			return nil, createErr
		}
		if err := database.Model(&vencedor).Update("ultima_mensagem", ultimaMensagem).Error; err != nil {
			return nil, err
		}
		vencedor.UltimaMensagem = ultimaMensagem
		return &vencedor, nil
	}

	return &contato, nil
}

// AppendMensagem registra uma mensagem na thread do contato. Append puro:
// nenhuma validação de conteúdo (texto vazio de inbound é filtrado no webhook).
func AppendMensagem(database *gorm.DB, contato *models.Contato, texto string, direcao string, status string, timestamp time.Time, metaMessageID string) (*models.Mensagem, error) {
	mensagem := models.Mensagem{
		ContatoID:     contato.ID,
		Texto:         texto,
		Direcao:       direcao,
		Status:        status,
		Timestamp:     timestamp,
		MetaMessageID: metaMessageID,
	}
	if err := database.Create(&mensagem).Error; err != nil {
		return nil, err
	}
	return &mensagem, nil
}

// MensagensDoContato devolve a thread em ordem cronológica de exibição:
// (timestamp, id) asc, então entrega fora de ordem do Meta não bagunça a tela.
func MensagensDoContato(database *gorm.DB, contatoID int64) ([]models.Mensagem, error) {
	var mensagens []models.Mensagem
	if err := database.
		Where("contato_id = ?", contatoID).
		Order("timestamp asc, id asc").
		Find(&mensagens).Error; err != nil {
		return nil, err
	}
	return mensagens, nil
}
