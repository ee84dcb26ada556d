package services

import (
	"context"
	"errors"
	"time"

	"whatsnexus/config"
	"whatsnexus/models"
	"whatsnexus/tools"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

// WhatsAppService envia mensagens de texto pela Cloud API e registra o
// resultado no banco (Contato + Mensagem), falhe o envio ou não — o registro
// representa uma tentativa de comunicação.
type WhatsAppService struct {
	DB     *gorm.DB
	Client tools.WhatsAppClient
}

func NewWhatsAppService(database *gorm.DB, conf config.Configuration) *WhatsAppService {
	return &WhatsAppService{
		DB: database,
		Client: tools.WhatsAppClient{
			AccessToken:   conf.WhatsApp.AccessToken,
			ApiVersion:    conf.WhatsApp.ApiVersion,
			PhoneNumberID: conf.WhatsApp.PhoneNumberID,
		},
	}
}

// SendText envia texto para o waid e registra a Mensagem de saída.
//
// Contrato:
//   - credenciais ausentes: devolve tools.ErrWhatsAppNotConfigured na hora,
//     sem tocar no banco (defeito de deploy, o chamador precisa ver);
//   - erro de rede ou resposta não-2xx: engolido aqui, a Mensagem sai com
//     status "failed" e o detalhe vai pro log;
//   - sucesso: status "sent", com o message id do Meta quando presente.
//
// O upsert do Contato acontece em qualquer desfecho de envio.
func (s *WhatsAppService) SendText(ctx context.Context, waid string, texto string) (*models.Mensagem, error) {
	status := models.MENSAGEM_STATUS_ENVIADA

	metaMessageID, err := s.Client.SendText(ctx, waid, texto)
	if err != nil {
		if errors.Is(err, tools.ErrWhatsAppNotConfigured) {
			return nil, err
		}
		logrus.WithError(err).WithField("waid", waid).Error("falha ao enviar mensagem pelo WhatsApp")
		status = models.MENSAGEM_STATUS_FALHA
		metaMessageID = ""
	}

	contato, err := UpsertContato(s.DB, waid, waid, texto)
	if err != nil {
		return nil, err
	}

	return AppendMensagem(s.DB, contato, texto, models.MENSAGEM_DIRECAO_SAIDA, status, time.Now(), metaMessageID)
}
