package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"whatsnexus/models"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

// PalavraGatilho inicia um novo episódio na fila de atendimento.
const PalavraGatilho = "oi"

// MenuDepartamentos é a resposta fixa enviada ao abrir um atendimento.
const MenuDepartamentos = "Olá! Bem-vindo ao nosso atendimento.\n" +
	"Escolha um departamento para continuar:\n" +
	"1 - Comercial\n" +
	"2 - Financeiro\n" +
	"3 - Técnico"

var departamentoPorOpcao = map[string]string{
	"1": models.DEPARTAMENTO_COMERCIAL,
	"2": models.DEPARTAMENTO_FINANCEIRO,
	"3": models.DEPARTAMENTO_TECNICO,
}

// FilaService avança o estado do atendimento de cada cliente a partir do texto
// recebido. Respostas automáticas saem pelo WhatsAppService; falha de envio é
// logada e engolida — a mudança de estado no banco já foi commitada antes.
type FilaService struct {
	DB       *gorm.DB
	WhatsApp *WhatsAppService
}

func NewFilaService(database *gorm.DB, whatsapp *WhatsAppService) *FilaService {
	return &FilaService{DB: database, WhatsApp: whatsapp}
}

// AtendimentoAberto devolve o atendimento aberto (AGUARDANDO ou EM_ATENDIMENTO)
// mais recente do cliente, ou nil se não houver. O storage permite múltiplos
// abertos por cliente; o pipeline só consulta o mais novo.
func AtendimentoAberto(database *gorm.DB, clienteID int64) (*models.Atendimento, error) {
	abertos := []string{
		models.ATENDIMENTO_STATUS_AGUARDANDO,
		models.ATENDIMENTO_STATUS_EM_ATENDIMENTO,
	}

	var atendimento models.Atendimento
	err := database.
		Where("cliente_id = ? AND status IN (?)", clienteID, abertos).
		Order("data_inicio desc, id desc").
		First(&atendimento).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &atendimento, nil
}

// ProcessInbound aplica as regras de transição, nessa precedência:
//
//  1. atendimento aberto EM_ATENDIMENTO: agente humano é dono da conversa,
//     nenhuma automação (a mensagem em si já foi logada pelo webhook);
//  2. palavra-gatilho sem atendimento aberto: cria (SEM_DEPARTAMENTO,
//     AGUARDANDO) e manda o menu; com atendimento aberto, não faz nada
//     (gatilho repetido não duplica atendimento nem reenvia menu);
//  3. dígito 1/2/3 com atendimento aberto ainda SEM_DEPARTAMENTO: persiste o
//     departamento e manda a confirmação; dígito fora desse cenário é ignorado;
//  4. qualquer outro texto: nenhuma ação automática.
//
// Também mantém o Cliente: get-or-create por telefone e promoção de nome de
// perfil recém-observado.
func (s *FilaService) ProcessInbound(ctx context.Context, waid string, nomePerfil string, texto string) error {
	cliente, err := s.upsertCliente(waid, nomePerfil)
	if err != nil {
		return err
	}

	aberto, err := AtendimentoAberto(s.DB, cliente.ID)
	if err != nil {
		return err
	}

	if aberto != nil && aberto.Status == models.ATENDIMENTO_STATUS_EM_ATENDIMENTO {
		return nil
	}

	normalizado := strings.ToLower(strings.TrimSpace(texto))

	if normalizado == PalavraGatilho {
		if aberto != nil {
			return nil
		}
		agora := time.Now()
		atendimento := models.Atendimento{
			ClienteID:    cliente.ID,
			Departamento: models.DEPARTAMENTO_SEM_DEPARTAMENTO,
			Status:       models.ATENDIMENTO_STATUS_AGUARDANDO,
			DataInicio:   &agora,
		}
		if err := s.DB.Create(&atendimento).Error; err != nil {
			return err
		}
		s.autoReply(ctx, waid, MenuDepartamentos)
		return nil
	}

	if departamento, ok := departamentoPorOpcao[normalizado]; ok {
		if aberto == nil || aberto.Departamento != models.DEPARTAMENTO_SEM_DEPARTAMENTO {
			return nil
		}
		// persiste antes do envio: falha de envio não desfaz a escolha
		if err := s.DB.Model(aberto).Update("departamento", departamento).Error; err != nil {
			return err
		}
		confirmacao := fmt.Sprintf(
			"Atendimento encaminhado para o departamento %s. Aguarde, em breve um atendente falará com você.",
			models.DepartamentoLabel(departamento),
		)
		s.autoReply(ctx, waid, confirmacao)
		return nil
	}

	return nil
}

func (s *FilaService) autoReply(ctx context.Context, waid string, texto string) {
	if s.WhatsApp == nil {
		return
	}
	mensagem, err := s.WhatsApp.SendText(ctx, waid, texto)
	if err != nil {
		logrus.WithError(err).WithField("waid", waid).Error("falha ao enviar resposta automática")
		return
	}
	if mensagem.Status == models.MENSAGEM_STATUS_FALHA {
		logrus.WithField("waid", waid).Warn("resposta automática registrada com falha de entrega")
	}
}

// upsertCliente faz get-or-create por telefone e promove o nome de perfil
// quando ele difere do armazenado e não é só o telefone cru (guarda contra
// sobrescrever um nome real com o fallback de telefone).
func (s *FilaService) upsertCliente(telefone string, nome string) (*models.Cliente, error) {
	var cliente models.Cliente
	err := s.DB.Where("telefone = ?", telefone).First(&cliente).Error
	if err == nil {
		if nome != "" && nome != telefone && nome != cliente.Nome {
			if err := s.DB.Model(&cliente).Update("nome", nome).Error; err != nil {
				return nil, err
			}
			cliente.Nome = nome
		}
		return &cliente, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	cliente = models.Cliente{Telefone: telefone, Nome: nome}
	if createErr := s.DB.Create(&cliente).Error; createErr != nil {
		// mesma corrida do UpsertContato: índice único decide, reconsulta
		var vencedor models.Cliente
		if lookupErr := s.DB.Where("telefone = ?", telefone).First(&vencedor).Error; lookupErr != nil {
			return nil, createErr
		}
		return &vencedor, nil
	}
	return &cliente, nil
}
