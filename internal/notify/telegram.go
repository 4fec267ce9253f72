// Package notify pushes new-request alerts to the staff Telegram group.
package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/VitorSouza2004/SouzaTec/internal/models"
	"github.com/VitorSouza2004/SouzaTec/internal/utils"
)

type Telegram struct {
	api  *tgbotapi.BotAPI
	chat int64
	log  zerolog.Logger
}

func NewTelegram(token string, chatID int64, log zerolog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	log.Info().Str("account", api.Self.UserName).Msg("telegram notifier ready")
	return &Telegram{api: api, chat: chatID, log: log}, nil
}

func (t *Telegram) NotifyNewRequest(req models.ServiceRequest) error {
	email := req.Email
	if email == "" {
		email = "não informado"
	}
	text := fmt.Sprintf(
		"*Novo pedido de serviço*\n\n"+
			"*Nome:* %s\n"+
			"*Telefone:* %s\n"+
			"*Email:* %s\n"+
			"*Serviço:* %s\n"+
			"*Mensagem:* %s",
		req.Name, utils.FormatPhone(req.Phone), email, req.Service, req.Message,
	)
	msg := tgbotapi.NewMessage(t.chat, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
