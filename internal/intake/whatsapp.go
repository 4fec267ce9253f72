package intake

import (
	"fmt"
	"net/url"
	"time"

	"github.com/VitorSouza2004/SouzaTec/internal/models"
)

// WhatsAppURL builds the pre-filled wa.me deep link handed to the visitor
// after a submission. One-way channel, no delivery confirmation.
func WhatsAppURL(number string, req models.ServiceRequest, at time.Time) string {
	email := req.Email
	if email == "" {
		email = "Não informado"
	}
	msg := fmt.Sprintf(
		"*NOVO PEDIDO - SouzaTec*\n\n"+
			"*Nome:* %s\n"+
			"*Telefone:* %s\n"+
			"*Email:* %s\n"+
			"*Serviço:* %s\n"+
			"*Mensagem:* %s\n"+
			"*Data:* %s\n"+
			"*Hora:* %s\n\n"+
			"_Enviado via site https://souza-tch.web.app/_",
		req.Name, req.Phone, email, req.Service, req.Message,
		at.Format("02/01/2006"), at.Format("15:04:05"),
	)
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(msg)
}
