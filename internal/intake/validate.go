package intake

import (
	"regexp"
	"strings"

	"github.com/VitorSouza2004/SouzaTec/internal/models"
	"github.com/VitorSouza2004/SouzaTec/internal/utils"
)

// RawSubmission is the contact form payload as received.
type RawSubmission struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// ValidationError carries the user-facing message for a rejected field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// sanitize neutralizes markup characters and trims whitespace.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return strings.TrimSpace(s)
}

// Normalize sanitizes free-text fields in place.
func (in *RawSubmission) Normalize() {
	in.Name = sanitize(in.Name)
	in.Phone = sanitize(in.Phone)
	in.Email = sanitize(in.Email)
	in.Message = sanitize(in.Message)
	in.Service = strings.TrimSpace(in.Service)
}

// Validate checks every intake rule and reports the first violation.
func (in *RawSubmission) Validate() error {
	if len([]rune(in.Name)) < 2 {
		return &ValidationError{Field: "name", Msg: "Nome deve ter pelo menos 2 caracteres"}
	}
	if len(utils.Digits(in.Phone)) < 10 {
		return &ValidationError{Field: "phone", Msg: "Telefone inválido. Digite um número com DDD"}
	}
	if !models.ValidServiceCategory(in.Service) {
		return &ValidationError{Field: "service", Msg: "Selecione um serviço de interesse"}
	}
	if len([]rune(in.Message)) < 5 {
		return &ValidationError{Field: "message", Msg: "Descreva sua necessidade em pelo menos 5 caracteres"}
	}
	if in.Email != "" && !emailRe.MatchString(in.Email) {
		return &ValidationError{Field: "email", Msg: "Email inválido"}
	}
	return nil
}
