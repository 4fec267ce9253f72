package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() RawSubmission {
	return RawSubmission{
		Name:    "Maria Silva",
		Phone:   "(11) 99999-8888",
		Email:   "maria@example.com",
		Service: "Redes e Wi-Fi",
		Message: "internet caindo toda hora",
	}
}

func TestValidateAcceptsGoodPayload(t *testing.T) {
	in := validRaw()
	in.Normalize()
	assert.NoError(t, in.Validate())
}

func TestValidateEmailOptional(t *testing.T) {
	in := validRaw()
	in.Email = ""
	in.Normalize()
	assert.NoError(t, in.Validate())
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RawSubmission)
		field  string
	}{
		{"short name", func(r *RawSubmission) { r.Name = "A" }, "name"},
		{"blank name", func(r *RawSubmission) { r.Name = "   " }, "name"},
		{"phone missing ddd", func(r *RawSubmission) { r.Phone = "999-8888" }, "phone"},
		{"phone letters only", func(r *RawSubmission) { r.Phone = "telefone" }, "phone"},
		{"no service", func(r *RawSubmission) { r.Service = "" }, "service"},
		{"unknown service", func(r *RawSubmission) { r.Service = "Conserto de Geladeira" }, "service"},
		{"short message", func(r *RawSubmission) { r.Message = "oi" }, "message"},
		{"bad email", func(r *RawSubmission) { r.Email = "maria@" }, "email"},
		{"email with spaces", func(r *RawSubmission) { r.Email = "ma ria@example.com" }, "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRaw()
			tc.mutate(&in)
			in.Normalize()
			err := in.Validate()
			require.Error(t, err)
			verr, ok := err.(*ValidationError)
			require.True(t, ok, "expected *ValidationError, got %T", err)
			assert.Equal(t, tc.field, verr.Field)
			assert.NotEmpty(t, verr.Msg)
		})
	}
}

func TestNormalizeSanitizesMarkup(t *testing.T) {
	in := RawSubmission{
		Name:    "  <b>Maria</b>  ",
		Phone:   "11999998888",
		Service: "Outros",
		Message: "<script>alert(1)</script> preciso de ajuda",
	}
	in.Normalize()
	assert.Equal(t, "&lt;b&gt;Maria&lt;/b&gt;", in.Name)
	assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt; preciso de ajuda", in.Message)
	assert.NoError(t, in.Validate())
}
