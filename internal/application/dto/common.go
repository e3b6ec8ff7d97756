package dto

import (
	"encoding/json"
	"strings"
)

// PageRequest paginação para listagens.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores padrão se Limit/Offset vierem zerados.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadados de página nas respostas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError falha de validação estrutural de um campo do corpo.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// RawValue valor de formulário recebido como texto ou número JSON.
// A interpretação (e o descarte de valores inválidos) fica com o caso de uso.
type RawValue string

// UnmarshalJSON aceita "12", 12 ou null.
func (v *RawValue) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*v = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*v = RawValue(str)
		return nil
	}
	*v = RawValue(s)
	return nil
}

// String devolve o texto bruto.
func (v RawValue) String() string {
	return string(v)
}
