package http

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/duarteol2000/sisreq/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Os campos aparecem nos erros com o nome JSON/query, não o nome Go.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return badRequest("VALIDATION", err.Error())
	}
	fields := make([]dto.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, dto.FieldError{Field: fe.Namespace(), Rule: fe.Tag()})
	}
	return &apiError{
		status:  fiber.StatusBadRequest,
		code:    "VALIDATION",
		message: "campos inválidos",
		fields:  fields,
	}
}

// bindBody lê o corpo JSON e valida as tags `validate`.
func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return badRequest("INVALID_BODY", "corpo inválido")
	}
	if err := validate.Struct(out); err != nil {
		return validationError(err)
	}
	return nil
}

// bindQuery lê a query string e valida as tags `validate`.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return badRequest("INVALID_QUERY", "parâmetros inválidos")
	}
	if err := validate.Struct(out); err != nil {
		return validationError(err)
	}
	return nil
}

// idParam devolve o parâmetro :id. Um id que não é UUID não existe em nenhuma unidade.
func idParam(c *fiber.Ctx) (string, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", notFound()
	}
	return id.String(), nil
}

// parseDateRange interpreta from/to (YYYY-MM-DD); to inclui o dia inteiro.
func parseDateRange(from, to string) (*time.Time, *time.Time, error) {
	var f, t *time.Time
	if s := strings.TrimSpace(from); s != "" {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, nil, badRequest("VALIDATION", "from deve estar no formato AAAA-MM-DD")
		}
		f = &d
	}
	if s := strings.TrimSpace(to); s != "" {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, nil, badRequest("VALIDATION", "to deve estar no formato AAAA-MM-DD")
		}
		end := d.Add(24*time.Hour - time.Nanosecond)
		t = &end
	}
	return f, t, nil
}
