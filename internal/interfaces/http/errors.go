package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/duarteol2000/sisreq/internal/application/dto"
	"github.com/duarteol2000/sisreq/internal/domain"
	"github.com/duarteol2000/sisreq/pkg/logger"
)

// apiError erro já classificado pela camada HTTP (corpo inválido, parâmetro mal formado...).
type apiError struct {
	status  int
	code    string
	message string
	fields  []dto.FieldError
}

func (e *apiError) Error() string { return e.message }

func badRequest(code, message string) error {
	return &apiError{status: fiber.StatusBadRequest, code: code, message: message}
}

func notFound() error {
	return &apiError{status: fiber.StatusNotFound, code: "NOT_FOUND", message: domain.ErrNotFound.Error()}
}

var domainErrors = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrEmptyCart, fiber.StatusBadRequest, "EMPTY_CART"},
	{domain.ErrEmptyEntry, fiber.StatusBadRequest, "EMPTY_ENTRY"},
	{domain.ErrNonPositiveQuantity, fiber.StatusBadRequest, "NON_POSITIVE_QUANTITY"},
	{domain.ErrNegativeResultingStock, fiber.StatusBadRequest, "NEGATIVE_STOCK"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrScopeMismatch, fiber.StatusConflict, "SCOPE_MISMATCH"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// ErrorHandler converte os erros devolvidos pelos handlers em dto.ErrorResponse.
// Erros não mapeados viram 500 e são registrados no log; a mensagem interna não vaza.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var apiErr *apiError
		if errors.As(err, &apiErr) {
			return c.Status(apiErr.status).JSON(dto.ErrorResponse{Code: apiErr.code, Message: apiErr.message, Fields: apiErr.fields})
		}
		for _, m := range domainErrors {
			if errors.Is(err, m.err) {
				return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.err.Error()})
			}
		}
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
		}
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("erro interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro interno"})
	}
}
