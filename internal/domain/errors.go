package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound     = errors.New("recurso não encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("não autorizado")
	ErrForbidden    = errors.New("acesso negado")
	ErrConflict     = errors.New("conflito com o estado atual")

	// Falhas de validação: a operação é rejeitada sem alterar estado.
	ErrEmptyCart              = errors.New("nenhum item válido foi encontrado para esta requisição")
	ErrEmptyEntry             = errors.New("nenhum item válido foi encontrado para esta entrada")
	ErrNonPositiveQuantity    = errors.New("informe uma quantidade maior que zero")
	ErrNegativeResultingStock = errors.New("este ajuste resultaria em estoque negativo")

	// Violação de restrição: nunca corrigida silenciosamente.
	ErrScopeMismatch = errors.New("o material precisa pertencer à mesma secretaria da requisição")
)
