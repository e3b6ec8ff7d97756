package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/duarteol2000/sisreq/internal/application/dto"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/pkg/jwt"
)

// Locals keys para o usuário autenticado e sua unidade em Fiber.
const (
	LocalUserID       = "user_id"
	LocalPrefeituraID = "prefeitura_id"
	LocalSecretariaID = "secretaria_id"
	LocalSetorID      = "setor_id"
	LocalMatricula    = "matricula"
	LocalRole         = "role"
)

// AuthMiddleware valida o Bearer Token JWT e grava usuário, unidade e perfil em c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		sub, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		if sub.UserID == "" || sub.PrefeituraID == "" || sub.SecretariaID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token sem usuário ou unidade"})
		}
		c.Locals(LocalUserID, sub.UserID)
		c.Locals(LocalPrefeituraID, sub.PrefeituraID)
		c.Locals(LocalSecretariaID, sub.SecretariaID)
		c.Locals(LocalSetorID, sub.SetorID)
		c.Locals(LocalMatricula, sub.Matricula)
		c.Locals(LocalRole, sub.Role)
		return c.Next()
	}
}

// RequireRole exige que o perfil do token esteja entre os permitidos.
// Deve ser usado depois de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sem perfil"})
		}
		for _, r := range roles {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "perfil sem permissão para esta operação"})
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devolve o UserID do contexto (depois do middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetRole devolve o perfil do contexto (depois do middleware de auth).
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetScope devolve a unidade (prefeitura + secretaria) do usuário autenticado.
func GetScope(c *fiber.Ctx) entity.Scope {
	return entity.Scope{
		PrefeituraID: localString(c, LocalPrefeituraID),
		SecretariaID: localString(c, LocalSecretariaID),
	}
}

// GetActor devolve o usuário autenticado como ator das operações.
func GetActor(c *fiber.Ctx) entity.Actor {
	a := entity.Actor{
		UserID:    GetUserID(c),
		Matricula: localString(c, LocalMatricula),
		Role:      strings.ToUpper(GetRole(c)),
	}
	if setor := localString(c, LocalSetorID); setor != "" {
		a.SetorID = &setor
	}
	return a
}
