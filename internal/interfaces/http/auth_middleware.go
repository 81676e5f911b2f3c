package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/drxproject/plm-api/internal/application/dto"
	"github.com/drxproject/plm-api/internal/domain/lifecycle"
	"github.com/drxproject/plm-api/pkg/jwt"
)

// Locals keys para UserID y Roles en Fiber.
const (
	LocalUserID = "user_id"
	LocalRoles  = "roles"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y Roles a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, roles, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRoles, roles)
		return c.Next()
	}
}

// RequireRole corta con 403 si el usuario autenticado no tiene ninguno de
// los roles indicados. admin pasa siempre.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		have := GetRoles(c)
		if lifecycle.HasAny(have, lifecycle.RoleAdmin) || lifecycle.HasAny(have, roles...) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol insuficiente"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRoles devuelve los roles del contexto (después del middleware de auth).
func GetRoles(c *fiber.Ctx) []string {
	v := c.Locals(LocalRoles)
	if v == nil {
		return nil
	}
	roles, _ := v.([]string)
	return roles
}
