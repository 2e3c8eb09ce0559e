package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MedStock-api/internal/application/dto"
	"github.com/jhoicas/MedStock-api/internal/domain/entity"
	"github.com/jhoicas/MedStock-api/pkg/jwt"
)

// Locals keys para los datos del principal en Fiber.
const (
	LocalUserID    = "user_id"
	LocalSiteID    = "site_id"
	LocalRole      = "role"
	LocalTokenID   = "token_id"
	LocalExpiresAt = "token_expires_at"
)

// revocationChecker contrato mínimo para consultar tokens cerrados con logout.
// Lo implementa *auth.AuthUseCase.
type revocationChecker interface {
	IsRevoked(tokenID string) bool
}

// AuthMiddleware valida el Bearer Token JWT y carga user_id, site_id, role y jti en c.Locals.
// Si se pasan revocation checkers, un token revocado responde 401 TOKEN_REVOKED.
func AuthMiddleware(jwtSecret string, revocations ...revocationChecker) fiber.Handler {
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
		principal, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		for _, r := range revocations {
			if r != nil && r.IsRevoked(principal.TokenID) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_REVOKED", Message: "la sesión fue cerrada"})
			}
		}
		c.Locals(LocalUserID, principal.UserID)
		c.Locals(LocalSiteID, principal.SiteID)
		c.Locals(LocalRole, principal.Role)
		c.Locals(LocalTokenID, principal.TokenID)
		c.Locals(LocalExpiresAt, principal.ExpiresAt)
		return c.Next()
	}
}

// RequireSite verifica que la sede del token siga en el conjunto permitido.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireSite(sites *entity.SiteSet) fiber.Handler {
	return func(c *fiber.Ctx) error {
		siteID := GetSiteID(c)
		if siteID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "site_id no encontrado en el token"})
		}
		if !sites.Contains(siteID) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "UNKNOWN_SITE", Message: "la sede del token no está habilitada"})
		}
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Sin rol en el token responde 401 MISSING_ROLE;
// con un rol distinto, 403 FORBIDDEN. Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetSiteID devuelve la sede del contexto (después del middleware de auth).
func GetSiteID(c *fiber.Ctx) string { return localString(c, LocalSiteID) }

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetTokenID devuelve el jti del token actual.
func GetTokenID(c *fiber.Ctx) string { return localString(c, LocalTokenID) }

// GetTokenExpiresAt devuelve la expiración del token actual.
func GetTokenExpiresAt(c *fiber.Ctx) time.Time {
	t, _ := c.Locals(LocalExpiresAt).(time.Time)
	return t
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
