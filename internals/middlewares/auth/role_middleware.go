package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	helper "relawanku_backend/internals/helpers"
)

// RequireRoles menolak request kalau role di token tidak ada di
// daftar allowed. Dipasang SETELAH AuthJWT.
func RequireRoles(allowed ...string) fiber.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		set[strings.ToLower(r)] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		role := helper.GetRoleFromToken(c)
		if _, ok := set[role]; !ok {
			return helper.JsonError(c, fiber.StatusForbidden, "Role does not have access to this feature")
		}
		return c.Next()
	}
}
