package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole lets the request through when the role claim is one of roles.
// It must run after JWTMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if UserID(c) == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}
		role, _ := c.Locals("role").(string)
		if _, ok := allowed[role]; !ok {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}
		return c.Next()
	}
}
