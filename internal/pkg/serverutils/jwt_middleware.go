package serverutils

import (
	"dating-app-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// SetJwtSecret wires the verification secret at startup. It must match the
// signing secret handed to the auth service.
func SetJwtSecret(secret string) {
	jwtSecret = []byte(secret)
}

func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return apperror.Unauthorized(apperror.CodeUnauthorized, "Missing token")
	}
	tokenStr := authHeader[7:]

	userId, err := ParseUserIdFromToken(tokenStr)
	if err != nil {
		return err
	}

	ctx.Locals("user_id", userId)
	return ctx.Next()
}

// ParseUserIdFromToken validates an access token and extracts the numeric
// user identity. Shared between the HTTP middleware and the WebSocket
// handshake.
func ParseUserIdFromToken(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperror.Unauthorized(apperror.CodeInvalidToken, "Invalid token")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperror.Unauthorized(apperror.CodeInvalidToken, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperror.Unauthorized(apperror.CodeInvalidToken, "Invalid claims")
	}

	// JSON numbers decode as float64
	rawId, ok := claims["user_id"].(float64)
	if !ok || rawId <= 0 {
		return 0, apperror.Unauthorized(apperror.CodeInvalidToken, "Invalid claims")
	}

	return uint(rawId), nil
}

// CurrentUserId reads the authenticated user id set by JwtMiddleware.
func CurrentUserId(ctx *fiber.Ctx) (uint, error) {
	userId, ok := ctx.Locals("user_id").(uint)
	if !ok || userId == 0 {
		return 0, apperror.Unauthorized(apperror.CodeUnauthorized, "Unauthorized")
	}
	return userId, nil
}
