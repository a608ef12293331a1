package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's claims into the request context.  The provided
// secret must match the one used when issuing tokens.  Handlers behind
// this middleware can read the authenticated principal via
// `c.Get("user_id")` (uint64), `c.Get("username")` and `c.Get("role")`.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Parse with HS256 and our secret; reject any other signing
            // method so an attacker cannot downgrade to "none".
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            // sub is numeric in our tokens; encoding/json decodes it as
            // float64.
            sub, ok := claims["sub"].(float64)
            if !ok || sub <= 0 {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }
            c.Set("user_id", uint64(sub))
            if v, ok := claims["username"].(string); ok {
                c.Set("username", v)
            }
            c.Set("role", claims["role"])
            return next(c)
        }
    }
}
