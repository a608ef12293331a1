package handler

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/car-service-booking/internal/config"
	"github.com/iliyamo/car-service-booking/internal/model"
	"github.com/iliyamo/car-service-booking/internal/repository"
	"github.com/iliyamo/car-service-booking/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints. The same
// handler serves the customer pages and the admin pages; the admin
// routes bind the methods with role=ADMIN.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type signupReq struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	AdminCode    string `json:"adminCode"` // required on the admin signup route only
}
type signinReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID           uint64 `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Role         string `json:"role"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

func toUserPart(u model.User) userPart {
	return userPart{ID: u.ID, Username: u.Username, Email: u.Email, MobileNumber: u.MobileNumber, Role: u.Role}
}

// Signup creates a customer account and returns tokens immediately.
func (h *AuthHandler) Signup(c echo.Context) error {
	return h.signup(c, model.RoleCustomer)
}

// AdminSignup creates an admin account. It is gated by a shared signup
// code so the route cannot be used to self-grant admin rights.
func (h *AuthHandler) AdminSignup(c echo.Context) error {
	return h.signup(c, model.RoleAdmin)
}

func (h *AuthHandler) signup(c echo.Context, role string) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))

	var fields []string
	if req.Username == "" {
		fields = append(fields, "username")
	}
	if len(req.Password) < 6 {
		fields = append(fields, "password")
	}
	if strings.TrimSpace(req.Email) == "" {
		fields = append(fields, "email")
	}
	if strings.TrimSpace(req.MobileNumber) == "" {
		fields = append(fields, "mobileNumber")
	}
	if len(fields) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid signup payload", "fields": fields})
	}
	if role == model.RoleAdmin {
		if subtle.ConstantTimeCompare([]byte(req.AdminCode), []byte(h.Cfg.AdminSignupCode)) != 1 {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid admin code"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Password, req.Email, req.MobileNumber, role, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrUsernameExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	u := model.User{ID: uid, Username: req.Username, Email: req.Email, MobileNumber: req.MobileNumber, Role: role}
	return h.issueTokens(c, ctx, u, http.StatusCreated)
}

// Signin verifies customer credentials and returns a new token pair.
func (h *AuthHandler) Signin(c echo.Context) error {
	return h.signin(c, model.RoleCustomer)
}

// AdminSignin verifies admin credentials. A valid customer account is
// rejected here so the admin dashboard can trust its session's role.
func (h *AuthHandler) AdminSignin(c echo.Context) error {
	return h.signin(c, model.RoleAdmin)
}

func (h *AuthHandler) signin(c echo.Context, role string) error {
	var req signinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if u.Role != role {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	return h.issueTokens(c, ctx, u, http.StatusOK)
}

func (h *AuthHandler) issueTokens(c echo.Context, ctx context.Context, u model.User, status int) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Username, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	return c.JSON(status, authResp{
		User:    toUserPart(u),
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	})
}

// Refresh validates a refresh token by hash, revokes it and issues a
// new token pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return h.issueTokens(c, ctx, u, http.StatusOK)
}

// Logout revokes the refresh token supplied in the body. The access
// token simply expires on its own.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated principal (protected route).
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}
