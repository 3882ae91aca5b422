package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/config"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/repository"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/utils"
)

// CustomerStore is the slice of the customer repository the auth handler
// uses.
type CustomerStore interface {
	Create(ctx context.Context, c model.Customer, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.Customer, error)
	GetByID(ctx context.Context, id uint64) (model.Customer, error)
	UpsertOAuth(ctx context.Context, email, firstName, lastName string) (model.Customer, error)
}

// AdminStore is the slice of the admin repository the auth handler uses.
type AdminStore interface {
	Create(ctx context.Context, a model.Admin) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.Admin, error)
	GetByID(ctx context.Context, id uint64) (model.Admin, error)
}

// LinkMailer sends the emailed admin verification link.
type LinkMailer interface {
	Enabled() bool
	SendAdminLoginLink(to, link string) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg       config.Config
	Customers CustomerStore
	Admins    AdminStore
	Mailer    LinkMailer
}

func NewAuthHandler(cfg config.Config, customers CustomerStore, admins AdminStore, m LinkMailer) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Customers: customers, Admins: admins, Mailer: m}
}

// ----- DTOs -----

type signupReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Password  string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type adminLoginReq struct {
	Email string `json:"email"`
}
type adminSignupReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type sessionResp struct {
	Customer model.Customer    `json:"customer"`
	Token    utils.SignedToken `json:"token"`
}

// Signup creates a customer and returns a 7-day session token.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.FirstName == "" || req.LastName == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name, last_name and password required"})
	}
	if !utils.ValidEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cust := model.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Role:      "customer",
	}
	id, err := h.Customers.Create(ctx, cust, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		c.Logger().Errorf("signup: create customer: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create customer failed"})
	}
	cust.ID = id

	tok, err := utils.NewCustomerToken(h.Cfg.JWTSecret, cust)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusCreated, sessionResp{Customer: cust, Token: tok})
}

// Login verifies the password and returns a 7-day session token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.ValidEmail(req.Email) || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cust, err := h.Customers.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		c.Logger().Errorf("login: query customer: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(cust.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewCustomerToken(h.Cfg.JWTSecret, cust)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, sessionResp{Customer: cust, Token: tok})
}

// SignupAdmin creates an admin account. Admins have no password; they log
// in through the emailed link flow.
func (h *AuthHandler) SignupAdmin(c echo.Context) error {
	var req adminSignupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and last_name required"})
	}
	if !utils.ValidEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a := model.Admin{FirstName: req.FirstName, LastName: req.LastName, Email: req.Email, Phone: req.Phone, Role: "admin"}
	id, err := h.Admins.Create(ctx, a)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		c.Logger().Errorf("signup-admin: create admin: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create admin failed"})
	}
	a.ID = id
	return c.JSON(http.StatusCreated, echo.Map{"admin": a})
}

// LoginAdmin emails a 2-hour verification link to a registered admin.
func (h *AuthHandler) LoginAdmin(c echo.Context) error {
	var req adminLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.ValidEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "admin not found"})
		}
		c.Logger().Errorf("login-admin: query admin: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	tok, err := utils.NewAdminLinkToken(h.Cfg.JWTSecret, a)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	if h.Mailer == nil || !h.Mailer.Enabled() {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "email delivery not configured"})
	}
	link := h.Cfg.BaseURL + "/v1/auth/verify?token=" + tok.Token
	if err := h.Mailer.SendAdminLoginLink(a.Email, link); err != nil {
		log.Printf("login-admin: send link to %s failed: %v", a.Email, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "send email failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "verification link sent"})
}

// Verify validates an emailed admin link token and reissues a 30-minute
// session token.
func (h *AuthHandler) Verify(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("token"))
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}

	claims, err := utils.ParseAdminLinkToken(h.Cfg.JWTSecret, raw)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	id, ok := utils.SubjectID(claims)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Admins.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
		}
		c.Logger().Errorf("verify: load admin: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load admin failed"})
	}

	tok, err := utils.NewAdminSessionToken(h.Cfg.JWTSecret, a)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"admin": a, "token": tok})
}

// ----- Google OAuth -----

const oauthStateCookie = "oauth_state"

// GoogleLogin redirects the browser to Google's consent screen with a
// random state bound to a short-lived cookie.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	oc := h.Cfg.GoogleOAuth()
	if oc == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "google login not configured"})
	}
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "state generation failed"})
	}
	state := hex.EncodeToString(buf)
	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusTemporaryRedirect, oc.AuthCodeURL(state))
}

// googleUserinfo is the subset of Google's userinfo response we use.
type googleUserinfo struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// GoogleCallback exchanges the authorization code, fetches the user's
// profile, upserts the customer and returns a 7-day session token.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	oc := h.Cfg.GoogleOAuth()
	if oc == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "google login not configured"})
	}
	state := c.QueryParam("state")
	cookie, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || cookie.Value != state {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "state mismatch"})
	}
	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tok, err := oc.Exchange(ctx, code)
	if err != nil {
		c.Logger().Errorf("google: code exchange: %v", err)
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "code exchange failed"})
	}

	resp, err := oc.Client(ctx, tok).Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		c.Logger().Errorf("google: fetch userinfo: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "fetch profile failed"})
	}
	defer resp.Body.Close()
	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.Email == "" {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "invalid profile response"})
	}

	cust, err := h.Customers.UpsertOAuth(ctx, info.Email, info.GivenName, info.FamilyName)
	if err != nil {
		c.Logger().Errorf("google: upsert customer: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create customer failed"})
	}

	session, err := utils.NewCustomerToken(h.Cfg.JWTSecret, cust)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, sessionResp{Customer: cust, Token: session})
}
