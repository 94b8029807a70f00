package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"graduate-showcase-backend/config"
	"graduate-showcase-backend/internal/delivery/http/response"
	"graduate-showcase-backend/internal/domain"
	"graduate-showcase-backend/pkg/apperror"
	"graduate-showcase-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	config *config.Config
	client *http.Client
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, cfg *config.Config) {
	handler := &AuthHandler{
		authUC: authUC,
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", handler.Login)
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/forgot-password", handler.ForgotPassword)
		publicAuth.POST("/reset-password", handler.ResetPassword)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.POST("/sync", handler.SyncProfile)
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.PATCH("/users/:id/role", handler.AssignRole)
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) supabaseURL(path string) string {
	return strings.TrimRight(h.config.SupabaseUrl, "/") + path
}

// callSupabase issues a JSON request against the Supabase Auth API,
// forwarding the client IP and user agent.
func (h *AuthHandler) callSupabase(c *gin.Context, method, rawURL string, body map[string]interface{}, bearer string) (*http.Response, error) {
	jsonBody, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(c.Request.Context(), method, rawURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", h.config.SupabaseKey)
	req.Header.Set("X-Forwarded-For", c.ClientIP())
	req.Header.Set("User-Agent", c.Request.UserAgent())
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	return h.client.Do(req)
}

// supabaseErrorMessage pulls the human-readable message out of a
// Supabase error response body.
func supabaseErrorMessage(resp *http.Response, fallback string) string {
	var errResp map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&errResp)
	if m, ok := errResp["msg"].(string); ok {
		return m
	}
	if m, ok := errResp["error_description"].(string); ok {
		return m
	}
	return fallback
}

// Register godoc
// @Summary      Register a graduate account
// @Description  Creates an account via Supabase Auth. The account is synced locally on first verified login.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration details"
// @Success      201       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	reqBody := map[string]interface{}{
		"email":    req.Email,
		"password": req.Password,
		"data": map[string]interface{}{
			"role": domain.RoleGraduate,
		},
		"options": map[string]interface{}{
			"emailRedirectTo": h.config.FrontendURL + "/auth/callback",
		},
	}

	resp, err := h.callSupabase(c, http.MethodPost, h.supabaseURL("/auth/v1/signup"), reqBody, "")
	if err != nil {
		logger.Log.Error("supabase signup request failed", "error", err)
		c.Error(apperror.New(http.StatusInternalServerError, "Registration service unavailable", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.Error(apperror.BadRequest(supabaseErrorMessage(resp, "Registration failed")))
		return
	}

	var signup struct {
		ID          string `json:"id"`
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&signup); err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Failed to parse response", err))
		return
	}

	msg := "Registration successful. Please check your email to confirm."
	var data interface{}

	if signup.AccessToken != "" {
		// Auto-confirmed account, sync it now.
		user := &domain.User{ID: signup.ID, Email: req.Email, Role: domain.RoleGraduate}
		if err := h.authUC.EnsureUserExists(c.Request.Context(), user); err != nil {
			c.Error(err)
			return
		}
		msg = "Registration successful"
		data = gin.H{"token": signup.AccessToken, "user": user}
	}

	response.Success(c, http.StatusCreated, msg, data)
}

// Login godoc
// @Summary      Log in
// @Description  Exchanges email and password for an access token via Supabase Auth
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login credentials"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	reqBody := map[string]interface{}{
		"email":    req.Email,
		"password": req.Password,
	}

	resp, err := h.callSupabase(c, http.MethodPost, h.supabaseURL("/auth/v1/token?grant_type=password"), reqBody, "")
	if err != nil {
		logger.Log.Error("supabase login request failed", "error", err)
		c.Error(apperror.New(http.StatusInternalServerError, "Login service unavailable", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Keep credential errors generic to avoid account enumeration.
		msg := "Invalid email or password"
		if m := supabaseErrorMessage(resp, msg); m == "Email not confirmed" {
			msg = m
		}
		c.Error(apperror.Unauthorized(msg))
		return
	}

	var session struct {
		User        domain.User `json:"user"`
		AccessToken string      `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Failed to parse login response", err))
		return
	}

	// Role is left empty so an existing role is never overwritten;
	// new users default to graduate.
	user := &domain.User{ID: session.User.ID, Email: session.User.Email}
	if err := h.authUC.EnsureUserExists(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}

	actualUser, err := h.authUC.GetCurrentUser(c.Request.Context(), user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token": session.AccessToken,
		"user":  actualUser,
	})
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword godoc
// @Summary      Request a password reset
// @Description  Sends a password reset email. Always responds with success so account existence is not revealed.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      ForgotPasswordRequest  true  "Email address"
// @Success      200      {object}  response.Response
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	u, _ := url.Parse(h.supabaseURL("/auth/v1/recover"))
	q := u.Query()
	q.Set("redirect_to", h.config.FrontendURL+"/auth/update-password")
	u.RawQuery = q.Encode()

	resp, err := h.callSupabase(c, http.MethodPost, u.String(), map[string]interface{}{"email": req.Email}, "")
	if err != nil {
		logger.Log.Warn("supabase recovery request failed", "error", err)
	} else {
		resp.Body.Close()
	}

	// Same response whether or not the account exists.
	response.Success(c, http.StatusOK, "If an account with that email exists, a password reset link has been sent.", nil)
}

type ResetPasswordRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ResetPassword godoc
// @Summary      Reset password
// @Description  Sets a new password using the access token from the reset email link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      ResetPasswordRequest  true  "Reset details"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	reqBody := map[string]interface{}{"password": req.NewPassword}
	resp, err := h.callSupabase(c, http.MethodPut, h.supabaseURL("/auth/v1/user"), reqBody, req.AccessToken)
	if err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Password update service unavailable", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.Error(apperror.BadRequest(supabaseErrorMessage(resp, "Password reset failed")))
		return
	}

	response.Success(c, http.StatusOK, "Password has been reset. You can now log in with your new password.", nil)
}

// SyncProfile godoc
// @Summary      Sync my account
// @Description  Ensures the authenticated account exists in the local database
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.User}
// @Router       /auth/sync [post]
func (h *AuthHandler) SyncProfile(c *gin.Context) {
	user := &domain.User{
		ID:    c.GetString(string(domain.KeyUserID)),
		Email: c.GetString(string(domain.KeyUserEmail)),
		Role:  c.GetString(string(domain.KeyUserRole)),
	}

	if err := h.authUC.EnsureUserExists(c, user); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Account synced", user)
}

// Me godoc
// @Summary      Get my account
// @Description  Returns the authenticated account record
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      404  {object}  response.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c, c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Account details", user)
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// AssignRole godoc
// @Summary      Assign a role to an account
// @Description  Sets an account's role (graduate or admin). Administrators only.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string             true  "User ID"
// @Param        request  body      AssignRoleRequest  true  "Role"
// @Success      200      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /auth/users/{id}/role [patch]
func (h *AuthHandler) AssignRole(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.Error(apperror.BadRequest("User ID is required"))
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	if err := h.authUC.AssignRole(c, userID, req.Role); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, fmt.Sprintf("Role set to %s", req.Role), nil)
}
