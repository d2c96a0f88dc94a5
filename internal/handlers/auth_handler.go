package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/middleware"
	"spendlog/internal/services"
	"spendlog/internal/validator"
)

// AuthHandler handles signup, login and logout forms
type AuthHandler struct {
	userService services.UserServicer
	sessions    *middleware.SessionAuth
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, sessions *middleware.SessionAuth) *AuthHandler {
	return &AuthHandler{userService: userService, sessions: sessions}
}

// SignupForm is the signup form payload
type SignupForm struct {
	Username        string `form:"username" binding:"required,max=150"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password"`
}

// LoginForm is the login form payload
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// ShowSignup renders the signup form
// @Summary     Signup form
// @Tags        auth
// @Produce     html
// @Success     200 {string} string "HTML page"
// @Router      /signup [get]
func (h *AuthHandler) ShowSignup(c *gin.Context) {
	render(c, http.StatusOK, "signup.html", gin.H{"Title": "Sign up"})
}

// Signup creates an account and redirects to the login page
// @Summary     Create an account
// @Tags        auth
// @Accept      x-www-form-urlencoded
// @Produce     html
// @Param       username         formData string true "Username"
// @Param       password         formData string true "Password"
// @Param       confirm_password formData string true "Password again"
// @Success     302 {string} string "Redirect to /login"
// @Failure     400 {string} string "Form re-rendered with an error"
// @Router      /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderSignupError(c, form, apperrors.WithMessage(apperrors.ErrInvalidInput, validator.Message(err)))
		return
	}

	if _, err := h.userService.Signup(form.Username, form.Password, form.ConfirmPassword); err != nil {
		h.renderSignupError(c, form, err)
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) renderSignupError(c *gin.Context, form SignupForm, err error) {
	status, message := errorStatus(c, err)
	render(c, status, "signup.html", gin.H{
		"Title":    "Sign up",
		"Username": form.Username,
		"Error":    message,
	})
}

// ShowLogin renders the login form
// @Summary     Login form
// @Tags        auth
// @Produce     html
// @Success     200 {string} string "HTML page"
// @Router      /login [get]
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in"})
}

// Login authenticates the user and starts a session
// @Summary     Log in
// @Tags        auth
// @Accept      x-www-form-urlencoded
// @Produce     html
// @Param       username formData string true "Username"
// @Param       password formData string true "Password"
// @Success     302 {string} string "Redirect to /list with the session cookie set"
// @Failure     401 {string} string "Form re-rendered with an error"
// @Router      /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	_ = c.ShouldBind(&form)

	user, err := h.userService.Authenticate(form.Username, form.Password)
	if err != nil {
		status, message := errorStatus(c, err)
		render(c, status, "login.html", gin.H{
			"Title":    "Log in",
			"Username": form.Username,
			"Error":    message,
		})
		return
	}

	if err := h.sessions.Login(c, user.ID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/list")
}

// Logout ends the current session
// @Summary     Log out
// @Tags        auth
// @Success     302 {string} string "Redirect to /login"
// @Router      /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c)
	c.Redirect(http.StatusFound, "/login")
}
