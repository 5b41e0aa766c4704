package controllers

import (
	"net/http"
	"time"

	"github.com/favourfurniture/storefront/app/services"
	"github.com/favourfurniture/storefront/pkg/auth"
	"github.com/favourfurniture/storefront/pkg/bind"
	"github.com/favourfurniture/storefront/pkg/middleware"
	"github.com/favourfurniture/storefront/pkg/response"
)

// AuthController serves registration, login, logout and profile.
type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

// setTokenCookie issues the session cookie browser clients rely on.
func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.TokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.service.Register(in)
	if err != nil {
		writeServiceError(w, err, "User not found")
		return
	}

	setTokenCookie(w, token)
	response.Created(w, "Registration successful", map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.service.Login(in.Email, in.Password)
	if err != nil {
		writeServiceError(w, err, "User not found")
		return
	}

	setTokenCookie(w, token)
	response.SuccessMessage(w, "Login successful", map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Logout handles POST /api/auth/logout by expiring the session cookie.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	response.SuccessMessage(w, "Logged out", nil)
}

// Profile handles GET /api/auth/me.
func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.service.Profile(userID)
	if err != nil {
		writeServiceError(w, err, "User not found")
		return
	}
	response.Success(w, user)
}
