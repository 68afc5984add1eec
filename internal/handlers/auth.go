package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/models"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/mykafka"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
	Producer  *mykafka.Producer
}

func CreateCookie(name, value, path string, expira time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expira,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Register da de alta un usuario. La contraseña se guarda tal cual llega:
// endurecer el almacenamiento quedó explícitamente fuera de alcance.
func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Nombre   string `json:"nombre"`
		Email    string `json:"email"`
		Password string `json:"password"`
		IDRol    uint   `json:"id_rol"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Cuerpo de la petición inválido", err)
	}

	var existente models.Usuario
	result := h.DB.Where("email = ?", req.Email).First(&existente)
	if result.Error == nil {
		return errorResponse(c, http.StatusBadRequest, "Usuario ya existe", nil)
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return errorResponse(c, http.StatusInternalServerError, "Error al registrar usuario", result.Error)
	}

	usuario := models.Usuario{
		Nombre:     req.Nombre,
		Email:      req.Email,
		Contrasena: req.Password,
		IDRol:      req.IDRol,
	}
	if err := h.DB.Create(&usuario).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Error al registrar usuario", err)
	}

	publish(c, h.Producer, mykafka.TopicUsuarios, fmt.Sprint(usuario.ID), map[string]any{
		"type":       "usuario_registrado",
		"id_usuario": usuario.ID,
		"email":      usuario.Email,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Usuario registrado con éxito"})
}

// Login busca una coincidencia exacta de email y contraseña y emite un
// access token de corta duración.
func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Cuerpo de la petición inválido", err)
	}

	var usuario models.Usuario
	err := h.DB.Where("email = ? AND contrasena = ?", req.Email, req.Password).First(&usuario).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorResponse(c, http.StatusBadRequest, "Usuario o contraseña incorrecta", nil)
	}
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Error al iniciar sesión", err)
	}

	expira := time.Now().Add(15 * time.Minute)
	claims := jwt.MapClaims{
		"sub": usuario.ID,
		"rol": usuario.IDRol,
		"exp": expira.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	firmado, err := token.SignedString(h.JWTSecret)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Error al iniciar sesión", err)
	}

	c.SetCookie(CreateCookie("accessToken", firmado, "/", expira))

	publish(c, h.Producer, mykafka.TopicUsuarios, fmt.Sprint(usuario.ID), map[string]any{
		"type":       "usuario_logueado",
		"id_usuario": usuario.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Login exitoso",
		"user":         usuario,
		"access_token": firmado,
	})
}
