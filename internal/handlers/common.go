package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/logging"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/mykafka"
)

// ErrorResponse es el cuerpo de todas las respuestas de error de la API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func errorResponse(c echo.Context, code int, mensaje string, err error) error {
	resp := ErrorResponse{Error: mensaje}
	if err != nil {
		resp.Details = err.Error()
	}
	return c.JSON(code, resp)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// publish envía un evento de dominio con un timeout corto. La publicación es
// best-effort: un fallo se registra y la respuesta HTTP no cambia.
func publish(c echo.Context, producer *mykafka.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}
