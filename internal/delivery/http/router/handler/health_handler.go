package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports process liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
