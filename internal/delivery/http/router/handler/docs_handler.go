package handler

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"francheasy/config"
	"francheasy/internal/delivery/http/response"
	"francheasy/internal/infra/docs"

	"github.com/labstack/echo/v4"
)

const docsSessionCookie = "docs_session"

// DocsHandler gates the API documentation page behind a shared API key.
type DocsHandler struct {
	apiKey   string
	sessions *docs.SessionRegistry
	logger   *slog.Logger
}

// NewDocsHandler is the constructor for DocsHandler, injected by Fx.
func NewDocsHandler(cfg *config.Config, sessions *docs.SessionRegistry, logger *slog.Logger) *DocsHandler {
	apiKey := ""
	if cfg.Docs != nil {
		apiKey = cfg.Docs.APIKey
	}

	return &DocsHandler{apiKey: apiKey, sessions: sessions, logger: logger}
}

const docsLoginPage = `<!DOCTYPE html>
<html>
<head><title>API Docs</title></head>
<body>
<form method="post" action="/docs/auth">
  <label>API key: <input type="password" name="api_key"></label>
  <button type="submit">Open docs</button>
</form>
</body>
</html>`

const docsSwaggerPage = `<!DOCTYPE html>
<html>
<head>
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
  SwaggerUIBundle({url: "/openapi.json", dom_id: "#swagger-ui"});
</script>
</body>
</html>`

// Page serves the docs UI, or the key prompt when there is no session.
func (h *DocsHandler) Page(c echo.Context) error {
	if !h.hasSession(c) {
		return c.HTML(http.StatusOK, docsLoginPage)
	}

	return c.HTML(http.StatusOK, docsSwaggerPage)
}

// Login exchanges the shared API key for a docs session cookie.
func (h *DocsHandler) Login(c echo.Context) error {
	key := c.FormValue("api_key")
	if h.apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.apiKey)) != 1 {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid API key")
	}

	token, err := h.sessions.CreateSession()
	if err != nil {
		h.logger.Error("Failed to create docs session", slog.Any("error", err))

		return response.InternalServerError(c, "INTERNAL_ERROR", "Failed to create session")
	}

	c.SetCookie(&http.Cookie{
		Name:     docsSessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(docs.SessionTTL),
	})

	return c.Redirect(http.StatusFound, "/docs")
}

// Logout drops the docs session.
func (h *DocsHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(docsSessionCookie); err == nil {
		h.sessions.Remove(cookie.Value)
	}
	c.SetCookie(&http.Cookie{
		Name:     docsSessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	return c.Redirect(http.StatusFound, "/docs")
}

// OpenAPI serves the API description to docs sessions or X-API-Key callers.
func (h *DocsHandler) OpenAPI(c echo.Context) error {
	if !h.hasSession(c) && !h.hasHeaderKey(c) {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Docs access requires a session or API key")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "Francheasy API",
			"version": "1.0.0",
		},
		"paths": map[string]any{},
	})
}

func (h *DocsHandler) hasSession(c echo.Context) bool {
	cookie, err := c.Cookie(docsSessionCookie)
	if err != nil {
		return false
	}

	return h.sessions.IsValid(cookie.Value)
}

func (h *DocsHandler) hasHeaderKey(c echo.Context) bool {
	key := c.Request().Header.Get("X-API-Key")

	return h.apiKey != "" && subtle.ConstantTimeCompare([]byte(key), []byte(h.apiKey)) == 1
}
