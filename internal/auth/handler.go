package auth

import (
	"net/http"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/transport"
	"github.com/frahmantamala/planforge/pkg/logger"
)

const SessionIDHeader = "X-Session-ID"

// CookieConfig controls the session cookie written after a delegated sign-in.
type CookieConfig struct {
	Name   string
	Secure bool
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Resolver *Resolver
	Cookie   CookieConfig
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, resolver *Resolver, cookie CookieConfig) *Handler {
	if cookie.Name == "" {
		cookie.Name = resolver.CookieName()
	}
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Resolver:    resolver,
		Cookie:      cookie,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	tokens, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	actor, _ := internal.UserFromContext(r.Context())
	u, err := h.Service.Register(r.Context(), actor, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrInvalidCredentials)
		return
	}
	h.WriteJSON(w, http.StatusOK, actor)
}

func (h *Handler) ProcessSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.ProcessSession(r.Context(), r.Header.Get(SessionIDHeader))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(result.SessionToken, result.MaxAge))
	h.WriteJSON(w, http.StatusOK, SessionResponse{
		Success: true,
		User:    result.User,
		Message: "Authentication successful",
	})
}

// Logout clears the session cookie. It succeeds with or without a session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(h.Cookie.Name); err == nil {
		h.Service.Logout(r.Context(), c.Value)
	}

	http.SetCookie(w, h.sessionCookie("", -1))
	h.WriteJSON(w, http.StatusOK, LogoutResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

func (h *Handler) SessionCheck(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(h.Cookie.Name); err == nil {
		token = c.Value
	}
	h.WriteJSON(w, http.StatusOK, h.Service.SessionCheck(r.Context(), token))
}

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteNoneMode,
	}
}

// AuthMiddleware resolves the caller and stores it on the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := h.Resolver.Resolve(r)
		if err != nil {
			h.Logger.Debug("auth middleware: request not authenticated", "path", r.URL.Path)
			h.HandleServiceError(w, err)
			return
		}

		ctx := internal.ContextWithUser(r.Context(), u)
		ctx = logger.With(ctx, "user_id", u.ID, "role", string(u.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
