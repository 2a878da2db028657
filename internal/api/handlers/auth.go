// auth.go — обработчики /api/v1/auth endpoints и публичного JWKS.
// Вход, сессия, ротация refresh-токена, выход, восстановление пароля.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apierrors "github.com/mstechy/gorex360/portal-module/internal/api/errors"
	"github.com/mstechy/gorex360/portal-module/internal/api/generated"
	"github.com/mstechy/gorex360/portal-module/internal/api/middleware"
	"github.com/mstechy/gorex360/portal-module/internal/auth"
)

// SignIn — POST /api/v1/auth/sign-in.
// Проверяет пару email/пароль и выпускает пару токенов.
// Доступ: публичный.
func (h *APIHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req generated.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if req.Email == "" || req.Password == "" {
		apierrors.ValidationError(w, "email и password обязательны")
		return
	}

	pair, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			apierrors.Unauthorized(w, "Неверный email или пароль")
			return
		}
		h.logger.Error("Ошибка входа", "error", err)
		apierrors.InternalError(w, "Ошибка аутентификации")
		return
	}

	writeJSON(w, http.StatusOK, mapTokenPair(pair))
}

// GetSession — GET /api/v1/auth/session.
// Возвращает сведения о текущей аутентифицированной сессии.
// Доступ: аутентифицированные пользователи.
func (h *APIHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		apierrors.Unauthorized(w, "Требуется аутентификация")
		return
	}

	writeJSON(w, http.StatusOK, generated.SessionResponse{
		AccountId: claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
	})
}

// RefreshSession — POST /api/v1/auth/refresh.
// Ротирует refresh-сессию: старый токен отзывается, выпускается новая пара.
// Доступ: публичный (предъявление refresh-токена).
func (h *APIHandler) RefreshSession(w http.ResponseWriter, r *http.Request) {
	var req generated.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if req.RefreshToken == "" {
		apierrors.ValidationError(w, "refresh_token обязателен")
		return
	}

	pair, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidSession) {
			apierrors.Unauthorized(w, "Недействительная сессия")
			return
		}
		h.logger.Error("Ошибка ротации сессии", "error", err)
		apierrors.InternalError(w, "Ошибка обновления сессии")
		return
	}

	writeJSON(w, http.StatusOK, mapTokenPair(pair))
}

// SignOut — POST /api/v1/auth/sign-out.
// Отзывает refresh-сессию. Идемпотентен.
// Доступ: публичный (предъявление refresh-токена).
func (h *APIHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	var req generated.SignOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if req.RefreshToken == "" {
		apierrors.ValidationError(w, "refresh_token обязателен")
		return
	}

	if err := h.auth.SignOut(r.Context(), req.RefreshToken); err != nil {
		h.logger.Error("Ошибка выхода", "error", err)
		apierrors.InternalError(w, "Ошибка завершения сессии")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RequestPasswordReset — POST /api/v1/auth/password-reset.
// Выпускает одноразовый токен восстановления и отправляет его на email.
// Ответ одинаков для существующих и несуществующих адресов.
// Доступ: публичный.
func (h *APIHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req generated.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if req.Email == "" {
		apierrors.ValidationError(w, "email обязателен")
		return
	}

	if err := h.auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.logger.Error("Ошибка запроса восстановления пароля", "error", err)
		apierrors.InternalError(w, "Ошибка запроса восстановления пароля")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// UpdatePassword — PUT /api/v1/auth/password.
// Два режима: по токену восстановления (публичный) или по текущему
// паролю аутентифицированной сессии.
func (h *APIHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req generated.PasswordUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if req.NewPassword == "" {
		apierrors.ValidationError(w, "new_password обязателен")
		return
	}

	var err error
	switch {
	case req.Token != nil && *req.Token != "":
		err = h.auth.ResetPassword(r.Context(), *req.Token, req.NewPassword)

	case req.CurrentPassword != nil && *req.CurrentPassword != "":
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			apierrors.Unauthorized(w, "Требуется аутентификация")
			return
		}
		err = h.auth.ChangePassword(r.Context(), claims.Subject, *req.CurrentPassword, req.NewPassword)

	default:
		apierrors.ValidationError(w, "Требуется token или current_password")
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidResetToken):
			apierrors.Unauthorized(w, "Недействительный токен восстановления")
		case errors.Is(err, auth.ErrInvalidCredentials):
			apierrors.Unauthorized(w, "Неверный текущий пароль")
		case errors.Is(err, auth.ErrWeakPassword):
			apierrors.ValidationError(w, err.Error())
		default:
			h.logger.Error("Ошибка смены пароля", "error", err)
			apierrors.InternalError(w, "Ошибка смены пароля")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetJWKS — GET /.well-known/jwks.json.
// Публичный набор ключей для проверки подписей access-токенов.
// Доступ: публичный.
func (h *APIHandler) GetJWKS(w http.ResponseWriter, r *http.Request) {
	raw, err := h.issuer.JWKS(r.Context())
	if err != nil {
		h.logger.Error("Ошибка сериализации JWKS", "error", err)
		apierrors.InternalError(w, "Ошибка получения JWKS")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// mapTokenPair конвертирует auth.TokenPair в generated API type.
func mapTokenPair(pair *auth.TokenPair) generated.TokenResponse {
	return generated.TokenResponse{
		AccessToken:  pair.AccessToken,
		ExpiresAt:    pair.ExpiresAt,
		RefreshToken: pair.RefreshToken,
		Email:        pair.Email,
		Role:         pair.Role,
	}
}
