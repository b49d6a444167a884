package auth

import (
	"errors"
	"net/http"

	"github.com/pixelforge/backoffice/internal/client/api"
)

// Kind classifies login failures so the UI layer can render the right
// message without inspecting HTTP details.
type Kind int

const (
	// KindInvalidCredentials — неверный логин или пароль (HTTP 401)
	KindInvalidCredentials Kind = iota

	// KindForbidden — учетной записи не хватает прав (HTTP 403)
	KindForbidden

	// KindServer — ошибка на стороне бэкенда (HTTP >= 500), можно повторить
	KindServer

	// KindNetwork — сеть недоступна, таймаут или нераспознанный ответ
	KindNetwork
)

// Error is the structured login failure returned by Service.Login.
// It is a result value, not a panic: callers render it inline.
type Error struct {
	cause error
	Msg   string
	Kind  Kind
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// classifyLoginError maps a transport error onto the failure taxonomy
func classifyLoginError(err error) *Error {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode == http.StatusUnauthorized:
			return &Error{Kind: KindInvalidCredentials, Msg: "invalid username or password", cause: err}
		case httpErr.StatusCode == http.StatusForbidden:
			return &Error{Kind: KindForbidden, Msg: "account lacks permission", cause: err}
		case httpErr.StatusCode >= 500:
			return &Error{Kind: KindServer, Msg: "server error, please try again later", cause: err}
		}
	}
	return &Error{Kind: KindNetwork, Msg: "login failed, please try again", cause: err}
}
