package api

// LoginRequest представляет запрос на аутентификацию сотрудника.
// Имена полей в теле запроса задает бэкенд (PascalCase).
type LoginRequest struct {
	Username string `json:"TaiKhoan"` // учетная запись
	Password string `json:"MatKhau"`  // пароль
}

// LoginResponse представляет ответ на успешный логин
type LoginResponse struct {
	Token        string           `json:"token"`        // JWT access token
	RefreshToken string           `json:"refreshToken"` // opaque refresh token
	User         UserInfoResponse `json:"user"`         // данные сотрудника
}

// RefreshResponse представляет ответ на обмен refresh token
type RefreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
