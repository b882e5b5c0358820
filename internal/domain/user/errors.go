package user

// AuthError is a stable authentication failure: a provider-neutral code
// plus the user-facing message shown by the front-end. The messages are
// product copy and must match the client exactly.
type AuthError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AuthError) Error() string { return e.Code }

var (
	ErrUserNotFound    = &AuthError{Code: "auth/user-not-found", Message: "No existe una cuenta con este email"}
	ErrWrongPassword   = &AuthError{Code: "auth/wrong-password", Message: "Contraseña incorrecta"}
	ErrInvalidEmail    = &AuthError{Code: "auth/invalid-email", Message: "Email inválido"}
	ErrTooManyRequests = &AuthError{Code: "auth/too-many-requests", Message: "Demasiados intentos. Intenta más tarde"}
	ErrEmailInUse      = &AuthError{Code: "auth/email-already-in-use", Message: "Ya existe una cuenta con este email"}
	ErrWeakPassword    = &AuthError{Code: "auth/weak-password", Message: "La contraseña es muy débil"}

	// Fallbacks when the failure does not map to a known code.
	ErrSignInFailed = &AuthError{Code: "auth/sign-in-failed", Message: "Verifica tus credenciales"}
	ErrSignUpFailed = &AuthError{Code: "auth/sign-up-failed", Message: "Error inesperado. Intenta de nuevo"}
)
