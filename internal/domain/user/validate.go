package user

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field validation mirrors the registration and login forms: errors are
// keyed by field name and rendered inline next to the input, never as a
// toast.

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern  = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ\s]+$`)
)

// ValidateLogin checks the sign-in form fields. A nil map means the form
// is valid.
func ValidateLogin(email, password string) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(email) == "" {
		errs["email"] = "El email es requerido"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "Email inválido"
	}

	if password == "" {
		errs["password"] = "La contraseña es requerida"
	} else if utf8.RuneCountInString(password) < 6 {
		errs["password"] = "La contraseña debe tener al menos 6 caracteres"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateRegistration checks the sign-up form fields.
func ValidateRegistration(displayName, email, password, confirmPassword string) map[string]string {
	errs := make(map[string]string)

	trimmedName := strings.TrimSpace(displayName)
	if trimmedName == "" {
		errs["fullName"] = "El nombre es requerido"
	} else if utf8.RuneCountInString(trimmedName) < 2 {
		errs["fullName"] = "El nombre debe tener al menos 2 caracteres"
	} else if !namePattern.MatchString(trimmedName) {
		errs["fullName"] = "Solo se permiten letras y espacios"
	}

	if strings.TrimSpace(email) == "" {
		errs["email"] = "El email es requerido"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "Email inválido"
	}

	if password == "" {
		errs["password"] = "La contraseña es requerida"
	} else if utf8.RuneCountInString(password) < 8 {
		errs["password"] = "La contraseña debe tener al menos 8 caracteres"
	}

	if confirmPassword == "" {
		errs["confirmPassword"] = "Confirma tu contraseña"
	} else if password != confirmPassword {
		errs["confirmPassword"] = "Las contraseñas no coinciden"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateDisplayName checks a profile display-name update.
func ValidateDisplayName(displayName string) map[string]string {
	trimmed := strings.TrimSpace(displayName)
	switch {
	case trimmed == "":
		return map[string]string{"displayName": "El nombre es requerido"}
	case utf8.RuneCountInString(trimmed) < 2:
		return map[string]string{"displayName": "El nombre debe tener al menos 2 caracteres"}
	case !namePattern.MatchString(trimmed):
		return map[string]string{"displayName": "Solo se permiten letras y espacios"}
	}
	return nil
}
