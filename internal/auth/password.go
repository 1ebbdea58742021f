package auth

import "regexp"

var (
	emailRegex       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	specialCharRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPassword: минимум 8 символов и хотя бы один спецсимвол
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	return specialCharRegex.MatchString(password)
}
