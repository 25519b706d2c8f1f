package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/autoshop/autoshop-api/internal/domain"
)

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// ValidatePassword enforces the registration rules: at least 8 characters,
// a mix of letters and digits, and nothing containing "password".
func ValidatePassword(plain string) error {
	if len(plain) < 8 {
		return domain.Validationf("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range plain {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return domain.Validationf("password must contain both letters and digits")
	}
	if strings.Contains(strings.ToLower(plain), "password") {
		return domain.Validationf("password is too guessable")
	}
	return nil
}

var bannedEmailSuffixes = []string{"tempmail.com", "disposable.test"}

// ValidateEmail does a light shape check and rejects known throwaway domains.
func ValidateEmail(email string) error {
	local, dom, ok := strings.Cut(email, "@")
	if !ok || local == "" || !strings.Contains(dom, ".") {
		return domain.Validationf("invalid email address")
	}
	dom = strings.ToLower(dom)
	for _, s := range bannedEmailSuffixes {
		if strings.HasSuffix(dom, s) {
			return domain.Validationf("please use a real email address")
		}
	}
	return nil
}
