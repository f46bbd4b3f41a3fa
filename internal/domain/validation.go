package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	maxEmailLen    = 255
	maxPasswordLen = 1024
	maxNameLen     = 255
)

// NormalizeEmail: сравнение email регистронезависимое.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func ValidEmail(s string) bool {
	return len(s) <= maxEmailLen && emailRe.MatchString(s)
}

func ValidPassword(s string) bool {
	return s != "" && len(s) <= maxPasswordLen
}

// ValidName проверяет имя папки/файла: 1..255 символов, не пустое после trim.
func ValidName(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return utf8.RuneCountInString(s) <= maxNameLen
}
