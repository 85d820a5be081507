package review

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"jembox-bot/internal/telegram/messages"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minReasonLength = 10

// parseCredentials разбирает ввод оператора вида "email | пароль".
// При ошибке возвращает готовое сообщение для повторного запроса.
func parseCredentials(text string) (email, password, errMsg string) {
	if !strings.Contains(text, "|") {
		return "", "", messages.CredentialsNoDelimiter
	}

	parts := strings.Split(text, "|")
	if len(parts) != 2 {
		return "", "", messages.CredentialsTooManyParts
	}

	email = strings.TrimSpace(parts[0])
	password = strings.TrimSpace(parts[1])
	if email == "" || password == "" {
		return "", "", messages.CredentialsEmptyField
	}

	if !emailRegex.MatchString(email) {
		return "", "", messages.CredentialsBadEmail
	}

	return email, password, ""
}

// parseReason проверяет причину отклонения: минимум 10 символов после обрезки пробелов.
func parseReason(text string) (reason, errMsg string) {
	reason = strings.TrimSpace(text)
	if utf8.RuneCountInString(reason) < minReasonLength {
		return "", messages.ReasonTooShort
	}

	return reason, ""
}
