package review

import (
	"testing"

	"jembox-bot/internal/telegram/messages"
)

func TestParseCredentials(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantEmail    string
		wantPassword string
		wantErrMsg   string
	}{
		{
			name:         "valid input",
			input:        "netflix@gmail.com|Pass1234",
			wantEmail:    "netflix@gmail.com",
			wantPassword: "Pass1234",
		},
		{
			name:         "spaces around parts trimmed",
			input:        "  user@mail.ru  |  secret123  ",
			wantEmail:    "user@mail.ru",
			wantPassword: "secret123",
		},
		{
			name:       "no delimiter",
			input:      "user@mail.ru secret123",
			wantErrMsg: messages.CredentialsNoDelimiter,
		},
		{
			name:       "too many parts",
			input:      "a@b.com|pass|extra",
			wantErrMsg: messages.CredentialsTooManyParts,
		},
		{
			name:       "empty email",
			input:      "|password",
			wantErrMsg: messages.CredentialsEmptyField,
		},
		{
			name:       "empty password",
			input:      "a@b.com|",
			wantErrMsg: messages.CredentialsEmptyField,
		},
		{
			name:       "whitespace only password",
			input:      "a@b.com|   ",
			wantErrMsg: messages.CredentialsEmptyField,
		},
		{
			name:       "email without at",
			input:      "not-an-email|password",
			wantErrMsg: messages.CredentialsBadEmail,
		},
		{
			name:       "email without domain dot",
			input:      "user@localhost|password",
			wantErrMsg: messages.CredentialsBadEmail,
		},
		{
			name:       "email with inner space",
			input:      "us er@mail.ru|password",
			wantErrMsg: messages.CredentialsBadEmail,
		},
		{
			// пустое поле проверяется раньше формата email
			name:       "both empty reports empty field not bad email",
			input:      " | ",
			wantErrMsg: messages.CredentialsEmptyField,
		},
		{
			// отсутствие разделителя проверяется первым
			name:       "garbage without delimiter",
			input:      "",
			wantErrMsg: messages.CredentialsNoDelimiter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, password, errMsg := parseCredentials(tt.input)
			if errMsg != tt.wantErrMsg {
				t.Fatalf("parseCredentials(%q) errMsg = %q, want %q", tt.input, errMsg, tt.wantErrMsg)
			}
			if email != tt.wantEmail {
				t.Errorf("parseCredentials(%q) email = %q, want %q", tt.input, email, tt.wantEmail)
			}
			if password != tt.wantPassword {
				t.Errorf("parseCredentials(%q) password = %q, want %q", tt.input, password, tt.wantPassword)
			}
		})
	}
}

func TestParseReason(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantReason string
		wantErrMsg string
	}{
		{
			name:       "valid reason",
			input:      "Скриншот оплаты не читается",
			wantReason: "Скриншот оплаты не читается",
		},
		{
			name:       "exactly ten runes",
			input:      "0123456789",
			wantReason: "0123456789",
		},
		{
			// длина считается в символах, не в байтах
			name:       "ten cyrillic runes",
			input:      "неразборчи",
			wantReason: "неразборчи",
		},
		{
			name:       "nine runes too short",
			input:      "012345678",
			wantErrMsg: messages.ReasonTooShort,
		},
		{
			name:       "padding spaces do not count",
			input:      "   короткая    ",
			wantErrMsg: messages.ReasonTooShort,
		},
		{
			name:       "empty",
			input:      "",
			wantErrMsg: messages.ReasonTooShort,
		},
		{
			name:       "trimmed reason returned",
			input:      "  платеж не найден в выписке  ",
			wantReason: "платеж не найден в выписке",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, errMsg := parseReason(tt.input)
			if errMsg != tt.wantErrMsg {
				t.Fatalf("parseReason(%q) errMsg = %q, want %q", tt.input, errMsg, tt.wantErrMsg)
			}
			if reason != tt.wantReason {
				t.Errorf("parseReason(%q) reason = %q, want %q", tt.input, reason, tt.wantReason)
			}
		})
	}
}
