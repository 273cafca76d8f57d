package service

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateRegisterInput(t *testing.T) {
	t.Parallel()

	valid := RegisterInput{
		Email:     "vpupkin@yandex.ru",
		Username:  "vasya.pupkin",
		FirstName: "Вася",
		LastName:  "Пупкин",
		Password:  "Qwerty123",
	}

	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		wantErr error
	}{
		{"valid", func(in *RegisterInput) {}, nil},
		{"empty email", func(in *RegisterInput) { in.Email = "" }, ErrInvalidEmail},
		{"malformed email", func(in *RegisterInput) { in.Email = "not-an-email" }, ErrInvalidEmail},
		{"email too long", func(in *RegisterInput) {
			in.Email = strings.Repeat("a", 250) + "@b.ru"
		}, ErrInvalidEmail},
		{"empty username", func(in *RegisterInput) { in.Username = "" }, ErrInvalidUsername},
		{"username bad chars", func(in *RegisterInput) { in.Username = "vasya pupkin" }, ErrInvalidUsername},
		{"username too long", func(in *RegisterInput) {
			in.Username = strings.Repeat("a", 151)
		}, ErrInvalidUsername},
		{"empty first name", func(in *RegisterInput) { in.FirstName = "" }, ErrInvalidName},
		{"empty last name", func(in *RegisterInput) { in.LastName = "" }, ErrInvalidName},
		{"short password", func(in *RegisterInput) { in.Password = "short" }, ErrInvalidPassword},
		{"empty password", func(in *RegisterInput) { in.Password = "" }, ErrInvalidPassword},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := valid
			tt.mutate(&input)

			err := validateRegisterInput(input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateRegisterInput() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRegisterInput_UsernameCharset(t *testing.T) {
	t.Parallel()

	// The username pattern allows letters, digits and .@+-_
	allowed := []string{"vasya.pupkin", "user@host", "a+b", "a-b", "a_b", "User123"}
	for _, username := range allowed {
		input := RegisterInput{
			Email:     "ok@example.com",
			Username:  username,
			FirstName: "A",
			LastName:  "B",
			Password:  "Qwerty123",
		}
		if err := validateRegisterInput(input); err != nil {
			t.Errorf("username %q should be valid, got %v", username, err)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	if err := validatePassword("1234567"); !errors.Is(err, ErrInvalidPassword) {
		t.Error("7 chars should be rejected")
	}
	if err := validatePassword("12345678"); err != nil {
		t.Errorf("8 chars should be accepted, got %v", err)
	}
	if err := validatePassword(strings.Repeat("x", 151)); !errors.Is(err, ErrInvalidPassword) {
		t.Error("151 chars should be rejected")
	}
}
