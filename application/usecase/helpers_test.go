package usecase

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pookie/pookie/domain/entity"
)

func TestGenerateLogIDFormat(t *testing.T) {
	idPattern := regexp.MustCompile(`^notif-\d{13,}-[0-9a-z]{7}$`)

	id := generateLogID("notif")
	assert.True(t, idPattern.MatchString(id), "unexpected id format: %s", id)
}

func TestProviderForEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected entity.AuthProvider
	}{
		{"fati@gmail.com", entity.ProviderGoogle},
		{"Fati@GMAIL.com", entity.ProviderGoogle},
		{"fati@googlemail.com", entity.ProviderGoogle},
		{"fati@example.com", entity.ProviderCredentials},
		{"gmail.com@example.org", entity.ProviderCredentials},
		{"", entity.ProviderCredentials},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, providerForEmail(tt.email), "email %q", tt.email)
	}
}

func TestDisplayNameFromEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"jane.doe@example.com", "Jane Doe"},
		{"jane_doe42@example.com", "Jane Doe"},
		{"JANE@example.com", "Jane"},
		{"12345@example.com", "User"},
		{"", "User"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, displayNameFromEmail(tt.email), "email %q", tt.email)
	}
}

func TestFirstNameFromEmail(t *testing.T) {
	assert.Equal(t, "Jane", firstNameFromEmail("jane.doe@example.com"))
	assert.Equal(t, "there", firstNameFromEmail("99@example.com"))
}
