package usecase

import (
	"crypto/rand"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pookie/pookie/domain/entity"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// generateLogID builds ids like "activity-1717171717171-k3j9x2a": write time
// in millis plus a random base36 suffix. Collision probability is treated as
// negligible, not eliminated.
func generateLogID(prefix string) string {
	buf := make([]byte, 7)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; a timestamp-only
		// id is still unique enough for a log line.
		return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
	}
	for i, b := range buf {
		buf[i] = base36Alphabet[int(b)%len(base36Alphabet)]
	}
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), buf)
}

// sortByTimestampDesc stable-sorts entries newest first. Entries whose
// timestamps do not parse sort as oldest and keep their insertion order
// relative to each other.
func sortByTimestampDesc[T any](entries []T, timestamp func(T) string) {
	sort.SliceStable(entries, func(i, j int) bool {
		ti, erri := time.Parse(time.RFC3339, timestamp(entries[i]))
		tj, errj := time.Parse(time.RFC3339, timestamp(entries[j]))
		if erri != nil || errj != nil {
			return erri == nil && errj != nil
		}
		return ti.After(tj)
	})
}

// providerForEmail derives the auth provider from the email domain
func providerForEmail(email string) entity.AuthProvider {
	lower := strings.ToLower(email)
	if strings.HasSuffix(lower, "@gmail.com") || strings.HasSuffix(lower, "@googlemail.com") {
		return entity.ProviderGoogle
	}
	return entity.ProviderCredentials
}

// displayNameFromEmail turns the local part of an email into a readable name:
// digits and punctuation become spaces and each word is title-cased.
func displayNameFromEmail(email string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return ' '
		case r == '_' || r == '.' || r == '-':
			return ' '
		}
		return r
	}, local)

	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return "User"
	}
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// firstNameFromEmail extracts a single greeting name from an email
func firstNameFromEmail(email string) string {
	name := displayNameFromEmail(email)
	if name == "User" {
		return "there"
	}
	return strings.Fields(name)[0]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
