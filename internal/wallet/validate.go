package wallet

import "strings"

// ValidatePassword rejects blank passwords.
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return &InputError{Field: "password", Reason: "must not be blank"}
	}
	return nil
}

// ValidateSeed rejects blank seed phrases.
func ValidateSeed(seed string) error {
	if strings.TrimSpace(seed) == "" {
		return &InputError{Field: "seed", Reason: "must not be blank"}
	}
	return nil
}

// NormalizePhrase lower-cases a seed phrase and collapses whitespace.
func NormalizePhrase(seed string) string {
	return strings.Join(strings.Fields(strings.ToLower(seed)), " ")
}
