package domain

import "strings"

// SignerOptions is the closed set of signatory labels, in display order.
// The first entry is the default selection.
var SignerOptions = []string{
	"TRÉSORIER : RAJA TARIQ",
	"PRÉSIDENT : ALI ASIF",
}

// signerByEmail maps normalized identity emails to a forced signatory label.
// Static: no runtime mutation.
var signerByEmail = map[string]string{
	"tariq@test.fr": "TRÉSORIER : RAJA TARIQ",
	"asif@test.fr":  "PRÉSIDENT : ALI ASIF",
}

// NormalizeEmail trims and lowercases an email for table lookups.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ForcedSigner returns the label imposed by the identity's email, if any.
func ForcedSigner(identityEmail string) (string, bool) {
	label, ok := signerByEmail[NormalizeEmail(identityEmail)]
	if !ok || !isSignerOption(label) {
		return "", false
	}
	return label, true
}

// ResolveSigner returns the signatory label for a submission. A mapping for
// the signed-in identity always wins over the submitted selection, so a
// stale selection can never be persisted. Unmapped identities may choose any
// option; anything else falls back to the default.
func ResolveSigner(identityEmail, userSelection string) string {
	if forced, ok := ForcedSigner(identityEmail); ok {
		return forced
	}
	selection := strings.TrimSpace(userSelection)
	if isSignerOption(selection) {
		return selection
	}
	return SignerOptions[0]
}

func isSignerOption(label string) bool {
	for _, opt := range SignerOptions {
		if opt == label {
			return true
		}
	}
	return false
}
