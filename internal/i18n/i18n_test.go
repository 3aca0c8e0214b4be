package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {
	assert.Contains(t, Locales(), "en")
	assert.Contains(t, Locales(), "vi")

	assert.NotEqual(t, "mail.response.subject", T("en", "mail.response.subject"),
		"known keys resolve to translated strings")
	assert.NotEqual(t, T("en", "mail.response.subject"), T("vi", "mail.response.subject"))

	// Unknown locale falls back to the default locale.
	assert.Equal(t, T("en", "mail.response.subject"), T("xx", "mail.response.subject"))

	// Unknown key falls back to the key itself.
	assert.Equal(t, "no.such.key", T("en", "no.such.key"))
}
