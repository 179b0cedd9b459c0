package privacy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactSensitiveData(t *testing.T) {
	in := "Contact john.doe@example.com or call 555-123-4567. " +
		"Card: 4111 1111 1111 1111, SSN 123-45-6789."

	out := RedactSensitiveData(in)

	assert.NotContains(t, out, "john.doe@example.com")
	assert.NotContains(t, out, "4111 1111 1111 1111")
	assert.NotContains(t, out, "123-45-6789")
	assert.Contains(t, out, "[REDACTED_EMAIL]")
	assert.Contains(t, out, "[REDACTED_CC]")
	assert.Contains(t, out, "[REDACTED_SSN]")
	assert.Contains(t, out, "[REDACTED_PHONE]")
}

func TestRedactSensitiveDataLeavesPlainTextAlone(t *testing.T) {
	in := "Sony WH-1000XM5 purchased at Croma for 24990 on 15 March 2026"
	assert.Equal(t, in, RedactSensitiveData(in))
}

func TestRedactSensitiveDataEmpty(t *testing.T) {
	assert.Equal(t, "", RedactSensitiveData(""))
}

func TestRedactSensitiveDataKeepsSurroundingText(t *testing.T) {
	out := RedactSensitiveData("Order confirmation for a@b.com, thank you")
	assert.True(t, strings.HasPrefix(out, "Order confirmation for "))
	assert.True(t, strings.HasSuffix(out, ", thank you"))
}
