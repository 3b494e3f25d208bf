package mail

import (
	"testing"

	"curiouslife/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewSMTPMailer_RecipientFallback(t *testing.T) {
	m := NewSMTPMailer(&config.Config{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		SMTPUser: "relay@example.com",
	})
	assert.Equal(t, "relay@example.com", m.recipient)

	m = NewSMTPMailer(&config.Config{
		SMTPHost:         "smtp.example.com",
		SMTPPort:         587,
		SMTPUser:         "relay@example.com",
		ContactRecipient: "owner@example.com",
	})
	assert.Equal(t, "owner@example.com", m.recipient)
}

func TestSendContact_Unconfigured(t *testing.T) {
	m := NewSMTPMailer(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587})
	err := m.SendContact("A", "a@b.co", "hi")
	assert.Error(t, err, "must refuse to send without a configured sender")
}

func TestContactHTML_EscapesUserInput(t *testing.T) {
	got := contactHTML("<script>x</script>", "a@b.co", "line one\n<b>bold</b>")

	assert.NotContains(t, got, "<script>")
	assert.NotContains(t, got, "<b>bold</b>")
	assert.Contains(t, got, "&lt;script&gt;")
	assert.Contains(t, got, "line one<br>")
}
