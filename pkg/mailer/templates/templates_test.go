package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nareshkanna-nk/Young-wealth/config"
)

func TestRenderWelcome(t *testing.T) {
	cfg := &config.Config{CompanyName: "Young Wealth", AppName: "yw"}
	data := NewWelcomeData(cfg, "Asha <Rao>", "asha@example.com", "college-student")

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)
	require.Equal(t, "Welcome to Young Wealth", subject)
	require.Contains(t, text, "Account type: College Student")
	require.Contains(t, html, "Asha &lt;Rao&gt;")
	require.NotContains(t, html, "<Rao>")
}

func TestRenderAccountDeactivated(t *testing.T) {
	cfg := &config.Config{}
	at := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	data := NewAccountDeactivatedData(cfg, "", "x@example.com", WithTime(at))

	subject, text, _, err := Render(AccountDeactivated, data)
	require.NoError(t, err)
	require.Equal(t, "Your Young Wealth account was deactivated", subject)
	require.True(t, strings.HasPrefix(text, "Hi there,"))
	require.Contains(t, text, "04 March 2026, 10:30 UTC")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", map[string]any{})
	require.Error(t, err)
}
