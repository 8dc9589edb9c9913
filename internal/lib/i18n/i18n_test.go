package i18n_test

import (
	"os"
	"testing"

	"github.com/linemk/points-ledger/internal/lib/i18n"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Success(t *testing.T) {
	content := `
pointType0Label: "Initial Grant"
pointType0DesLabel: "Received {point} points"
`
	tmpFile, err := os.CreateTemp("", "locale_test_*.yaml")
	assert.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString(content)
	assert.NoError(t, err)
	assert.NoError(t, tmpFile.Close())

	bundle, err := i18n.Load(tmpFile.Name())
	assert.NoError(t, err)
	assert.Equal(t, "Initial Grant", bundle.Get("pointType0Label"))
	assert.Equal(t, "Received {point} points", bundle.Get("pointType0DesLabel"))
}

// Неизвестный ключ не должен ломать вызывающий код: возвращается сам ключ.
func TestGet_UnknownKeyFallsBack(t *testing.T) {
	bundle := i18n.NewBundle(map[string]string{"known": "value"})
	assert.Equal(t, "value", bundle.Get("known"))
	assert.Equal(t, "pointType42Label", bundle.Get("pointType42Label"))
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := i18n.Load("non_existent_locale.yaml")
	assert.Error(t, err)
}
