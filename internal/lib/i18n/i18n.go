package i18n

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Localizer — read-only доступ к локализованным строкам.
// Get никогда не падает: для неизвестного ключа возвращается сам ключ,
// чтобы вызывающий код мог продолжить работу.
type Localizer interface {
	Get(key string) string
}

// Bundle — плоская таблица ключ → строка, загруженная из YAML-файла.
type Bundle struct {
	messages map[string]string
}

// Load читает файл локализации. Формат — плоский YAML-словарь.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale file: %w", err)
	}

	messages := make(map[string]string)
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse locale file %s: %w", path, err)
	}

	return &Bundle{messages: messages}, nil
}

// NewBundle собирает Bundle из готовой таблицы, используется в тестах.
func NewBundle(messages map[string]string) *Bundle {
	return &Bundle{messages: messages}
}

func (b *Bundle) Get(key string) string {
	if msg, ok := b.messages[key]; ok {
		return msg
	}
	return key
}
