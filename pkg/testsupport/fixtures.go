package testsupport

import (
	"encoding/json"
	"os"
)

// LoadFixture reads a testdata document, dialect input or expected Markdown,
// as raw bytes.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadGolden decodes a JSON golden file, typically recorded diagnostics,
// into v.
func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
