package file

import (
	"fmt"
	"os"
)

// Reader implements ports.SourceReader with os.ReadFile.
type Reader struct{}

// NewReader creates a filesystem source reader.
func NewReader() Reader {
	return Reader{}
}

// ReadFile returns the whole content of path.
func (Reader) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
