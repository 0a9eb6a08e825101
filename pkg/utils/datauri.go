package utils

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// EncodeDataURI reads r fully and returns it as an inline data URI.
// Photos and sticker images enter the journal this way; there is no
// separate blob storage unless hosted uploads are configured.
func EncodeDataURI(r io.Reader, mimeType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}

// IsDataURI reports whether s looks like an inline data URI.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}
