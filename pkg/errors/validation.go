package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxKeyLength bounds store keys so they stay valid file names.
const maxKeyLength = 200

// storeKeyRegex matches the keys stores accept: letters, digits, dot,
// dash and underscore, not starting with a dot.
var storeKeyRegex = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]*$`)

// ValidateStoreKey validates a diagram key before it is used as a file
// name or a database key.
//
// The validation rules are intentionally conservative:
//   - No empty keys
//   - No control characters
//   - No path separators or traversal sequences
//   - No hidden file names
//   - Maximum length of 200 characters
func ValidateStoreKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "diagram key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidKey, "diagram key too long (max %d characters)", maxKeyLength)
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "diagram key contains invalid control characters")
		}
	}
	if strings.Contains(key, "..") {
		return New(ErrCodeInvalidKey, "diagram key cannot contain path traversal sequences (..)")
	}
	if !storeKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidKey, "invalid diagram key: %q", key)
	}
	return nil
}

// storeSchemes lists the URL schemes a store can be opened with.
var storeSchemes = []string{"file://", "redis://", "rediss://", "mongodb://", "mongodb+srv://"}

// ValidateStoreURL validates a store location. Plain paths are accepted
// as file stores.
func ValidateStoreURL(raw string) error {
	if raw == "" {
		return New(ErrCodeInvalidURL, "store URL cannot be empty")
	}
	if !strings.Contains(raw, "://") {
		return nil
	}
	for _, s := range storeSchemes {
		if strings.HasPrefix(raw, s) {
			return nil
		}
	}
	return New(ErrCodeInvalidURL, "unsupported store URL scheme: %q", raw)
}
