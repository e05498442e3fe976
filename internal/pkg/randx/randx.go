/*
Package randx generates identifiers: pin ids and object storage keys for pin images.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// ImageKeyPrefix is the storage folder holding pin images.
	ImageKeyPrefix = "pins/"

	// imageSuffixLength is the length of the random Base62 part of an image key.
	imageSuffixLength = 10
)

// PinID generates a UUID v4 string identifying a pin.
func PinID() string {
	return uuid.New().String()
}

// Base62 returns a random Base62 string of length n using crypto/rand.
func Base62(n int) (string, error) {
	result := make([]byte, n)

	for i := range n {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// ImageKey builds the storage key "pins/<userID>/<random><ext>" for an image uploaded by userID.
// The extension of fileName is kept, lower-cased.
func ImageKey(userID, fileName string) (string, error) {
	suffix, err := Base62(imageSuffixLength)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(fileName))

	return ImageKeyPrefix + userID + "/" + suffix + ext, nil
}

// IsImageKeyOf reports whether key was produced by ImageKey for userID.
func IsImageKeyOf(key, userID string) bool {
	prefix := ImageKeyPrefix + userID + "/"
	if !strings.HasPrefix(key, prefix) {
		return false
	}

	rest := key[len(prefix):]
	name := strings.TrimSuffix(rest, filepath.Ext(rest))
	if len(name) != imageSuffixLength {
		return false
	}

	for _, char := range name {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}
