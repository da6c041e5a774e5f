// Package id generates compact identifiers.
//
// IDs are UUID bytes rendered as 26 lowercase, unpadded base32 characters so
// they stay URL and cookie safe.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// userNamespace scopes name-derived user ids.
var userNamespace = uuid.MustParse("6f1c8a0e-3d0b-4a53-9c55-2a8e1f7b9d41")

// NewID returns a random (UUIDv4) identifier.
func NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return encode(value), nil
}

// UserIDFromName returns a stable (UUIDv5) identifier for a login name.
// Names are compared case-insensitively after trimming.
func UserIDFromName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	return encode(uuid.NewSHA1(userNamespace, []byte(name))), nil
}

func encode(value uuid.UUID) string {
	return strings.ToLower(encoding.EncodeToString(value[:]))
}
