// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// DeriveKey computes HMAC-SHA256(secret, salt) and returns the raw digest.
//
// It turns one server-held secret into independent keys, one per salt, so a
// value signed under one salt never verifies under another.
//
// Example usage:
//
//	resetKey := utils.DeriveKey(cfg.SecretKey, "password-reset")
func DeriveKey(secret, salt string) []byte {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(salt))
	return h.Sum(nil)
}

// RandomHex returns n random bytes from crypto/rand encoded as 2n hex
// characters.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
