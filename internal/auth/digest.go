package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// legacyDigestLen is the length of an unsalted hex SHA-256 digest.
const legacyDigestLen = sha256.Size * 2

// bcryptMaxInput is the longest input bcrypt accepts.
const bcryptMaxInput = 72

// prehash folds a password of any length into 44 bytes for bcrypt.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// hashPassword returns a salted bcrypt digest of password.
func hashPassword(password string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword(prehash(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// checkPassword reports whether password matches digest. legacy is true
// when digest is an old format that should be rehashed: an unsalted
// SHA-256 value, or bcrypt over the raw password.
func checkPassword(digest, password string) (ok, legacy bool, err error) {
	if isLegacyDigest(digest) {
		sum := sha256.Sum256([]byte(password))
		want := hex.EncodeToString(sum[:])
		return subtle.ConstantTimeCompare([]byte(want), []byte(digest)) == 1, true, nil
	}

	ok, err = bcryptMatch(digest, prehash(password))
	if ok || err != nil || len(password) > bcryptMaxInput {
		return ok, false, err
	}
	ok, err = bcryptMatch(digest, []byte(password))
	return ok, ok, err
}

func bcryptMatch(digest string, input []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), input)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("check password: %w", err)
	}
}

func isLegacyDigest(digest string) bool {
	if len(digest) != legacyDigestLen {
		return false
	}
	_, err := hex.DecodeString(digest)
	return err == nil
}
