package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows future algorithm migration.
const (
	DomainProgram = "brilir/program/v1"
	DomainSource  = "brilir/source/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes the content-addressed ID of a resolved program.
// Two programs with the same canonical JSON share a fingerprint.
func Fingerprint(p *Program) (string, error) {
	canonical, err := CanonicalProgram(p)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: %w", err)
	}
	return hashWithDomain(DomainProgram, canonical), nil
}

// SourceHash identifies raw upstream input bytes.
func SourceHash(data []byte) string {
	return hashWithDomain(DomainSource, data)
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when the program is known to be well-formed.
func MustFingerprint(p *Program) string {
	id, err := Fingerprint(p)
	if err != nil {
		panic(err)
	}
	return id
}
