package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintDeterministic(t *testing.T) {
	a, err := Fingerprint(sampleProgram())
	require.NoError(t, err)
	b, err := Fingerprint(sampleProgram())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestFingerprintChangesWithContent(t *testing.T) {
	p := sampleProgram()
	before := MustFingerprint(p)

	p.Functions[0].Instrs[4] = Constant{Dest: "z", Type: Int{}, Value: IntLit(1)}
	assert.NotEqual(t, before, MustFingerprint(p))
}

func TestFingerprintSeesPositions(t *testing.T) {
	p := sampleProgram()
	before := MustFingerprint(p)

	p.Functions[0].Pos = nil
	assert.NotEqual(t, before, MustFingerprint(p))
}

func TestFingerprintMatchesCanonicalHash(t *testing.T) {
	canonical, err := CanonicalProgram(sampleProgram())
	require.NoError(t, err)

	h := sha256.New()
	h.Write([]byte(DomainProgram))
	h.Write([]byte{0x00})
	h.Write(canonical)
	assert.Equal(t, hex.EncodeToString(h.Sum(nil)), MustFingerprint(sampleProgram()))
}

func TestSourceHashDomainSeparated(t *testing.T) {
	data := []byte(`{"functions":[]}`)
	assert.Equal(t, SourceHash(data), SourceHash(data))
	assert.NotEqual(t, hashWithDomain(DomainProgram, data), SourceHash(data))
	assert.NotEqual(t, SourceHash(data), SourceHash(append(data, ' ')))
}

func TestHashWithDomainNullSeparator(t *testing.T) {
	// "ab" + "c" must not collide with "a" + "bc".
	assert.NotEqual(t, hashWithDomain("ab", []byte("c")), hashWithDomain("a", []byte("bc")))
}

func TestMustFingerprintPanics(t *testing.T) {
	bad := &Program{Functions: []Function{{Name: "f", Args: []Argument{{Name: "a"}}}}}
	assert.Panics(t, func() { MustFingerprint(bad) })
}
