package code

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Generator produces one-time verification codes and the expiry timestamps
// for codes and session tokens. Durations are injected at construction so no
// package-level state is involved.
type Generator struct {
	codeTTL    time.Duration
	sessionTTL time.Duration
}

func NewGenerator(codeTTL, sessionTTL time.Duration) *Generator {
	return &Generator{codeTTL: codeTTL, sessionTTL: sessionTTL}
}

// Generate returns a uniformly random 6-digit code in [100000, 999999].
// Codes are drawn from crypto/rand: a 6-digit secret is guessable enough
// without also being predictable.
func (g *Generator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// CodeExpiry returns the absolute expiry for a freshly issued code.
func (g *Generator) CodeExpiry() time.Time {
	return time.Now().UTC().Add(g.codeTTL)
}

// SessionExpiry returns the absolute expiry for a freshly minted session token.
func (g *Generator) SessionExpiry() time.Time {
	return time.Now().UTC().Add(g.sessionTTL)
}

// IsExpired reports whether the given Unix-seconds expiry lies in the past.
func (g *Generator) IsExpired(expiresAt int64) bool {
	return time.Now().UTC().Unix() > expiresAt
}

// Format renders a 6-digit code as XXX-XXX for display in emails.
// Codes of any other length pass through unchanged.
func Format(code string) string {
	if len(code) == 6 {
		return code[:3] + "-" + code[3:]
	}
	return code
}
