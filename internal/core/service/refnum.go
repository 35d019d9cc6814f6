package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

const refSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferenceNumber returns a human-readable case reference in the
// format SRV-<millis>-<5 alphanumeric>. The format alone does not
// guarantee uniqueness; callers reserve the number (Redis SETNX) and the
// store enforces a unique index as the final guard.
func GenerateReferenceNumber() string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive the suffix from the clock
		return fmt.Sprintf("SRV-%d-%05X", time.Now().UnixMilli(), time.Now().UnixNano()&0xFFFFF)
	}
	for i := range b {
		b[i] = refSuffixAlphabet[int(b[i])%len(refSuffixAlphabet)]
	}
	return fmt.Sprintf("SRV-%d-%s", time.Now().UnixMilli(), b)
}
