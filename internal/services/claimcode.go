// internal/services/claimcode.go
package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/pantrypal/pantrypal-backend/internal/store"
)

// maxClaimCodeAttempts bounds the collision-retry loop. With 900,000 possible
// codes, hitting this many collisions in a row means the sales table is in a
// state the generator cannot reason about, so it fails instead of spinning.
const maxClaimCodeAttempts = 20

// generateClaimCode draws a uniform 6-digit code in ["100000", "999999"].
func generateClaimCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate claim code: %w", err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// uniqueClaimCode generates codes until one is unused within the current
// transaction, up to maxClaimCodeAttempts.
func uniqueClaimCode(tx store.Tx) (string, error) {
	for attempt := 0; attempt < maxClaimCodeAttempts; attempt++ {
		code, err := generateClaimCode()
		if err != nil {
			return "", err
		}
		exists, err := tx.ClaimCodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("no unused claim code after %d attempts", maxClaimCodeAttempts)
}
