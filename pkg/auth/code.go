package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ResetCodeLength is the number of digits in a password-reset code.
const ResetCodeLength = 6

var resetCodeMax = big.NewInt(1_000_000)

// GenerateResetCode returns a cryptographically unpredictable zero-padded
// 6-digit numeric code.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, resetCodeMax)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
