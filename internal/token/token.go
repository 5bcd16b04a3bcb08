// Package token knows the mints the service quotes by default and converts
// between smallest-unit integers and human-readable decimals.
package token

import (
    "errors"
    "fmt"
    "strings"

    "github.com/gagliardetto/solana-go"
    "github.com/shopspring/decimal"
)

// Token is a fungible SPL token.
type Token struct {
    Symbol   string
    Mint     string
    Decimals int32
}

var (
    SOL     = Token{Symbol: "SOL", Mint: "So11111111111111111111111111111111111111112", Decimals: 9}
    JitoSOL = Token{Symbol: "JitoSOL", Mint: "J1toso1uCk3RLmjorhTtrVwY9HJ7X8V9yYac6Y7kGCPn", Decimals: 9}
)

var known = []Token{SOL, JitoSOL}

// Lookup finds a known token by symbol (case-insensitive) or mint.
func Lookup(s string) (Token, bool) {
    for _, t := range known {
        if strings.EqualFold(t.Symbol, s) || t.Mint == s {
            return t, true
        }
    }
    return Token{}, false
}

// ValidateMint checks that s is a base58 encoded 32-byte public key.
func ValidateMint(s string) error {
    if _, err := solana.PublicKeyFromBase58(s); err != nil {
        return fmt.Errorf("invalid mint %q: %w", s, err)
    }
    return nil
}

var ErrInvalidAmount = errors.New("invalid amount")

// FormatUnits renders a smallest-unit integer as a decimal string without
// trailing zeros, e.g. FormatUnits("1500000000", 9) == "1.5".
func FormatUnits(raw string, decimals int32) string {
    raw = strings.TrimSpace(raw)
    if raw == "" || raw == "0" {
        return "0"
    }
    d, err := decimal.NewFromString(raw)
    if err != nil {
        return raw
    }
    return d.Shift(-decimals).String()
}

// ParseUnits converts a human decimal into a smallest-unit integer string.
// Precision beyond decimals is truncated.
func ParseUnits(human string, decimals int32) (string, error) {
    d, err := decimal.NewFromString(strings.TrimSpace(human))
    if err != nil {
        return "", fmt.Errorf("%w: %q", ErrInvalidAmount, human)
    }
    if d.IsNegative() {
        return "", fmt.Errorf("%w: %q is negative", ErrInvalidAmount, human)
    }
    return d.Shift(decimals).Truncate(0).String(), nil
}
