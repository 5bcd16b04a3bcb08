package token

import (
    "testing"

    "github.com/stretchr/testify/require"
)

func TestFormatUnits(t *testing.T) {
    cases := []struct {
        raw  string
        dec  int32
        want string
    }{
        {"", 9, "0"},
        {"0", 9, "0"},
        {"1000000000", 9, "1"},
        {"1500000000", 9, "1.5"},
        {"812345678", 9, "0.812345678"},
        {"1", 9, "0.000000001"},
        {"123456789012345678901234567890", 9, "123456789012345678901.23456789"},
        {"42", 0, "42"},
    }
    for _, c := range cases {
        require.Equalf(t, c.want, FormatUnits(c.raw, c.dec), "FormatUnits(%q, %d)", c.raw, c.dec)
    }
}

func TestParseUnits(t *testing.T) {
    got, err := ParseUnits("1", 9)
    require.NoError(t, err)
    require.Equal(t, "1000000000", got)

    got, err = ParseUnits("0.0000000019", 9)
    require.NoError(t, err)
    require.Equal(t, "1", got)

    got, err = ParseUnits("12345678.5", 9)
    require.NoError(t, err)
    require.Equal(t, "12345678500000000", got)

    _, err = ParseUnits("-1", 9)
    require.ErrorIs(t, err, ErrInvalidAmount)

    _, err = ParseUnits("one", 9)
    require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestLookup(t *testing.T) {
    tok, ok := Lookup("jitosol")
    require.True(t, ok)
    require.Equal(t, JitoSOL, tok)

    tok, ok = Lookup(SOL.Mint)
    require.True(t, ok)
    require.Equal(t, "SOL", tok.Symbol)

    _, ok = Lookup("BONK")
    require.False(t, ok)
}

func TestValidateMint(t *testing.T) {
    require.NoError(t, ValidateMint(SOL.Mint))
    require.NoError(t, ValidateMint(JitoSOL.Mint))
    require.Error(t, ValidateMint("not-a-mint"))
    require.Error(t, ValidateMint("0OIl"))
    require.Error(t, ValidateMint(""))
}
