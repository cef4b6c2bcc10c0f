package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidPhone(t *testing.T) {
	require.True(t, IsValidPhone("0912345678"))
	require.True(t, IsValidPhone("+251912345678"))

	require.False(t, IsValidPhone("0812345678"))
	require.False(t, IsValidPhone("091234567"))
	require.False(t, IsValidPhone("09123456789"))
	require.False(t, IsValidPhone("+251812345678"))
	require.False(t, IsValidPhone(""))
}

func TestNormalizePhone(t *testing.T) {
	require.Equal(t, "+251912345678", NormalizePhone("0912345678"))
	require.Equal(t, "+251912345678", NormalizePhone("+251912345678"))
}

func TestCapitalizeWords(t *testing.T) {
	require.Equal(t, "Acme Facility Services", CapitalizeWords("  acme FACILITY services "))
	require.Equal(t, "Maintenance", CapitalizeWords("MAINTENANCE"))
	require.Equal(t, "", CapitalizeWords("   "))
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "ops@acme.com", NormalizeEmail("  Ops@Acme.COM "))
}
