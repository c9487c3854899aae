package hashes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	table := []struct {
		alg      Algorithm
		expected string
	}{
		{alg: MD5, expected: "XUFAKrxLKna5cZ2REBfFkg=="},
		{alg: SHA1, expected: "qvTGHdzF6KLavt4PO0gs2a6pQ00="},
		{alg: SHA256, expected: "LPJNul+wow4m6DsqxbninhsWHlwfp0JecwQzYpOLmCQ="},
		{alg: "MD5", expected: "XUFAKrxLKna5cZ2REBfFkg=="},
	}

	for _, row := range table {
		digest, err := Compute(row.alg, "hello")
		require.NoError(t, err)
		require.Equal(t, row.expected, digest, row.alg)
	}
}

func TestComputeLengths(t *testing.T) {
	digest, err := Compute(SHA384, "hello")
	require.NoError(t, err)
	require.Len(t, digest, 64)

	digest, err = Compute(SHA512, "hello")
	require.NoError(t, err)
	require.Len(t, digest, 88)
}

func TestComputeUnknown(t *testing.T) {
	_, err := Compute("crc32", "hello")
	require.Error(t, err)
}
