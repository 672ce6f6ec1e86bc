package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectcontour/ossl2iana/internal/logging"
	"github.com/projectcontour/ossl2iana/internal/openssl"
)

const registry = "Value,Description,DTLS-OK,Recommended,Reference\r\n" +
	"\"0x00,0x2F\",TLS_RSA_WITH_AES_128_CBC_SHA,Y,N,[RFC5246]\r\n"

const listing = `sh -c 'printf "0x00,0x2F - AES128-SHA SSLv3 Kx=RSA\n0x00,0x81 - GOST2001-GOST89-GOST89 SSLv3 Kx=GOST\n"'`

func writeRegistry(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tls-parameters-4.csv")
	require.NoError(t, os.WriteFile(path, []byte(registry), 0o600))
	return path
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	cfg := config{
		ianaFile:       writeRegistry(t),
		opensslCommand: listing,
		ciphersuites:   "AES128-SHA:BOGUS-CIPHER:GOST2001-GOST89-GOST89",
	}
	require.NoError(t, run(context.Background(), cfg, &out, nil))

	want := "\nOpenSSL names:\nAES128-SHA\nGOST2001-GOST89-GOST89\n" +
		"\nUnknown names\nBOGUS-CIPHER\n" +
		"\nIANA names:\nTLS_RSA_WITH_AES_128_CBC_SHA\n" +
		"\nCould not find IANA equivalent:\nBOGUS-CIPHER\nGOST2001-GOST89-GOST89\n"
	assert.Equal(t, want, out.String())
}

func TestRunMissingRegistry(t *testing.T) {
	var out bytes.Buffer
	cfg := config{
		ianaFile:       filepath.Join(t.TempDir(), "missing.csv"),
		opensslCommand: listing,
		ciphersuites:   "AES128-SHA",
	}
	err := run(context.Background(), cfg, &out, nil)
	require.Error(t, err)
	assert.Empty(t, out.String())
}

func TestRunOpenSSLFailure(t *testing.T) {
	failing := `sh -c 'printf "0x00,0x2F - AES128-SHA SSLv3\n"; echo "bad cipher" >&2; exit 1'`

	t.Run("fatal by default", func(t *testing.T) {
		var out bytes.Buffer
		cfg := config{ianaFile: writeRegistry(t), opensslCommand: failing, ciphersuites: "AES128-SHA"}
		err := run(context.Background(), cfg, &out, nil)

		var exitErr *openssl.ExitError
		require.True(t, errors.As(err, &exitErr), "got %v", err)
		assert.Equal(t, 1, exitErr.Code)
		assert.Empty(t, out.String())
	})

	t.Run("allowed", func(t *testing.T) {
		var out, logs bytes.Buffer
		cfg := config{
			ianaFile:       writeRegistry(t),
			opensslCommand: failing,
			allowFailure:   true,
			ciphersuites:   "AES128-SHA",
		}
		require.NoError(t, run(context.Background(), cfg, &out, logging.New(&logs, false)))
		assert.Contains(t, out.String(), "TLS_RSA_WITH_AES_128_CBC_SHA")
		assert.Contains(t, logs.String(), "openssl returned 1")
		assert.Contains(t, logs.String(), "bad cipher")
	})
}
