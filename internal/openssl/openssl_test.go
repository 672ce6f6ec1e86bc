package openssl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/projectcontour/ossl2iana/internal/cipher"
)

const listing = `          0x13,0x02 - TLS_AES_256_GCM_SHA384         TLSv1.3 Kx=any      Au=any   Enc=AESGCM(256)            Mac=AEAD
          0xC0,0x2F - ECDHE-RSA-AES128-GCM-SHA256    TLSv1.2 Kx=ECDH     Au=RSA   Enc=AESGCM(128)            Mac=AEAD

          0x00,0x2F - AES128-SHA                     SSLv3   Kx=RSA      Au=RSA   Enc=AES(128)               Mac=SHA1
`

func TestParse(t *testing.T) {
	tests := map[string]struct {
		in   string
		want []cipher.Entry
	}{
		"empty": {
			in:   "",
			want: []cipher.Entry{},
		},
		"verbose listing": {
			in: listing,
			want: []cipher.Entry{
				{Code: "0x13,0x02", Name: "TLS_AES_256_GCM_SHA384"},
				{Code: "0xC0,0x2F", Name: "ECDHE-RSA-AES128-GCM-SHA256"},
				{Code: "0x00,0x2F", Name: "AES128-SHA"},
			},
		},
		"short lines skipped": {
			in: "0x00,0x2F -\n   \n0x00,0x35 - AES256-SHA\n",
			want: []cipher.Entry{
				{Code: "0x00,0x35", Name: "AES256-SHA"},
			},
		},
		"tabs and crlf": {
			in: "0x00,0x35\t-\tAES256-SHA\tSSLv3\r\n",
			want: []cipher.Entry{
				{Code: "0x00,0x35", Name: "AES256-SHA"},
			},
		},
		"later duplicate overwrites": {
			in: "0x00,0x2F - OLD SSLv3\n0x00,0x2F - AES128-SHA SSLv3\n",
			want: []cipher.Entry{
				{Code: "0x00,0x2F", Name: "AES128-SHA"},
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Parse([]byte(tc.in)).Entries()
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("entries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	lister := ListerFunc(func(context.Context) ([]byte, error) {
		return []byte(listing), nil
	})
	table, err := Load(context.Background(), lister, LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if name, ok := table.Get("0x00,0x2F"); !ok || name != "AES128-SHA" {
		t.Fatalf("Get(0x00,0x2F) = %q, %v", name, ok)
	}
}

func TestLoadFailure(t *testing.T) {
	failing := ListerFunc(func(context.Context) ([]byte, error) {
		return nil, &ExitError{
			Args:   []string{"openssl", "ciphers", "-V"},
			Code:   1,
			Stdout: []byte("0x00,0x2F - AES128-SHA SSLv3\n"),
			Stderr: []byte("Error in cipher list"),
		}
	})

	t.Run("fatal by default", func(t *testing.T) {
		_, err := Load(context.Background(), failing, LoadOptions{})
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("expected *ExitError, got %v", err)
		}
		if exitErr.Code != 1 {
			t.Fatalf("exit code = %d, want 1", exitErr.Code)
		}
	})

	t.Run("allowed failure keeps partial output", func(t *testing.T) {
		var buf bytes.Buffer
		log := logrus.New()
		log.SetOutput(&buf)

		table, err := Load(context.Background(), failing, LoadOptions{AllowFailure: true, Log: log})
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"0x00,0x2F"}, table.Codes()); diff != "" {
			t.Fatalf("codes mismatch (-want +got):\n%s", diff)
		}
		for _, want := range []string{"openssl returned 1", "Error in cipher list", "openssl ciphers -V"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("log %q does not mention %q", buf.String(), want)
			}
		}
	})

	t.Run("other errors stay fatal", func(t *testing.T) {
		broken := ListerFunc(func(context.Context) ([]byte, error) {
			return nil, errors.New("exec: not found")
		})
		if _, err := Load(context.Background(), broken, LoadOptions{AllowFailure: true}); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestCommandLister(t *testing.T) {
	t.Run("stdout captured", func(t *testing.T) {
		l := &CommandLister{Command: `sh -c 'printf "0x00,0x2F - AES128-SHA SSLv3\n"'`}
		out, err := l.List(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if got := string(out); got != "0x00,0x2F - AES128-SHA SSLv3\n" {
			t.Fatalf("unexpected output %q", got)
		}
	})

	t.Run("non-zero exit", func(t *testing.T) {
		l := &CommandLister{Command: `sh -c 'echo partial; echo boom >&2; exit 3'`}
		_, err := l.List(context.Background())
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("expected *ExitError, got %v", err)
		}
		if exitErr.Code != 3 {
			t.Errorf("exit code = %d, want 3", exitErr.Code)
		}
		if string(exitErr.Stdout) != "partial\n" || string(exitErr.Stderr) != "boom\n" {
			t.Errorf("unexpected captured output %q / %q", exitErr.Stdout, exitErr.Stderr)
		}
		if !strings.Contains(exitErr.Error(), "returned 3: boom") {
			t.Errorf("unexpected message %q", exitErr.Error())
		}
	})

	t.Run("timeout", func(t *testing.T) {
		l := &CommandLister{Command: "sleep 5", Timeout: 50 * time.Millisecond}
		_, err := l.List(context.Background())
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected a deadline error, got %v", err)
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		l := &CommandLister{Command: "ossl2iana-no-such-binary ciphers -V"}
		_, err := l.List(context.Background())
		if err == nil {
			t.Fatal("expected an error")
		}
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			t.Fatal("a missing binary is not an exit status")
		}
	})

	t.Run("unbalanced quotes", func(t *testing.T) {
		l := &CommandLister{Command: `openssl "ciphers`}
		if _, err := l.List(context.Background()); err == nil {
			t.Fatal("expected an error")
		}
	})
}
