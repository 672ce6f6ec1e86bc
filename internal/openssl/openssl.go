// Copyright Project Contour Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package openssl builds a cipher.Table from the verbose listing of a local
// openssl binary ("openssl ciphers -V").
package openssl

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/projectcontour/ossl2iana/internal/cipher"
	"github.com/projectcontour/ossl2iana/internal/logging"
)

const (
	// DefaultCommand lists every cipher suite openssl knows, with codes.
	DefaultCommand = "openssl ciphers -V"

	// DefaultTimeout bounds a single listing run.
	DefaultTimeout = 30 * time.Second
)

// Lister produces a raw cipher listing.
type Lister interface {
	List(ctx context.Context) ([]byte, error)
}

// ListerFunc adapts a function to a Lister.
type ListerFunc func(ctx context.Context) ([]byte, error)

// List calls f.
func (f ListerFunc) List(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// ExitError is returned when the listing command exits non-zero.
// Whatever the command wrote before failing is kept.
type ExitError struct {
	Args   []string
	Code   int
	Stdout []byte
	Stderr []byte
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s returned %d", strings.Join(e.Args, " "), e.Code)
	if stderr := strings.TrimSpace(string(e.Stderr)); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// CommandLister runs Command and returns its standard output.
type CommandLister struct {
	// Command is split with shell quoting rules. Empty means DefaultCommand.
	Command string
	// Timeout of zero or less disables the deadline.
	Timeout time.Duration
	Log     logrus.FieldLogger
}

// List implements Lister.
func (c *CommandLister) List(ctx context.Context) ([]byte, error) {
	log := logging.OrDiscard(c.Log)

	command := c.Command
	if command == "" {
		command = DefaultCommand
	}
	args, err := shlex.Split(command)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid openssl command %q", command)
	}
	if len(args) == 0 {
		return nil, errors.New("empty openssl command")
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.WithField("command", strings.Join(args, " ")).Debug("listing openssl ciphers")
	err = cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errors.Wrapf(ctxErr, "%s did not complete", strings.Join(args, " "))
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return stdout.Bytes(), nil
	case errors.As(err, &exitErr):
		return nil, &ExitError{
			Args:   args,
			Code:   exitErr.ExitCode(),
			Stdout: stdout.Bytes(),
			Stderr: stderr.Bytes(),
		}
	default:
		return nil, errors.Wrapf(err, "failed to run %s", strings.Join(args, " "))
	}
}

// LoadOptions controls Load.
type LoadOptions struct {
	// AllowFailure keeps going with the partial output of a listing command
	// that exited non-zero, after logging the failure.
	AllowFailure bool
	Log          logrus.FieldLogger
}

// Load runs lister and parses its output.
func Load(ctx context.Context, lister Lister, opts LoadOptions) (*cipher.Table, error) {
	log := logging.OrDiscard(opts.Log)

	out, err := lister.List(ctx)
	if err != nil {
		var exitErr *ExitError
		if !opts.AllowFailure || !errors.As(err, &exitErr) {
			return nil, errors.Wrap(err, "failed to list openssl ciphers")
		}
		log.WithFields(logrus.Fields{
			"command": strings.Join(exitErr.Args, " "),
			"output":  string(exitErr.Stderr),
		}).Warnf("openssl returned %d", exitErr.Code)
		out = exitErr.Stdout
	}

	table := Parse(out)
	log.WithField("suites", table.Len()).Debug("loaded openssl ciphers")
	return table, nil
}

// Parse reads "openssl ciphers -V" output. Each line holds the code, a
// separator column, the name and then attributes, all whitespace delimited:
//
//	0x00,0x2F - AES128-SHA  TLSv1 Kx=RSA Au=RSA Enc=AES(128) Mac=SHA1
//
// Lines with fewer than three columns are ignored.
func Parse(out []byte) *cipher.Table {
	table := cipher.NewTable()
	text := strings.ToValidUTF8(string(out), "�")
	for _, line := range strings.Split(text, "\n") {
		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}
		table.Set(parts[0], parts[2])
	}
	return table
}
