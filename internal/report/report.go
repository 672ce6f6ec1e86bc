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


// Package report classifies a list of cipher-suite names and prints what
// they translate to.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/projectcontour/ossl2iana/internal/translator"
)

// Separator joins names in a cipher list, as in "AES128-SHA:AES256-SHA".
const Separator = ":"

// Split breaks a cipher list into names. An empty list yields one empty name.
func Split(list string) []string {
	return strings.Split(list, Separator)
}

// Headings title the report sections.
type Headings struct {
	Known      string
	Unknown    string
	Translated string
	Missing    string
}

var (
	// OpenSSLToIANA titles a report on OpenSSL names.
	OpenSSLToIANA = Headings{
		Known:      "OpenSSL names:",
		Unknown:    "Unknown names",
		Translated: "IANA names:",
		Missing:    "Could not find IANA equivalent:",
	}

	// IANAToOpenSSL titles a report on IANA names.
	IANAToOpenSSL = Headings{
		Known:      "IANA names:",
		Unknown:    "Unknown names",
		Translated: "OpenSSL names:",
		Missing:    "Could not find OpenSSL equivalent:",
	}
)

// Report holds the outcome for each queried name, in query order.
type Report struct {
	Headings Headings

	// Known and Unknown partition the queried names.
	Known   []string
	Unknown []string
	// Translated holds the equivalent of every name that has one.
	Translated []string
	// Missing holds the queried names without an equivalent.
	Missing []string
}

// Build reports on OpenSSL names.
func Build(c *translator.Converter, names []string) *Report {
	return build(OpenSSLToIANA, names, c.ValidateOpenSSL, c.FromOpenSSL)
}

// BuildReverse reports on IANA names.
func BuildReverse(c *translator.Converter, names []string) *Report {
	return build(IANAToOpenSSL, names, c.ValidateIANA, c.ToOpenSSL)
}

func build(h Headings, names []string, validate func(string) bool, translate func(string) (string, bool)) *Report {
	r := &Report{Headings: h}
	for _, name := range names {
		if validate(name) {
			r.Known = append(r.Known, name)
		} else {
			r.Unknown = append(r.Unknown, name)
		}
	}
	for _, name := range names {
		if translated, ok := translate(name); ok {
			r.Translated = append(r.Translated, translated)
		} else {
			r.Missing = append(r.Missing, name)
		}
	}
	return r
}

// Write prints the report. The Unknown and Missing sections only appear
// when they have entries.
func (r *Report) Write(w io.Writer) error {
	var buf bytes.Buffer

	section(&buf, r.Headings.Known, r.Known)
	if len(r.Unknown) > 0 {
		section(&buf, r.Headings.Unknown, r.Unknown)
	}
	section(&buf, r.Headings.Translated, r.Translated)
	if len(r.Missing) > 0 {
		section(&buf, r.Headings.Missing, r.Missing)
	}

	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "failed to write report")
}

func section(buf *bytes.Buffer, heading string, names []string) {
	fmt.Fprintf(buf, "\n%s\n", heading)
	for _, name := range names {
		fmt.Fprintln(buf, name)
	}
}
