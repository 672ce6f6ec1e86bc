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


// Package translator translates cipher-suite names between the OpenSSL and
// IANA naming schemes through their shared codes.
package translator

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/projectcontour/ossl2iana/internal/cipher"
)

// Converter looks names up in one table and translates them through the
// other. Lookups are exact and case sensitive.
type Converter struct {
	iana    *cipher.Table
	openssl *cipher.Table

	// name -> code, built once. The first code in table order wins when
	// two codes share a name.
	ianaCodes    map[string]string
	opensslCodes map[string]string
}

// New builds a Converter over the two tables. The tables must not be
// modified afterwards.
func New(iana, openssl *cipher.Table) *Converter {
	return &Converter{
		iana:         iana,
		openssl:      openssl,
		ianaCodes:    reverse(iana),
		opensslCodes: reverse(openssl),
	}
}

func reverse(t *cipher.Table) map[string]string {
	codes := make(map[string]string, t.Len())
	for _, e := range t.Entries() {
		if _, ok := codes[e.Name]; ok {
			continue
		}
		codes[e.Name] = e.Code
	}
	return codes
}

// ValidateOpenSSL reports whether name is an OpenSSL cipher-suite name.
func (c *Converter) ValidateOpenSSL(name string) bool {
	_, ok := c.opensslCodes[name]
	return ok
}

// FromOpenSSL returns the IANA name for an OpenSSL name. It reports false
// when the name is unknown to OpenSSL or its code has no IANA entry.
func (c *Converter) FromOpenSSL(name string) (string, bool) {
	code, ok := c.opensslCodes[name]
	if !ok {
		return "", false
	}
	return c.iana.Get(code)
}

// ValidateIANA reports whether name is an IANA cipher-suite name.
func (c *Converter) ValidateIANA(name string) bool {
	_, ok := c.ianaCodes[name]
	return ok
}

// ToOpenSSL returns the OpenSSL name for an IANA name.
func (c *Converter) ToOpenSSL(name string) (string, bool) {
	code, ok := c.ianaCodes[name]
	if !ok {
		return "", false
	}
	return c.openssl.Get(code)
}

// Mapping is one code with its name in each scheme. A missing name is empty.
type Mapping struct {
	Code    string `json:"code"`
	IANA    string `json:"iana"`
	OpenSSL string `json:"openssl"`
}

// Complete reports whether the code is named in both schemes.
func (m Mapping) Complete() bool {
	return m.IANA != "" && m.OpenSSL != ""
}

// Join returns every code known to either table, sorted by code.
func (c *Converter) Join() []Mapping {
	codes := sets.NewString(c.iana.Codes()...)
	codes.Insert(c.openssl.Codes()...)

	mappings := make([]Mapping, 0, codes.Len())
	for _, code := range codes.List() {
		m := Mapping{Code: code}
		m.IANA, _ = c.iana.Get(code)
		m.OpenSSL, _ = c.openssl.Get(code)
		mappings = append(mappings, m)
	}
	return mappings
}
