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


// Package cipher holds the code -> name tables shared by the IANA and
// OpenSSL loaders.
package cipher

// Entry pairs a cipher-suite code, like "0x00,0x2F", with the name one
// naming scheme gives it.
type Entry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Table maps cipher-suite codes to names.
// Codes are iterated in the order they were first set.
type Table struct {
	codes []string
	names map[string]string
}

// NewTable returns a Table populated with entries, in order.
func NewTable(entries ...Entry) *Table {
	t := &Table{
		names: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		t.Set(e.Code, e.Name)
	}
	return t
}

// Set records name for code. Setting an existing code replaces its name
// but keeps its position.
func (t *Table) Set(code, name string) {
	if t.names == nil {
		t.names = make(map[string]string)
	}
	if _, ok := t.names[code]; !ok {
		t.codes = append(t.codes, code)
	}
	t.names[code] = name
}

// Get returns the name recorded for code.
func (t *Table) Get(code string) (string, bool) {
	if t == nil {
		return "", false
	}
	name, ok := t.names[code]
	return name, ok
}

// Len returns the number of distinct codes.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.codes)
}

// Codes returns a copy of the codes in insertion order.
func (t *Table) Codes() []string {
	if t == nil {
		return nil
	}
	codes := make([]string, len(t.codes))
	copy(codes, t.codes)
	return codes
}

// Entries returns the table contents in insertion order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	entries := make([]Entry, 0, len(t.codes))
	for _, code := range t.codes {
		entries = append(entries, Entry{Code: code, Name: t.names[code]})
	}
	return entries
}
