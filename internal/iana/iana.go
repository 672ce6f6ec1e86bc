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


// Package iana loads the IANA TLS cipher-suite registry
// (tls-parameters-4.csv) into a cipher.Table.
package iana

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tonistiigi/go-csvvalue"

	"github.com/projectcontour/ossl2iana/internal/cipher"
	"github.com/projectcontour/ossl2iana/internal/logging"
)

// DefaultPath is where the registry export is looked for when no path is
// configured.
const DefaultPath = "./tls-parameters-4.csv"

// rowTerminator separates registry rows. Some Reference fields carry
// bare newlines, so "\n" alone can't be used.
const rowTerminator = "\r\n"

// Registry columns, in file order.
const (
	fieldCode = iota
	fieldName
	fieldDTLSOK
	fieldRecommended
	fieldReference
)

// Load reads the registry at path.
func Load(path string, log logrus.FieldLogger) (*cipher.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open IANA registry")
	}
	defer f.Close()

	table, err := Parse(f, log)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read IANA registry %s", path)
	}
	return table, nil
}

// Parse reads a registry export from r. The first row is a header and is
// skipped. Only code and name are kept; rows that can't provide both are
// dropped.
func Parse(r io.Reader, log logrus.FieldLogger) (*cipher.Table, error) {
	log = logging.OrDiscard(log)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	table := cipher.NewTable()
	rows := strings.Split(string(data), rowTerminator)
	if len(rows) > 0 {
		rows = rows[1:]
	}

	var fields []string
	for i, row := range rows {
		if strings.TrimSpace(row) == "" {
			continue
		}
		// i+2: one for the header, one for 1-based row numbers.
		rowLog := log.WithField("row", i+2)

		fields, err = csvvalue.Fields(row, fields[:0])
		if err != nil {
			rowLog.WithError(err).Warn("skipping unparseable registry row")
			continue
		}
		if len(fields) <= fieldName {
			rowLog.Debugf("skipping registry row with %d fields", len(fields))
			continue
		}
		if len(fields) <= fieldReference {
			rowLog.Debugf("registry row has %d of %d fields", len(fields), fieldReference+1)
		}
		table.Set(fields[fieldCode], fields[fieldName])
	}

	log.WithField("suites", table.Len()).Debug("loaded IANA registry")
	return table, nil
}
