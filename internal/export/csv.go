// Package export writes member record sets to CSV files inside a
// restricted output directory.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leveneer/congress-member-data/internal/congress"
	"github.com/leveneer/congress-member-data/internal/errors"
)

// columns is the fixed, ordered CSV column set. Unknown upstream fields
// are dropped; missing values render empty.
var columns = []string{"bioguideId", "name", "party", "state", "district", "chamber", "url"}

// Filename generates the standard output filename:
// members_{congress}_{chamber|All}[_{STATE}].csv
func Filename(congressNum int, chamber, state string) string {
	parts := []string{"members", strconv.Itoa(congressNum)}
	if chamber != "" {
		parts = append(parts, chamber)
	} else {
		parts = append(parts, "All")
	}
	if state != "" {
		parts = append(parts, strings.ToUpper(state))
	}
	return strings.Join(parts, "_") + ".csv"
}

// WriteCSV writes members to name inside dir, creating dir if needed,
// and returns the path written. Absolute paths are rejected before any
// write; only the base name of name is used, confining output to dir.
// An empty member set writes nothing and returns "".
func WriteCSV(members []congress.Member, dir, name string) (string, error) {
	if len(members) == 0 {
		return "", nil
	}

	if filepath.IsAbs(name) {
		return "", errors.New(errors.ErrorTypeFileSystem, errors.SeverityCritical,
			fmt.Sprintf("cannot write to absolute path: %s", name))
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.FileSystemErrorf(err, "creating output directory %s", dir)
	}

	path := filepath.Join(dir, filepath.Base(name))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.FileSystemErrorf(err, "writing to %s", path)
	}

	w := csv.NewWriter(f)
	w.Write(columns)
	for _, m := range members {
		w.Write([]string{
			m.BioguideID,
			m.Name,
			m.Party,
			m.State,
			string(m.District),
			congress.CurrentChamber(m),
			m.URL,
		})
	}
	w.Flush()

	werr := w.Error()
	cerr := f.Close()
	if werr != nil {
		return "", errors.FileSystemErrorf(werr, "writing to %s", path)
	}
	if cerr != nil {
		return "", errors.FileSystemErrorf(cerr, "writing to %s", path)
	}
	return path, nil
}
