// Package segment names, discovers, and parses the on-disk log files a
// storage engine reads and writes. Each generation is stored as exactly
// "<gen>.log" — a decimal, non-negative generation number, no prefix and
// no timestamp — directly inside the engine's data directory.
package segment

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/iwantsomememories/kvs/pkg/errors"
)

const extension = ".log"

// Name returns the filename for generation gen ("<gen>.log").
func Name(gen uint64) string {
	return strconv.FormatUint(gen, 10) + extension
}

// Path joins dir with the filename for generation gen.
func Path(dir string, gen uint64) string {
	return filepath.Join(dir, Name(gen))
}

// ParseGen extracts the generation number from a segment filename
// (the base name, not a full path). It rejects anything that isn't exactly
// a non-negative decimal integer followed by ".log".
func ParseGen(name string) (uint64, error) {
	if !strings.HasSuffix(name, extension) {
		return 0, errors.NewValidationError(nil, errors.ErrorCodeInvalidInput, "not a segment file name").
			WithField("name").WithProvided(name).WithExpected("<gen>.log")
	}
	digits := strings.TrimSuffix(name, extension)
	gen, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError(err, errors.ErrorCodeInvalidInput, "segment file name is not a decimal generation").
			WithField("name").WithProvided(name)
	}
	return gen, nil
}

// List returns every generation present in dir, sorted ascending. It
// ignores entries that don't match the "<gen>.log" naming convention so a
// stray file (e.g. the ".engine" marker) doesn't break discovery.
func List(dir string) ([]uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, dir)
	}

	gens := make([]uint64, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		gen, err := ParseGen(entry.Name())
		if err != nil {
			continue
		}
		gens = append(gens, gen)
	}

	sort.Slice(gens, func(i, j int) bool { return gens[i] < gens[j] })
	return gens, nil
}
