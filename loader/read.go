package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ulikunitz/xz"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/rustyeddy/portfolio/normalize"
)

var (
	ErrEncoding = errors.New("file is not valid UTF-8 or UTF-16")
	ErrEmpty    = errors.New("file has no data rows")
	ErrCorrupt  = errors.New("compressed file is corrupt")
)

// ReadTable reads one history file into a table. Files ending in .xz are
// decompressed first. A sep of 0 sniffs the delimiter from the header line.
func ReadTable(path string, sep rune) (normalize.Table, error) {
	raw, err := readRaw(path)
	if err != nil {
		return normalize.Table{}, err
	}

	text, err := Decode(raw)
	if err != nil {
		return normalize.Table{}, err
	}
	return ParseTable(text, sep)
}

func readRaw(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !strings.HasSuffix(path, ".xz") {
		return io.ReadAll(f)
	}

	xr, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	raw, err := io.ReadAll(xr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return raw, nil
}

// Decode turns raw file bytes into UTF-8. UTF-8 and UTF-16 byte order marks
// are honoured and stripped; without a BOM the bytes must already be UTF-8.
func Decode(raw []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	if !utf8.Valid(out) {
		return nil, ErrEncoding
	}
	return out, nil
}

// ParseTable splits decoded text into a header and data rows. Blank rows are
// dropped; a table with no data rows is ErrEmpty.
func ParseTable(text []byte, sep rune) (normalize.Table, error) {
	if sep == 0 {
		sep = Sniff(firstLine(text))
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return normalize.Table{}, err
	}
	if len(rows) == 0 {
		return normalize.Table{}, ErrEmpty
	}

	t := normalize.Table{Header: rows[0], Rows: make([][]string, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	if len(t.Rows) == 0 {
		return normalize.Table{}, ErrEmpty
	}
	return t, nil
}

// Sniff picks the delimiter that occurs most in a header line, preferring
// ';' then ',' then tab on ties. A line with none of them is comma separated.
func Sniff(line string) rune {
	best, n := ',', 0
	for _, c := range []rune{';', ',', '\t'} {
		if k := strings.Count(line, string(c)); k > n {
			best, n = c, k
		}
	}
	return best
}

func firstLine(text []byte) string {
	if i := bytes.IndexByte(text, '\n'); i >= 0 {
		return string(text[:i])
	}
	return string(text)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
