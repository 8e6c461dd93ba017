// Package storage handles catalogue persistence in JSONL, JSON and SQLite formats.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matsen/medrec/internal/medicine"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAll reads all medicines from a JSONL file.
func ReadAll(path string) ([]medicine.Medicine, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file is an empty catalogue
		}
		return nil, fmt.Errorf("opening medicines file: %w", err)
	}
	defer f.Close()

	return DecodeJSONL(f)
}

// DecodeJSONL reads medicines from r, one JSON object per line. Empty lines
// are skipped; errors name the offending line.
func DecodeJSONL(r io.Reader) ([]medicine.Medicine, error) {
	var meds []medicine.Medicine
	scanner := bufio.NewScanner(r)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var m medicine.Medicine
		if err := json.Unmarshal(line, &m); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		meds = append(meds, m)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading medicines: %w", err)
	}

	return meds, nil
}

// Append adds a medicine to the end of a JSONL file.
func Append(path string, m medicine.Medicine) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening medicines file for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding medicine: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing medicine: %w", err)
	}
	return nil
}

// WriteAll writes all medicines to a JSONL file, replacing existing content.
func WriteAll(path string, meds []medicine.Medicine) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating medicines file: %w", err)
	}
	defer f.Close()

	return EncodeJSONL(f, meds)
}

// EncodeJSONL writes medicines to w, one JSON object per line.
func EncodeJSONL(out io.Writer, meds []medicine.Medicine) error {
	w := bufio.NewWriter(out)
	for i, m := range meds {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encoding medicine %d: %w", i, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("writing medicine %d: %w", i, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing medicines: %w", err)
	}
	return nil
}

// FindByName searches for a medicine by case-insensitive exact name.
func FindByName(meds []medicine.Medicine, name string) (int, bool) {
	key := medicine.NormalizeName(name)
	if key == "" {
		return -1, false
	}
	for i, m := range meds {
		if m.Key() == key {
			return i, true
		}
	}
	return -1, false
}

// MergeNew appends the incoming medicines whose names are not already in
// existing (case-insensitive), preserving order. It returns the merged
// catalogue and the number of medicines added and skipped.
func MergeNew(existing, incoming []medicine.Medicine) ([]medicine.Medicine, int, int) {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, m := range existing {
		seen[m.Key()] = struct{}{}
	}

	merged := make([]medicine.Medicine, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	added, skipped := 0, 0
	for _, m := range incoming {
		if _, dup := seen[m.Key()]; dup {
			skipped++
			continue
		}
		seen[m.Key()] = struct{}{}
		merged = append(merged, m)
		added++
	}
	return merged, added, skipped
}
