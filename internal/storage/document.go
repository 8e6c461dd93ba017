package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/medrec/internal/medicine"
)

// Document is the single-file catalogue format: {"medicines": [...]}.
type Document struct {
	Medicines []medicine.Medicine `json:"medicines"`
}

// ReadDocument reads medicines from a JSON catalogue document.
func ReadDocument(path string) ([]medicine.Medicine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalogue document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalogue document: %w", err)
	}
	return doc.Medicines, nil
}

// WriteDocument writes medicines as an indented JSON catalogue document.
func WriteDocument(path string, meds []medicine.Medicine) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating catalogue document: %w", err)
	}
	defer f.Close()
	return EncodeDocument(f, meds)
}

// EncodeDocument writes medicines to w as an indented JSON catalogue document.
func EncodeDocument(w io.Writer, meds []medicine.Medicine) error {
	if meds == nil {
		meds = []medicine.Medicine{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Document{Medicines: meds}); err != nil {
		return fmt.Errorf("writing catalogue document: %w", err)
	}
	return nil
}

// ReadCatalog reads a catalogue file, choosing the format by extension:
// .jsonl files hold one medicine per line, anything else is a Document.
func ReadCatalog(path string) ([]medicine.Medicine, error) {
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("reading catalogue: %w", err)
		}
		return ReadAll(path)
	}
	return ReadDocument(path)
}
