// Package extract turns source documents into raw attendance documents.
// Extraction only reads; every judgment about the values belongs to the core normalizer
package extract

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"pontual/internal/adapters/extract/pdftext"
	"pontual/internal/adapters/extract/xlsx"
	"pontual/internal/core/attendance"
	perr "pontual/internal/platform/errors"
)

// Exts lists the document types FromBytes understands
var Exts = []string{".xlsx", ".pdf", ".json"}

// Supported reports whether name has an extension FromBytes understands
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Exts {
		if e == ext {
			return true
		}
	}
	return false
}

// FromFile reads path and extracts it; the source file is the base name
func FromFile(path string) (attendance.RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return attendance.RawDocument{}, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeExtraction, "read %s", path), "extract.file")
	}
	return FromBytes(filepath.Base(path), data)
}

// FromBytes dispatches on the extension of name
func FromBytes(name string, data []byte) (attendance.RawDocument, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return xlsx.Parse(bytes.NewReader(data), name)
	case ".pdf":
		return pdftext.Parse(data, name)
	case ".json":
		return fromJSON(name, data)
	}
	return attendance.RawDocument{}, perr.WithField(perr.Extractionf("%s: unsupported document type", name), "source_file")
}

// fromJSON reads a document already extracted upstream, e.g. by an OCR pipeline
func fromJSON(name string, data []byte) (attendance.RawDocument, error) {
	var doc attendance.RawDocument
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return attendance.RawDocument{}, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeExtraction, "%s: invalid document json", name), "extract.json")
	}
	if doc.Header.SourceFile == "" {
		doc.Header.SourceFile = name
	}
	return doc, nil
}
