package indexing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	internalErrors "github.com/gcbaptista/mfg-search/internal/errors"
	"github.com/gcbaptista/mfg-search/model"
)

// DecodeDocuments reads a whole JSON array of records.
// Invalid JSON, a top-level value that is not an array, or an element that is
// not an object is an error; nothing is returned in that case.
func DecodeDocuments(r io.Reader) ([]model.Document, error) {
	decoder := json.NewDecoder(r)

	var raw json.RawMessage
	if err := decoder.Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty input, expected a JSON array", internalErrors.ErrInvalidInput)
		}
		return nil, fmt.Errorf("invalid JSON input: %w", err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("%w: unexpected data after the JSON array", internalErrors.ErrInvalidInput)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array of records, got %s", internalErrors.ErrInvalidInput, jsonKind(trimmed))
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, fmt.Errorf("invalid JSON input: %w", err)
	}

	docs := make([]model.Document, 0, len(elements))
	for i, element := range elements {
		element = bytes.TrimSpace(element)
		if len(element) == 0 || element[0] != '{' {
			return nil, internalErrors.NewMalformedRecordError(i, "expected object, got "+jsonKind(element))
		}
		var doc model.Document
		if err := json.Unmarshal(element, &doc); err != nil {
			return nil, internalErrors.NewMalformedRecordError(i, err.Error())
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func jsonKind(raw []byte) string {
	if len(raw) == 0 {
		return "nothing"
	}
	switch raw[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
