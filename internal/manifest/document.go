package manifest

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Document represents a parsed pyproject.toml manifest. The zero-length
// document stands in for both an absent and an unparseable manifest.
type Document map[string]any

// EmptyDocument returns the document representing an absent manifest.
func EmptyDocument() Document {
	return Document{}
}

// Parse decodes raw manifest text into a Document. Malformed input yields the
// empty document alongside the decoding error so callers may log it; the
// returned document is always usable.
func Parse(rawManifest []byte) (Document, error) {
	if len(rawManifest) == 0 {
		return EmptyDocument(), nil
	}

	var decoded map[string]any
	if decodingError := toml.Unmarshal(rawManifest, &decoded); decodingError != nil {
		return EmptyDocument(), decodingError
	}
	if decoded == nil {
		return EmptyDocument(), nil
	}
	return Document(decoded), nil
}

// IsEmpty reports whether the document carries no manifest content.
func (document Document) IsEmpty() bool {
	return len(document) == 0
}

// Table resolves a nested table at the provided key path. The second return
// value is false when any key along the path is absent or refers to a
// non-table value.
func (document Document) Table(keyPath ...string) (Document, bool) {
	currentTable := document
	for _, key := range keyPath {
		value, exists := currentTable[key]
		if !exists {
			return nil, false
		}
		nestedTable, isTable := coerceTable(value)
		if !isTable {
			return nil, false
		}
		currentTable = nestedTable
	}
	return currentTable, true
}

// HasTable reports whether a table exists at the provided key path.
func (document Document) HasTable(keyPath ...string) bool {
	_, exists := document.Table(keyPath...)
	return exists
}

// StringValue resolves a string at the provided key path. Absent keys and
// non-string values report false.
func (document Document) StringValue(keyPath ...string) (string, bool) {
	value, exists := document.valueAt(keyPath)
	if !exists {
		return "", false
	}
	stringValue, isString := value.(string)
	if !isString {
		return "", false
	}
	return stringValue, true
}

// StringSlice resolves a list of strings at the provided key path.
// Non-string list entries are skipped.
func (document Document) StringSlice(keyPath ...string) ([]string, bool) {
	value, exists := document.valueAt(keyPath)
	if !exists {
		return nil, false
	}
	listValue, isList := value.([]any)
	if !isList {
		if stringListValue, isStringList := value.([]string); isStringList {
			return stringListValue, true
		}
		return nil, false
	}

	entries := make([]string, 0, len(listValue))
	for _, entry := range listValue {
		entryString, isString := entry.(string)
		if !isString {
			continue
		}
		entries = append(entries, entryString)
	}
	return entries, true
}

// IntegerValue resolves an integer at the provided key path.
func (document Document) IntegerValue(keyPath ...string) (int64, bool) {
	value, exists := document.valueAt(keyPath)
	if !exists {
		return 0, false
	}
	switch typedValue := value.(type) {
	case int64:
		return typedValue, true
	case int:
		return int64(typedValue), true
	case float64:
		return int64(typedValue), true
	default:
		return 0, false
	}
}

// HasKey reports whether any value exists at the provided key path.
func (document Document) HasKey(keyPath ...string) bool {
	_, exists := document.valueAt(keyPath)
	return exists
}

func (document Document) valueAt(keyPath []string) (any, bool) {
	if len(keyPath) == 0 {
		return nil, false
	}

	parentPath := keyPath[:len(keyPath)-1]
	finalKey := strings.TrimSpace(keyPath[len(keyPath)-1])

	parentTable, parentExists := document.Table(parentPath...)
	if !parentExists {
		return nil, false
	}

	value, exists := parentTable[finalKey]
	return value, exists
}

func coerceTable(value any) (Document, bool) {
	switch typedValue := value.(type) {
	case map[string]any:
		return Document(typedValue), true
	case Document:
		return typedValue, true
	default:
		return nil, false
	}
}
