package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

const (
	nameFieldKeyConstant        = "name"
	scriptsFieldKeyConstant     = "scripts"
	encodePrefixConstant        = ""
	encodeIndentConstant        = "  "
	trailingNewlineConstant     = "\n"
	decodeErrorTemplateConstant = "unable to decode manifest: %w"
	encodeErrorTemplateConstant = "unable to encode manifest: %w"
)

// Document holds a package manifest as generic JSON values. Comments and
// trailing commas in the source are tolerated and dropped on re-serialization.
type Document struct {
	values map[string]any
}

// Parse decodes manifest content into a Document.
func Parse(content []byte) (*Document, error) {
	normalizedContent := jsonc.ToJSON(content)

	var values map[string]any
	if decodeError := json.Unmarshal(normalizedContent, &values); decodeError != nil {
		return nil, fmt.Errorf(decodeErrorTemplateConstant, decodeError)
	}
	return &Document{values: values}, nil
}

// Name returns the manifest name field when it is present as a string.
func (document *Document) Name() (string, bool) {
	nameValue, nameFound := document.values[nameFieldKeyConstant]
	if !nameFound {
		return "", false
	}
	nameText, isString := nameValue.(string)
	if !isString {
		return "", false
	}
	return nameText, true
}

// RemoveScript deletes the named entry from the scripts table and reports
// whether the entry existed.
func (document *Document) RemoveScript(scriptName string) bool {
	scriptsValue, scriptsFound := document.values[scriptsFieldKeyConstant]
	if !scriptsFound {
		return false
	}
	scriptsTable, isTable := scriptsValue.(map[string]any)
	if !isTable {
		return false
	}
	if _, entryFound := scriptsTable[scriptName]; !entryFound {
		return false
	}
	delete(scriptsTable, scriptName)
	return true
}

// Encode re-serializes the document with two-space indentation, sorted keys,
// and a trailing newline.
func (document *Document) Encode() ([]byte, error) {
	encodedContent, encodeError := json.MarshalIndent(document.values, encodePrefixConstant, encodeIndentConstant)
	if encodeError != nil {
		return nil, fmt.Errorf(encodeErrorTemplateConstant, encodeError)
	}
	return append(encodedContent, trailingNewlineConstant...), nil
}
