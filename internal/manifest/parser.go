package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ParseDescriptors decodes a manifest document (a JSON array of descriptor
// objects). Entries that fail schema validation are skipped and reported as
// issues; the remaining entries are mapped in order. A document that is not
// a JSON array is an error.
func ParseDescriptors(data []byte) ([]Descriptor, []ParseIssue, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing manifest JSON: %w", err)
	}

	entries, ok := doc.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("manifest must be a JSON array, got %T", doc)
	}

	descriptors := make([]Descriptor, 0, len(entries))
	var issues []ParseIssue
	for i, entry := range entries {
		entryIssues, err := validateEntry(i, entry)
		if err != nil {
			return nil, nil, err
		}
		if len(entryIssues) > 0 {
			issues = append(issues, entryIssues...)
			continue
		}

		raw, err := decodeRaw(entry)
		if err != nil {
			issues = append(issues, ParseIssue{Index: i, Message: err.Error()})
			continue
		}
		descriptors = append(descriptors, raw.Descriptor())
	}

	return descriptors, issues, nil
}

// decodeRaw converts a validated generic entry into a RawDescriptor.
func decodeRaw(entry any) (RawDescriptor, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return RawDescriptor{}, fmt.Errorf("re-encoding entry: %w", err)
	}
	var raw RawDescriptor
	if err := json.Unmarshal(data, &raw); err != nil {
		return RawDescriptor{}, fmt.Errorf("decoding entry: %w", err)
	}
	return raw, nil
}
