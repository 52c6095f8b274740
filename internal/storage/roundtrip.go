package storage

import "encoding/json"

// RawField is an undecoded JSON value, used to round-trip unknown keys.
type RawField = json.RawMessage

var knownDocumentKeys = map[string]bool{"version": true, "optimizations": true}
var knownOptimizationKeys = map[string]bool{
	"name": true, "mode": true, "teams": true, "timestamp": true, "results": true,
}

// UnmarshalJSON decodes the document while stashing any key this struct
// does not model into Extra, so SerializeDocument can reproduce it.
func (d *SavedOptimizationDocument) UnmarshalJSON(data []byte) error {
	type alias SavedOptimizationDocument
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = SavedOptimizationDocument(a)

	raw := map[string]RawField{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Extra = map[string]RawField{}
	for k, v := range raw {
		if !knownDocumentKeys[k] {
			d.Extra[k] = v
		}
	}
	return nil
}

// MarshalJSON encodes the document, re-inserting any previously unknown
// keys captured in Extra so that parse(serialize(x)) == x (spec §8).
func (d SavedOptimizationDocument) MarshalJSON() ([]byte, error) {
	type alias SavedOptimizationDocument
	known, err := json.Marshal(alias(d))
	if err != nil {
		return nil, err
	}
	return mergeExtra(known, d.Extra)
}

// UnmarshalJSON decodes a single saved optimisation, preserving unknown keys.
func (o *SavedOptimization) UnmarshalJSON(data []byte) error {
	type alias SavedOptimization
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*o = SavedOptimization(a)

	raw := map[string]RawField{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.Extra = map[string]RawField{}
	for k, v := range raw {
		if !knownOptimizationKeys[k] {
			o.Extra[k] = v
		}
	}
	return nil
}

// MarshalJSON encodes a single saved optimisation, re-inserting Extra keys.
func (o SavedOptimization) MarshalJSON() ([]byte, error) {
	type alias SavedOptimization
	known, err := json.Marshal(alias(o))
	if err != nil {
		return nil, err
	}
	return mergeExtra(known, o.Extra)
}

// mergeExtra re-inserts the captured unknown fields into an already-encoded
// JSON object, without disturbing the known fields it already contains.
func mergeExtra(known []byte, extra map[string]RawField) ([]byte, error) {
	if len(extra) == 0 {
		return known, nil
	}
	merged := map[string]RawField{}
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range extra {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// LoadSavedOptimizations reads a saved-optimisation document from disk.
func LoadSavedOptimizations(filePath string) (SavedOptimizationDocument, error) {
	var doc SavedOptimizationDocument
	if !FileExists(filePath) {
		return SavedOptimizationDocument{Version: 1, Optimizations: map[string]SavedOptimization{}}, nil
	}
	err := ReadJSON(filePath, &doc)
	return doc, err
}

// SaveSavedOptimizations writes a saved-optimisation document to disk.
func SaveSavedOptimizations(filePath string, doc SavedOptimizationDocument) error {
	return WriteJSON(filePath, doc)
}
