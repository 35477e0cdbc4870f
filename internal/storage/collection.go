package storage

import "encoding/json"

// decodeCollection parses a stored collection payload. Missing or
// malformed data degrades to an empty collection.
func decodeCollection(data []byte) []json.RawMessage {
	if len(data) == 0 {
		return []json.RawMessage{}
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return []json.RawMessage{}
	}
	return records
}

func encodeCollection(records []json.RawMessage) ([]byte, error) {
	if records == nil {
		records = []json.RawMessage{}
	}
	return json.Marshal(records)
}

// idValue extracts the string value of field from a JSON record.
func idValue(record json.RawMessage, field string) (string, bool) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(record, &doc); err != nil {
		return "", false
	}
	raw, ok := doc[field]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// replaceMatch swaps in record for the first element whose idField equals
// the record's own. Reports whether a match was found.
func replaceMatch(records []json.RawMessage, idField string, record json.RawMessage) ([]json.RawMessage, bool) {
	id, ok := idValue(record, idField)
	if !ok {
		return records, false
	}
	for i, existing := range records {
		if existingID, ok := idValue(existing, idField); ok && existingID == id {
			records[i] = record
			return records, true
		}
	}
	return records, false
}

// dropMatches removes every element whose idField equals id.
func dropMatches(records []json.RawMessage, idField, id string) ([]json.RawMessage, int) {
	kept := records[:0]
	removed := 0
	for _, existing := range records {
		if existingID, ok := idValue(existing, idField); ok && existingID == id {
			removed++
			continue
		}
		kept = append(kept, existing)
	}
	return kept, removed
}
