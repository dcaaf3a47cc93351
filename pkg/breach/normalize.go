package breach

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Defaults applied when the registry omits a field.
const (
	DefaultName        = "Unknown Service"
	DefaultDomain      = "unknown.com"
	DefaultBreachDate  = "2000-01-01"
	DefaultDescription = "No description available"
	DefaultDataClass   = "Unspecified data"
)

// ErrNotArray is returned by ParseBreaches for valid JSON that is not an array.
var ErrNotArray = errors.New("breach payload is not an array")

// fieldKeys lists the accepted spellings of one registry field, in lookup
// order. The registry has been seen emitting both PascalCase and camelCase.
type fieldKeys []string

var (
	nameKeys         = fieldKeys{"Name", "name"}
	titleKeys        = fieldKeys{"Title", "title", "Name", "name"}
	domainKeys       = fieldKeys{"Domain", "domain"}
	breachDateKeys   = fieldKeys{"BreachDate", "breachDate"}
	descriptionKeys  = fieldKeys{"Description", "description"}
	dataClassesKeys  = fieldKeys{"DataClasses", "dataClasses"}
	pwnCountKeys     = fieldKeys{"PwnCount", "pwnCount"}
	addedDateKeys    = fieldKeys{"AddedDate", "addedDate"}
	modifiedDateKeys = fieldKeys{"ModifiedDate", "modifiedDate"}
	isVerifiedKeys   = fieldKeys{"IsVerified", "isVerified"}
	isFabricatedKeys = fieldKeys{"IsFabricated", "isFabricated"}
	isSensitiveKeys  = fieldKeys{"IsSensitive", "isSensitive"}
	isRetiredKeys    = fieldKeys{"IsRetired", "isRetired"}
	isSpamListKeys   = fieldKeys{"IsSpamList", "isSpamList"}
	logoPathKeys     = fieldKeys{"LogoPath", "logoPath"}
)

// rawRecord is one registry element with its values left undecoded.
type rawRecord map[string]json.RawMessage

// lookup decodes the first candidate that is present, not null and
// decodes into out. It reports whether any candidate matched.
func (r rawRecord) lookup(keys fieldKeys, out any) bool {
	for _, key := range keys {
		raw, ok := r[key]
		if !ok || isNull(raw) {
			continue
		}
		if err := json.Unmarshal(raw, out); err == nil {
			return true
		}
	}
	return false
}

// text returns the first non-empty string among keys.
func (r rawRecord) text(keys fieldKeys) (string, bool) {
	for _, key := range keys {
		var s string
		if r.lookup(fieldKeys{key}, &s) && s != "" {
			return s, true
		}
	}
	return "", false
}

func (r rawRecord) textOr(keys fieldKeys, def string) string {
	if s, ok := r.text(keys); ok {
		return s
	}
	return def
}

func (r rawRecord) optionalText(keys fieldKeys) *string {
	if s, ok := r.text(keys); ok {
		return &s
	}
	return nil
}

func (r rawRecord) optionalBool(keys fieldKeys) *bool {
	var b bool
	if r.lookup(keys, &b) {
		return &b
	}
	return nil
}

func (r rawRecord) count(keys fieldKeys) int64 {
	var f float64
	if !r.lookup(keys, &f) || f <= 0 || math.IsNaN(f) {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(f)
}

func (r rawRecord) dataClasses() []string {
	var classes []string
	if r.lookup(dataClassesKeys, &classes) && classes != nil {
		return classes
	}
	return []string{DefaultDataClass}
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// NormalizeRecord maps one registry element onto a BreachRecord. Elements
// that are not JSON objects normalize to all defaults.
func NormalizeRecord(raw json.RawMessage) BreachRecord {
	var rec rawRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		rec = rawRecord{}
	}

	return BreachRecord{
		Name:        rec.textOr(nameKeys, DefaultName),
		Title:       rec.textOr(titleKeys, DefaultName),
		Domain:      rec.textOr(domainKeys, DefaultDomain),
		BreachDate:  rec.textOr(breachDateKeys, DefaultBreachDate),
		Description: rec.textOr(descriptionKeys, DefaultDescription),
		DataClasses: rec.dataClasses(),
		PwnCount:    rec.count(pwnCountKeys),

		AddedDate:    rec.optionalText(addedDateKeys),
		ModifiedDate: rec.optionalText(modifiedDateKeys),
		IsVerified:   rec.optionalBool(isVerifiedKeys),
		IsFabricated: rec.optionalBool(isFabricatedKeys),
		IsSensitive:  rec.optionalBool(isSensitiveKeys),
		IsRetired:    rec.optionalBool(isRetiredKeys),
		IsSpamList:   rec.optionalBool(isSpamListKeys),
		LogoPath:     rec.optionalText(logoPathKeys),
	}
}

// ParseBreaches decodes a registry payload. It fails with ErrNotArray for
// JSON values other than arrays and with a decode error for invalid JSON;
// individual elements never cause a failure.
func ParseBreaches(body []byte) ([]BreachRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("decoding breach payload: invalid JSON (%d bytes)", len(body))
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, fmt.Errorf("decoding breach payload: %w", err)
	}

	records := make([]BreachRecord, len(elems))
	for i, elem := range elems {
		records[i] = NormalizeRecord(elem)
	}
	return records, nil
}
