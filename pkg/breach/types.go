// Package breach looks email addresses up in a breach registry and
// normalizes the registry's loosely typed answer into LookupResults.
package breach

import "strings"

// Status classifies a lookup.
type Status string

const (
	StatusSecure Status = "secure"
	StatusAtRisk Status = "at-risk"
)

const (
	MessageSecure             = "Good news! Your email appears secure."
	MessageDetailsUnavailable = "Your email was found in data breaches, but detailed information is unavailable."
	MessageDetailsUnreadable  = "Your email was found in data breaches, but there was an error processing the details."
)

// BreachRecord is one disclosed breach. The first seven fields are always
// populated after normalization; the pointer fields are passthrough
// metadata and stay nil when the registry omits them.
type BreachRecord struct {
	Name        string
	Title       string
	Domain      string
	BreachDate  string
	Description string
	DataClasses []string
	PwnCount    int64

	AddedDate    *string
	ModifiedDate *string
	IsVerified   *bool
	IsFabricated *bool
	IsSensitive  *bool
	IsRetired    *bool
	IsSpamList   *bool
	LogoPath     *string
}

// LookupResult is the outcome of a single CheckEmail call.
type LookupResult struct {
	Status        Status
	Breaches      []BreachRecord
	BreachCount   int
	AffectedSites string
	Message       string
	// Simulated is set when the registry was unreachable and the result
	// comes from the offline fallback.
	Simulated bool
}

// Degraded reports whether the registry flagged the address but its
// breach details could not be read.
func (r LookupResult) Degraded() bool {
	return r.Status == StatusAtRisk && len(r.Breaches) == 0
}

func secureResult() LookupResult {
	return LookupResult{
		Status:   StatusSecure,
		Breaches: []BreachRecord{},
		Message:  MessageSecure,
	}
}

func degradedResult(message string) LookupResult {
	return LookupResult{
		Status:   StatusAtRisk,
		Breaches: []BreachRecord{},
		Message:  message,
	}
}

func atRiskResult(breaches []BreachRecord) LookupResult {
	return LookupResult{
		Status:        StatusAtRisk,
		Breaches:      breaches,
		BreachCount:   len(breaches),
		AffectedSites: affectedSites(breaches),
	}
}

func affectedSites(breaches []BreachRecord) string {
	names := make([]string, 0, len(breaches))
	for _, b := range breaches {
		name := b.Name
		if name == "" {
			name = b.Title
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}
