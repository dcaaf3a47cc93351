package models

import (
	"bytes"
	"encoding/json"

	"github.com/caknak/email_check_api/pkg/breach"
)

// CheckEmailRequest is the body of an email check. Email is left untyped so
// a non-string value can be told apart from a missing one.
type CheckEmailRequest struct {
	Email any `json:"email" swaggertype:"string" example:"someone@example.com"`
}

// BreachRecord is one breach as returned to the site.
type BreachRecord struct {
	Name         string   `json:"name" example:"Adobe"`
	Title        string   `json:"title" example:"Adobe"`
	Domain       string   `json:"domain" example:"adobe.com"`
	BreachDate   string   `json:"breachDate" example:"2013-10-04"`
	Description  string   `json:"description"`
	DataClasses  []string `json:"dataClasses"`
	PwnCount     int64    `json:"pwnCount" example:"152445165"`
	AddedDate    *string  `json:"addedDate,omitempty"`
	ModifiedDate *string  `json:"modifiedDate,omitempty"`
	IsVerified   *bool    `json:"isVerified,omitempty"`
	IsFabricated *bool    `json:"isFabricated,omitempty"`
	IsSensitive  *bool    `json:"isSensitive,omitempty"`
	IsRetired    *bool    `json:"isRetired,omitempty"`
	IsSpamList   *bool    `json:"isSpamList,omitempty"`
	LogoPath     *string  `json:"logoPath,omitempty"`
}

// SecureResponse is the body for an address with no known breaches.
type SecureResponse struct {
	Status  string `json:"status" example:"secure"`
	Message string `json:"message" example:"Good news! Your email appears secure."`
}

// AtRiskResponse is the body for a breached address. Message is only set
// when breach details could not be read.
type AtRiskResponse struct {
	Status        string         `json:"status" example:"at-risk"`
	Breaches      []BreachRecord `json:"breaches"`
	BreachCount   int            `json:"breachCount" example:"3"`
	AffectedSites string         `json:"affectedSites" example:"Adobe, LinkedIn, MySpace"`
	Message       string         `json:"message,omitempty"`
}

// CheckEmailResponse serializes as SecureResponse or AtRiskResponse
// depending on Status.
type CheckEmailResponse struct {
	Status        string
	Breaches      []BreachRecord
	BreachCount   int
	AffectedSites string
	Message       string
}

// NewCheckEmailResponse converts a lookup result into its wire form.
func NewCheckEmailResponse(result breach.LookupResult) CheckEmailResponse {
	breaches := make([]BreachRecord, len(result.Breaches))
	for i, b := range result.Breaches {
		breaches[i] = BreachRecord{
			Name:         b.Name,
			Title:        b.Title,
			Domain:       b.Domain,
			BreachDate:   b.BreachDate,
			Description:  b.Description,
			DataClasses:  b.DataClasses,
			PwnCount:     b.PwnCount,
			AddedDate:    b.AddedDate,
			ModifiedDate: b.ModifiedDate,
			IsVerified:   b.IsVerified,
			IsFabricated: b.IsFabricated,
			IsSensitive:  b.IsSensitive,
			IsRetired:    b.IsRetired,
			IsSpamList:   b.IsSpamList,
			LogoPath:     b.LogoPath,
		}
	}
	return CheckEmailResponse{
		Status:        string(result.Status),
		Breaches:      breaches,
		BreachCount:   result.BreachCount,
		AffectedSites: result.AffectedSites,
		Message:       result.Message,
	}
}

func (r CheckEmailResponse) MarshalJSON() ([]byte, error) {
	if r.Status == "secure" {
		return marshalUnescaped(SecureResponse{Status: r.Status, Message: r.Message})
	}
	breaches := r.Breaches
	if breaches == nil {
		breaches = []BreachRecord{}
	}
	return marshalUnescaped(AtRiskResponse{
		Status:        r.Status,
		Breaches:      breaches,
		BreachCount:   r.BreachCount,
		AffectedSites: r.AffectedSites,
		Message:       r.Message,
	})
}

// marshalUnescaped encodes v without turning <, > and & into \u escapes;
// breach descriptions carry HTML that the site renders.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
