package breach

import (
	"context"
	"strings"
	"time"
)

// DefaultSimulationDelay is how long the offline fallback waits before
// answering, so the UI behaves as if a lookup happened.
const DefaultSimulationDelay = time.Second

// simulationTrigger marks demo addresses that should come back at-risk.
const simulationTrigger = "breach"

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }

func simulatedBreaches() []BreachRecord {
	return []BreachRecord{
		{
			Name:         "Adobe",
			Title:        "Adobe",
			Domain:       "adobe.com",
			BreachDate:   "2013-10-04",
			AddedDate:    strPtr("2013-12-04T00:00:00Z"),
			ModifiedDate: strPtr("2022-05-15T23:52:49Z"),
			PwnCount:     152445165,
			Description:  "In October 2013, 153 million Adobe accounts were breached with each containing an internal ID, username, email, encrypted password and a password hint in plain text. The data was later posted online along with the decryption algorithm for the passwords. More information about the breach is available at https://helpx.adobe.com/x-productkb/policy-pricing/customer-alert.html",
			DataClasses:  []string{"Email addresses", "Password hints", "Passwords", "Usernames"},
			IsVerified:   boolPtr(true),
			IsFabricated: boolPtr(false),
			IsSensitive:  boolPtr(false),
			IsRetired:    boolPtr(false),
			IsSpamList:   boolPtr(false),
		},
		{
			Name:         "LinkedIn",
			Title:        "LinkedIn",
			Domain:       "linkedin.com",
			BreachDate:   "2016-05-18",
			AddedDate:    strPtr("2016-05-22T00:00:00Z"),
			ModifiedDate: strPtr("2022-05-15T23:52:49Z"),
			PwnCount:     164611595,
			Description:  "In May 2016, LinkedIn had 164 million email addresses and passwords exposed. Originally hacked in 2012, the data remained out of sight until being offered for sale on a dark market site four years later. The passwords in the breach were stored as SHA1 hashes without salt, the vast majority of which had been cracked by the time the data was released publicly. LinkedIn acknowledged the breach and reset the passwords of all accounts that had not changed their passwords since 2012.",
			DataClasses:  []string{"Email addresses", "Passwords"},
			IsVerified:   boolPtr(true),
			IsFabricated: boolPtr(false),
			IsSensitive:  boolPtr(false),
			IsRetired:    boolPtr(false),
			IsSpamList:   boolPtr(false),
		},
		{
			Name:         "MySpace",
			Title:        "MySpace",
			Domain:       "myspace.com",
			BreachDate:   "2008-07-01",
			AddedDate:    strPtr("2016-05-31T23:01:56Z"),
			ModifiedDate: strPtr("2022-05-15T23:52:49Z"),
			PwnCount:     359420698,
			Description:  "In approximately 2008, MySpace suffered a data breach that exposed almost 360 million accounts. In May 2016 the data was offered up for sale on the dark market and included email addresses, usernames and SHA1 hashes of the first 10 characters of the password converted to lowercase and stored without a salt. The exact breach date is unknown, but analysis of the data suggests it was 8 years before being made public.",
			DataClasses:  []string{"Email addresses", "Passwords", "Usernames"},
			IsVerified:   boolPtr(true),
			IsFabricated: boolPtr(false),
			IsSensitive:  boolPtr(false),
			IsRetired:    boolPtr(false),
			IsSpamList:   boolPtr(false),
		},
	}
}

// Simulate produces the offline answer for email after delay. Addresses
// containing "breach" in any case get three canned breaches, everything
// else is secure. It returns early with the context error if ctx ends first.
func Simulate(ctx context.Context, email string, delay time.Duration) (LookupResult, error) {
	if err := ctx.Err(); err != nil {
		return LookupResult{}, err
	}
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return LookupResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	var result LookupResult
	if strings.Contains(strings.ToLower(email), simulationTrigger) {
		result = atRiskResult(simulatedBreaches())
	} else {
		result = secureResult()
	}
	result.Simulated = true
	return result, nil
}
