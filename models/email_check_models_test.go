package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/caknak/email_check_api/pkg/breach"
)

func decodeKeys(t *testing.T, data []byte) map[string]json.RawMessage {
	t.Helper()
	var out map[string]json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decoding %s: %v", data, err)
	}
	return out
}

func TestCheckEmailResponseSecureShape(t *testing.T) {
	data, err := json.Marshal(CheckEmailResponse{Status: "secure", Message: "Good news! Your email appears secure.", BreachCount: 5})
	if err != nil {
		t.Fatalf("wanted: nil\ngot: %v", err)
	}

	keys := decodeKeys(t, data)
	if len(keys) != 2 {
		t.Fatalf("wanted only status and message, got %s", data)
	}
	if string(keys["status"]) != `"secure"` {
		t.Errorf("unexpected status %s", keys["status"])
	}
}

func TestCheckEmailResponseAtRiskShape(t *testing.T) {
	t.Run("with breaches", func(t *testing.T) {
		// Called directly: json.Marshal would re-escape the Marshaler output.
		data, err := CheckEmailResponse{
			Status:        "at-risk",
			Breaches:      []BreachRecord{{Name: "Adobe", Title: "Adobe", Description: `<a href="https://adobe.com">details</a>`, DataClasses: []string{"Passwords"}}},
			BreachCount:   1,
			AffectedSites: "Adobe",
		}.MarshalJSON()
		if err != nil {
			t.Fatalf("wanted: nil\ngot: %v", err)
		}

		keys := decodeKeys(t, data)
		for _, key := range []string{"status", "breaches", "breachCount", "affectedSites"} {
			if _, ok := keys[key]; !ok {
				t.Errorf("missing key %q in %s", key, data)
			}
		}
		if _, ok := keys["message"]; ok {
			t.Errorf("expected no message for a detailed result, got %s", data)
		}
		if !strings.Contains(string(data), `<a href=`) {
			t.Errorf("expected HTML in descriptions to stay unescaped, got %s", data)
		}
		if strings.Contains(string(data), "isVerified") {
			t.Errorf("expected absent passthrough fields to be omitted, got %s", data)
		}
	})

	t.Run("degraded", func(t *testing.T) {
		data, err := json.Marshal(CheckEmailResponse{Status: "at-risk", Message: "details unavailable"})
		if err != nil {
			t.Fatalf("wanted: nil\ngot: %v", err)
		}

		keys := decodeKeys(t, data)
		if string(keys["breaches"]) != `[]` {
			t.Errorf("wanted an empty breaches array, got %s", keys["breaches"])
		}
		if string(keys["breachCount"]) != `0` {
			t.Errorf("wanted breachCount 0, got %s", keys["breachCount"])
		}
		if string(keys["message"]) != `"details unavailable"` {
			t.Errorf("unexpected message %s", keys["message"])
		}
	})
}

func TestNewCheckEmailResponse(t *testing.T) {
	verified := true
	result := breach.LookupResult{
		Status: breach.StatusAtRisk,
		Breaches: []breach.BreachRecord{
			{Name: "Adobe", Title: "Adobe", Domain: "adobe.com", BreachDate: "2013-10-04", Description: "d", DataClasses: []string{"Passwords"}, PwnCount: 7, IsVerified: &verified},
		},
		BreachCount:   1,
		AffectedSites: "Adobe",
		Simulated:     true,
	}

	got := NewCheckEmailResponse(result)
	if got.Status != "at-risk" || got.BreachCount != 1 || got.AffectedSites != "Adobe" {
		t.Errorf("unexpected response %+v", got)
	}
	if len(got.Breaches) != 1 {
		t.Fatalf("wanted 1 breach, got %d", len(got.Breaches))
	}
	b := got.Breaches[0]
	if b.Domain != "adobe.com" || b.PwnCount != 7 || b.IsVerified == nil || !*b.IsVerified {
		t.Errorf("unexpected breach %+v", b)
	}

	secure := NewCheckEmailResponse(breach.LookupResult{Status: breach.StatusSecure, Message: breach.MessageSecure})
	if secure.Status != "secure" || len(secure.Breaches) != 0 {
		t.Errorf("unexpected secure response %+v", secure)
	}
}
