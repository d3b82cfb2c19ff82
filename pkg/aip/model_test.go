package aip

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func validProfile() *AgentProfile {
	return &AgentProfile{
		ID:      "did:aip:test-agent",
		Name:    "TestAgent",
		Version: "1.0.0",
		Capabilities: []Capability{
			{Skill: "text-generation", Confidence: 0.9},
		},
	}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func assertRule(t *testing.T, err error, field, rule string) {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v (%T), want *ValidationError", err, err)
	}
	if ve.Field != field {
		t.Errorf("Field = %q, want %q", ve.Field, field)
	}
	if ve.Rule != rule {
		t.Errorf("Rule = %q, want %q", ve.Rule, rule)
	}
}

func TestCapability_ConfidenceBounds(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		wantErr    bool
	}{
		{"zero", 0.0, false},
		{"one", 1.0, false},
		{"middle", 0.5, false},
		{"above", 1.01, true},
		{"below", -0.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Capability{Skill: "sum", Confidence: tt.confidence}
			err := c.Validate()
			if tt.wantErr {
				assertRule(t, err, "confidence", RuleRange)
				return
			}
			if err != nil {
				t.Fatalf("Validate error: %v", err)
			}
		})
	}
}

func TestCapability_EmptySkill(t *testing.T) {
	c := Capability{Skill: "", Confidence: 0.5}
	assertRule(t, c.Validate(), "skill", RuleRequired)
}

func TestNewCapability(t *testing.T) {
	c, err := NewCapability("text-generation", 0.9)
	if err != nil {
		t.Fatalf("NewCapability error: %v", err)
	}
	if c.Skill != "text-generation" || c.Confidence != 0.9 {
		t.Errorf("unexpected capability %+v", c)
	}

	if _, err := NewCapability("broken", 1.5); err == nil {
		t.Fatal("expected error for confidence 1.5, got nil")
	}
}

func TestAgentProfile_VersionRule(t *testing.T) {
	tests := []struct {
		version string
		valid   bool
	}{
		{"1.0.0", true},
		{"1.0.0-beta", true},
		{"1.2.3.4", true},
		{"0.0.1", true},
		{"1.0", false},
		{"1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			p := validProfile()
			p.Version = tt.version
			err := p.Validate()
			if tt.valid {
				if err != nil {
					t.Fatalf("Validate(%q) error: %v", tt.version, err)
				}
				return
			}
			assertRule(t, err, "version", RulePattern)
		})
	}
}

func TestAgentProfile_EmptyCapabilities(t *testing.T) {
	p := validProfile()
	p.Capabilities = nil
	assertRule(t, p.Validate(), "capabilities", RuleRequired)
}

func TestAgentProfile_RequiredAndLengthFields(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		p := validProfile()
		p.ID = ""
		assertRule(t, p.Validate(), "id", RuleRequired)
	})

	t.Run("missing name", func(t *testing.T) {
		p := validProfile()
		p.Name = ""
		assertRule(t, p.Validate(), "name", RuleRequired)
	})

	t.Run("name too long", func(t *testing.T) {
		p := validProfile()
		p.Name = strings.Repeat("x", 101)
		assertRule(t, p.Validate(), "name", RuleRange)
	})

	t.Run("name length counts characters not bytes", func(t *testing.T) {
		p := validProfile()
		p.Name = strings.Repeat("世", 100)
		if err := p.Validate(); err != nil {
			t.Errorf("100-character multibyte name should be valid: %v", err)
		}
		p.Name = strings.Repeat("世", 101)
		assertRule(t, p.Validate(), "name", RuleRange)
	})

	t.Run("description too long", func(t *testing.T) {
		p := validProfile()
		p.Description = strings.Repeat("d", 501)
		assertRule(t, p.Validate(), "description", RuleRange)
	})

	t.Run("nested capability invalid", func(t *testing.T) {
		p := validProfile()
		p.Capabilities = append(p.Capabilities, Capability{Skill: "other", Confidence: 2.0})
		assertRule(t, p.Validate(), "confidence", RuleRange)
	})
}

func TestPricing_Validate(t *testing.T) {
	tests := []struct {
		name    string
		pricing Pricing
		field   string
		rule    string
	}{
		{"free ok", Pricing{Model: PricingFree}, "", ""},
		{"per-task with price", Pricing{Model: PricingPerTask, BasePrice: floatPtr(0.25), Currency: "USD"}, "", ""},
		{"zero price ok", Pricing{Model: PricingCustom, BasePrice: floatPtr(0)}, "", ""},
		{"unknown model", Pricing{Model: "hourly"}, "model", RuleEnum},
		{"negative price", Pricing{Model: PricingPerTask, BasePrice: floatPtr(-1)}, "base_price", RuleRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pricing.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate error: %v", err)
				}
				return
			}
			assertRule(t, err, tt.field, tt.rule)
		})
	}
}

func TestMetrics_Validate(t *testing.T) {
	tests := []struct {
		name    string
		metrics Metrics
		field   string
	}{
		{"empty", Metrics{}, ""},
		{"all set", Metrics{
			TasksCompleted:    intPtr(100),
			AvgResponseTimeMS: intPtr(250),
			SuccessRate:       floatPtr(0.98),
			Uptime30d:         floatPtr(0.999),
		}, ""},
		{"zeroes reported", Metrics{TasksCompleted: intPtr(0), SuccessRate: floatPtr(0)}, ""},
		{"negative tasks", Metrics{TasksCompleted: intPtr(-1)}, "tasks_completed"},
		{"negative latency", Metrics{AvgResponseTimeMS: intPtr(-5)}, "avg_response_time_ms"},
		{"success rate above one", Metrics{SuccessRate: floatPtr(1.2)}, "success_rate"},
		{"uptime below zero", Metrics{Uptime30d: floatPtr(-0.1)}, "uptime_30d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.metrics.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate error: %v", err)
				}
				return
			}
			assertRule(t, err, tt.field, RuleRange)
		})
	}
}

func TestProofOfWork_Validate(t *testing.T) {
	ok := ProofOfWork{Type: ProofIPFS, References: []string{"Qm123"}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}

	badType := ProofOfWork{Type: "notarized", References: []string{"x"}}
	assertRule(t, badType.Validate(), "type", RuleEnum)

	noRefs := ProofOfWork{Type: ProofSigned}
	assertRule(t, noRefs.Validate(), "references", RuleRequired)
}

func TestAgentProfile_RoundTrip(t *testing.T) {
	p := validProfile()
	p.Description = "An agent used in tests"
	p.Endpoints = &Endpoints{API: "https://agent.example/api"}
	p.Pricing = &Pricing{Model: PricingPerTask, BasePrice: floatPtr(0.1), Currency: "USD"}
	p.Metrics = &Metrics{TasksCompleted: intPtr(42), SuccessRate: floatPtr(0.95)}
	p.Metadata = map[string]any{"team": "qa"}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var decoded AgentProfile
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if err := decoded.Validate(); err != nil {
		t.Fatalf("decoded profile invalid: %v", err)
	}
	if !reflect.DeepEqual(p, &decoded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", &decoded, p)
	}
}

func TestAgentProfile_UnsetFieldsStayAbsent(t *testing.T) {
	data, err := json.Marshal(validProfile())
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	for _, key := range []string{"description", "endpoints", "pricing", "metrics", "metadata", "proof_of_work"} {
		if _, present := raw[key]; present {
			t.Errorf("unset field %q was serialized", key)
		}
	}
	for _, key := range []string{"id", "name", "version", "capabilities"} {
		if _, present := raw[key]; !present {
			t.Errorf("required field %q missing from serialization", key)
		}
	}
}

func TestMetrics_UnsetFieldsStayAbsent(t *testing.T) {
	data, err := json.Marshal(Metrics{TasksCompleted: intPtr(0)})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if _, present := raw["tasks_completed"]; !present {
		t.Error("reported zero tasks_completed was dropped")
	}
	for _, key := range []string{"avg_response_time_ms", "success_rate", "uptime_30d"} {
		if _, present := raw[key]; present {
			t.Errorf("unreported metric %q was serialized", key)
		}
	}
}

func TestNewAgentProfile(t *testing.T) {
	caps := []Capability{{Skill: "summarize", Confidence: 1.0}}
	p, err := NewAgentProfile("did:aip:a", "A", "1.0.0", caps)
	if err != nil {
		t.Fatalf("NewAgentProfile error: %v", err)
	}
	if p.ID != "did:aip:a" {
		t.Errorf("ID = %q", p.ID)
	}

	if _, err := NewAgentProfile("did:aip:a", "A", "1.0", caps); err == nil {
		t.Fatal("expected version error, got nil")
	}
	if _, err := NewAgentProfile("did:aip:a", "A", "1.0.0", nil); err == nil {
		t.Fatal("expected capabilities error, got nil")
	}
}
