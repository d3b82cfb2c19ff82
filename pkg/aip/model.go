package aip

import (
	"strings"
	"unicode/utf8"
)

// Pricing model constants for the Pricing.Model discriminator field.
const (
	PricingFree         = "free"
	PricingPerTask      = "per-task"
	PricingSubscription = "subscription"
	PricingCustom       = "custom"
)

// Proof-of-work type constants for the ProofOfWork.Type discriminator field.
const (
	ProofIPFS       = "ipfs"
	ProofBlockchain = "blockchain"
	ProofSigned     = "signed"
	ProofCustom     = "custom"
)

// ValidPricingModels contains all valid pricing model values.
var ValidPricingModels = []string{PricingFree, PricingPerTask, PricingSubscription, PricingCustom}

// ValidProofTypes contains all valid proof-of-work type values.
var ValidProofTypes = []string{ProofIPFS, ProofBlockchain, ProofSigned, ProofCustom}

// Limits enforced by profile validation.
const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// Capability is a named skill an agent claims, with a confidence score.
type Capability struct {
	Skill      string         `json:"skill" yaml:"skill"`
	Confidence float64        `json:"confidence" yaml:"confidence"`
	Parameters map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Pricing describes how an agent charges for work.
type Pricing struct {
	Model     string   `json:"model" yaml:"model"`
	BasePrice *float64 `json:"base_price,omitempty" yaml:"base_price,omitempty"`
	Currency  string   `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// Endpoints lists the URLs an agent exposes. All fields are optional and
// no cross-field relationship is enforced.
type Endpoints struct {
	API    string `json:"api,omitempty" yaml:"api,omitempty"`
	Health string `json:"health,omitempty" yaml:"health,omitempty"`
	Docs   string `json:"docs,omitempty" yaml:"docs,omitempty"`
}

// Metrics holds reported performance figures. Every field is
// independently optional; a nil pointer means "not reported", which is
// distinct from a reported zero.
type Metrics struct {
	TasksCompleted    *int     `json:"tasks_completed,omitempty" yaml:"tasks_completed,omitempty"`
	AvgResponseTimeMS *int     `json:"avg_response_time_ms,omitempty" yaml:"avg_response_time_ms,omitempty"`
	SuccessRate       *float64 `json:"success_rate,omitempty" yaml:"success_rate,omitempty"`
	Uptime30d         *float64 `json:"uptime_30d,omitempty" yaml:"uptime_30d,omitempty"`
}

// ProofOfWork carries external references that back an agent's claims.
type ProofOfWork struct {
	Type       string   `json:"type" yaml:"type"`
	References []string `json:"references" yaml:"references"`
}

// AgentProfile is the registry's unit of record.
type AgentProfile struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Version      string         `json:"version" yaml:"version"`
	Capabilities []Capability   `json:"capabilities" yaml:"capabilities"`
	Description  string         `json:"description,omitempty" yaml:"description,omitempty"`
	Endpoints    *Endpoints     `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
	Pricing      *Pricing       `json:"pricing,omitempty" yaml:"pricing,omitempty"`
	Metrics      *Metrics       `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	ProofOfWork  *ProofOfWork   `json:"proof_of_work,omitempty" yaml:"proof_of_work,omitempty"`
}

// SearchResponse is one page of search results as returned by the registry.
type SearchResponse struct {
	Results []AgentProfile `json:"results"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// RegistrationResponse acknowledges a successful registration.
type RegistrationResponse struct {
	ID           string `json:"id"`
	RegisteredAt string `json:"registered_at"`
}

// UpdateResponse acknowledges a successful profile update.
type UpdateResponse struct {
	UpdatedAt string `json:"updated_at"`
}

// MetricsReportResponse acknowledges a recorded metrics report.
type MetricsReportResponse struct {
	RecordedAt string `json:"recorded_at"`
}

// Health is the registry liveness report.
type Health struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// APIError is the wire shape of a registry error body.
type APIError struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// NewCapability builds and validates a capability.
func NewCapability(skill string, confidence float64) (Capability, error) {
	c := Capability{Skill: skill, Confidence: confidence}
	if err := c.Validate(); err != nil {
		return Capability{}, err
	}
	return c, nil
}

// NewAgentProfile builds and validates a minimal agent profile. Optional
// fields can be set on the returned value before use; callers that do so
// should re-run Validate.
func NewAgentProfile(id, name, version string, capabilities []Capability) (*AgentProfile, error) {
	p := &AgentProfile{
		ID:           id,
		Name:         name,
		Version:      version,
		Capabilities: capabilities,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the capability's structural constraints.
func (c Capability) Validate() error {
	if c.Skill == "" {
		return requiredErr("skill")
	}
	if c.Confidence < 0.0 || c.Confidence > 1.0 {
		return rangeErr("confidence", "must be between 0.0 and 1.0")
	}
	return nil
}

// Validate checks that the pricing model is one of the known values and
// that the base price, when set, is non-negative.
func (p Pricing) Validate() error {
	if !contains(ValidPricingModels, p.Model) {
		return enumErr("model", ValidPricingModels)
	}
	if p.BasePrice != nil && *p.BasePrice < 0 {
		return rangeErr("base_price", "must be non-negative")
	}
	return nil
}

// Validate checks the bounds of every reported metric. Unreported
// metrics are always valid.
func (m Metrics) Validate() error {
	if m.TasksCompleted != nil && *m.TasksCompleted < 0 {
		return rangeErr("tasks_completed", "must be non-negative")
	}
	if m.AvgResponseTimeMS != nil && *m.AvgResponseTimeMS < 0 {
		return rangeErr("avg_response_time_ms", "must be non-negative")
	}
	if m.SuccessRate != nil && (*m.SuccessRate < 0.0 || *m.SuccessRate > 1.0) {
		return rangeErr("success_rate", "must be between 0.0 and 1.0")
	}
	if m.Uptime30d != nil && (*m.Uptime30d < 0.0 || *m.Uptime30d > 1.0) {
		return rangeErr("uptime_30d", "must be between 0.0 and 1.0")
	}
	return nil
}

// Validate checks the proof type and that at least one reference is given.
func (p ProofOfWork) Validate() error {
	if !contains(ValidProofTypes, p.Type) {
		return enumErr("type", ValidProofTypes)
	}
	if len(p.References) == 0 {
		return requiredErr("references")
	}
	return nil
}

// Validate checks the profile and all nested objects. It returns the
// first violation found as a *ValidationError.
func (p *AgentProfile) Validate() error {
	if p.ID == "" {
		return requiredErr("id")
	}
	if p.Name == "" {
		return requiredErr("name")
	}
	if utf8.RuneCountInString(p.Name) > maxNameLength {
		return rangeErr("name", "must be at most 100 characters")
	}
	if !validVersion(p.Version) {
		return patternErr("version", "must have at least three dot-separated components (e.g., 1.0.0)")
	}
	if len(p.Capabilities) == 0 {
		return requiredErr("capabilities")
	}
	for _, c := range p.Capabilities {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	if utf8.RuneCountInString(p.Description) > maxDescriptionLength {
		return rangeErr("description", "must be at most 500 characters")
	}
	if p.Pricing != nil {
		if err := p.Pricing.Validate(); err != nil {
			return err
		}
	}
	if p.Metrics != nil {
		if err := p.Metrics.Validate(); err != nil {
			return err
		}
	}
	if p.ProofOfWork != nil {
		if err := p.ProofOfWork.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// validVersion reports whether v splits on "." into at least three
// components. Components are not required to be numeric; "1.0.0-beta"
// is accepted while "1.0" is not.
func validVersion(v string) bool {
	return len(strings.Split(v, ".")) >= 3
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
