// Package knowledge holds the static persona knowledge base: a JSON
// document loaded once at startup and shared read-only by every request
// handler. The document is the single factual grounding for the model;
// nothing may mutate it after load.
package knowledge

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Default identity used when the knowledge base lacks the fields.
const (
	DefaultName  = "Juan Pablo Bolzon"
	DefaultTitle = "Software Engineer"
)

// PersonalInfo is the public identity section of the knowledge base.
type PersonalInfo struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

// PersonalityAndStyle carries persona tone directives.
type PersonalityAndStyle struct {
	CommunicationStyle string `json:"communication_style"`
}

// Base is an immutable knowledge base snapshot. Raw preserves the loaded
// document bytes so the serialized form rendered into the system prompt
// is stable across calls.
type Base struct {
	PersonalInfo        PersonalInfo        `json:"personal_info"`
	ProfessionalSummary json.RawMessage     `json:"professional_summary"`
	TechnicalSkills     json.RawMessage     `json:"technical_skills"`
	PersonalityAndStyle PersonalityAndStyle `json:"personality_and_style"`
	PracticalInfo       json.RawMessage     `json:"practical_info"`

	// LoadErr is set on the marker document produced when loading fails.
	LoadErr string `json:"error,omitempty"`

	raw []byte
}

// Parse builds a Base from raw JSON document bytes.
func Parse(raw []byte) (Base, error) {
	var b Base
	if err := json.Unmarshal(raw, &b); err != nil {
		return Base{}, err
	}
	b.raw = raw
	return b, nil
}

// ErrorMarker is the degraded document substituted when the knowledge
// base cannot be loaded. The system keeps running; the prompt builder
// still emits its full rules block around this marker.
func ErrorMarker() Base {
	raw := []byte(`{"error": "Knowledge base not found"}`)
	return Base{LoadErr: "Knowledge base not found", raw: raw}
}

// Degraded reports whether this is the error-marker document.
func (b Base) Degraded() bool {
	return b.LoadErr != ""
}

// Name returns the persona name, falling back to the default.
func (b Base) Name() string {
	if b.PersonalInfo.Name != "" {
		return b.PersonalInfo.Name
	}
	return DefaultName
}

// Title returns the persona title, falling back to the default.
func (b Base) Title() string {
	if b.PersonalInfo.Title != "" {
		return b.PersonalInfo.Title
	}
	return DefaultTitle
}

// CommunicationStyle returns the persona tone directive, falling back to
// a fixed default when absent.
func (b Base) CommunicationStyle() string {
	if b.PersonalityAndStyle.CommunicationStyle != "" {
		return b.PersonalityAndStyle.CommunicationStyle
	}
	return "Friendly, professional, direct, and enthusiastic about technology."
}

// SectionNames returns the document's top-level section keys in sorted
// order. The "error" key of the marker document is excluded.
func (b Base) SectionNames() []string {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b.raw, &doc); err != nil {
		return nil
	}
	names := make([]string, 0, len(doc))
	for k := range doc {
		if k == "error" {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Serialized returns the full document pretty-printed for verbatim
// inclusion in the system prompt. Output is a pure function of the
// loaded bytes.
func (b Base) Serialized() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, b.raw, "", "  "); err != nil {
		return string(b.raw)
	}
	return buf.String()
}
