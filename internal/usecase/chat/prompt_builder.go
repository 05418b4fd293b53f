package chat

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vrcrush/ai-interview-clone/internal/knowledge"
)

// SystemPromptBuilder renders the guard-railed system prompt from a
// knowledge base snapshot. Build is a pure function: the same snapshot
// always yields byte-identical output, and the rules block is emitted
// even for the degraded error-marker document.
type SystemPromptBuilder struct {
	tmpl *template.Template
}

// promptData holds all data available to the prompt template.
type promptData struct {
	Name               string
	Title              string
	CommunicationStyle string
	Sections           string
	KnowledgeJSON      string
}

// NewSystemPromptBuilder parses the built-in template.
func NewSystemPromptBuilder() (*SystemPromptBuilder, error) {
	tmpl, err := template.New("system-prompt").Parse(systemPromptTemplate())
	if err != nil {
		return nil, fmt.Errorf("parse system prompt template: %w", err)
	}
	return &SystemPromptBuilder{tmpl: tmpl}, nil
}

// Build renders the system prompt for the given knowledge base.
func (b *SystemPromptBuilder) Build(kb knowledge.Base) (string, error) {
	data := promptData{
		Name:               kb.Name(),
		Title:              kb.Title(),
		CommunicationStyle: kb.CommunicationStyle(),
		Sections:           b.sectionList(kb),
		KnowledgeJSON:      kb.Serialized(),
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render system prompt: %w", err)
	}
	return buf.String(), nil
}

// sectionList renders the document's section names as a readable,
// title-cased list ("Personal Info, Technical Skills, ..."). Section
// order is sorted upstream, so the output is stable.
func (b *SystemPromptBuilder) sectionList(kb knowledge.Base) string {
	names := kb.SectionNames()
	if len(names) == 0 {
		return ""
	}
	// Casers are not safe for concurrent use, so build one per render.
	caser := cases.Title(language.English)
	titles := make([]string, len(names))
	for i, n := range names {
		titles[i] = caser.String(strings.ReplaceAll(n, "_", " "))
	}
	return strings.Join(titles, ", ")
}
