package chat

import "fmt"

// ResponseKey names a canned reply in the catalog. Keeping the copy
// centralized means product wording changes never touch control flow.
type ResponseKey int

const (
	// BlockedRedirect is returned when inbound screening blocks a
	// message; the model is never called.
	BlockedRedirect ResponseKey = iota
	// LeakFallback fully replaces a model reply that failed outbound
	// leak screening.
	LeakFallback
	// OffTopicRedirect steers a stray conversation back to the persona.
	OffTopicRedirect
	// NoDataAvailable is the fixed line for facts absent from the
	// knowledge base.
	NoDataAvailable
)

// ResponseCatalog holds the canned replies, rendered once per process
// from the persona name.
type ResponseCatalog struct {
	responses map[ResponseKey]string
}

// NewResponseCatalog renders the catalog for the given persona name.
func NewResponseCatalog(personaName string) *ResponseCatalog {
	return &ResponseCatalog{
		responses: map[ResponseKey]string{
			BlockedRedirect:  fmt.Sprintf("I'm here to tell you about %s's professional background. What would you like to know about his experience or skills?", personaName),
			LeakFallback:     fmt.Sprintf("I'm happy to tell you about %s's professional background! What would you like to know?", personaName),
			OffTopicRedirect: fmt.Sprintf("That's outside what I can help with here! Is there something about %s's professional background I can answer?", personaName),
			NoDataAvailable:  fmt.Sprintf("I don't have that specific detail, but feel free to reach out to %s directly!", personaName),
		},
	}
}

// Get returns the canned reply for key.
func (c *ResponseCatalog) Get(key ResponseKey) string {
	return c.responses[key]
}
