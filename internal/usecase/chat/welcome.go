package chat

import (
	"fmt"

	"github.com/vrcrush/ai-interview-clone/internal/knowledge"
)

// Welcome is the conversation opener served before any user turn.
type Welcome struct {
	Message            string
	SuggestedQuestions []string
}

// NewWelcome renders the opening message for the persona described by
// the knowledge base, with the fixed set of recruiter starter prompts.
func NewWelcome(kb knowledge.Base) Welcome {
	return Welcome{
		Message: fmt.Sprintf("Hi! I'm %s's AI clone — a %s. Thanks for your interest!\n\n"+
			"ℹ️ Quick note: This is an AI chatbot. Your messages are processed via Claude API and not permanently stored.\n\n"+
			"I'm happy to answer questions about my background, experience, skills, or what I'm looking for. What would you like to know?",
			kb.Name(), kb.Title()),
		SuggestedQuestions: []string{
			"👤 Tell me about yourself",
			"💻 What are your key technical skills?",
			"🏆 What's your biggest professional achievement?",
			"🎯 What type of role are you looking for?",
			"💼 Walk me through a challenging project",
			"💡 What's your leadership experience?",
			"💰 What are your salary expectations?",
			"📅 When can you start?",
		},
	}
}
