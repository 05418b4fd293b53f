package screening

// Rule is a single named matcher in a pattern set. Rules are plain data
// so tests (and future revisions) can enumerate and exercise each one
// individually instead of poking at inline literals.
type Rule struct {
	Name string
	Expr string
}

// InjectionRules is the inbound screening set: phrasings used to
// override instructions, reassign the persona, extract the system
// prompt, or smuggle markup through the transport boundary. Matching is
// any-rule-matches; order carries no meaning.
func InjectionRules() []Rule {
	return []Rule{
		{"ignore_instructions", `(?i)ignore\s+(all\s+)?(previous\s+|your\s+)?instructions`},
		{"forget_instructions", `(?i)forget\s+(your\s+|all\s+|previous\s+)?(instructions|training)`},
		{"disregard_instructions", `(?i)disregard\s+(all\s+|any\s+|previous\s+)?instructions`},
		{"override_instructions", `(?i)override\s+(your\s+)?(instructions|programming|rules)`},
		{"identity_reassignment", `(?i)you\s+are\s+now\s+`},
		{"new_role_assignment", `(?i)your\s+new\s+(role|identity|name|instructions|persona)\s+(is|are)`},
		{"act_as_bypass", `(?i)act\s+as\s+(dan|an?\s+unrestricted|a\s+different|an?\s+unfiltered)`},
		{"pretend_no_restrictions", `(?i)pretend\s+(you\s+have\s+no|there\s+are\s+no)\s+restrictions`},
		{"pretend_identity", `(?i)pretend\s+you\s+are\s+`},
		{"new_persona", `(?i)new\s+persona`},
		{"repeat_instructions", `(?i)repeat\s+(your|the|all)\s+(system\s+|previous\s+|above\s+)?instructions`},
		{"print_instructions", `(?i)print\s+(your|the|all)\s+(system\s+|previous\s+|above\s+)?instructions`},
		{"show_system_prompt", `(?i)show\s+(me\s+)?(your|the)\s+system\s+prompt`},
		{"ask_instructions", `(?i)what\s+(are|were)\s+your\s+(exact\s+|original\s+)?instructions`},
		{"bypass_restrictions", `(?i)bypass\s+(your|all)\s+(restrictions|rules|guidelines|filters)`},
		{"jailbreak_term", `(?i)jailbreak`},
		{"injection_term", `(?i)prompt\s+injection`},
		{"hypothetical_framing", `(?i)in\s+this\s+hypothetical\s+scenario`},
		{"system_role_prefix", `(?i)system\s*:\s*you\s+are`},
		{"system_tag_bracket", `(?i)\[system\]`},
		{"system_tag_angle", `(?i)<system>`},
		{"script_tag", `(?i)<script`},
		{"event_handler", `(?i)on(error|click|load|mouseover)\s*=`},
		{"javascript_uri", `(?i)javascript:`},
	}
}

// LeakageRules is the outbound screening set: replies in which the model
// quotes its own instructions, names internal identifiers, or describes
// the underlying document as its source.
func LeakageRules() []Rule {
	return []Rule{
		{"quotes_instructions", `(?i)my\s+(system\s+)?instructions\s+(are|say|tell|state)`},
		{"told_to", `(?i)i\s+was\s+(told|instructed|programmed|trained|designed)\s+to`},
		{"according_to_programming", `(?i)according\s+to\s+my\s+(instructions|programming|system\s+prompt)`},
		{"knowledge_store_name", `(?i)knowledge_base`},
		{"prompt_builder_name", `(?i)(createSystemPrompt|buildSystemPrompt)`},
		{"json_source_reference", `(?i)the\s+json\s+(data|object|file)\s+(says|contains|shows)`},
	}
}
