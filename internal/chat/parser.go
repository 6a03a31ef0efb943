package chat

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent labels produced by the parser
const (
	IntentBook       = "book"
	IntentShowEvents = "show_events"
	IntentUnknown    = "unknown"
)

// ParsedMessage holds the structured fields extracted from free text
type ParsedMessage struct {
	Intent    string `json:"intent"`
	EventName string `json:"event,omitempty"`
	Tickets   int    `json:"tickets,omitempty"`
}

var (
	bookKeywords = []string{"book", "buy", "reserve", "purchase"}
	showKeywords = []string{"show", "list", "available", "events"}

	numberWords = map[string]int{
		"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
		"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	}

	digitPattern  = regexp.MustCompile(`(\d+)\s*(tickets?|tix)?`)
	wordPattern   = regexp.MustCompile(`\b(one|two|three|four|five|six|seven|eight|nine|ten)\b`)
	quotedPattern = regexp.MustCompile(`"(.*?)"|'(.*?)'`)
)

// Parse extracts intent, event name, and ticket count from a user message.
// Booking keywords win over listing keywords when both appear, matching how
// "book two tickets for the available jazz show" should read.
func Parse(text string) ParsedMessage {
	lower := strings.ToLower(text)

	parsed := ParsedMessage{Intent: IntentUnknown}

	if containsAny(lower, bookKeywords) {
		parsed.Intent = IntentBook
	} else if containsAny(lower, showKeywords) {
		parsed.Intent = IntentShowEvents
	}

	parsed.Tickets = extractTickets(lower)
	parsed.EventName = extractEventName(lower)

	return parsed
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// extractTickets prefers explicit numerals, then number words
func extractTickets(lower string) int {
	if match := digitPattern.FindStringSubmatch(lower); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil {
			return n
		}
	}
	if match := wordPattern.FindStringSubmatch(lower); match != nil {
		return numberWords[match[1]]
	}
	return 0
}

// extractEventName tries quoted names first, then the text after "for"
func extractEventName(lower string) string {
	if match := quotedPattern.FindStringSubmatch(lower); match != nil {
		name := match[1]
		if name == "" {
			name = match[2]
		}
		return strings.TrimSpace(name)
	}

	if idx := strings.Index(lower, " for "); idx != -1 {
		name := strings.TrimSpace(lower[idx+5:])
		return strings.TrimSuffix(name, ".")
	}

	return ""
}
