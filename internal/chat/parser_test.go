package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBookingIntent(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    ParsedMessage
	}{
		{
			name:    "digit count with for clause",
			message: "Book 2 tickets for Jazz Night",
			want:    ParsedMessage{Intent: IntentBook, Tickets: 2, EventName: "jazz night"},
		},
		{
			name:    "number word count",
			message: "buy three tickets for Spring Football Game",
			want:    ParsedMessage{Intent: IntentBook, Tickets: 3, EventName: "spring football game"},
		},
		{
			name:    "quoted event name",
			message: `reserve two tickets for "Jazz Night"`,
			want:    ParsedMessage{Intent: IntentBook, Tickets: 2, EventName: "jazz night"},
		},
		{
			name:    "single quoted event name",
			message: "purchase 4 tix for 'Hackathon Kickoff'",
			want:    ParsedMessage{Intent: IntentBook, Tickets: 4, EventName: "hackathon kickoff"},
		},
		{
			name:    "missing ticket count",
			message: "book tickets for hackathon kickoff",
			want:    ParsedMessage{Intent: IntentBook, Tickets: 0, EventName: "hackathon kickoff"},
		},
		{
			name:    "missing event name",
			message: "I want to buy 2 tickets",
			want:    ParsedMessage{Intent: IntentBook, Tickets: 2},
		},
		{
			name:    "trailing period stripped",
			message: "book 1 ticket for jazz night.",
			want:    ParsedMessage{Intent: IntentBook, Tickets: 1, EventName: "jazz night"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.message))
		})
	}
}

func TestParseShowEvents(t *testing.T) {
	for _, message := range []string{
		"show me the events",
		"what's available?",
		"list events",
	} {
		parsed := Parse(message)
		assert.Equal(t, IntentShowEvents, parsed.Intent, "message: %s", message)
	}
}

func TestParseBookingWinsOverListing(t *testing.T) {
	parsed := Parse("book 2 tickets for the available jazz show")
	assert.Equal(t, IntentBook, parsed.Intent)
}

func TestParseUnknownIntent(t *testing.T) {
	parsed := Parse("hello there")
	assert.Equal(t, IntentUnknown, parsed.Intent)
	assert.Zero(t, parsed.Tickets)
	assert.Empty(t, parsed.EventName)
}

func TestHandleMessagePrompts(t *testing.T) {
	svc := NewService(nil, nil)

	resp, err := svc.HandleMessage(nil, "book tickets for jazz night")
	assert.NoError(t, err)
	assert.Contains(t, resp.Reply, "How many tickets")

	resp, err = svc.HandleMessage(nil, "buy 2 tickets")
	assert.NoError(t, err)
	assert.Contains(t, resp.Reply, "Which event")

	resp, err = svc.HandleMessage(nil, "gibberish")
	assert.NoError(t, err)
	assert.Equal(t, IntentUnknown, resp.Parsed.Intent)
}
