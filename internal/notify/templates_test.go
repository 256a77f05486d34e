package notify

import (
	"strings"
	"testing"
)

func sampleData() MessageData {
	return MessageData{
		Username:      "alice",
		LostName:      "black wallet",
		LostLocation:  "Main Station",
		FoundName:     "dark wallet",
		FoundLocation: "Platform 4",
		FoundContact:  "finder@example.com",
		Score:         "0.873",
	}
}

func TestLoadTemplates(t *testing.T) {
	if _, err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}
}

func TestEmailRendering(t *testing.T) {
	templates := mustTemplates(t)
	data := sampleData()

	subject, err := templates.EmailSubject(data)
	if err != nil {
		t.Fatalf("EmailSubject failed: %v", err)
	}
	if !strings.Contains(subject, "black wallet") {
		t.Errorf("subject missing lost item name: %s", subject)
	}

	body, err := templates.EmailBody(data)
	if err != nil {
		t.Fatalf("EmailBody failed: %v", err)
	}
	for _, want := range []string{"alice", "black wallet", "Main Station", "dark wallet", "Platform 4", "finder@example.com", "0.873"} {
		if !strings.Contains(body, want) {
			t.Errorf("email body missing %q:\n%s", want, body)
		}
	}
}

func TestSMSRendering(t *testing.T) {
	templates := mustTemplates(t)

	body, err := templates.SMSBody(sampleData())
	if err != nil {
		t.Fatalf("SMSBody failed: %v", err)
	}
	// Both items' name and location, the finder contact and the score must
	// all survive into the persisted message.
	for _, want := range []string{"black wallet", "Main Station", "dark wallet", "Platform 4", "finder@example.com", "0.873"} {
		if !strings.Contains(body, want) {
			t.Errorf("SMS body missing %q: %s", want, body)
		}
	}
	if strings.Contains(body, "\n") {
		t.Errorf("SMS body should be a single line: %q", body)
	}
}
