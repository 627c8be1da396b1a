package logging

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestFormatterLayout(t *testing.T) {
	f := &Formatter{SystemName: "taskdeck"}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2024, 3, 1, 14, 5, 6, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "Event ID: API_BREAKER_OPEN, Description: rejected",
		Data:    logrus.Fields{"status": 503, "method": "GET"},
	}

	b, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	line := string(b)

	prefix := "Date: 2024-03-01, Time: 14:05:06, Event Source: taskdeck, Event Type: WARNING, Event ID: "
	if !strings.HasPrefix(line, prefix) {
		t.Errorf("Unexpected prefix in %q", line)
	}
	if !regexp.MustCompile(`Event ID: [0-9a-f-]{36}, `).MatchString(line) {
		t.Errorf("Expected a UUID event id in %q", line)
	}
	if !strings.HasSuffix(line, "Message: Event ID: API_BREAKER_OPEN, Description: rejected, method=GET, status=503\n") {
		t.Errorf("Expected message then sorted fields in %q", line)
	}
	if strings.Contains(line, "Location:") {
		t.Error("Expected no location without caller info")
	}
}
