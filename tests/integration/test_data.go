package integration

import (
	"fmt"
	"strings"
	"time"
)

// TestAccount generates unique test account credentials using a timestamp
func TestAccount(suffix string) (username, email, password string) {
	ts := time.Now().UnixNano()
	username = fmt.Sprintf("test-%d-%s", ts, suffix)
	email = fmt.Sprintf("test-%d-%s@example.com", ts, suffix)
	password = "TestPassword123"
	return
}

// ExtractCodeFromEmail extracts the reset code from an email body.
// Email format: "Your OTP is: {code}\n..."
func ExtractCodeFromEmail(emailBody string) string {
	const prefix = "Your OTP is: "
	idx := strings.Index(emailBody, prefix)
	if idx < 0 {
		return ""
	}
	rest := emailBody[idx+len(prefix):]
	if end := strings.IndexByte(rest, '\n'); end >= 0 {
		return rest[:end]
	}
	return rest
}
