package common

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SendEmail delivers a plain-text message through the configured SMTP relay.
// It is a variable so services under test can swap in a recorder instead of
// talking to a real mail server.
var SendEmail = func(subject string, body string, receiver string) error {
	if SMTPServer == "" {
		return fmt.Errorf("SMTP server is not configured")
	}
	from := SMTPFrom
	if from == "" {
		from = SMTPAccount
	}
	mail := []byte(fmt.Sprintf(
		"To: %s\r\nFrom: %s<%s>\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n",
		receiver, SystemName, from, subject, body))
	auth := smtp.PlainAuth("", SMTPAccount, SMTPToken, SMTPServer)
	addr := fmt.Sprintf("%s:%d", SMTPServer, SMTPPort)
	to := strings.Split(receiver, ";")
	return smtp.SendMail(addr, auth, from, to, mail)
}
