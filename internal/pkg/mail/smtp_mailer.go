package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/naijavibes/NaijaVibes/internal/pkg/env"
)

// SendMail sends an HTML email via SMTP
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	}
	return err
}

// SendActivationMail delivers the account activation link for a fresh signup.
func SendActivationMail(to string, name string, token string) error {
	base := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:"+env.GetEnv("APP_PORT", "5000"))
	link := fmt.Sprintf("%s/api/v1/auth/activate?token=%s", base, token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to NaijaVibes! Please activate your account:</p><p><a href=\"%s\">Activate account</a></p>",
		name, link,
	)
	return SendMail(to, "Activate your NaijaVibes account", body)
}

// SendPremiumActivatedMail confirms a successful premium subscription payment.
func SendPremiumActivatedMail(to string, name string, expiresAt string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your premium membership is now active until %s. Enjoy unlimited messaging and profile boosts!</p>",
		name, expiresAt,
	)
	return SendMail(to, "Premium membership activated", body)
}
