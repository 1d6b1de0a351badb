package mail

import (
	"fmt"
	"net/smtp"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ramoneds/linkwhats/internal/pkg/env"
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
		log.Warnf("SMTP_SENDER not set, using default sender: %s", sender)
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
		log.Errorf("SMTP send error: %v", err)
	}
	return err
}

// SendActivationEmail sends the account activation link to a new user
func SendActivationEmail(to, name, token string) error {
	baseURL := env.GetEnv("APP_URL", "http://localhost:4000")
	link := fmt.Sprintf("%s/activate?token=%s", baseURL, token)

	subject := "Ative sua conta no LinkWhats"
	body := fmt.Sprintf(
		"<p>Olá %s,</p>"+
			"<p>Obrigado por se cadastrar no LinkWhats. Clique no link abaixo para ativar sua conta:</p>"+
			"<p><a href=\"%s\">Ativar conta</a></p>"+
			"<p>Se você não criou esta conta, ignore este e-mail.</p>",
		name, link,
	)

	return SendMail(to, subject, body)
}
