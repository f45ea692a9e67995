package utils

import (
	"fmt"
	"log"

	"learnhub/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEnrollmentConfirmed emails the learner that their premium enrollment
// is active. Fire-and-forget: failures are logged, never propagated, since
// notification delivery is not required for correctness.
func SendEnrollmentConfirmed(toEmail, name string, courseID uint) {
	subject := "Your enrollment is confirmed"
	body := fmt.Sprintf("Hi %s, your payment was received and your enrollment in course %d is now active. Happy learning!", name, courseID)
	sendEmail(toEmail, name, subject, body)
}

func sendEmail(toEmail, toName, subject, body string) {
	if config.AppConfig == nil || config.AppConfig.SendgridApiKey == "" {
		log.Printf("[NOTIFIER] Sendgrid not configured, skipping email to %s", toEmail)
		return
	}

	from := mail.NewEmail("LearnHub", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("[NOTIFIER] Failed to send email to %s: %v", toEmail, err)
		return
	}
	if resp.StatusCode >= 300 {
		log.Printf("[NOTIFIER] Sendgrid returned %d for email to %s", resp.StatusCode, toEmail)
	}
}
