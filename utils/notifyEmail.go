package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

// SendClaimDecisionEmail notifies a patient that their claim was approved or
// rejected. Callers run it off the request path; failures are logged, never
// surfaced to the client.
func SendClaimDecisionEmail(email, claimNumber, status, reason string, approvedAmount *decimal.Decimal) error {
	subject := fmt.Sprintf("Claim %s %s", claimNumber, status)

	body := fmt.Sprintf("Your claim %s is now %s.", claimNumber, status)
	if approvedAmount != nil {
		body += fmt.Sprintf(" Approved amount: %s.", approvedAmount.StringFixed(2))
	}
	if reason != "" {
		body += fmt.Sprintf(" Reason: %s", reason)
	}

	return sendMail(email, subject, body)
}

// SendPaymentCompletedEmail notifies a patient that a disbursement went out.
func SendPaymentCompletedEmail(email, claimNumber string, amount decimal.Decimal) error {
	subject := fmt.Sprintf("Payment issued for claim %s", claimNumber)
	body := fmt.Sprintf("A payment of %s for claim %s has been completed.", amount.StringFixed(2), claimNumber)
	return sendMail(email, subject, body)
}

func sendMail(to, subject, body string) error {
	fromEmail := os.Getenv("SMTP_USER")

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	htmlBody := `
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; }
			.container {
				background-color: #ffffff; margin: 20px auto; padding: 20px;
				border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1); max-width: 600px;
			}
			h1 { color: #333333; }
			p { color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<h1>` + subject + `</h1>
			<p>` + body + `</p>
		</div>
	</body>
	</html>
	`
	m.AddAlternative("text/html", htmlBody)

	smtpHost := os.Getenv("SMTP_HOST")
	smtpPortStr := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		log.Printf("Invalid SMTP_PORT value: %v", err)
		return err
	}

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	return d.DialAndSend(m)
}
