package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendPasswordResetEmail sends a password reset email
func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	// Build the reset URL
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	htmlContent, err := s.renderPasswordResetEmail(toEmail, resetURL)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Reset Your Password - %s", s.config.FromName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// ClosureReportData carries the figures for the end-of-day closure email.
// Amounts are preformatted decimal strings.
type ClosureReportData struct {
	Date     string
	Opening  string
	CashIn   string
	CashOut  string
	Expected string
	Counted  string
	Delta    string
	ClosedBy string
}

// SendClosureReportEmail sends the daily closure summary to a manager
func (s *EmailService) SendClosureReportEmail(toEmail string, report ClosureReportData) error {
	tmpl, err := template.New("closure_report").Parse(closureReportTemplate)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, report); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Daily Closure %s - %s", report.Date, s.config.FromName)
	message := s.buildHTMLEmail(toEmail, subject, buf.String())

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	// Gmail requires TLS authentication
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderPasswordResetEmail renders the password reset email template
func (s *EmailService) renderPasswordResetEmail(email, resetURL string) (string, error) {
	tmpl, err := template.New("password_reset").Parse(passwordResetTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		Email    string
		ResetURL string
		AppName  string
	}{
		Email:    email,
		ResetURL: resetURL,
		AppName:  s.config.FromName,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// closureReportTemplate is the HTML template for daily closure emails
const closureReportTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Daily Closure</title>
</head>
<body style="margin: 0; padding: 0; font-family: Georgia, 'Times New Roman', serif; background-color: #faf6f2;">
    <table role="presentation" style="max-width: 560px; margin: 40px auto; background-color: #ffffff; border: 1px solid #e8ddd3; border-collapse: collapse; width: 100%;">
        <tr>
            <td style="background-color: #3d2c29; padding: 28px 30px; text-align: center;">
                <h1 style="color: #e8c9b0; margin: 0; font-size: 22px; font-weight: 400; letter-spacing: 1px;">Daily Closure {{.Date}}</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 30px;">
                <table role="presentation" style="width: 100%; border-collapse: collapse; font-size: 15px; color: #4a5568;">
                    <tr><td style="padding: 6px 0;">Opening cash</td><td style="text-align: right;">{{.Opening}}</td></tr>
                    <tr><td style="padding: 6px 0;">Cash in</td><td style="text-align: right;">{{.CashIn}}</td></tr>
                    <tr><td style="padding: 6px 0;">Cash out</td><td style="text-align: right;">{{.CashOut}}</td></tr>
                    <tr><td style="padding: 6px 0; border-top: 1px solid #e2e8f0;">Expected</td><td style="text-align: right; border-top: 1px solid #e2e8f0;">{{.Expected}}</td></tr>
                    <tr><td style="padding: 6px 0;">Counted</td><td style="text-align: right;">{{.Counted}}</td></tr>
                    <tr><td style="padding: 6px 0; font-weight: 600; color: #1a1a2e;">Delta</td><td style="text-align: right; font-weight: 600; color: #1a1a2e;">{{.Delta}}</td></tr>
                </table>
                <p style="color: #718096; font-size: 13px; margin: 20px 0 0 0;">Closed by {{.ClosedBy}}</p>
            </td>
        </tr>
    </table>
</body>
</html>
`

// passwordResetTemplate is the HTML template for password reset emails
const passwordResetTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Reset Your Password</title>
</head>
<body style="margin: 0; padding: 0; font-family: Georgia, 'Times New Roman', serif; background-color: #faf6f2;">
    <table role="presentation" style="max-width: 560px; margin: 40px auto; background-color: #ffffff; border: 1px solid #e8ddd3; border-collapse: collapse; width: 100%;">
        <tr>
            <td style="background-color: #3d2c29; padding: 36px 30px; text-align: center;">
                <h1 style="color: #e8c9b0; margin: 0; font-size: 26px; font-weight: 400; letter-spacing: 2px;">{{.AppName}}</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 36px 30px;">
                <h2 style="color: #3d2c29; margin: 0 0 18px 0; font-size: 21px; font-weight: 600;">Reset Your Password</h2>
                <p style="color: #5c4a42; font-size: 15px; line-height: 1.6; margin: 0 0 16px 0;">
                    We received a request to reset the password for <strong>{{.Email}}</strong>.
                </p>
                <p style="color: #5c4a42; font-size: 15px; line-height: 1.6; margin: 0 0 28px 0;">
                    Use the button below within the next hour; after that the link expires.
                </p>
                <table role="presentation" style="margin: 0 auto 28px auto;">
                    <tr>
                        <td style="background-color: #b07a5e; border-radius: 4px;">
                            <a href="{{.ResetURL}}" style="display: inline-block; padding: 14px 30px; color: #ffffff; text-decoration: none; font-size: 15px;">
                                Reset Password
                            </a>
                        </td>
                    </tr>
                </table>
                <p style="color: #8a7468; font-size: 13px; line-height: 1.6; margin: 0 0 16px 0;">
                    If you didn't ask for this, ignore this email; your password stays as it is.
                </p>
                <p style="color: #8a7468; font-size: 13px; line-height: 1.6; margin: 0;">
                    If the button doesn't work, paste this link into your browser:
                </p>
                <p style="font-size: 13px; line-height: 1.6; margin: 8px 0 0 0; word-break: break-all;">
                    <a href="{{.ResetURL}}" style="color: #b07a5e;">{{.ResetURL}}</a>
                </p>
            </td>
        </tr>
        <tr>
            <td style="background-color: #faf6f2; padding: 24px 30px; text-align: center; border-top: 1px solid #e8ddd3;">
                <p style="color: #a8958a; font-size: 12px; margin: 0;">
                    Sent by {{.AppName}}
                </p>
            </td>
        </tr>
    </table>
</body>
</html>
`
