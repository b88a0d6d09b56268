// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/config"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
)

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

// Authentication notifications
func (s *NotificationService) SendWelcomeEmail(user *models.User, verificationToken string) error {
	tmpl := s.getEmailTemplate("welcome")

	data := map[string]interface{}{
		"Username":        user.Username,
		"VerificationURL": fmt.Sprintf("%s/verify-email?token=%s", s.config.Frontend.BaseURL, verificationToken),
		"PlatformName":    s.config.Email.FromName,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

func (s *NotificationService) SendPasswordResetEmail(user *models.User, resetToken string) error {
	tmpl := s.getEmailTemplate("password_reset")

	data := map[string]interface{}{
		"Username":  user.Username,
		"ResetURL":  fmt.Sprintf("%s/reset-password?token=%s", s.config.Frontend.BaseURL, resetToken),
		"ExpiresIn": "1 hour",
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

// Contract workflow notifications
func (s *NotificationService) SendSubmissionSentNotification(agency *models.Agency, submission *models.LicenseSubmission) error {
	tmpl := s.getEmailTemplate("submission_sent")

	data := map[string]interface{}{
		"AgencyName":  agency.Name,
		"ClientName":  submission.ClientName,
		"ClientEmail": submission.ClientEmail,
		"TalentNames": submission.TalentNames,
		"ContractURL": fmt.Sprintf("%s/contracts/%s", s.config.Frontend.BaseURL, submission.ID),
	}

	subject := "License Contract Sent - " + submission.ClientName
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(agency.Owner.Email, subject, body)
}

// Scouting notifications
func (s *NotificationService) SendProspectSignedNotification(agency *models.Agency, prospect *models.ScoutingProspect) error {
	tmpl := s.getEmailTemplate("prospect_signed")

	data := map[string]interface{}{
		"AgencyName":   agency.Name,
		"ProspectName": prospect.FullName,
		"RosterURL":    fmt.Sprintf("%s/roster", s.config.Frontend.BaseURL),
	}

	subject := "New Talent Signed - " + prospect.FullName
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(agency.Owner.Email, subject, body)
}

// Booking notifications go to the agency owner and the brand.
func (s *NotificationService) SendBookingNotification(booking *models.Booking, event string) error {
	var agency models.Agency
	if err := s.db.Preload("Owner").First(&agency, booking.AgencyID).Error; err != nil {
		return fmt.Errorf("failed to load agency: %w", err)
	}

	var brand models.User
	if err := s.db.First(&brand, booking.BrandUserID).Error; err != nil {
		return fmt.Errorf("failed to load brand user: %w", err)
	}

	tmpl := s.getEmailTemplate("booking_update")
	data := map[string]interface{}{
		"Title":      booking.Title,
		"Event":      event,
		"StartDate":  booking.StartDate.Format("2006-01-02"),
		"EndDate":    booking.EndDate.Format("2006-01-02"),
		"Rate":       booking.Rate,
		"BookingURL": fmt.Sprintf("%s/bookings/%s", s.config.Frontend.BaseURL, booking.ID),
	}

	subject := fmt.Sprintf("Booking %s - %s", event, booking.Title)
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	if err := s.sendEmail(agency.Owner.Email, subject, body); err != nil {
		return err
	}
	return s.sendEmail(brand.Email, subject, body)
}

func (s *NotificationService) SendUserStatusChangeNotification(user *models.User, oldStatus models.UserStatus, reason string) error {
	tmpl := s.getEmailTemplate("user_status_change")

	data := map[string]interface{}{
		"Username":  user.Username,
		"OldStatus": string(oldStatus),
		"NewStatus": string(user.Status),
		"Reason":    reason,
	}

	subject := "Account Status Update"
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

// Helper methods
func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPUsername == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email delivery skipped (SMTP not configured)")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"welcome": {
			Subject: "Welcome to Likelee",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Welcome {{.Username}}!</h2>
	<p>Thank you for joining {{.PlatformName}}. Please verify your email address by clicking the link below:</p>
	<a href="{{.VerificationURL}}">Verify Email</a>
	<p>Best regards,<br>The {{.PlatformName}} Team</p>
</body>
</html>`,
		},
		"password_reset": {
			Subject: "Password Reset Request",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Password Reset</h2>
	<p>Hello {{.Username}},</p>
	<p>Click the link below to reset your password. The link expires in {{.ExpiresIn}}.</p>
	<a href="{{.ResetURL}}">Reset Password</a>
	<p>If you did not request this, you can ignore this email.</p>
</body>
</html>`,
		},
		"submission_sent": {
			Subject: "License Contract Sent",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Contract on its way</h2>
	<p>Hello {{.AgencyName}},</p>
	<p>The license contract for {{.ClientName}} ({{.ClientEmail}}) covering {{.TalentNames}} has been sent for signature.</p>
	<a href="{{.ContractURL}}">View Contract</a>
</body>
</html>`,
		},
		"prospect_signed": {
			Subject: "New Talent Signed",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Welcome aboard</h2>
	<p>{{.ProspectName}} has been signed to {{.AgencyName}} and added to your roster.</p>
	<a href="{{.RosterURL}}">View Roster</a>
</body>
</html>`,
		},
		"booking_update": {
			Subject: "Booking Update",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Booking {{.Event}}</h2>
	<p>{{.Title}} ({{.StartDate}} to {{.EndDate}}, ${{.Rate}}).</p>
	<a href="{{.BookingURL}}">View Booking</a>
</body>
</html>`,
		},
		"user_status_change": {
			Subject: "Account Status Update",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Account Status Update</h2>
	<p>Hello {{.Username}},</p>
	<p>Your account status changed from {{.OldStatus}} to {{.NewStatus}}.</p>
	<p>Reason: {{.Reason}}</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
