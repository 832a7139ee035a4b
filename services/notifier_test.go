package services

import (
	"errors"
	"testing"
	"time"

	"librarypro-backend/models"
	"librarypro-backend/utils"
)

type fakeEmailSender struct {
	configured bool
	failFor    map[string]bool
	sent       []string
}

func (f *fakeEmailSender) Configured() bool { return f.configured }

func (f *fakeEmailSender) SendExpiryEmail(toEmail, toName string, templateID int, expiryDate string) error {
	if f.failFor[toEmail] {
		return errors.New("provider rejected message")
	}
	f.sent = append(f.sent, toEmail)
	return nil
}

type fakeSMSSender struct {
	configured bool
	failFor    map[string]bool
	sent       []string
}

func (f *fakeSMSSender) Configured() bool { return f.configured }

func (f *fakeSMSSender) SendSMS(phone, message string) error {
	if !f.configured {
		return errors.New("TWILIO_ACCOUNT_SID is not set")
	}
	if f.failFor[phone] {
		return errors.New("provider rejected message")
	}
	f.sent = append(f.sent, phone)
	return nil
}

func str(s string) *string { return &s }

func student(name, email, phone string, end time.Time) models.Student {
	s := models.Student{Name: name, MembershipEnd: end}
	if email != "" {
		s.Email = str(email)
	}
	if phone != "" {
		s.Phone = str(phone)
	}
	return s
}

func TestResolveSettingsDefaults(t *testing.T) {
	templateID, daysBefore := ResolveSettings(nil)
	if templateID != DefaultTemplateID {
		t.Errorf("templateID = %d, want %d", templateID, DefaultTemplateID)
	}
	if daysBefore != DefaultDaysBefore {
		t.Errorf("daysBefore = %d, want %d", daysBefore, DefaultDaysBefore)
	}
}

func TestResolveSettingsStoredValues(t *testing.T) {
	rows := []models.Setting{
		{Key: models.SettingEmailTemplateID, Value: "5"},
		{Key: models.SettingDaysBeforeExpiry, Value: "10"},
	}
	templateID, daysBefore := ResolveSettings(rows)
	if templateID != 5 {
		t.Errorf("templateID = %d, want 5", templateID)
	}
	if daysBefore != 10 {
		t.Errorf("daysBefore = %d, want 10", daysBefore)
	}
}

func TestResolveSettingsNonNumericFallsBack(t *testing.T) {
	rows := []models.Setting{
		{Key: models.SettingEmailTemplateID, Value: "not-a-number"},
		{Key: models.SettingDaysBeforeExpiry, Value: ""},
	}
	templateID, daysBefore := ResolveSettings(rows)
	if templateID != DefaultTemplateID {
		t.Errorf("templateID = %d, want default %d", templateID, DefaultTemplateID)
	}
	if daysBefore != DefaultDaysBefore {
		t.Errorf("daysBefore = %d, want default %d", daysBefore, DefaultDaysBefore)
	}
}

func TestResolveSettingsPartialRows(t *testing.T) {
	rows := []models.Setting{
		{Key: models.SettingDaysBeforeExpiry, Value: "30"},
	}
	templateID, daysBefore := ResolveSettings(rows)
	if templateID != DefaultTemplateID {
		t.Errorf("templateID = %d, want default %d", templateID, DefaultTemplateID)
	}
	if daysBefore != 30 {
		t.Errorf("daysBefore = %d, want 30", daysBefore)
	}
}

func TestDispatchEmptyBatchSendsNothing(t *testing.T) {
	email := &fakeEmailSender{configured: true}
	n := &ExpiryNotifier{email: email, channels: Channels{Email: true}}

	report := &RunReport{}
	if err := n.dispatch(nil, DefaultTemplateID, report); err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}
	if len(email.sent) != 0 {
		t.Errorf("sent %d emails, want 0", len(email.sent))
	}
}

func TestDispatchMissingCredentialAbortsBeforeAnySend(t *testing.T) {
	email := &fakeEmailSender{configured: false}
	n := &ExpiryNotifier{email: email, channels: Channels{Email: true}}

	end := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	students := []models.Student{
		student("Asha", "asha@example.com", "", end),
		student("Ravi", "ravi@example.com", "", end),
	}

	report := &RunReport{}
	err := n.dispatch(students, DefaultTemplateID, report)
	if err == nil {
		t.Fatal("dispatch should fail when the email credential is missing")
	}
	if len(email.sent) != 0 {
		t.Errorf("sent %d emails, want 0", len(email.sent))
	}
	if report.EmailsSent != 0 || report.EmailsFailed != 0 {
		t.Errorf("report recorded sends despite aborted run: %+v", report)
	}
}

func TestDispatchFailureIsolation(t *testing.T) {
	email := &fakeEmailSender{
		configured: true,
		failFor:    map[string]bool{"asha@example.com": true},
	}
	n := &ExpiryNotifier{email: email, channels: Channels{Email: true}}

	end := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	students := []models.Student{
		student("Asha", "asha@example.com", "", end),
		student("Ravi", "ravi@example.com", "", end),
	}

	report := &RunReport{}
	if err := n.dispatch(students, DefaultTemplateID, report); err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}

	if len(email.sent) != 1 || email.sent[0] != "ravi@example.com" {
		t.Errorf("sent = %v, want [ravi@example.com]", email.sent)
	}
	if report.EmailsSent != 1 {
		t.Errorf("EmailsSent = %d, want 1", report.EmailsSent)
	}
	if report.EmailsFailed != 1 {
		t.Errorf("EmailsFailed = %d, want 1", report.EmailsFailed)
	}
}

func TestDispatchSMSChannel(t *testing.T) {
	email := &fakeEmailSender{configured: true}
	sms := &fakeSMSSender{configured: true}
	n := &ExpiryNotifier{email: email, sms: sms, channels: Channels{Email: true, SMS: true}}

	end := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	students := []models.Student{
		student("Asha", "asha@example.com", "+919876543210", end),
		student("Ravi", "ravi@example.com", "", end), // no phone on file
	}

	report := &RunReport{}
	if err := n.dispatch(students, DefaultTemplateID, report); err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}

	if report.EmailsSent != 2 {
		t.Errorf("EmailsSent = %d, want 2", report.EmailsSent)
	}
	if report.SMSSent != 1 {
		t.Errorf("SMSSent = %d, want 1", report.SMSSent)
	}
	if report.SMSFailed != 1 {
		t.Errorf("SMSFailed = %d, want 1", report.SMSFailed)
	}
}

func TestDispatchSMSCredentialFailsOnlyThatRecipient(t *testing.T) {
	email := &fakeEmailSender{configured: true}
	sms := &fakeSMSSender{configured: false}
	n := &ExpiryNotifier{email: email, sms: sms, channels: Channels{Email: true, SMS: true}}

	end := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	students := []models.Student{
		student("Asha", "asha@example.com", "+919876543210", end),
		student("Ravi", "ravi@example.com", "+919876543211", end),
	}

	report := &RunReport{}
	if err := n.dispatch(students, DefaultTemplateID, report); err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}

	// Emails still go out even when every SMS fails.
	if report.EmailsSent != 2 {
		t.Errorf("EmailsSent = %d, want 2", report.EmailsSent)
	}
	if report.SMSFailed != 2 {
		t.Errorf("SMSFailed = %d, want 2", report.SMSFailed)
	}
}

func TestRunRejectsOverlappingRuns(t *testing.T) {
	n := NewExpiryNotifier(nil, &fakeEmailSender{configured: true}, nil, Channels{Email: true})
	n.running.Store(true)

	if _, err := n.Run(); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("Run during in-flight run returned %v, want ErrRunInProgress", err)
	}
}

func TestNotifyExpiryDateParam(t *testing.T) {
	// The display date passed to the provider is the student's own
	// membership end, not the run's target date.
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	s := student("Asha", "asha@example.com", "", end)
	if got := utils.FormatDate(s.MembershipEnd); got != "2024-01-05" {
		t.Errorf("FormatDate(MembershipEnd) = %q, want 2024-01-05", got)
	}
}
