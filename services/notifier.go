// services/notifier.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"librarypro-backend/models"
	"librarypro-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Defaults used when a settings row is missing or not numeric. Absent
// settings are not an error; the job fails open to these values.
const (
	DefaultTemplateID = 1
	DefaultDaysBefore = 7
)

// Runs daily at midnight server time.
const expirySchedule = "0 0 * * *"

// ErrRunInProgress is returned when a run is requested while a previous
// one has not finished, so a slow provider cannot cause duplicate
// notifications to the same students.
var ErrRunInProgress = errors.New("expiry notification run already in progress")

// Channels selects which notification channels a run dispatches on.
type Channels struct {
	Email bool
	SMS   bool
}

// RunReport summarizes one expiry-notification run.
type RunReport struct {
	TargetDate   string `json:"target_date"`
	Matched      int    `json:"matched"`
	EmailsSent   int    `json:"emails_sent"`
	EmailsFailed int    `json:"emails_failed"`
	SMSSent      int    `json:"sms_sent"`
	SMSFailed    int    `json:"sms_failed"`
}

// ExpiryNotifier runs the membership-expiry notification pipeline:
// load settings, query students inside the expiry window, send an
// email (and optionally an SMS) to each. One student's failure never
// blocks the rest of the batch.
type ExpiryNotifier struct {
	db       *gorm.DB
	email    EmailSender
	sms      SMSSender
	channels Channels

	cron    *cron.Cron
	running atomic.Bool
	now     func() time.Time
}

func NewExpiryNotifier(db *gorm.DB, email EmailSender, sms SMSSender, channels Channels) *ExpiryNotifier {
	return &ExpiryNotifier{
		db:       db,
		email:    email,
		sms:      sms,
		channels: channels,
		now:      time.Now,
	}
}

// Start runs the pipeline once immediately (errors logged, not
// propagated) and then daily at midnight until Stop is called.
func (n *ExpiryNotifier) Start() error {
	if _, err := n.Run(); err != nil {
		log.Printf("Initial expiry notification run failed: %v", err)
	}

	n.cron = cron.New()
	_, err := n.cron.AddFunc(expirySchedule, func() {
		log.Println("Scheduled expiry notification run triggered")
		if _, err := n.Run(); err != nil {
			log.Printf("Expiry notification run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("registering expiry schedule: %w", err)
	}
	n.cron.Start()
	log.Println("Expiry notification scheduler started")
	return nil
}

// Stop cancels the recurring schedule and waits for an in-flight
// scheduled run to finish.
func (n *ExpiryNotifier) Stop() {
	if n.cron != nil {
		<-n.cron.Stop().Done()
	}
}

// Run executes one full pipeline pass. Every run is independent: the
// threshold date is recomputed and students already past their end
// date are re-matched until their membership is renewed.
func (n *ExpiryNotifier) Run() (*RunReport, error) {
	if !n.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer n.running.Store(false)

	log.Println("Running expiry notifications...")

	templateID, daysBefore, err := n.loadSettings()
	if err != nil {
		return nil, err
	}

	target := utils.TargetDate(n.now(), daysBefore)
	log.Printf("Target expiry date: %s", target)

	var students []models.Student
	if err := n.db.Where("membership_end <= ?", target).Find(&students).Error; err != nil {
		return nil, fmt.Errorf("fetching expiring students: %w", err)
	}
	log.Printf("Found %d students to notify", len(students))

	report := &RunReport{TargetDate: target, Matched: len(students)}
	if err := n.dispatch(students, templateID, report); err != nil {
		return nil, err
	}

	log.Printf("Expiry notification run completed: %d matched, %d emails sent, %d failed, %d SMS sent, %d failed",
		report.Matched, report.EmailsSent, report.EmailsFailed, report.SMSSent, report.SMSFailed)
	return report, nil
}

// dispatch fans out to every matched student. An empty batch is a
// no-op; a missing email credential aborts before any send is
// attempted.
func (n *ExpiryNotifier) dispatch(students []models.Student, templateID int, report *RunReport) error {
	if len(students) == 0 {
		return nil
	}

	if n.channels.Email && !n.email.Configured() {
		return errors.New("SENDGRID_API_KEY is not set")
	}

	for i := range students {
		n.notify(&students[i], templateID, report)
	}
	return nil
}

func (n *ExpiryNotifier) loadSettings() (templateID, daysBefore int, err error) {
	var rows []models.Setting
	keys := []string{models.SettingEmailTemplateID, models.SettingDaysBeforeExpiry}
	if err := n.db.Where("key IN ?", keys).Find(&rows).Error; err != nil {
		return 0, 0, fmt.Errorf("loading notification settings: %w", err)
	}
	templateID, daysBefore = ResolveSettings(rows)
	return templateID, daysBefore, nil
}

// ResolveSettings extracts the template id and days-before-expiry
// threshold from raw settings rows. Missing or non-numeric values fall
// back to the defaults.
func ResolveSettings(rows []models.Setting) (templateID, daysBefore int) {
	templateID, daysBefore = DefaultTemplateID, DefaultDaysBefore
	for _, row := range rows {
		v, err := strconv.Atoi(strings.TrimSpace(row.Value))
		if err != nil {
			continue
		}
		switch row.Key {
		case models.SettingEmailTemplateID:
			templateID = v
		case models.SettingDaysBeforeExpiry:
			daysBefore = v
		}
	}
	return templateID, daysBefore
}

// notify dispatches to one student. Send failures are logged and
// counted; they never stop the loop.
func (n *ExpiryNotifier) notify(student *models.Student, templateID int, report *RunReport) {
	expiry := utils.FormatDate(student.MembershipEnd)

	if n.channels.Email {
		if student.Email == nil || *student.Email == "" {
			log.Printf("Student %s has no email on file, skipping email", student.ID)
			report.EmailsFailed++
		} else if err := n.email.SendExpiryEmail(*student.Email, student.Name, templateID, expiry); err != nil {
			log.Printf("Failed to send expiry email to %s: %v", *student.Email, err)
			report.EmailsFailed++
		} else {
			log.Printf("Expiry email sent to %s", *student.Email)
			report.EmailsSent++
		}
	}

	if n.channels.SMS {
		if student.Phone == nil || *student.Phone == "" {
			log.Printf("Student %s has no phone on file, skipping SMS", student.ID)
			report.SMSFailed++
			return
		}
		message := fmt.Sprintf("Hi %s, your library membership expires on %s. Please renew to keep your access.",
			student.Name, expiry)
		if err := n.sms.SendSMS(*student.Phone, message); err != nil {
			log.Printf("Failed to send expiry SMS to %s: %v", *student.Phone, err)
			report.SMSFailed++
		} else {
			log.Printf("Expiry SMS sent to %s", *student.Phone)
			report.SMSSent++
		}
	}
}
