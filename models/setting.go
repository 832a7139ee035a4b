package models

// Setting is a key/value configuration row. The expiry-notification job
// reads the keys below; the settings API upserts them.
type Setting struct {
	Key   string `gorm:"primary_key" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

// Settings keys consumed by the expiry-notification job.
const (
	SettingEmailTemplateID  = "email_template_id"
	SettingDaysBeforeExpiry = "days_before_expiry"
)
