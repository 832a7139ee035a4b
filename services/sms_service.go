package services

import (
	"fmt"
	"os"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender delivers a freeform text message to one phone number. A
// missing credential fails only the recipient being attempted, not
// the whole run.
type SMSSender interface {
	Configured() bool
	SendSMS(phone, message string) error
}

type SMSService struct {
	client     *twilio.RestClient
	accountSid string
	fromNumber string
}

func NewSMSService() *SMSService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	// Bounded per-send timeout, same reasoning as the email sender.
	client.Client.SetTimeout(15 * time.Second)

	return &SMSService{
		client:     client,
		accountSid: accountSid,
		fromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
	}
}

func (s *SMSService) Configured() bool {
	return s.accountSid != ""
}

func (s *SMSService) SendSMS(phone, message string) error {
	if !s.Configured() {
		return fmt.Errorf("TWILIO_ACCOUNT_SID is not set")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.fromNumber)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid == nil {
		return fmt.Errorf("message to %s accepted but no SID returned", phone)
	}
	return nil
}
