package domain

import (
	"errors"
	"time"
)

const (
	ReminderPreferenceEmail = "email"
	ReminderPreferenceSMS   = "sms"
	ReminderPreferenceBoth  = "both"
)

var (
	MessageSuccessGetMe      = "user retrieved successfully"
	MessageSuccessUpdateUser = "user updated successfully"

	MessageFailedGetMe      = "failed to retrieve user"
	MessageFailedUpdateUser = "failed to update user"

	ErrUserNotFound = errors.New("user not found")
	ErrEmailMissing = errors.New("identity token carries no email")
)

type (
	UpdateUserRequest struct {
		FullName           string `json:"full_name" validate:"omitempty"`
		PhoneNumber        string `json:"phone_number" validate:"omitempty"`
		ReminderPreference string `json:"reminder_preference" validate:"omitempty,oneof=email sms both"`
	}

	UserResponse struct {
		ID                 string     `json:"id"`
		Email              string     `json:"email"`
		FullName           string     `json:"full_name"`
		PhoneNumber        string     `json:"phone_number,omitempty"`
		MailConnected      bool       `json:"mail_connected"`
		LastInboxScanDate  *time.Time `json:"last_inbox_scan_date,omitempty"`
		ReminderPreference string     `json:"reminder_preference"`
	}
)
