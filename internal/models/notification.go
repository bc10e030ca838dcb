package models

import "fmt"

type EventNotificationRecord struct {
	EventID          string `json:"eventId"`
	NotificationTime int64  `json:"notificationTime"`
	Sent             bool   `json:"sent"`
}

type NotificationSettings struct {
	Enabled                 bool   `json:"enabled"`
	ReminderMinutes         int    `json:"reminderMinutes" validate:"required|int|min:1|max:120"`
	SoundEnabled            bool   `json:"soundEnabled"`
	ShowBrowserNotification bool   `json:"showBrowserNotification"`
	DailyReminder           bool   `json:"dailyReminder"`
	DailyReminderTime       string `json:"dailyReminderTime" validate:"required"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:                 true,
		ReminderMinutes:         15,
		SoundEnabled:            true,
		ShowBrowserNotification: true,
		DailyReminder:           true,
		DailyReminderTime:       "08:00",
	}
}

func (s *NotificationSettings) Validate() error {
	if err := validateStruct(s); err != nil {
		return err
	}
	if _, err := ParseClock(s.DailyReminderTime); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRecord, err)
	}
	return nil
}

// Notification is one alert handed to the presentation layer.
type Notification struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	Icon    string `json:"icon,omitempty"`
	Sound   bool   `json:"sound"`
	Visual  bool   `json:"visual"`
	EventID string `json:"eventId,omitempty"`
	At      int64  `json:"at"`
}
