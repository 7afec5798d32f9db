package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhatsAppConnection_CanSendToday(t *testing.T) {
	tests := []struct {
		name string
		conn WhatsAppConnection
		want bool
	}{
		{"under limit", WhatsAppConnection{DailyLimit: 200, SentToday: 199}, true},
		{"at limit", WhatsAppConnection{DailyLimit: 200, SentToday: 200}, false},
		{"over limit", WhatsAppConnection{DailyLimit: 200, SentToday: 250}, false},
		{"unmetered", WhatsAppConnection{DailyLimit: 0, SentToday: 9999}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.conn.CanSendToday())
		})
	}
}

func TestWhatsAppConnection_RemainingToday(t *testing.T) {
	assert.Equal(t, 5, (&WhatsAppConnection{DailyLimit: 200, SentToday: 195}).RemainingToday())
	assert.Equal(t, 0, (&WhatsAppConnection{DailyLimit: 10, SentToday: 25}).RemainingToday())
	assert.Equal(t, -1, (&WhatsAppConnection{DailyLimit: 0}).RemainingToday())
}
