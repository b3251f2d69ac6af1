package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQRTokenValid(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	expires := now.Add(60 * time.Second)

	session := &ClassSession{QRToken: "token-abc", QRTokenExpiresAt: &expires}

	assert.True(t, session.QRTokenValid("token-abc", now))
	// Граница включительно: токен действует до expires_at ровно
	assert.True(t, session.QRTokenValid("token-abc", expires))

	assert.False(t, session.QRTokenValid("token-abc", expires.Add(time.Second)))
	assert.False(t, session.QRTokenValid("other-token", now))
	assert.False(t, session.QRTokenValid("", now))
}

func TestQRTokenValid_NoTokenIssued(t *testing.T) {
	now := time.Now()

	session := &ClassSession{}
	assert.False(t, session.QRTokenValid("anything", now))
	// Пустой присланный токен не должен совпасть с пустым выпущенным
	assert.False(t, session.QRTokenValid("", now))

	// Токен без срока действия не авторизует ничего
	session = &ClassSession{QRToken: "token", QRTokenExpiresAt: nil}
	assert.False(t, session.QRTokenValid("token", now))
}

func TestSessionStartsAt(t *testing.T) {
	session := &ClassSession{
		Date:      time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		StartTime: NewTimeOfDay(14, 30),
	}
	assert.Equal(t, time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC), session.StartsAt())
}
