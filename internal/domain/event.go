package domain

import (
	"time"

	"github.com/google/uuid"
)

// Timestamp layouts accepted from event producers. Layouts without a
// zone suffix are parsed as UTC.
var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// PayloadString extrai um valor string não vazio do payload do evento
func PayloadString(payload map[string]any, key string) (string, bool) {
	if payload == nil {
		return "", false
	}

	v, ok := payload[key].(string)
	if !ok || v == "" {
		return "", false
	}

	return v, true
}

// PayloadUUID extrai um UUID do payload do evento
func PayloadUUID(payload map[string]any, key string) (uuid.UUID, bool) {
	s, ok := PayloadString(payload, key)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

// PayloadTime extrai um timestamp do payload do evento
func PayloadTime(payload map[string]any, key string) (time.Time, bool) {
	if payload == nil {
		return time.Time{}, false
	}

	switch v := payload[key].(type) {
	case time.Time:
		return v.UTC(), true
	case string:
		for _, layout := range eventTimeLayouts {
			if ts, err := time.Parse(layout, v); err == nil {
				return ts.UTC(), true
			}
		}
	}

	return time.Time{}, false
}
