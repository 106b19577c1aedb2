package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// NarrativeEntry representa uma entrada no log narrativo da missão
type NarrativeEntry struct {
	ID           uuid.UUID `json:"id"`
	MissionID    uuid.UUID `json:"mission_id"`
	TimestampUTC time.Time `json:"timestamp_utc"`
	SourceTopic  string    `json:"source_topic"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate verifica se a entrada narrativa é válida
func (e *NarrativeEntry) Validate() error {
	if e.MissionID == uuid.Nil {
		return errors.New("narrative entry mission_id cannot be empty")
	}

	if e.SourceTopic == "" {
		return errors.New("narrative entry source_topic cannot be empty")
	}

	if e.Text == "" {
		return errors.New("narrative entry text cannot be empty")
	}

	return nil
}

// TopicCount agrega o total de entradas por tópico de origem
type TopicCount struct {
	SourceTopic string `json:"source_topic"`
	Count       int64  `json:"count"`
}
