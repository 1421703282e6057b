package storage

import (
	"capitolview/internal/model"
)

type Storage interface {
	CreateSession(session *model.Session) error
	GetSession(sessionID string) (*model.Session, error)
	UpdateSession(session *model.Session) error
	DeleteSession(sessionID string) error
	ListSessions() ([]*model.Session, error)
	ClearSessions() error

	AddMessage(sessionID string, message *model.ChatMessage) error
	GetMessages(sessionID string) ([]model.ChatMessage, error)
}
