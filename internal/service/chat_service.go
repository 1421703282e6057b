package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"capitolview/internal/model"
	"capitolview/internal/storage"
	"capitolview/internal/stream"
	"capitolview/internal/uistate"
	"capitolview/pkg/logger"
)

// ChatService owns transcript sessions and drives the stream adapter for
// the relay endpoint. Snapshots fan out on a per-request channel; the
// assistant message is frozen into the session only once the stream
// signals completion.
type ChatService struct {
	storage storage.Storage
	client  *stream.Client
	ui      uistate.Store
}

func NewChatService(client *stream.Client, ui uistate.Store) *ChatService {
	return &ChatService{
		storage: storage.NewMemoryStorage(),
		client:  client,
		ui:      ui,
	}
}

func (s *ChatService) GetStorage() storage.Storage {
	return s.storage
}

func (s *ChatService) CreateSession(title string) (*model.Session, error) {
	if title == "" {
		title = "New chat " + time.Now().Format("2006-01-02 15:04")
	}

	session := &model.Session{
		ID:        uuid.NewString(),
		Title:     title,
		Messages:  make([]model.ChatMessage, 0),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.storage.CreateSession(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

func (s *ChatService) GetSession(sessionID string) (*model.Session, error) {
	return s.storage.GetSession(sessionID)
}

func (s *ChatService) GetSessionMessages(sessionID string) ([]model.ChatMessage, error) {
	return s.storage.GetMessages(sessionID)
}

func (s *ChatService) GetAllSessions() ([]*model.Session, error) {
	return s.storage.ListSessions()
}

func (s *ChatService) DeleteSession(sessionID string) error {
	return s.storage.DeleteSession(sessionID)
}

func (s *ChatService) ClearAllSessions() error {
	return s.storage.ClearSessions()
}

func (s *ChatService) UpdateSessionTitle(sessionID, title string) error {
	session, err := s.storage.GetSession(sessionID)
	if err != nil {
		return err
	}
	session.Title = title
	return s.storage.UpdateSession(session)
}

// StreamChat appends the user turn, opens the upstream stream, and relays
// full-state snapshots. Exactly one of the returned channels closes the
// exchange: snapshots closes after the done frame, errors carries the
// single terminal failure.
func (s *ChatService) StreamChat(ctx context.Context, req model.ChatRequest) (<-chan model.ChatSnapshot, <-chan error) {
	snapshots := make(chan model.ChatSnapshot, 16)
	errs := make(chan error, 1)

	session, err := s.ensureSession(req.SessionID)
	if err != nil {
		errs <- err
		close(snapshots)
		return snapshots, errs
	}

	userMsg := &model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      model.RoleUser,
		Content:   req.Message,
		Timestamp: time.Now(),
	}
	if err := s.storage.AddMessage(session.ID, userMsg); err != nil {
		errs <- err
		close(snapshots)
		return snapshots, errs
	}

	state := s.ui.Get()
	provider := req.Provider
	if provider == "" {
		provider = state.Provider
	}
	pageContext := req.Context
	if pageContext == nil {
		pageContext = state.PageContext
	}

	history, err := s.history(session.ID)
	if err != nil {
		errs <- err
		close(snapshots)
		return snapshots, errs
	}

	messageID := uuid.NewString()
	streamReq := stream.Request{
		Provider:    provider,
		Messages:    history,
		PageContext: pageContext,
	}

	go func() {
		defer close(snapshots)

		var final stream.Snapshot
		err := s.client.Stream(ctx, streamReq, func(snap stream.Snapshot) {
			final = snap
			out := model.ChatSnapshot{
				SessionID: session.ID,
				MessageID: messageID,
				Parts:     snap.Parts,
				Done:      snap.Done,
				Timestamp: time.Now().Unix(),
			}
			select {
			case snapshots <- out:
			case <-ctx.Done():
			}
		})
		if err != nil {
			errs <- err
			return
		}

		// Stream completed: freeze the assistant turn into the transcript.
		assistantMsg := &model.ChatMessage{
			ID:        messageID,
			Role:      model.RoleAssistant,
			Content:   final.Text,
			Parts:     final.Parts,
			Timestamp: time.Now(),
		}
		if err := s.storage.AddMessage(session.ID, assistantMsg); err != nil {
			logger.Errorf("failed to persist assistant message: %v", err)
		}
	}()

	return snapshots, errs
}

func (s *ChatService) ensureSession(sessionID string) (*model.Session, error) {
	if sessionID == "" {
		return s.CreateSession("")
	}
	return s.storage.GetSession(sessionID)
}

// history flattens the transcript into the wire shape the streaming
// endpoint accepts: ordered {role, content} pairs.
func (s *ChatService) history(sessionID string) ([]stream.HistoryMessage, error) {
	messages, err := s.storage.GetMessages(sessionID)
	if err != nil {
		return nil, err
	}
	history := make([]stream.HistoryMessage, 0, len(messages))
	for _, msg := range messages {
		history = append(history, stream.HistoryMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return history, nil
}
