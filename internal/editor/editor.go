// Package editor holds the message list editor: the locally cached message
// list, the new-message input, the empty-submit error flag and the edit
// buffer, together with the handlers that mutate them.
//
// Every mutating handler issues its request and then reloads the whole list;
// the list is never patched in place. Reordering is local and is discarded by
// the next reload.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/msgboard/internal/config"
	"github.com/debemdeboas/msgboard/internal/model"
	"github.com/debemdeboas/msgboard/internal/repository/drafts"
)

var editorLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	editorLogger = l
}

// ErrEmptyMessage is returned by Submit when the input is blank. No request
// is made and the error flag is set.
var ErrEmptyMessage = errors.New(config.ErrEmptyMessage)

//go:generate mockgen -destination=mock/backend.go -package=mock github.com/debemdeboas/msgboard/internal/editor Backend

// Backend is the remote message collection.
type Backend interface {
	List(ctx context.Context) ([]model.Message, error)
	Create(ctx context.Context, content string) error
	Update(ctx context.Context, id model.MessageID, content string) error
	Delete(ctx context.Context, id model.MessageID) error
}

// Editor is safe for concurrent use. The lock is never held across a
// request, so overlapping handlers race their reloads and the last reload
// to finish wins.
type Editor struct {
	backend Backend
	drafts  drafts.Repository

	mu       sync.RWMutex
	messages []model.Message
	input    string
	errFlag  bool
}

func New(backend Backend, repo drafts.Repository) *Editor {
	return &Editor{
		backend:  backend,
		drafts:   repo,
		messages: make([]model.Message, 0),
	}
}

// Load fetches the full collection and replaces the local list. On failure
// the list is left as it was.
func (e *Editor) Load(ctx context.Context) error {
	messages, err := e.backend.List(ctx)
	if err != nil {
		editorLogger.Error().Err(err).Msg(config.ErrLoadMessages)
		return fmt.Errorf("load messages: %w", err)
	}
	if messages == nil {
		messages = make([]model.Message, 0)
	}

	e.mu.Lock()
	e.messages = messages
	e.mu.Unlock()

	editorLogger.Debug().Int("count", len(messages)).Msg("Messages loaded")
	return nil
}

func (e *Editor) SetInput(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.input = text
}

// Submit creates a message from the current input. The raw input is sent,
// untrimmed; only the emptiness check trims.
func (e *Editor) Submit(ctx context.Context) error {
	e.mu.Lock()
	input := e.input
	if strings.TrimSpace(input) == "" {
		e.errFlag = true
		e.mu.Unlock()
		return ErrEmptyMessage
	}
	e.errFlag = false
	e.mu.Unlock()

	if err := e.backend.Create(ctx, input); err != nil {
		editorLogger.Error().Err(err).Msg(config.ErrCreateMessage)
		return fmt.Errorf("create message: %w", err)
	}

	if err := e.Load(ctx); err != nil {
		return err
	}

	e.mu.Lock()
	e.input = ""
	e.mu.Unlock()
	return nil
}

// Delete removes id on the server and reloads. There is no rollback.
func (e *Editor) Delete(ctx context.Context, id model.MessageID) error {
	if err := e.backend.Delete(ctx, id); err != nil {
		editorLogger.Error().Err(err).Str("message_id", id.String()).Msg(config.ErrDeleteMessage)
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	return e.Load(ctx)
}

// MoveUp swaps id with its predecessor. It reports false when id is first
// or unknown.
func (e *Editor) MoveUp(id model.MessageID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := model.IndexOf(e.messages, id)
	if idx <= 0 {
		return false
	}
	e.messages[idx-1], e.messages[idx] = e.messages[idx], e.messages[idx-1]
	return true
}

// MoveDown swaps id with its successor. It reports false when id is last
// or unknown.
func (e *Editor) MoveDown(id model.MessageID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := model.IndexOf(e.messages, id)
	if idx < 0 || idx >= len(e.messages)-1 {
		return false
	}
	e.messages[idx], e.messages[idx+1] = e.messages[idx+1], e.messages[idx]
	return true
}

// Edit buffers text for id without touching the server.
func (e *Editor) Edit(id model.MessageID, text string) error {
	if err := e.drafts.SaveDraft(id, text); err != nil {
		editorLogger.Error().Err(err).Str("message_id", id.String()).Msg(config.ErrSaveDraft)
		return err
	}
	return nil
}

// Update saves the buffered edit for id. A missing or blank edit is a no-op.
// The buffer entry is removed only after the update and reload succeed.
func (e *Editor) Update(ctx context.Context, id model.MessageID) error {
	draft, err := e.drafts.GetDraft(id)
	if errors.Is(err, drafts.ErrDraftNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if strings.TrimSpace(draft.Content) == "" {
		return nil
	}

	if err := e.backend.Update(ctx, id, draft.Content); err != nil {
		editorLogger.Error().Err(err).Str("message_id", id.String()).Msg(config.ErrUpdateMessage)
		return fmt.Errorf("update message %s: %w", id, err)
	}

	if err := e.Load(ctx); err != nil {
		return err
	}

	if err := e.drafts.DeleteDraft(id); err != nil {
		editorLogger.Error().Err(err).Str("message_id", id.String()).Msg(config.ErrDeleteDraft)
		return err
	}
	return nil
}

// CanSave reports whether the save control for id is actionable: a buffered
// edit exists and differs from the last-known server content.
func (e *Editor) CanSave(id model.MessageID) bool {
	msg, ok := e.Find(id)
	if !ok {
		return false
	}
	draft, err := e.drafts.GetDraft(id)
	if err != nil {
		return false
	}
	return draft.Content != msg.Content
}

// DisplayContent is the text shown for id: the buffered edit if any,
// otherwise the server content.
func (e *Editor) DisplayContent(id model.MessageID) string {
	if draft, err := e.drafts.GetDraft(id); err == nil {
		return draft.Content
	}
	msg, _ := e.Find(id)
	return msg.Content
}

func (e *Editor) HasDraft(id model.MessageID) bool {
	_, err := e.drafts.GetDraft(id)
	return err == nil
}

// Drafts lists every buffered edit, including orphans whose message is gone.
func (e *Editor) Drafts() ([]drafts.Draft, error) {
	return e.drafts.ListDrafts()
}

func (e *Editor) Find(id model.MessageID) (model.Message, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	idx := model.IndexOf(e.messages, id)
	if idx < 0 {
		return model.Message{}, false
	}
	return e.messages[idx], true
}

// Messages returns a copy of the local list in display order.
func (e *Editor) Messages() []model.Message {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]model.Message(nil), e.messages...)
}

func (e *Editor) Input() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.input
}

// ErrorFlag reports whether the last submit attempt was rejected as empty.
func (e *Editor) ErrorFlag() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.errFlag
}
