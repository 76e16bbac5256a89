package infra

import (
	"context"
	"errors"

	"github.com/Pavel26ru/BruCup/internal/domain"
)

// ErrNotModified reports an edit that changed nothing, e.g. a message that
// was already updated by a concurrent action. Callers treat it as a no-op.
var ErrNotModified = errors.New("message is not modified")

// Notifier delivers out-of-band messages through the chat transport.
// Failures never roll back the state change they report on.
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string, keyboard domain.Keyboard) (domain.MessageRef, error)
	Edit(ctx context.Context, ref domain.MessageRef, text string, keyboard domain.Keyboard) error
	Notify(ctx context.Context, chatID int64, text string) error
}
