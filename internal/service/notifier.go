package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification levels.
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

// User-facing messages.
const (
	MsgDraftRecovered   = "Rascunho recuperado com sucesso!"
	MsgDraftLoadFailed  = "Erro ao carregar rascunho."
	MsgDraftSaveFailed  = "Erro ao salvar rascunho (Espaço cheio?)"
	MsgDraftClearFailed = "Erro ao apagar rascunho."
	MsgRequiredMissing  = "Existem campos obrigatórios não preenchidos!"
	MsgExportFailed     = "Não foi possível gerar o documento."
)

type notification struct {
	id        string
	level     string
	message   string
	expiresAt time.Time
}

// notifier keeps toasts alive for ttl. Expired entries are dropped on read.
type notifier struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items []notification
}

func newNotifier(ttl time.Duration, now func() time.Time) *notifier {
	return &notifier{ttl: ttl, now: now}
}

func (n *notifier) Push(level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.items = append(n.items, notification{
		id:        uuid.NewString(),
		level:     level,
		message:   message,
		expiresAt: n.now().Add(n.ttl),
	})
}

// Active returns the live notifications, oldest first.
func (n *notifier) Active() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	live := n.items[:0]
	for _, item := range n.items {
		if now.Before(item.expiresAt) {
			live = append(live, item)
		}
	}
	n.items = live
	return append([]notification(nil), live...)
}

func (n *notifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = nil
}
