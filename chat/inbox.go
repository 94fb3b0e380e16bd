package chat

import (
	"encoding/json"
	"log/slog"
	"strings"

	"alumnihub/domain"
	"alumnihub/errors"
	"alumnihub/session"
	"alumnihub/store"
)

// Inbox derives the viewer's unread badge. It recomputes the count
// from every chat preview on each change rather than tracking deltas,
// so a missed notification can never leave the badge stale.
type Inbox struct {
	store    store.IStore
	identity session.UserSource
	logger   *slog.Logger
}

func NewInbox(s store.IStore, identity session.UserSource, logger *slog.Logger) *Inbox {
	return &Inbox{store: s, identity: identity, logger: logger}
}

// SubscribeUnread streams the number of conversations whose last
// message targets the viewer and is still unread.
func (in *Inbox) SubscribeUnread(fn func(int)) (func(), error) {
	me := in.identity.CurrentUser()
	if me == nil {
		return nil, errors.ErrNotAuthenticated
	}
	uid := me.ID

	return in.store.Subscribe("chats", func(snap store.Snapshot) {
		fn(in.countUnread(snap, uid))
	})
}

func (in *Inbox) countUnread(snap store.Snapshot, uid string) int {
	count := 0
	for _, e := range snap.Entries {
		if !strings.HasSuffix(e.Path, "/lastMessage") {
			continue
		}
		var last domain.LastMessage
		if err := json.Unmarshal(e.Value, &last); err != nil {
			in.logger.Error("skipping unreadable preview",
				slog.String("path", e.Path), slog.Any("error", err))
			continue
		}
		if last.ReceiverID == uid && !last.Read {
			count++
		}
	}
	return count
}
