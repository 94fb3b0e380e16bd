package chat

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"alumnihub/domain"
	"alumnihub/errors"
	"alumnihub/moderation"
	"alumnihub/session"
	"alumnihub/store"
)

// BroadcastService is the public topic channel. One append-only log
// per catalog topic under domainChats/{topic}; no read tracking, every
// subscriber always gets the whole history.
type BroadcastService struct {
	store     store.IStore
	identity  session.UserSource
	moderator *moderation.Moderator
	logger    *slog.Logger
}

func NewBroadcastService(s store.IStore, identity session.UserSource,
	moderator *moderation.Moderator, logger *slog.Logger) *BroadcastService {
	return &BroadcastService{store: s, identity: identity, moderator: moderator, logger: logger}
}

// Send appends to the topic log. Unknown topics are rejected, the
// catalog is fixed.
func (b *BroadcastService) Send(topicID, content string) error {
	if !domain.KnownTopic(topicID) {
		return fmt.Errorf("unknown topic %q", topicID)
	}
	me := b.identity.CurrentUser()
	if me == nil {
		return errors.ErrNotAuthenticated
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return errors.ErrEmptyContent
	}
	censored, _ := b.moderator.Censor(content)

	msg := domain.DomainMessage{
		Content:    censored,
		SenderID:   me.ID,
		SenderName: domain.DisplayName(me.Email),
		Timestamp:  domain.Timestamp(time.Now()),
	}
	if _, err := b.store.Append("domainChats/"+topicID, msg); err != nil {
		return fmt.Errorf("appending to topic %s: %w", topicID, err)
	}
	return nil
}

// Subscribe streams the topic history ascending by timestamp.
func (b *BroadcastService) Subscribe(topicID string, fn func([]domain.DomainMessage)) (func(), error) {
	if !domain.KnownTopic(topicID) {
		return nil, fmt.Errorf("unknown topic %q", topicID)
	}

	return b.store.Subscribe("domainChats/"+topicID, func(snap store.Snapshot) {
		msgs := make([]domain.DomainMessage, 0, len(snap.Entries))
		for _, e := range snap.Children() {
			var m domain.DomainMessage
			if err := json.Unmarshal(e.Value, &m); err != nil {
				b.logger.Error("skipping unreadable topic message",
					slog.String("path", e.Path), slog.Any("error", err))
				continue
			}
			m.ID = e.Path[strings.LastIndex(e.Path, "/")+1:]
			msgs = append(msgs, m)
		}
		sort.SliceStable(msgs, func(i, j int) bool {
			return domain.ParseTimestamp(msgs[i].Timestamp).Before(domain.ParseTimestamp(msgs[j].Timestamp))
		})
		fn(msgs)
	})
}
