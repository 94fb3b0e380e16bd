package chat

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"

	"alumnihub/domain"
	"alumnihub/errors"
	"alumnihub/moderation"
	"alumnihub/session"
	"alumnihub/store"
)

// DirectService is the one-to-one channel. Each conversation lives
// under chats/{key} with an append-only message log and a denormalized
// lastMessage preview.
type DirectService struct {
	store     store.IStore
	identity  session.UserSource
	moderator *moderation.Moderator
	logger    *slog.Logger
}

func NewDirectService(s store.IStore, identity session.UserSource,
	moderator *moderation.Moderator, logger *slog.Logger) *DirectService {
	return &DirectService{store: s, identity: identity, moderator: moderator, logger: logger}
}

// Send appends a message to the conversation with receiverID and then
// refreshes the preview. The two writes are separate operations: a
// crash in between leaves a message without its preview, which the
// next send repairs.
func (d *DirectService) Send(receiverID, content string) error {
	me := d.identity.CurrentUser()
	if me == nil {
		return errors.ErrNotAuthenticated
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return errors.ErrEmptyContent
	}

	key, err := Key(me.ID, receiverID)
	if err != nil {
		return err
	}

	censored, matched := d.moderator.Censor(content)
	if len(matched) > 0 {
		info := whatlanggo.Detect(content)
		d.logger.Debug("message censored before send",
			slog.String("chat", key),
			slog.String("lang", info.Lang.Iso6391()),
			slog.Int("matches", len(matched)))
	}

	now := domain.Timestamp(time.Now())
	msg := domain.Message{
		Content:    censored,
		SenderID:   me.ID,
		ReceiverID: receiverID,
		SenderName: domain.DisplayName(me.Email),
		Timestamp:  now,
	}
	if _, err := d.store.Append("chats/"+key+"/messages", msg); err != nil {
		return fmt.Errorf("appending message: %w", err)
	}

	last := domain.LastMessage{
		Content:    censored,
		SenderID:   me.ID,
		ReceiverID: receiverID,
		SenderName: msg.SenderName,
		Timestamp:  now,
		Read:       false,
	}
	if err := d.store.Write("chats/"+key+"/lastMessage", last); err != nil {
		return fmt.Errorf("updating preview: %w", err)
	}
	return nil
}

// Subscribe streams the full conversation with otherID, ascending by
// timestamp, once immediately and again after every change.
func (d *DirectService) Subscribe(otherID string, fn func([]domain.Message)) (func(), error) {
	me := d.identity.CurrentUser()
	if me == nil {
		return nil, errors.ErrNotAuthenticated
	}
	key, err := Key(me.ID, otherID)
	if err != nil {
		return nil, err
	}

	return d.store.Subscribe("chats/"+key+"/messages", func(snap store.Snapshot) {
		fn(d.decodeMessages(snap))
	})
}

func (d *DirectService) decodeMessages(snap store.Snapshot) []domain.Message {
	msgs := make([]domain.Message, 0, len(snap.Entries))
	for _, e := range snap.Children() {
		var m domain.Message
		if err := json.Unmarshal(e.Value, &m); err != nil {
			d.logger.Error("skipping unreadable message",
				slog.String("path", e.Path), slog.Any("error", err))
			continue
		}
		m.ID = e.Path[strings.LastIndex(e.Path, "/")+1:]
		msgs = append(msgs, m)
	}
	// Order by the stamp inside the message, not by key: clients, not
	// the store, own message time.
	sort.SliceStable(msgs, func(i, j int) bool {
		return domain.ParseTimestamp(msgs[i].Timestamp).Before(domain.ParseTimestamp(msgs[j].Timestamp))
	})
	return msgs
}

// MarkRead flips the preview's read bit for the conversation with
// otherID. Only the receiver of the last message flips it; anyone
// else's call is a no-op.
func (d *DirectService) MarkRead(otherID string) error {
	me := d.identity.CurrentUser()
	if me == nil {
		return errors.ErrNotAuthenticated
	}
	key, err := Key(me.ID, otherID)
	if err != nil {
		return err
	}

	path := "chats/" + key + "/lastMessage"
	snap, err := d.store.Read(path)
	if err != nil {
		return err
	}
	leaf := snap.Leaf()
	if leaf == nil {
		return nil
	}

	var last domain.LastMessage
	if err := json.Unmarshal(leaf, &last); err != nil {
		return fmt.Errorf("decoding preview: %w", err)
	}
	if last.ReceiverID != me.ID || last.Read {
		return nil
	}

	last.Read = true
	return d.store.Write(path, last)
}

// SubscribeConversations streams the viewer's conversation list,
// newest activity first.
func (d *DirectService) SubscribeConversations(fn func([]domain.Conversation)) (func(), error) {
	me := d.identity.CurrentUser()
	if me == nil {
		return nil, errors.ErrNotAuthenticated
	}
	uid := me.ID

	return d.store.Subscribe("chats", func(snap store.Snapshot) {
		fn(d.decodeConversations(snap, uid))
	})
}

func (d *DirectService) decodeConversations(snap store.Snapshot, uid string) []domain.Conversation {
	var convos []domain.Conversation
	for _, e := range snap.Entries {
		rest, ok := strings.CutPrefix(e.Path, snap.Path+"/")
		if !ok || !strings.HasSuffix(rest, "/lastMessage") {
			continue
		}
		key := strings.TrimSuffix(rest, "/lastMessage")
		if !KeyInvolves(key, uid) {
			continue
		}

		var last domain.LastMessage
		if err := json.Unmarshal(e.Value, &last); err != nil {
			d.logger.Error("skipping unreadable preview",
				slog.String("path", e.Path), slog.Any("error", err))
			continue
		}
		convos = append(convos, domain.Conversation{
			Key:         key,
			LastMessage: last,
			Unread:      last.ReceiverID == uid && !last.Read,
		})
	}
	sort.SliceStable(convos, func(i, j int) bool {
		return domain.ParseTimestamp(convos[i].LastMessage.Timestamp).
			After(domain.ParseTimestamp(convos[j].LastMessage.Timestamp))
	})
	return convos
}
