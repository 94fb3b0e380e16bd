package main

import (
	"log/slog"

	"alumnihub/chat"
	"alumnihub/events"
	"alumnihub/feedback"
	"alumnihub/internal"
	"alumnihub/jobs"
	"alumnihub/moderation"
	"alumnihub/observability"
	"alumnihub/session"
	"alumnihub/store"
	"alumnihub/users"
)

// App wires every service of the hub around one store. The surfaces
// (CLI tools, tests, future transports) embed this rather than
// re-assembling the graph.
type App struct {
	Store     *store.BadgerStore
	Index     *jobs.SearchIndex
	Users     *users.Repository
	Sessions  *session.Manager
	Direct    *chat.DirectService
	Broadcast *chat.BroadcastService
	Inbox     *chat.Inbox
	Feedback  *feedback.Service
	Jobs      *jobs.Service
	Events    *events.Service
	Monitor   *observability.Monitor
}

func NewApp(config internal.Config, charReplacement rune, logger *slog.Logger) (*App, error) {
	st, err := store.NewBadgerStore(config.BadgerFilepath, logger)
	if err != nil {
		return nil, err
	}

	index, err := jobs.NewSearchIndex(config.BlugeFilepath, logger)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	wordlist, err := moderation.LoadWordlist()
	if err != nil {
		_ = index.Close()
		_ = st.Close()
		return nil, err
	}
	moderator, err := moderation.NewModerator(wordlist.Words, charReplacement, logger)
	if err != nil {
		_ = index.Close()
		_ = st.Close()
		return nil, err
	}
	logger.Info("moderation dictionary loaded",
		slog.Int("words", len(wordlist.Words)),
		slog.Any("languages", wordlist.Languages))

	repo := users.NewRepository(st)
	issuer := session.NewTokenIssuer(config.TokenSecret, config.AuthTokenDuration)
	sessions := session.NewManager(repo, issuer, logger)

	return &App{
		Store:     st,
		Index:     index,
		Users:     repo,
		Sessions:  sessions,
		Direct:    chat.NewDirectService(st, sessions, &moderator, logger),
		Broadcast: chat.NewBroadcastService(st, sessions, &moderator, logger),
		Inbox:     chat.NewInbox(st, sessions, logger),
		Feedback:  feedback.NewService(st, logger),
		Jobs:      jobs.NewService(st, sessions, index, logger),
		Events:    events.NewService(st, sessions, logger),
		Monitor:   observability.NewMonitor(logger),
	}, nil
}

func (a *App) Close(logger *slog.Logger) {
	logger.Info("Closing Bluge...")
	_ = a.Index.Close()
	logger.Info("Closing BadgerDB...")
	_ = a.Store.Close()
}
