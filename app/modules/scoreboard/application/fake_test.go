package scoreboardservice

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	scoredb "github.com/dappy-games/scoreboard/app/modules/scoreboard/infrastructure/repositories"
)

// ------------------------
// Fake Score Repo
// ------------------------

type FakeScoreRepo struct {
	trace []string

	BestByNameFunc   func(ctx context.Context, name string) (*scoredb.ScoreEntry, error)
	ListByNameFunc   func(ctx context.Context, name string) ([]scoredb.ScoreEntry, error)
	ListTopFunc      func(ctx context.Context, limit int) ([]scoredb.ScoreEntry, error)
	InsertFunc       func(ctx context.Context, entry *scoredb.ScoreEntry) error
	ReplaceFunc      func(ctx context.Context, entry *scoredb.ScoreEntry) error
	DeleteOthersFunc func(ctx context.Context, name string, keepID int64) (int64, error)
}

func NewFakeScoreRepo() *FakeScoreRepo {
	return &FakeScoreRepo{
		trace: []string{},
	}
}

func (f *FakeScoreRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeScoreRepo) BestByName(ctx context.Context, name string) (*scoredb.ScoreEntry, error) {
	f.record("BestByName")
	if f.BestByNameFunc != nil {
		return f.BestByNameFunc(ctx, name)
	}
	return nil, scoredb.ErrNotFound
}

func (f *FakeScoreRepo) ListByName(ctx context.Context, name string) ([]scoredb.ScoreEntry, error) {
	f.record("ListByName")
	if f.ListByNameFunc != nil {
		return f.ListByNameFunc(ctx, name)
	}
	return nil, nil
}

func (f *FakeScoreRepo) ListTop(ctx context.Context, limit int) ([]scoredb.ScoreEntry, error) {
	f.record("ListTop")
	if f.ListTopFunc != nil {
		return f.ListTopFunc(ctx, limit)
	}
	return nil, nil
}

func (f *FakeScoreRepo) Insert(ctx context.Context, entry *scoredb.ScoreEntry) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, entry)
	}
	entry.ID = 1
	return nil
}

func (f *FakeScoreRepo) Replace(ctx context.Context, entry *scoredb.ScoreEntry) error {
	f.record("Replace")
	if f.ReplaceFunc != nil {
		return f.ReplaceFunc(ctx, entry)
	}
	entry.ID = 2
	return nil
}

func (f *FakeScoreRepo) DeleteOthers(ctx context.Context, name string, keepID int64) (int64, error) {
	f.record("DeleteOthers")
	if f.DeleteOthersFunc != nil {
		return f.DeleteOthersFunc(ctx, name, keepID)
	}
	return 0, nil
}

// --- Accessors for assertions ---

func (f *FakeScoreRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ scoredb.Repository = (*FakeScoreRepo)(nil)

// ------------------------
// Fake Event Bus
// ------------------------

type FakeEventBus struct {
	mu        sync.Mutex
	published []publishedMessage

	PublishFunc   func(ctx context.Context, subject string, msg *message.Message) error
	SubscribeFunc func(ctx context.Context, subject string) (<-chan *message.Message, error)
}

type publishedMessage struct {
	Subject string
	Msg     *message.Message
}

func (f *FakeEventBus) Publish(ctx context.Context, subject string, msg *message.Message) error {
	f.mu.Lock()
	f.published = append(f.published, publishedMessage{Subject: subject, Msg: msg})
	f.mu.Unlock()
	if f.PublishFunc != nil {
		return f.PublishFunc(ctx, subject, msg)
	}
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, subject string) (<-chan *message.Message, error) {
	if f.SubscribeFunc != nil {
		return f.SubscribeFunc(ctx, subject)
	}
	ch := make(chan *message.Message)
	close(ch)
	return ch, nil
}

func (f *FakeEventBus) Close() error { return nil }

func (f *FakeEventBus) Published() []publishedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]publishedMessage, len(f.published))
	copy(out, f.published)
	return out
}
