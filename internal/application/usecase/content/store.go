// Package content implements the content store: the in-process source of
// truth for every piece of site content, written through to a key/value
// storage on each mutation.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	domain "github.com/khoahotran/portfolio-api/internal/domain/content"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/metrics"
)

var tracer = otel.Tracer("content_store")

// Store owns the in-memory copy of all content for the lifetime of the
// process. Every read and mutation holds mu, so a mutation's merge, persist
// and publish steps complete before the next call starts.
//
// Storage failures never reach callers: reads fall back to the bundled
// defaults and writes are logged, leaving memory authoritative until restart.
type Store struct {
	mu      sync.Mutex
	storage domain.Storage
	events  service.EventPublisher
	logger  logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	data domain.Dataset

	// queue feeds the single publisher goroutine; nil without WithEvents.
	queue     chan domain.Event
	published sync.WaitGroup
	closed    bool
}

// eventQueueSize bounds the events waiting for the publisher. Mutations never
// wait on it; events beyond it are dropped and counted.
const eventQueueSize = 256

var errEventQueueFull = errors.New("content event queue is full")

type Option func(*Store)

// WithClock replaces time.Now. Tests use it to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithEvents makes the store publish an event after every committed mutation.
func WithEvents(p service.EventPublisher) Option {
	return func(s *Store) { s.events = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// NewStore returns an empty store; call Init before use.
func NewStore(storage domain.Storage, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		logger:  log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.events != nil {
		s.queue = make(chan domain.Event, eventQueueSize)
		s.published.Add(1)
		go s.publishLoop()
	}
	return s
}

// Close stops accepting events and waits until every queued event has been
// handed to the publisher. Mutations after Close still apply but publish
// nothing.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed || s.queue == nil {
		s.closed = true
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	s.published.Wait()
}

// publishLoop publishes queued events one at a time, in commit order.
func (s *Store) publishLoop() {
	defer s.published.Done()
	for evt := range s.queue {
		err := s.events.PublishContentEvent(context.Background(), evt)
		s.metrics.IncEvent(err)
		if err != nil {
			s.logger.Error("Failed to publish content event", err,
				zap.String("collection", evt.Collection),
				zap.String("event_type", string(evt.Type)),
			)
		}
	}
}

// Init resolves the initial state: wipe stored data written under another
// schema version, then load each collection from storage or fall back to the
// bundled defaults. Keys that were absent, unusable or upgraded by a migration
// are written back, so ids assigned here stay stable across processes. Keys
// whose read failed are left untouched.
func (s *Store) Init(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "Init")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	marker := s.checkVersion(ctx)
	wiped := marker == markerWiped
	span.SetAttributes(attribute.Bool("wiped", wiped))

	// Without a readable marker the stored data may belong to another
	// version, so nothing is written back during this load.
	l := loader{store: s, now: s.nowMillis(), writeBack: marker != markerUnreadable}
	s.data = domain.Dataset{
		Projects:     loadList(ctx, l, domain.KeyProjects, domain.ProjectMigration, domain.DefaultProjects),
		Experience:   loadList(ctx, l, domain.KeyExperience, domain.ExperienceMigration, domain.DefaultExperience),
		Achievements: loadList(ctx, l, domain.KeyAchievements, domain.AchievementMigration, domain.DefaultAchievements),
		Hero:         l.loadHero(ctx),
		SocialLinks:  l.loadSocialLinks(ctx),
		Skills:       l.loadSkills(ctx),
		AboutStats:   l.loadAboutStats(ctx),
	}

	s.logger.Info("Content store initialized",
		zap.Bool("version_wiped", wiped),
		zap.Bool("write_back", l.writeBack),
		zap.Int("projects", len(s.data.Projects)),
		zap.Int("experience", len(s.data.Experience)),
		zap.Int("achievements", len(s.data.Achievements)),
	)
}

type markerState int

const (
	markerCurrent markerState = iota
	markerWiped
	markerUnreadable
)

// checkVersion wipes every data key when the stored marker is absent or
// differs from CurrentVersion. A marker that cannot be read leaves storage
// alone.
func (s *Store) checkVersion(ctx context.Context) markerState {
	stored, err := s.storage.Get(ctx, domain.KeyVersion)
	switch {
	case errors.Is(err, domain.ErrKeyNotFound):
		stored = ""
	case err != nil:
		s.logger.Error("Failed to read content version marker, skipping version check", err)
		s.metrics.IncStorageFailure("read")
		return markerUnreadable
	case stored == domain.CurrentVersion:
		return markerCurrent
	}

	s.logger.Info("Content version changed, clearing stored content",
		zap.String("stored_version", stored),
		zap.String("current_version", domain.CurrentVersion),
	)
	for _, key := range domain.DataKeys() {
		if err := s.storage.Remove(ctx, key); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Error("Failed to clear content key", err, zap.String("key", key))
			s.metrics.IncStorageFailure("remove")
		}
	}
	if err := s.storage.Set(ctx, domain.KeyVersion, domain.CurrentVersion); err != nil {
		s.logger.Error("Failed to write content version marker", err)
		s.metrics.IncStorageFailure("write")
	}
	return markerWiped
}

type readStatus int

const (
	keyPresent readStatus = iota
	keyAbsent
	keyUnreadable
)

// read returns the stored value of key and whether it was present, absent or
// could not be read.
func (s *Store) read(ctx context.Context, key string) ([]byte, readStatus) {
	raw, err := s.storage.Get(ctx, key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil, keyAbsent
	}
	if err != nil {
		s.logger.Error("Failed to read content key, using defaults", err, zap.String("key", key))
		s.metrics.IncStorageFailure("read")
		return nil, keyUnreadable
	}
	return []byte(raw), keyPresent
}

// loader is one Init pass over the storage keys.
type loader struct {
	store     *Store
	now       int64
	writeBack bool
}

// settle writes value under key when it differs from what was read. Values
// this store wrote itself encode identically, so they are not rewritten.
func (l loader) settle(ctx context.Context, key string, status readStatus, raw []byte, value any) {
	if !l.writeBack || status == keyUnreadable {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		l.store.logger.Error("Failed to encode content for storage", err, zap.String("key", key))
		return
	}
	if status == keyPresent && bytes.Equal(b, raw) {
		return
	}
	l.store.write(ctx, key, b)
}

func loadList[T any](ctx context.Context, l loader, key string, m domain.Migration[T], fallback func(int64) []T) []T {
	raw, status := l.store.read(ctx, key)
	var items []T
	if status == keyPresent {
		migrated, err := m.Run(raw, l.now)
		switch {
		case err == nil:
			items = migrated
		case !errors.Is(err, domain.ErrEmptyCollection):
			l.store.logger.Warn("Stored collection is malformed, using defaults", zap.String("key", key), zap.Error(err))
		}
	}
	if items == nil {
		items = fallback(l.now)
	}
	l.settle(ctx, key, status, raw, items)
	return items
}

func (l loader) loadHero(ctx context.Context) profile.HeroContent {
	raw, status := l.store.read(ctx, domain.KeyHero)
	hero := domain.DefaultHero()
	if status == keyPresent {
		decoded, err := domain.DecodeOver(raw, domain.DefaultHero())
		if err == nil {
			hero = decoded.Clone()
		} else {
			l.store.logger.Warn("Stored hero content is malformed, using defaults", zap.Error(err))
		}
	}
	l.settle(ctx, domain.KeyHero, status, raw, hero)
	return hero
}

func (l loader) loadSocialLinks(ctx context.Context) profile.SocialLinks {
	raw, status := l.store.read(ctx, domain.KeySocialLinks)
	links := domain.DefaultSocialLinks()
	if status == keyPresent {
		decoded, err := domain.DecodeOver(raw, domain.DefaultSocialLinks())
		if err == nil {
			links = decoded
		} else {
			l.store.logger.Warn("Stored social links are malformed, using defaults", zap.Error(err))
		}
	}
	l.settle(ctx, domain.KeySocialLinks, status, raw, links)
	return links
}

func (l loader) loadSkills(ctx context.Context) profile.Skills {
	raw, status := l.store.read(ctx, domain.KeySkills)
	skills := domain.DefaultSkills()
	if status == keyPresent {
		migrated, err := domain.MigrateSkills(raw, domain.DefaultSkills())
		if err == nil {
			skills = migrated
		} else {
			l.store.logger.Info("Stored skills have an outdated shape, using defaults", zap.Error(err))
		}
	}
	l.settle(ctx, domain.KeySkills, status, raw, skills)
	return skills
}

func (l loader) loadAboutStats(ctx context.Context) []profile.AboutStat {
	raw, status := l.store.read(ctx, domain.KeyAboutStats)
	stats := domain.DefaultAboutStats()
	if status == keyPresent {
		var decoded []profile.AboutStat
		if err := json.Unmarshal(raw, &decoded); err == nil {
			stats = profile.CloneAboutStats(decoded)
		} else {
			l.store.logger.Warn("Stored about stats are malformed, using defaults", zap.Error(err))
		}
	}
	l.settle(ctx, domain.KeyAboutStats, status, raw, stats)
	return stats
}

// persist writes value under key. Failures are logged and counted only.
func (s *Store) persist(ctx context.Context, key string, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("Failed to encode content for storage", err, zap.String("key", key))
		return
	}
	s.write(ctx, key, b)
}

func (s *Store) write(ctx context.Context, key string, b []byte) {
	if err := s.storage.Set(ctx, key, string(b)); err != nil {
		s.logger.Error("Failed to persist content, change kept in memory only", err, zap.String("key", key))
		s.metrics.IncStorageFailure("write")
	}
}

// committed counts a mutation and queues its event. Callers hold mu.
func (s *Store) committed(evtType domain.EventType, collection, entityID string, at int64) {
	s.metrics.IncMutation(collection, string(evtType))
	if s.queue == nil || s.closed {
		return
	}
	evt := domain.Event{Type: evtType, Collection: collection, EntityID: entityID, OccurredAt: at}
	select {
	case s.queue <- evt:
	default:
		s.metrics.IncEvent(errEventQueueFull)
		s.logger.Warn("Content event queue is full, dropping event",
			zap.String("collection", collection),
			zap.String("event_type", string(evtType)),
		)
	}
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

// nextStamp returns the current time, bumped past prev so a modification
// timestamp always moves forward even within one millisecond.
func (s *Store) nextStamp(prev int64) int64 {
	now := s.nowMillis()
	if now <= prev {
		return prev + 1
	}
	return now
}

// Snapshot returns a deep copy of everything the store holds.
func (s *Store) Snapshot() domain.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// ResetToDefaults replaces every collection and singleton with the bundled
// dataset and persists all of it. There is no confirmation step here.
func (s *Store) ResetToDefaults(ctx context.Context) domain.Dataset {
	ctx, span := tracer.Start(ctx, "ResetToDefaults")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowMillis()
	s.data = domain.Defaults(now)
	s.persistAll(ctx)
	s.committed(domain.EventReset, domain.CollectionAll, "", now)

	s.logger.Info("Content reset to bundled defaults")
	return s.data.Clone()
}

func (s *Store) persistAll(ctx context.Context) {
	s.persist(ctx, domain.KeyProjects, s.data.Projects)
	s.persist(ctx, domain.KeyExperience, s.data.Experience)
	s.persist(ctx, domain.KeyAchievements, s.data.Achievements)
	s.persist(ctx, domain.KeyHero, s.data.Hero)
	s.persist(ctx, domain.KeySocialLinks, s.data.SocialLinks)
	s.persist(ctx, domain.KeySkills, s.data.Skills)
	s.persist(ctx, domain.KeyAboutStats, s.data.AboutStats)
}

func indexByID[T any](items []T, id string, idOf func(*T) string) int {
	for i := range items {
		if idOf(&items[i]) == id {
			return i
		}
	}
	return -1
}

// uniqueID draws ids until one is not taken in the collection.
func uniqueID[T any](items []T, prefix string, now int64, idOf func(*T) string) string {
	for {
		id := domain.NewID(prefix, now)
		if indexByID(items, id, idOf) < 0 {
			return id
		}
	}
}

func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func prepend[T any](item T, items []T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}
