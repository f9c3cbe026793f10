package application_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-gallery/internal/application"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/metrics"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/repository"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/testutil"
)

const testEventsTopic = "gallery.events"

// recordingPublisher captures published events and can be told to fail.
type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
	topics []string
	fail   bool
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) published() []kafka.CloudEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]kafka.CloudEvent(nil), p.events...)
}

type serviceStack struct {
	repo      *repository.GormPhotoRepository
	photos    *application.PhotoService
	likes     *application.LikeService
	seeder    *application.Seeder
	publisher *recordingPublisher
	metrics   *metrics.GalleryMetrics
}

func setupStack(t *testing.T) *serviceStack {
	t.Helper()
	db := testutil.NewSQLiteDB(t, &repository.PhotoModel{})
	repo := repository.NewGormPhotoRepository(db)
	m, err := metrics.NewGalleryMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	pub := &recordingPublisher{}
	log := zap.NewNop()

	return &serviceStack{
		repo:      repo,
		photos:    application.NewPhotoService(repo, log),
		likes:     application.NewLikeService(repo, pub, testEventsTopic, m, log),
		seeder:    application.NewSeeder(repo, m, log),
		publisher: pub,
		metrics:   m,
	}
}

func seeded(t *testing.T) *serviceStack {
	t.Helper()
	s := setupStack(t)
	_, err := s.seeder.Seed(context.Background())
	require.NoError(t, err)
	return s
}
