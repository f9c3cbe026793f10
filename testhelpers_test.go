//go:build integration

package main_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Kilat-Pet-Delivery/service-gallery/internal/application"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/config"
	galleryEvents "github.com/Kilat-Pet-Delivery/service-gallery/internal/events"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/database"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/metrics"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/repository"
)

const (
	eventsTopic       = "gallery.events"
	likeRequestsTopic = "gallery.like-requests"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB      *gorm.DB
	Cleanup func()
}

// galleryStack holds wired-up gallery service components.
type galleryStack struct {
	Repo            *repository.GormPhotoRepository
	Photos          *application.PhotoService
	Likes           *application.LikeService
	Seeder          *application.Seeder
	CleanupProducer func()
}

// setupPostgres starts a PostgreSQL testcontainer, applies the SQL migrations
// and returns a connected GORM DB.
func setupPostgres(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()
	log := zap.NewNop()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_gallery",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dbCfg := config.DatabaseConfig{
		Driver:   "postgres",
		Host:     pgHost,
		Port:     pgPort.Port(),
		User:     "test",
		Password: "test",
		DBName:   "test_gallery",
		SSLMode:  "disable",
	}

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		db, err = database.Connect(dbCfg, log)
		return err == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, database.RunMigrations(dbCfg.DatabaseURL(), log))

	return &testInfra{
		DB: db,
		Cleanup: func() {
			_ = database.Close(db)
			if err := pgContainer.Terminate(ctx); err != nil {
				t.Logf("failed to terminate PostgreSQL container: %v", err)
			}
		},
	}
}

// setupKafka starts a Kafka container with the gallery topics created.
func setupKafka(t *testing.T) ([]string, func()) {
	t.Helper()
	ctx := context.Background()

	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, brokers, eventsTopic, likeRequestsTopic)

	return brokers, func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
	}
}

// setupGalleryStack wires up the gallery services. A nil broker list uses a no-op publisher.
func setupGalleryStack(t *testing.T, db *gorm.DB, brokers []string) *galleryStack {
	t.Helper()
	log, _ := zap.NewDevelopment()

	m, err := metrics.NewGalleryMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	var publisher kafka.Publisher = kafka.NopPublisher{}
	cleanup := func() {}
	if len(brokers) > 0 {
		producer := kafka.NewProducer(brokers, log)
		publisher = producer
		cleanup = func() { _ = producer.Close() }
	}

	repo := repository.NewGormPhotoRepository(db)
	return &galleryStack{
		Repo:            repo,
		Photos:          application.NewPhotoService(repo, log),
		Likes:           application.NewLikeService(repo, publisher, eventsTopic, m, log),
		Seeder:          application.NewSeeder(repo, m, log),
		CleanupProducer: cleanup,
	}
}

// newLikeRequestConsumer creates a consumer in a fresh group.
func newLikeRequestConsumer(t *testing.T, brokers []string, likes *application.LikeService) *galleryEvents.LikeRequestConsumer {
	t.Helper()
	log, _ := zap.NewDevelopment()
	groupID := fmt.Sprintf("test-gallery-%s", uuid.New().String()[:8])
	return galleryEvents.NewLikeRequestConsumer(brokers, groupID, likeRequestsTopic, likes, log)
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, eventType string, data interface{}) {
	t.Helper()
	log, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, log)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent("integration-test", eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	require.NoError(t, producer.PublishEvent(context.Background(), topic, ce), "failed to publish event")
}

// waitForLikes polls the photos table until likes_count matches.
func waitForLikes(t *testing.T, db *gorm.DB, photoID uint64, expected int64, timeout time.Duration) {
	t.Helper()
	require.Eventually(t, func() bool {
		var model repository.PhotoModel
		if err := db.Where("id = ?", photoID).First(&model).Error; err != nil {
			return false
		}
		return model.LikesCount == expected
	}, timeout, 200*time.Millisecond, "photo %d did not reach %d likes", photoID, expected)
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     fmt.Sprintf("test-assert-%s", uuid.New().String()[:8]),
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// decodeEvent unmarshals the event payload.
func decodeEvent(t *testing.T, ce kafka.CloudEvent, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(ce.Data, v))
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	require.NoError(t, controllerConn.CreateTopics(topicConfigs...), "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
