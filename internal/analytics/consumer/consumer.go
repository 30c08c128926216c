package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	ch "github.com/lostmyescape/referral-tracker/internal/analytics/clickhouse"
	"github.com/lostmyescape/referral-tracker/internal/lib/logger/sl"
	"github.com/segmentio/kafka-go"
)

const (
	maxBatchSize = 10_000
	maxBatchAge  = 20 * time.Second
)

// AnalyticsService drains the event topics into ClickHouse in batches.
// This archive is the offline-analysis twin of the Postgres aggregates:
// losing a batch costs history here, never the live stats.
type AnalyticsService struct {
	r               *kafka.Reader
	log             *slog.Logger
	UserEventBuffer []ch.UserEvent
	ClickBuffer     []ch.ClickEvent
	lastFlush       time.Time
	conn            clickhouse.Conn
	topicUser       string
	topicClick      string
}

func NewConsumer(brokers []string, topicUser, topicClick, groupID string, log *slog.Logger, conn clickhouse.Conn) *AnalyticsService {
	return &AnalyticsService{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     brokers,
			GroupID:     groupID,
			Topic:       "",
			GroupTopics: []string{topicUser, topicClick},
			MinBytes:    10e3,
			MaxBytes:    10e6,
		}),
		log:        log,
		conn:       conn,
		topicUser:  topicUser,
		topicClick: topicClick,
	}
}

// Start reading and send messages to Clickhouse
func (s *AnalyticsService) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := s.r.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					s.log.Info("consumer stopped")
					return
				}
				s.log.Error("kafka read error", sl.Err(err))
				continue
			}

			switch msg.Topic {
			case s.topicUser:
				event, err := parseUserEvent(msg)
				if err != nil {
					s.log.Error("could not parse user-event message", sl.Err(err))
					continue
				}
				s.UserEventBuffer = append(s.UserEventBuffer, event)
			case s.topicClick:
				event, err := parseClickEvent(msg)
				if err != nil {
					s.log.Error("could not parse click-event message", sl.Err(err))
					continue
				}
				s.ClickBuffer = append(s.ClickBuffer, event)
			default:
				s.log.Warn("unknown topic", slog.String("topic", msg.Topic))
				continue
			}

			shouldFlush := len(s.UserEventBuffer)+len(s.ClickBuffer) >= maxBatchSize || time.Since(s.lastFlush) >= maxBatchAge

			if shouldFlush {
				if err := s.flush(); err != nil {
					s.log.Error("failed flush", sl.Err(err))
					continue
				}
				s.log.Info("successful flush: messages have been sent")
			}
		}
	}()
}

// flush prepares and sends batch,
// resets buffers and sets time of the last batch sending
func (s *AnalyticsService) flush() error {
	ctx := context.Background()

	if len(s.UserEventBuffer) > 0 {
		if err := ch.InsertUserEvents(ctx, s.conn, s.UserEventBuffer); err != nil {
			return err
		}
		s.UserEventBuffer = s.UserEventBuffer[:0]
	}

	if len(s.ClickBuffer) > 0 {
		if err := ch.InsertClickEvents(ctx, s.conn, s.ClickBuffer); err != nil {
			return err
		}
		s.ClickBuffer = s.ClickBuffer[:0]
	}

	s.lastFlush = time.Now()

	return nil
}

func parseUserEvent(msg kafka.Message) (ch.UserEvent, error) {
	var event ch.UserEvent

	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return ch.UserEvent{}, err
	}

	// the message key carries the event name
	event.Type = string(msg.Key)
	event.RawJSON = string(msg.Value)

	return event, nil
}

func parseClickEvent(msg kafka.Message) (ch.ClickEvent, error) {
	var event ch.ClickEvent

	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return ch.ClickEvent{}, err
	}

	event.Type = string(msg.Key)
	event.RawJSON = string(msg.Value)

	return event, nil
}
