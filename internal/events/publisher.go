package events

import (
	"context"

	"wallcraft/internal/apperr"
	"wallcraft/internal/favorites"
	"wallcraft/internal/model"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"
)

// orderingKey keeps every favorites event in one ordered stream.
const orderingKey = favorites.StorageKey

// Publisher sends every favorites change to a topic, in order.
type Publisher struct {
	topic  *pubsub.Topic
	logger *zap.Logger
}

// NewPublisher opens topicID, creating it if it doesn't exist.
func NewPublisher(ctx context.Context, client *pubsub.Client, topicID string, logger *zap.Logger) (*Publisher, error) {
	topic, err := getOrCreateTopic(ctx, client, topicID)
	if err != nil {
		return nil, err
	}
	topic.EnableMessageOrdering = true
	return &Publisher{topic: topic, logger: logger}, nil
}

func (p *Publisher) FavoritesChanged(ctx context.Context, change favorites.Change, list []model.Wallpaper) error {
	e := Event{Action: change.Action, ID: change.ID, Seq: change.Seq, Favorites: list}

	res := p.topic.Publish(ctx, &pubsub.Message{
		Data:        e.Bytes(),
		Attributes:  map[string]string{"action": string(change.Action)},
		OrderingKey: orderingKey,
	})
	id, err := res.Get(ctx)
	if err != nil {
		// A failed publish pauses the ordering key until it is resumed.
		p.topic.ResumePublish(orderingKey)
		return apperr.Wrap(apperr.Persistence, "events.Publish", err)
	}

	p.logger.Debug("favorites change published",
		zap.String("message_id", id),
		zap.String("action", string(change.Action)),
		zap.Int64("id", change.ID),
		zap.Int64("seq", change.Seq),
	)
	return nil
}

// Stop flushes pending messages.
func (p *Publisher) Stop() {
	p.topic.Stop()
}
