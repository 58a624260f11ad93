package events

import (
	"context"

	"cloud.google.com/go/pubsub"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Handler consumes one event. A returned error nacks the message.
type Handler func(ctx context.Context, e Event) error

// Start subscribes to topicID and calls fn for every event until ctx is done.
func Start(
	ctx context.Context,
	projectID string,
	topicID string,
	subID string,
	fn Handler,
	logger *zap.Logger,
	opts ...option.ClientOption,
) error {
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return errors.Wrap(err, "pubsub client")
	}
	defer client.Close()

	topic, err := getOrCreateTopic(ctx, client, topicID)
	if err != nil {
		return err
	}

	sub, err := getOrCreateSub(ctx, client, subID, &pubsub.SubscriptionConfig{
		Topic:                     topic,
		EnableExactlyOnceDelivery: true,
		EnableMessageOrdering:     true,
	})
	if err != nil {
		return err
	}

	logger.Info("favorites sync listening", zap.String("subscription", subID))
	return sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if handle(ctx, msg.Data, fn, logger) {
			msg.Ack()
			return
		}
		msg.Nack()
	})
}

// handle reports whether the message should be acked. Unparseable messages
// are acked and dropped since redelivery cannot fix them.
func handle(ctx context.Context, data []byte, fn Handler, logger *zap.Logger) bool {
	e, err := Parse(data)
	if err != nil {
		logger.Error("dropping malformed event", zap.Error(err))
		return true
	}
	if err := fn(ctx, e); err != nil {
		logger.Error("event processing failed", zap.String("action", string(e.Action)), zap.Error(err))
		return false
	}
	return true
}

// getOrCreateTopic gets a topic or creates it if it doesn't exist.
func getOrCreateTopic(ctx context.Context, client *pubsub.Client, topicID string) (*pubsub.Topic, error) {
	topic := client.Topic(topicID)
	ok, err := topic.Exists(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "check topic exists")
	}
	if !ok {
		topic, err = client.CreateTopic(ctx, topicID)
		if err != nil {
			return nil, errors.Wrapf(err, "create topic %q", topicID)
		}
	}
	return topic, nil
}

// getOrCreateSub gets a subscription or creates it if it doesn't exist.
func getOrCreateSub(ctx context.Context, client *pubsub.Client, subID string, cfg *pubsub.SubscriptionConfig) (*pubsub.Subscription, error) {
	sub := client.Subscription(subID)
	ok, err := sub.Exists(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "check subscription exists")
	}
	if !ok {
		sub, err = client.CreateSubscription(ctx, subID, *cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "create subscription %q", subID)
		}
	}
	return sub, nil
}
