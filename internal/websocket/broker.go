package websocket

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/thereayou/geoguess/internal/logger"
	"github.com/thereayou/geoguess/internal/models"
)

const actionsChannel = "geoguess:actions"

// RedisBroker доставляет действия во все экземпляры сервиса через Redis Pub/Sub
type RedisBroker struct {
	rdb *redis.Client
	hub *Hub
}

func NewRedisBroker(rdb *redis.Client, hub *Hub) *RedisBroker {
	return &RedisBroker{rdb: rdb, hub: hub}
}

func (b *RedisBroker) PublishAction(ctx context.Context, action *models.Action) error {
	data, err := EncodeAction(action)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, actionsChannel, data).Err()
}

// Listen пересылает сообщения канала в локальный hub до отмены ctx
func (b *RedisBroker) Listen(ctx context.Context) error {
	sub := b.rdb.Subscribe(ctx, actionsChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := b.hub.Broadcast([]byte(msg.Payload)); err != nil {
				logger.Warningf("feed broadcast: %v", err)
				return nil
			}
		}
	}
}
