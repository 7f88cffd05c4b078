package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"babyname-be/internal/apperr"
	"babyname-be/internal/dto"
	"babyname-be/pkg/events"
	pkgNats "babyname-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Broadcaster pushes a payload to every connected websocket client.
type Broadcaster interface {
	Broadcast(payload []byte)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub             *gochannel.GoChannel
	topicName          string
	descriptionService IDescriptionService
	viewService        IViewService
	broadcaster        Broadcaster       // nil when websockets are off
	natsPub            *pkgNats.Publisher // nil when the bus is unreachable
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	descriptionService IDescriptionService,
	viewService IViewService,
	broadcaster Broadcaster,
	natsPub *pkgNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:             pubSub,
		topicName:          topicName,
		descriptionService: descriptionService,
		viewService:        viewService,
		broadcaster:        broadcaster,
		natsPub:            natsPub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.EnrichFavoriteMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal enrichment message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Enriching favorite %s", payload.FavoriteId)

	result, err := cs.descriptionService.EnsureDescription(ctx, payload.FavoriteId)
	if err != nil {
		switch {
		case errors.Is(err, ErrFavoriteNotFound):
			// Deleted before we got to it. Nothing to enrich.
			log.Printf("[INFO] Favorite %s no longer exists, skipping enrichment", payload.FavoriteId)
			msg.Ack()
		case apperr.IsStoreUnavailable(err):
			log.Printf("[ERROR] Store unavailable while enriching %s: %v", payload.FavoriteId, err)
			msg.Nack() // Retriable.
		default:
			// Generator failures are not worth retrying in a loop; the user
			// can trigger enrichment again from the UI.
			log.Printf("[ERROR] Enrichment of %s failed: %v", payload.FavoriteId, err)
			msg.Ack()
		}
		return
	}

	saved := result.Status == StatusSaved
	applied := cs.viewService.ApplyEnrichment(payload.SessionId, payload.FavoriteId, result.Text, saved)
	if !applied {
		log.Printf("[INFO] Favorite %s left the view before enrichment landed, result discarded", payload.FavoriteId)
		msg.Ack()
		return
	}

	cs.notify(ctx, payload, result, saved)
	log.Printf("[SUCCESS] Favorite %s enriched (status: %s)", payload.FavoriteId, result.Status)
	msg.Ack()
}

func (cs *consumerService) notify(ctx context.Context, payload dto.EnrichFavoriteMessage, result *DescriptionResult, saved bool) {
	if cs.broadcaster != nil {
		push, _ := json.Marshal(map[string]interface{}{
			"type":        events.TypeFavoriteEnriched,
			"id":          payload.FavoriteId,
			"description": result.Text,
			"usedWiki":    result.UsedWiki,
			"saved":       saved,
		})
		cs.broadcaster.Broadcast(push)
	}
	if cs.natsPub != nil {
		if err := cs.natsPub.Publish(ctx, events.NewFavoriteEnriched(payload.FavoriteId, saved)); err != nil {
			log.Printf("[WARN] Failed to publish enriched event for %s: %v", payload.FavoriteId, err)
		}
	}
}
