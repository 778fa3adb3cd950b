package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tuanvumaihuynh/bizsuite/internal/repository"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db"
	"github.com/tuanvumaihuynh/bizsuite/pkg/outbox"
)

// publish writes ev to the outbox within tx, carrying the caller's trace
// context and correlation id.
func publish(ctx context.Context, tx db.DB, repo repository.OutboxMsgRepository, topic, key string, ev any) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	params := repository.CreateOutboxMsgParams{
		Topic:   topic,
		Headers: outbox.BuildHeaders(ctx),
		Payload: payload,
	}
	if key != "" {
		params.PartitionKey = &key
	}

	if err := repo.WithDB(tx).CreateOutboxMsg(ctx, params); err != nil {
		return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
	}
	return nil
}
