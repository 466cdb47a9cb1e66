package consumer

import (
	"encoding/json"
	"log"

	"github.com/eventio/ticketing-service/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventConsumer keeps the local event catalog in sync with the
// out-of-scope event service. Capacity and pricing arrive this way;
// tickets_sold is deliberately not overwritten on update, it belongs to
// the ticket issuer.
type EventConsumer struct {
	db *gorm.DB
}

func NewEventConsumer(db *gorm.DB) *EventConsumer {
	return &EventConsumer{db: db}
}

// Start listens for messages and upserts events into the local DB.
func (ec *EventConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			ec.handleMessage(msg)
		}
		log.Println("[EventConsumer] channel closed, stopping consumer")
	}()
}

func (ec *EventConsumer) handleMessage(msg amqp.Delivery) {
	var event models.Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("[EventConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	// Upsert: insert or update on conflict (same ID from the catalog)
	result := ec.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "capacity", "price", "presale_price", "presale_active",
			"is_free", "sell_start_at", "sell_end_at", "updated_at",
		}),
	}).Create(&event)

	if result.Error != nil {
		log.Printf("[EventConsumer] failed to upsert event %d: %v", event.ID, result.Error)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[EventConsumer] synced event %d: %s", event.ID, event.Name)
	msg.Ack(false)
}
