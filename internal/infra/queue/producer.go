package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadScoredPayload is published after every successful score save.
// Consumers get the derived fields only — the full card stays in the
// store.
type LeadScoredPayload struct {
	LeadID    string `json:"lead_id"`
	LeadName  string `json:"lead_name"`
	Assignee  string `json:"assignee"`
	Status    string `json:"status"`
	Total     int    `json:"total"`
	FlagCount int    `json:"flag_count"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishLeadScored(ctx context.Context, payload LeadScoredPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // survives a broker restart
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %v", err)
	}

	return nil
}
