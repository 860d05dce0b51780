package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Notifier is what the worker calls for fast-track hits. Kept as an
// interface so tests can run without SMTP.
type Notifier interface {
	SendFastTrackAlert(assignee, leadName, phone, city string) error
}

// Worker drains the lead.scored queue and fires follow-up
// notifications. It never touches the database — the save already
// happened by the time a message lands here.
type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
}

func NewWorker(ch *amqp.Channel, notifier Notifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ [WORKER] Failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadScoredPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] Invalid JSON: %s", err)
				// Malformed message — reject without requeue so the queue keeps moving.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] lead.scored %s → %s (%s)", payload.LeadID, payload.Status, payload.Assignee)

			if err := w.processMessage(payload); err != nil {
				log.Printf("❌ [WORKER] Notification failed: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(payload LeadScoredPayload) error {
	// Only fast-track hits notify the assignee; everything else just acks.
	if payload.Status != "fast-track" || w.Notifier == nil {
		return nil
	}
	return w.Notifier.SendFastTrackAlert(payload.Assignee, payload.LeadName, "", "")
}
