package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// Publisher публикует события в обменник уведомлений через один канал.
// Канал amqp не потокобезопасен, поэтому Publisher используется из одной горутины.
type Publisher struct {
	ch       *amqp.Channel
	exchange string
	now      func() time.Time
}

// NewPublisher создаёт Publisher поверх канала, подготовленного SetupChannel.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch, exchange: ExchangeNotifications, now: time.Now}
}

// Publish сериализует событие в JSON и отправляет его с ключом маршрутизации.
// Тип сообщения совпадает с ключом, чтобы потребитель мог различать события из одной очереди.
func (p *Publisher) Publish(routingKey string, event any) error {
	const op = "rabbitmq.Publish"
	msg, err := newMessage(routingKey, event, p.now())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := p.ch.Publish(p.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал.
func (p *Publisher) Close() error {
	return p.ch.Close()
}

func newMessage(routingKey string, event any, at time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    at.UTC(),
		Type:         routingKey,
		Body:         body,
	}, nil
}
