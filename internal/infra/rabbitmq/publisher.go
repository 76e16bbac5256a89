package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/Pavel26ru/BruCup/internal/domain"
	"github.com/Pavel26ru/BruCup/internal/infra"
)

// Publisher implements infra.Notifier by publishing delivery commands for
// the chat-transport worker on a topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

type Envelope struct {
	Pattern string      `json:"pattern"`
	Data    interface{} `json:"data"`
	ID      string      `json:"id,omitempty"`
}

type sendCommand struct {
	ChatID    int64           `json:"chatId"`
	MessageID string          `json:"messageId"`
	Text      string          `json:"text"`
	Keyboard  domain.Keyboard `json:"keyboard,omitempty"`
}

type editCommand struct {
	ChatID    int64           `json:"chatId"`
	MessageID string          `json:"messageId"`
	Text      string          `json:"text"`
	Keyboard  domain.Keyboard `json:"keyboard,omitempty"`
}

func NewPublisher(amqpURL, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %v", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %v", err)
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

var _ infra.Notifier = (*Publisher)(nil)

func (p *Publisher) Send(ctx context.Context, chatID int64, text string, keyboard domain.Keyboard) (domain.MessageRef, error) {
	messageID := uuid.NewString()
	cmd := sendCommand{ChatID: chatID, MessageID: messageID, Text: text, Keyboard: keyboard}
	if err := p.publish(ctx, "message.send", cmd); err != nil {
		return domain.MessageRef{}, err
	}
	return domain.MessageRef{ChatID: chatID, MessageID: messageID}, nil
}

func (p *Publisher) Edit(ctx context.Context, ref domain.MessageRef, text string, keyboard domain.Keyboard) error {
	cmd := editCommand{ChatID: ref.ChatID, MessageID: ref.MessageID, Text: text, Keyboard: keyboard}
	return p.publish(ctx, "message.edit", cmd)
}

func (p *Publisher) Notify(ctx context.Context, chatID int64, text string) error {
	cmd := sendCommand{ChatID: chatID, MessageID: uuid.NewString(), Text: text}
	return p.publish(ctx, "message.notify", cmd)
}

func (p *Publisher) publish(_ context.Context, pattern string, data interface{}) error {
	envelope := Envelope{
		Pattern: pattern,
		Data:    data,
		ID:      uuid.NewString(),
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %v", err)
	}

	err = p.channel.Publish(
		p.exchange,
		pattern,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %v", err)
	}

	return nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
