package messaging

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

// brokerSession owns a connection and the channel published on
type brokerSession struct {
	conn *amqp091.Connection
	*amqp091.Channel
}

func (s *brokerSession) IsClosed() bool {
	return s.conn.IsClosed() || s.Channel.IsClosed()
}

func (s *brokerSession) Close() error {
	_ = s.Channel.Close()
	return s.conn.Close()
}

// dialBroker connects and declares a durable topic exchange
func dialBroker(url, exchange string) (session, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &brokerSession{conn: conn, Channel: ch}, nil
}
