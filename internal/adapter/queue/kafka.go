package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/mkravchenko/dex-settlement/internal/domain"
	"github.com/mkravchenko/dex-settlement/internal/port"
)

var _ port.Notifier = (*KafkaNotifier)(nil)

// KafkaConfig holds Kafka connection configuration.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Event envelope. Events for the same pair share a partition so downstream
// indexers see per-pair ordering.
type Event struct {
	EventID string          `json:"event_id"`
	Type    string          `json:"type"`
	Pair    string          `json:"pair"`
	Payload json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID   uint64 `json:"order_id"`
	Owner     string `json:"owner"`
	Pair      string `json:"pair"`
	Side      string `json:"side"`
	Type      string `json:"type"`
	Amount    uint64 `json:"amount"`
	Price     uint64 `json:"price"`
	Status    string `json:"status"`
	CreatedAt uint64 `json:"created_at"`
}

type TradeExecutedPayload struct {
	TradeKey   uint64 `json:"trade_key"`
	BuyOrderID uint64 `json:"buy_order_id"`
	Buyer      string `json:"buyer"`
	Seller     string `json:"seller"`
	Pair       string `json:"pair"`
	Amount     uint64 `json:"amount"`
	Price      uint64 `json:"price"`
	Value      uint64 `json:"value"`
	Fee        uint64 `json:"fee"`
	ExecutedAt uint64 `json:"executed_at"`
}

// KafkaNotifier publishes order/trade events to a Kafka topic.
type KafkaNotifier struct {
	writer *kafka.Writer
}

func NewKafkaNotifier(config KafkaConfig) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{}, // hash on pair for per-pair ordering
		RequiredAcks: kafka.RequireAll,
	}
	return &KafkaNotifier{writer: writer}
}

func (n *KafkaNotifier) OrderPlaced(ctx context.Context, o *domain.Order) error {
	return n.publish(ctx, "order_placed", o.Pair, OrderPlacedPayload{
		OrderID:   o.ID,
		Owner:     o.Owner,
		Pair:      o.Pair,
		Side:      string(o.Side),
		Type:      string(o.Type),
		Amount:    o.Amount,
		Price:     o.Price,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	})
}

func (n *KafkaNotifier) TradeExecuted(ctx context.Context, t *domain.Trade) error {
	return n.publish(ctx, "trade_executed", t.Pair, TradeExecutedPayload{
		TradeKey:   t.Key,
		BuyOrderID: t.BuyOrderID,
		Buyer:      t.Buyer,
		Seller:     t.Seller,
		Pair:       t.Pair,
		Amount:     t.Amount,
		Price:      t.Price,
		Value:      t.Value,
		Fee:        t.Fee,
		ExecutedAt: t.ExecutedAt,
	})
}

func (n *KafkaNotifier) publish(ctx context.Context, typ, pair string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(Event{
		EventID: uuid.NewString(),
		Type:    typ,
		Pair:    pair,
		Payload: body,
	})
	if err != nil {
		return err
	}
	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(pair),
		Value: data,
		Time:  time.Now(),
	})
}

// Close closes the producer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
