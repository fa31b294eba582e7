package events

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_RequiresBrokers(t *testing.T) {
	t.Parallel()

	_, err := NewProducer(nil)
	require.Error(t, err)
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder
	ctx := context.Background()
	require.NoError(t, r.Publish(ctx, TopicUserEvents, "u1", UserRegistered{Type: TypeUserRegistered, UserID: "u1"}))
	require.NoError(t, r.Publish(ctx, TopicOrderEvents, "o1", OrderCreated{Type: TypeOrderCreated, OrderID: "o1"}))

	got := r.Events()
	require.Len(t, got, 2)
	assert.Equal(t, TopicUserEvents, got[0].Topic)
	assert.Equal(t, "o1", got[1].Key)
}

func TestNop(t *testing.T) {
	t.Parallel()

	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), TopicUserEvents, "k", nil))
	assert.NoError(t, p.Close())
}

func TestProducer_Kafka(t *testing.T) {
	brokers := os.Getenv("STOREFRONT_TEST_KAFKA_BROKERS")
	if brokers == "" {
		t.Skip("STOREFRONT_TEST_KAFKA_BROKERS not set")
	}
	broker := strings.Split(brokers, ",")[0]
	topic := TopicOrderEvents

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	p, err := NewProducer([]string{broker})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	// create the topic before reading the last offset
	require.NoError(t, p.Publish(ctx, topic, "warmup", OrderCreated{Type: TypeOrderCreated}))

	conn, err := kafka.DialLeader(ctx, "tcp", broker, topic, 0)
	require.NoError(t, err)
	end, err := conn.ReadLastOffset()
	require.NoError(t, err)
	_ = conn.Close()

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
		MaxWait:   time.Second,
	})
	defer r.Close()
	require.NoError(t, r.SetOffset(end))

	want := OrderCreated{Type: TypeOrderCreated, OrderID: "o-test", UserID: "u1", TotalPrice: 8, PaymentMethod: "COD", Items: 2}
	require.NoError(t, p.Publish(ctx, topic, want.OrderID, want))

	m, err := r.ReadMessage(ctx)
	require.NoError(t, err)

	var got OrderCreated
	require.NoError(t, json.Unmarshal(m.Value, &got))
	assert.Equal(t, want, got)
}
