package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/pkg/config"
	"github.com/limpcred/limpcred-api/pkg/logger"
)

// ── Mocks ─────────────────────────────────────────────────────────────────────

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

// syncBuffer o loop escreve no log em outra goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testLogger(out *syncBuffer) *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "debug", Output: out})
}

func faturaPaga() ports.DomainEvent {
	return ports.DomainEvent{
		Type:       ports.EventFaturaPaga,
		EmpresaID:  "emp-1",
		UsuarioID:  "vend-1",
		EntityID:   "fat-1",
		Payload:    map[string]string{"numero": "PROC-2026-0001", "parcela": "1/3"},
		OccurredAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

// ── Producer ──────────────────────────────────────────────────────────────────

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(config.KafkaConfig{Topic: "x"}, nil)
	assert.Error(t, err)
}

func TestProducer_PublishAndClose(t *testing.T) {
	w := new(mockWriter)
	w.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)
	w.On("Close").Return(nil)

	p := newProducer(w, nil, 10)
	evt := faturaPaga()
	p.Publish(evt)
	p.Close()

	w.AssertNumberOfCalls(t, "WriteMessages", 1)
	w.AssertCalled(t, "Close")

	msgs := w.Calls[0].Arguments.Get(1).([]kafka.Message)
	require.Len(t, msgs, 1)
	assert.Equal(t, []byte("emp-1"), msgs[0].Key)
	assert.Equal(t, "type", msgs[0].Headers[0].Key)
	assert.Equal(t, []byte(ports.EventFaturaPaga), msgs[0].Headers[0].Value)

	var got ports.DomainEvent
	require.NoError(t, json.Unmarshal(msgs[0].Value, &got))
	assert.Equal(t, evt, got)
}

func TestProducer_CloseDrainsQueue(t *testing.T) {
	w := new(mockWriter)
	w.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)
	w.On("Close").Return(nil)

	// loop ainda não iniciado: os eventos ficam na fila
	p := &Producer{
		writer:    w,
		events:    make(chan ports.DomainEvent, 5),
		log:       logger.Nop(),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}
	for i := 0; i < 3; i++ {
		p.Publish(faturaPaga())
	}
	go p.eventLoop()
	p.Close()

	w.AssertNumberOfCalls(t, "WriteMessages", 3)
	p.Close() // idempotente
	w.AssertNumberOfCalls(t, "Close", 1)
}

func TestProducer_DropsWhenQueueFull(t *testing.T) {
	out := &syncBuffer{}
	p := &Producer{
		writer:    new(mockWriter),
		events:    make(chan ports.DomainEvent, 1),
		log:       testLogger(out),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}

	p.Publish(faturaPaga())
	p.Publish(faturaPaga())

	assert.Len(t, p.events, 1)
	assert.Contains(t, out.String(), "fila do kafka cheia")
}

func TestProducer_PublishAfterClose(t *testing.T) {
	w := new(mockWriter)
	w.On("Close").Return(nil)
	p := newProducer(w, nil, 1)
	p.Close()

	p.Publish(faturaPaga())
	w.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestProducer_SendErrors(t *testing.T) {
	t.Run("serialização", func(t *testing.T) {
		out := &syncBuffer{}
		w := new(mockWriter)
		p := &Producer{writer: w, log: testLogger(out)}

		old := jsonMarshal
		jsonMarshal = func(any) ([]byte, error) { return nil, errors.New("marshal") }
		defer func() { jsonMarshal = old }()

		p.send(faturaPaga())
		assert.Contains(t, out.String(), "falha ao serializar evento")
		w.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
	})

	t.Run("escrita", func(t *testing.T) {
		out := &syncBuffer{}
		w := new(mockWriter)
		w.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("kafka down"))
		p := &Producer{writer: w, log: testLogger(out)}

		p.send(faturaPaga())
		assert.Contains(t, out.String(), "falha ao publicar evento")
		assert.Contains(t, out.String(), "fat-1")
	})
}
