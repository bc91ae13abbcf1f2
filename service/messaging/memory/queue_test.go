package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/flowhistory/service/messaging"
)

type testPayload struct {
	ID   string
	Data string
}

func TestQueue(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx := context.Background()

	payload := testPayload{ID: "req-1", Data: `{"nodes":[]}`}
	require.NoError(t, queue.Publish(ctx, &payload))

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, payload, *message.T())
	assert.Empty(t, queue.Drain())

	assert.NoError(t, message.Ack())
	assert.ErrorIs(t, message.Ack(), ErrAlreadyProcessed)
	assert.ErrorIs(t, message.Nack(nil), ErrAlreadyProcessed)
}

func TestQueue_NackDoesNotRedeliver(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx := context.Background()
	require.NoError(t, queue.Publish(ctx, &testPayload{ID: "once"}))
	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	require.NoError(t, message.Nack(fmt.Errorf("failed")))
	assert.ErrorIs(t, message.Ack(), ErrAlreadyProcessed)

	ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = queue.Consume(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueue_Close(t *testing.T) {
	queue := NewQueue[testPayload](Config{QueueBuffer: 4})
	ctx := context.Background()
	require.NoError(t, queue.Publish(ctx, &testPayload{ID: "a"}))
	require.NoError(t, queue.Publish(ctx, &testPayload{ID: "b"}))

	assert.Equal(t, []testPayload{{ID: "a"}, {ID: "b"}}, queue.Drain())
	require.NoError(t, queue.Close())
	require.NoError(t, queue.Close())

	assert.ErrorIs(t, queue.Publish(ctx, &testPayload{ID: "c"}), messaging.ErrClosed)
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, messaging.ErrClosed)
}

func TestQueue_ConsumeHonoursContext(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	full := NewQueue[testPayload](Config{QueueBuffer: 1})
	require.NoError(t, full.Publish(context.Background(), &testPayload{ID: "1"}))
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, full.Publish(ctx, &testPayload{ID: "2"}), context.DeadlineExceeded)
}

func TestQueue_Concurrency(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const producers, perProducer = 8, 25
	var consumed sync.Map
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < producers*perProducer; i++ {
			message, err := queue.Consume(ctx)
			if !assert.NoError(t, err) {
				return
			}
			consumed.Store(message.T().ID, true)
			assert.NoError(t, message.Ack())
		}
	}()
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for m := 0; m < perProducer; m++ {
				assert.NoError(t, queue.Publish(ctx, &testPayload{ID: fmt.Sprintf("p%d-m%d", p, m)}))
			}
		}(p)
	}
	wg.Wait()

	count := 0
	consumed.Range(func(_, _ interface{}) bool { count++; return true })
	assert.Equal(t, producers*perProducer, count)
}
