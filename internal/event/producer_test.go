package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_PublishKeysByBooking(t *testing.T) {
	w := &recordingWriter{}
	p := &Producer{writer: w, log: zap.NewNop()}
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	err := p.Publish(context.Background(), "b-1", BookingEvent{
		Type:       TypeBookingUpdated,
		BookingID:  "b-1",
		ItemsCount: 2,
		Total:      25,
		OccurredAt: at,
	})

	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("b-1"), w.msgs[0].Key)
	assert.Equal(t, at, w.msgs[0].Time)

	var got BookingEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, TypeBookingUpdated, got.Type)
	assert.Equal(t, 25.0, got.Total)
	assert.Equal(t, 2, got.ItemsCount)
}

func TestProducer_WriteError(t *testing.T) {
	writeErr := errors.New("kafka: leader not available")
	p := &Producer{writer: &recordingWriter{err: writeErr}, log: zap.NewNop()}

	err := p.Publish(context.Background(), "b-1", BookingEvent{Type: TypeBookingSaved})

	assert.ErrorIs(t, err, writeErr)
	assert.ErrorContains(t, err, "booking_saved")
}

func TestProducer_Close(t *testing.T) {
	w := &recordingWriter{}
	p := &Producer{writer: w, log: zap.NewNop()}

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewProducer_Topic(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "salon.bookings", zap.NewNop())

	kw, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "salon.bookings", kw.Topic)
}
