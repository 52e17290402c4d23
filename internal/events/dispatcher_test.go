package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesMatchingHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []string

	d.Subscribe(EventComplaintSubmitted, func(_ context.Context, e Event) error {
		got = append(got, "first:"+string(e.Type))
		return nil
	})
	d.Subscribe(EventComplaintSubmitted, func(_ context.Context, e Event) error {
		got = append(got, "second:"+string(e.Type))
		return nil
	})
	d.Subscribe(EventComplaintResolved, func(_ context.Context, _ Event) error {
		got = append(got, "resolved")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventComplaintSubmitted})
	require.NoError(t, err)
	assert.Equal(t, []string{"first:complaint_submitted", "second:complaint_submitted"}, got)
}

func TestPublishContinuesPastFailingHandler(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	ran := false

	d.Subscribe(EventComplaintAssigned, func(_ context.Context, _ Event) error {
		return boom
	})
	d.Subscribe(EventComplaintAssigned, func(_ context.Context, _ Event) error {
		ran = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventComplaintAssigned})
	assert.ErrorIs(t, err, boom)
	assert.True(t, ran)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventUserRemoved}))
}
