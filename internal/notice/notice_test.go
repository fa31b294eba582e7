package notice

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coffee_shop/pkg/apiclient"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

func TestFromError_PrefersBackendMessage(t *testing.T) {
	t.Parallel()

	apiErr := &apiclient.APIError{StatusCode: 400, Message: "Out of stock"}
	n := FromError("Add to cart", apiErr, "Could not add the product.")
	assert.Equal(t, Error, n.Level)
	assert.Equal(t, "Out of stock", n.Message)

	n = FromError("Add to cart", errors.New("dial tcp: refused"), "Could not add the product.")
	assert.Equal(t, "Could not add the product.", n.Message)
}

func TestWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	ctx := context.Background()

	w.Notify(ctx, Success("Logged out", ""))
	w.Notify(ctx, Notice{Level: Error, Title: "Checkout", Message: "Your cart is empty."})

	assert.Equal(t, "Logged out\n! Checkout: Your cart is empty.\n", buf.String())
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder
	_, ok := r.Last()
	require.False(t, ok)

	r.Notify(context.Background(), Success("a", "1"))
	r.Notify(context.Background(), Success("b", "2"))

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "b", last.Title)
	assert.Len(t, r.Notices(), 2)
}

func TestLog_DoesNotPanic(t *testing.T) {
	t.Parallel()

	NewLog(logging.Discard()).Notify(context.Background(), Notice{Level: Error, Title: "x"})
	Discard{}.Notify(context.Background(), Notice{})
}
