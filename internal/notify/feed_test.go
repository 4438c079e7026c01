package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFeedReplacesPrevious(t *testing.T) {
	f := NewFeed(time.Minute)
	defer f.Close()

	ctx := context.Background()
	f.Notify(ctx, "Product 1 added to cart!", Success)
	f.Notify(ctx, "Cart cleared!", Info)

	active := f.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Cart cleared!", active[0].Message)
	assert.Equal(t, Info, active[0].Kind)
	assert.NotEmpty(t, active[0].ID)
}

func TestFeedAutoDismiss(t *testing.T) {
	f := NewFeed(20 * time.Millisecond)
	defer f.Close()

	f.Notify(context.Background(), "hello", Info)
	require.Len(t, f.Active(), 1)

	assert.Eventually(t, func() bool { return len(f.Active()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestFeedStaleTimerKeepsNewer(t *testing.T) {
	f := NewFeed(time.Hour)
	defer f.Close()

	f.Notify(context.Background(), "first", Info)
	first := f.Active()[0].ID
	f.Notify(context.Background(), "second", Warning)

	// a timer firing late for the replaced notification must not clear the new one
	f.dismiss(first)
	require.Len(t, f.Active(), 1)
	assert.Equal(t, "second", f.Active()[0].Message)
}

func TestFeedClosedDropsNotifications(t *testing.T) {
	f := NewFeed(time.Hour)
	f.Notify(context.Background(), "a", Info)
	f.Close()
	f.Notify(context.Background(), "b", Info)

	require.Len(t, f.Active(), 1)
	assert.Equal(t, "a", f.Active()[0].Message)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Warning ")
	require.NoError(t, err)
	assert.Equal(t, Warning, k)

	k, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, Info, k)

	_, err = ParseKind("fatal")
	assert.Error(t, err)
}

func TestMultiAndLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	f := NewFeed(0)
	defer f.Close()

	Multi{f, NewLogNotifier(log), Nop{}}.Notify(context.Background(), "storage unavailable", Warning)

	assert.Len(t, f.Active(), 1)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), `message="storage unavailable"`)
}
