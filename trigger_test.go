package menuseed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/menuseed"
	"github.com/agentstation/menuseed/pkg/backend/memory"
	pkgerrors "github.com/agentstation/menuseed/pkg/errors"
	"github.com/agentstation/menuseed/pkg/logging"
)

func TestTriggerRunsInBackground(t *testing.T) {
	b := memory.New()
	s, _ := newSeeder(t, b, &fakeImages{})
	trigger := menuseed.NewTrigger(s, pizzaDataset("Pizza"))

	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	done, started := trigger.Press(ctx)
	require.True(t, started)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("seed run did not finish")
	}

	result, err := trigger.Last()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created().MenuItems)
	assert.False(t, trigger.Running())
	assert.True(t, tl.Contains("Database seeded successfully"))
}

func TestTriggerIgnoresPressWhileRunning(t *testing.T) {
	release := make(chan struct{})
	calls := 0
	trigger := menuseed.NewTriggerFunc(func(ctx context.Context) (*menuseed.Result, error) {
		calls++
		<-release
		return &menuseed.Result{}, nil
	})
	ctx := logging.WithLogger(context.Background(), logging.NewNopLogger())

	first, started := trigger.Press(ctx)
	require.True(t, started)
	assert.True(t, trigger.Running())

	second, started := trigger.Press(ctx)
	assert.False(t, started)
	assert.Equal(t, first, second)

	close(release)
	_, err := trigger.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestTriggerLogsGenericFailure(t *testing.T) {
	boom := errors.New("backend exploded")
	trigger := menuseed.NewTriggerFunc(func(context.Context) (*menuseed.Result, error) {
		return nil, boom
	})

	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	_, started := trigger.Press(ctx)
	require.True(t, started)

	_, err := trigger.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.True(t, tl.Contains("Error seeding database"))

	// A finished run can be started again.
	_, started = trigger.Press(ctx)
	assert.True(t, started)
	_, _ = trigger.Wait(context.Background())
}

func TestTriggerWaitCanceled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	trigger := menuseed.NewTriggerFunc(func(context.Context) (*menuseed.Result, error) {
		<-release
		return nil, nil
	})
	trigger.Press(logging.WithLogger(context.Background(), logging.NewNopLogger()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := trigger.Wait(ctx)
	assert.True(t, pkgerrors.IsCanceled(err))
}

func TestTriggerWaitBeforePress(t *testing.T) {
	trigger := menuseed.NewTriggerFunc(func(context.Context) (*menuseed.Result, error) {
		return nil, nil
	})
	result, err := trigger.Wait(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, result)
}
