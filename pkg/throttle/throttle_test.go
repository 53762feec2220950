package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/menuseed/pkg/errors"
)

func TestDelayWaits(t *testing.T) {
	l := Delay(20 * time.Millisecond)
	start := time.Now()
	require.NoError(t, l.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestDelayCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Delay(time.Hour).Wait(ctx)
	assert.True(t, errors.IsCanceled(err))
}

func TestDelayZeroIsNone(t *testing.T) {
	assert.IsType(t, none{}, Delay(0))
}

func TestBucketPaces(t *testing.T) {
	l := Bucket(20*time.Millisecond, 1)
	ctx := context.Background()
	start := time.Now()
	require.NoError(t, l.Wait(ctx))
	require.NoError(t, l.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestBucketCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Bucket(time.Hour, 1).Wait(ctx)
	assert.True(t, errors.IsCanceled(err))
}

func TestNone(t *testing.T) {
	assert.NoError(t, None().Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, errors.IsCanceled(None().Wait(ctx)))
}

func TestNew(t *testing.T) {
	tests := []struct {
		strategy string
		want     any
		wantErr  bool
	}{
		{"", delay(time.Second), false},
		{"delay", delay(time.Second), false},
		{"DELAY", delay(time.Second), false},
		{"bucket", &bucket{}, false},
		{"none", none{}, false},
		{"leaky", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			l, err := New(tt.strategy, time.Second, 2)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, l)
		})
	}
}
