package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"support-bot/domain"
	"support-bot/mocks"
	"support-bot/session"
)

func TestTurnLogger_FansOutToAllSinks(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	record := domain.TurnRecord{ID: uuid.New(), SessionID: "s1", Text: "hello"}

	disk := mocks.NewMockTurnSink(ctrl)
	index := mocks.NewMockTurnSink(ctrl)
	disk.EXPECT().Consume(gomock.Any(), record).Return(nil).Times(1)
	index.EXPECT().Consume(gomock.Any(), record).Return(nil).Times(1)

	turns := make(chan domain.TurnRecord, 1)
	logger := NewTurnLogger(turns, slog.Default(), disk, index)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = logger.Run(context.Background())
	}()

	turns <- record
	close(turns)

	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("TurnLogger should stop when the channel closes")
	}
}

func TestTurnLogger_SinkFailureDoesNotStopTheOthers(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	record := domain.TurnRecord{ID: uuid.New(), SessionID: "s1"}

	failing := mocks.NewMockTurnSink(ctrl)
	healthy := mocks.NewMockTurnSink(ctrl)
	failing.EXPECT().Consume(gomock.Any(), record).Return(context.DeadlineExceeded).Times(1)
	healthy.EXPECT().Consume(gomock.Any(), record).Return(nil).Times(1)

	turns := make(chan domain.TurnRecord, 1)
	logger := NewTurnLogger(turns, slog.Default(), failing, healthy)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = logger.Run(context.Background())
	}()

	turns <- record
	close(turns)

	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("TurnLogger should survive a failing sink")
	}
}

func TestTurnLogger_DrainsBufferOnShutdown(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockTurnSink(ctrl)
	consumed := make(chan struct{}, 2)
	sink.EXPECT().
		Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.TurnRecord) error {
			consumed <- struct{}{}
			return nil
		}).
		Times(2)

	// Records buffered before the worker even starts.
	turns := make(chan domain.TurnRecord, 2)
	turns <- domain.TurnRecord{ID: uuid.New()}
	turns <- domain.TurnRecord{ID: uuid.New()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already canceled: Run must still drain

	logger := NewTurnLogger(turns, slog.Default(), sink)
	err := logger.Run(ctx)
	req.ErrorIs(err, context.Canceled)
	req.Len(consumed, 2)
}

func TestJanitor_SweepsOnTick(t *testing.T) {
	req := require.New(t)

	store := session.NewStore(10*time.Millisecond, 10, slog.Default())
	store.Update("stale", func(c *session.Context) {})

	janitor := NewJanitor(store, 20*time.Millisecond, slog.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = janitor.Run(ctx)

	req.Zero(store.Len())
}
