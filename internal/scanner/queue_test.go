package scanner_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"handlescan/internal/scanner"
	"handlescan/pkg/serrors"
	"handlescan/pkg/storage"
	mockstorage "handlescan/pkg/storage/mock"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestQueue(t *testing.T) (*gomock.Controller, *mockstorage.MockStorage, scanner.Queue) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	q := scanner.NewQueue(st, scanner.QueueOptions{MaxAttempts: 3, UniquePeriod: time.Hour})

	return ctrl, st, q
}

// helper to wire Storage.WithTx to execute callback with a MockAllStorage.
func expectWithTx(
	t *testing.T,
	ctrl *gomock.Controller,
	m *mockstorage.MockStorage,
	fn func(tx *mockstorage.MockAllStorage)) {
	t.Helper()

	m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cb func(storage.AllStorage) error) error {
			tx := mockstorage.NewMockAllStorage(ctrl)
			if fn != nil {
				fn(tx)
			}

			return cb(tx)
		},
	)
}

func jobFor(identifier string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		args, ok := x.(scanner.JobArgs)

		return ok && args.Identifier == identifier
	})
}

func TestQueue_Enqueue_AddsOneJobPerIdentifier(t *testing.T) {
	ctrl, st, q := newTestQueue(t)

	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		gomock.InOrder(
			tx.EXPECT().AddJob(gomock.Any(), jobFor("alice"), gomock.Nil()).DoAndReturn(
				func(_ context.Context, args river.JobArgs, _ *river.InsertOpts) (bool, error) {
					opts := args.(scanner.JobArgs).InsertOpts()
					require.Equal(t, 3, opts.MaxAttempts)
					require.Equal(t, time.Hour, opts.UniqueOpts.ByPeriod)
					require.True(t, opts.UniqueOpts.ByArgs)
					require.Contains(t, opts.UniqueOpts.ByState, rivertype.JobStateCompleted)

					return true, nil
				}),
			tx.EXPECT().AddJob(gomock.Any(), jobFor("bob"), gomock.Nil()).Return(true, nil),
		)
	})

	queued, err := q.Enqueue(context.Background(), []string{" alice ", "bob", "alice"})
	require.NoError(t, err)
	require.Equal(t, 2, queued)
}

func TestQueue_Enqueue_WithoutPeriodCompletedJobsDoNotBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	q := scanner.NewQueue(st, scanner.QueueOptions{MaxAttempts: 3})

	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().AddJob(gomock.Any(), jobFor("alice"), gomock.Nil()).DoAndReturn(
			func(_ context.Context, args river.JobArgs, _ *river.InsertOpts) (bool, error) {
				opts := args.(scanner.JobArgs).InsertOpts()
				require.Zero(t, opts.UniqueOpts.ByPeriod)
				require.NotContains(t, opts.UniqueOpts.ByState, rivertype.JobStateCompleted)
				require.Contains(t, opts.UniqueOpts.ByState, rivertype.JobStateRunning)

				return true, nil
			})
	})

	queued, err := q.Enqueue(context.Background(), []string{"alice"})
	require.NoError(t, err)
	require.Equal(t, 1, queued)
}

func TestQueue_Enqueue_SkipsIdentifiersWithPendingJobs(t *testing.T) {
	ctrl, st, q := newTestQueue(t)

	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().AddJob(gomock.Any(), jobFor("alice"), gomock.Nil()).Return(false, nil)
		tx.EXPECT().AddJob(gomock.Any(), jobFor("bob"), gomock.Nil()).Return(true, nil)
	})

	queued, err := q.Enqueue(context.Background(), []string{"alice", "bob"})
	require.NoError(t, err)
	require.Equal(t, 1, queued)
}

func TestQueue_Enqueue_StorageError(t *testing.T) {
	ctrl, st, q := newTestQueue(t)
	boom := errors.New("insert failed")

	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().AddJob(gomock.Any(), jobFor("alice"), gomock.Nil()).Return(false, boom)
	})

	queued, err := q.Enqueue(context.Background(), []string{"alice", "bob"})
	require.ErrorIs(t, err, boom)
	require.Zero(t, queued)
}

func TestQueue_Enqueue_RejectsInvalidInput(t *testing.T) {
	tooMany := make([]string, scanner.MaxBatchSize+1)
	for i := range tooMany {
		tooMany[i] = "user" + strings.Repeat("x", i%10)
	}

	cases := map[string][]string{
		"empty":      nil,
		"too many":   tooMany,
		"invalid id": {"alice", "not a handle"},
		"blank id":   {"   "},
	}

	for name, ids := range cases {
		t.Run(name, func(t *testing.T) {
			_, st, q := newTestQueue(t)
			st.EXPECT().WithTx(gomock.Any(), gomock.Any()).Times(0)

			_, err := q.Enqueue(context.Background(), ids)
			require.ErrorIs(t, err, serrors.ErrBadRequest)
		})
	}
}
