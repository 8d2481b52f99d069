package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mock_app "github.com/supchaser/aria2bot/internal/app/mocks"
	"github.com/supchaser/aria2bot/internal/app/models"
	"github.com/supchaser/aria2bot/internal/app/repository"
	"github.com/supchaser/aria2bot/internal/config"
)

const testInterval = 10 * time.Millisecond

func waitDone(t *testing.T, server *ServerState) {
	t.Helper()

	select {
	case <-server.Done():
	case <-time.After(time.Second):
		t.Fatal("refresh loop did not stop")
	}
}

func TestServerState_LoopSkipsWithoutSubscribers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no GetTasks expectation: a poll fails the test
	client := mock_app.NewMockDownloadClient(ctrl)
	cache := repository.CreateTaskCache(time.Minute, nil)
	server := CreateServerState("A", client, cache, config.DownloadConfig{}, testInterval)

	time.Sleep(5 * testInterval)
	server.Close()
	waitDone(t, server)
}

func TestServerState_LoopAppliesSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockDownloadClient(ctrl)
	notifier := mock_app.NewMockNotifier(ctrl)
	cache := repository.CreateTaskCache(time.Minute, notifier)
	cache.AddListSubscriber(models.Target{ChatID: 1, MessageID: 1})

	tasks := []*models.Status{{ID: "g1", State: models.StateActive, CompletedLength: 1, TotalLength: 2}}
	client.EXPECT().GetTasks(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]*models.Status, error) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return tasks, nil
	}).MinTimes(1)

	// the edit is only dispatched after Apply swapped the snapshot in
	edited := make(chan struct{})
	notifier.EXPECT().EditListMarkup(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.Target, models.Keyboard) error {
			close(edited)
			return nil
		}).
		Times(1)

	server := CreateServerState("A", client, cache, config.DownloadConfig{}, testInterval)

	select {
	case <-edited:
	case <-time.After(time.Second):
		t.Fatal("refresh loop never notified subscribers")
	}

	server.Close()
	waitDone(t, server)
	cache.WaitNotifications()
	assert.Equal(t, 1, cache.Len())
}

func TestServerState_LoopKeepsCacheOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockDownloadClient(ctrl)
	cache := repository.CreateTaskCache(time.Minute, mock_app.NewMockNotifier(ctrl))
	cache.AddListSubscriber(models.Target{ChatID: 1, MessageID: 1})

	polled := make(chan struct{}, 1)
	client.EXPECT().GetTasks(gomock.Any()).DoAndReturn(func(context.Context) ([]*models.Status, error) {
		select {
		case polled <- struct{}{}:
		default:
		}
		return nil, errors.New("connection refused")
	}).MinTimes(1)

	server := CreateServerState("A", client, cache, config.DownloadConfig{}, testInterval)
	<-polled
	server.Close()
	waitDone(t, server)

	assert.Equal(t, 0, cache.Len())
	assert.True(t, cache.LastRefresh().IsZero())
}

func TestServerState_CloseDuringPollDiscardsResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockDownloadClient(ctrl)
	cache := repository.CreateTaskCache(time.Minute, mock_app.NewMockNotifier(ctrl))
	cache.AddListSubscriber(models.Target{ChatID: 1, MessageID: 1})

	started := make(chan struct{})
	release := make(chan struct{})
	finished := make(chan struct{})
	client.EXPECT().GetTasks(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]*models.Status, error) {
		defer close(finished)
		close(started)
		<-release
		// the loop's cancellation does not reach the call
		assert.NoError(t, ctx.Err())
		return []*models.Status{{ID: "g1", State: models.StateActive}}, nil
	}).Times(1)

	server := CreateServerState("A", client, cache, config.DownloadConfig{}, testInterval)
	<-started

	server.Close()
	waitDone(t, server)

	close(release)
	<-finished
	assert.Equal(t, 0, cache.Len())
}

func TestServerState_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockDownloadClient(ctrl)
	server := idleServer(t, "A", client)

	client.EXPECT().GetTasks(gomock.Any()).Return([]*models.Status{{ID: "g1"}}, nil).Times(1)
	require.NoError(t, server.Refresh(context.Background()))
	// still fresh
	require.NoError(t, server.Refresh(context.Background()))
	assert.Equal(t, 1, server.Cache.Len())
}
