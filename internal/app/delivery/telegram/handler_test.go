package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mock_app "github.com/supchaser/aria2bot/internal/app/mocks"
	"github.com/supchaser/aria2bot/internal/app/models"
	"github.com/supchaser/aria2bot/internal/app/render"
	"github.com/supchaser/aria2bot/internal/app/repository"
	"github.com/supchaser/aria2bot/internal/app/usecase"
	"github.com/supchaser/aria2bot/internal/config"
	"github.com/supchaser/aria2bot/internal/utils/validate"
)

const (
	soloChat  = int64(1)
	multiChat = int64(2)
	strangers = int64(3)

	testHash = "0123456789abcdef0123456789abcdef01234567"
)

type handlerFixture struct {
	bot     *fakeSender
	handler *Handler
	home    *usecase.ServerState
	homeRPC *mock_app.MockDownloadClient
	nasRPC  *mock_app.MockDownloadClient
	fetcher *mock_app.MockFileFetcher
}

func createHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &handlerFixture{
		bot:     &fakeSender{},
		homeRPC: mock_app.NewMockDownloadClient(ctrl),
		nasRPC:  mock_app.NewMockDownloadClient(ctrl),
		fetcher: mock_app.NewMockFileFetcher(ctrl),
	}

	download := config.DownloadConfig{DefaultDir: "/downloads"}
	f.home = usecase.CreateServerState("home", f.homeRPC, repository.CreateTaskCache(time.Minute, nil), download, time.Hour)
	nas := usecase.CreateServerState("nas", f.nasRPC, repository.CreateTaskCache(time.Minute, nil), download, time.Hour)

	router, err := usecase.CreateRouter([]usecase.ServerBinding{
		{Server: f.home, Users: []int64{soloChat, multiChat}},
		{Server: nas, Users: []int64{multiChat}},
	})
	require.NoError(t, err)
	t.Cleanup(router.Close)

	downloads, err := usecase.CreateDownloadUsecase(f.fetcher)
	require.NoError(t, err)

	f.handler = CreateHandler(f.bot, router, downloads)
	return f
}

func textMessage(chatID int64, text string) tgbotapi.Update {
	msg := &tgbotapi.Message{MessageID: 7, Chat: &tgbotapi.Chat{ID: chatID}, Text: text}
	if strings.HasPrefix(text, "/") {
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}}
	}
	return tgbotapi.Update{UpdateID: 1, Message: msg}
}

func callback(chatID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{UpdateID: 2, CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    data,
		Message: &tgbotapi.Message{MessageID: 50, Chat: &tgbotapi.Chat{ID: chatID}},
	}}
}

func buttonData(t *testing.T, replyMarkup any, row, col int) string {
	t.Helper()

	kb, ok := replyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Greater(t, len(kb.InlineKeyboard), row)
	require.Greater(t, len(kb.InlineKeyboard[row]), col)
	require.NotNil(t, kb.InlineKeyboard[row][col].CallbackData)
	return *kb.InlineKeyboard[row][col].CallbackData
}

func TestHandler_Commands(t *testing.T) {
	tests := []struct {
		name     string
		chatID   int64
		text     string
		expected string
	}{
		{name: "start", chatID: strangers, text: "/start", expected: render.MsgStart},
		{name: "help", chatID: soloChat, text: "/help", expected: render.MsgHelp},
		{name: "id", chatID: soloChat, text: "/id", expected: "`1`"},
		{name: "switchSingleServer", chatID: soloChat, text: "/switch", expected: render.MsgSingleServer},
		{name: "switchMultiServer", chatID: multiChat, text: "/switch", expected: render.SwitchPrompt("")},
		{name: "unauthorized", chatID: strangers, text: "/task", expected: render.Unauthorized(strangers)},
		{name: "invalidContent", chatID: soloChat, text: "hello", expected: render.MsgInvalidCommand},
		{name: "unknownCommand", chatID: soloChat, text: "/dance", expected: render.MsgInvalidCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createHandlerFixture(t)
			f.handler.HandleUpdate(context.Background(), textMessage(tt.chatID, tt.text))
			assert.Equal(t, tt.expected, f.bot.lastSent(t).Text)
		})
	}
}

func TestHandler_TaskListSubscribes(t *testing.T) {
	f := createHandlerFixture(t)
	f.homeRPC.EXPECT().GetTasks(gomock.Any()).Return([]*models.Status{
		{ID: "g1", State: models.StateActive, CompletedLength: 1, TotalLength: 2, Name: "ubuntu.iso"},
	}, nil)

	f.handler.HandleUpdate(context.Background(), textMessage(soloChat, "/task"))

	sent := f.bot.lastSent(t)
	assert.Equal(t, render.MsgTaskList, sent.Text)
	assert.Equal(t, 7, sent.ReplyToMessageID)
	assert.Equal(t, "task|g1", buttonData(t, sent.ReplyMarkup, 0, 0))
	assert.True(t, f.home.Cache.HasSubscriber())
}

func TestHandler_TaskListFetchFails(t *testing.T) {
	f := createHandlerFixture(t)
	f.homeRPC.EXPECT().GetTasks(gomock.Any()).Return(nil, errors.New("connection refused"))

	f.handler.HandleUpdate(context.Background(), textMessage(soloChat, "/task"))

	assert.Equal(t, render.FetchFailed(errors.New("connection refused")), f.bot.lastSent(t).Text)
	assert.False(t, f.home.Cache.HasSubscriber())
}

func TestHandler_Purge(t *testing.T) {
	f := createHandlerFixture(t)
	f.homeRPC.EXPECT().PurgeDownloaded(gomock.Any()).Return(nil)

	f.handler.HandleUpdate(context.Background(), textMessage(soloChat, "/purge"))
	assert.Equal(t, render.PurgeResult(nil), f.bot.lastSent(t).Text)
}

func TestHandler_MagnetConfirmAndDispatch(t *testing.T) {
	f := createHandlerFixture(t)
	magnet := "magnet:?xt=urn:btih:" + testHash

	f.handler.HandleUpdate(context.Background(), textMessage(soloChat, "grab "+magnet+" please"))
	prompt := f.bot.lastSent(t)
	assert.Equal(t, render.ConfirmMagnets([]string{magnet}), prompt.Text)

	data := buttonData(t, prompt.ReplyMarkup, 0, 0)
	require.True(t, strings.HasPrefix(data, "uri|"))

	boom := errors.New("rpc error 1: quota")
	f.homeRPC.EXPECT().AddURIs(gomock.Any(), []string{magnet}, "/downloads").
		Return(models.AddURIsResult{Err: boom})

	f.handler.HandleUpdate(context.Background(), callback(soloChat, data))
	edit := f.bot.lastEdit(t)
	assert.Equal(t, render.AddURIsReport("/downloads", []string{magnet}, nil, boom), edit.Text)
	require.NotNil(t, edit.ReplyMarkup)
	retry := buttonData(t, *edit.ReplyMarkup, 0, 0)
	assert.True(t, strings.HasPrefix(retry, "uri|"))
	assert.NotEqual(t, data, retry)

	// used tokens are gone
	f.handler.HandleUpdate(context.Background(), callback(soloChat, data))
	assert.Equal(t, render.TokenNotFound("Uri", strings.TrimPrefix(data, "uri|")), f.bot.lastEdit(t).Text)

	f.homeRPC.EXPECT().AddURIs(gomock.Any(), []string{magnet}, "/downloads").
		Return(models.AddURIsResult{IDs: []string{"g9"}})
	f.handler.HandleUpdate(context.Background(), callback(soloChat, retry))
	edit = f.bot.lastEdit(t)
	assert.Equal(t, render.AddURIsReport("/downloads", []string{magnet}, []string{"g9"}, nil), edit.Text)
	assert.Nil(t, edit.ReplyMarkup)
}

func TestHandler_LinkConfirm(t *testing.T) {
	f := createHandlerFixture(t)

	f.handler.HandleUpdate(context.Background(), textMessage(soloChat, "https://example.com/a.iso"))
	prompt := f.bot.lastSent(t)
	assert.Equal(t, render.ConfirmLinks([]string{"https://example.com/a.iso"}), prompt.Text)
	assert.True(t, strings.HasPrefix(buttonData(t, prompt.ReplyMarkup, 0, 0), "uri|"))
}

func TestHandler_TorrentDocument(t *testing.T) {
	f := createHandlerFixture(t)

	big := textMessage(soloChat, "")
	big.Message.Document = &tgbotapi.Document{FileID: "f1", FileName: "big.torrent", FileSize: validate.MaxTorrentSize + 1}
	f.handler.HandleUpdate(context.Background(), big)
	assert.Equal(t, render.MsgFileTooLarge, f.bot.lastSent(t).Text)

	doc := textMessage(soloChat, "")
	doc.Message.Document = &tgbotapi.Document{FileID: "f2", FileName: "ok.torrent", FileSize: 512}
	f.handler.HandleUpdate(context.Background(), doc)
	prompt := f.bot.lastSent(t)
	assert.Equal(t, render.ConfirmTorrent("ok.torrent", "f2"), prompt.Text)

	data := buttonData(t, prompt.ReplyMarkup, 0, 0)
	require.True(t, strings.HasPrefix(data, "t|"))

	payload := []byte("d4:infoe")
	f.fetcher.EXPECT().FetchFile(gomock.Any(), "f2").Return(payload, nil)
	f.homeRPC.EXPECT().AddTorrent(gomock.Any(), payload, "/downloads").Return("g7", nil)

	f.handler.HandleUpdate(context.Background(), callback(soloChat, data))
	assert.Equal(t, render.AddTorrentReport("/downloads", "g7"), f.bot.lastEdit(t).Text)
}

func TestHandler_SwitchCallback(t *testing.T) {
	f := createHandlerFixture(t)

	f.handler.HandleUpdate(context.Background(), callback(multiChat, "task|g1"))
	assert.Equal(t, render.SwitchPrompt(""), f.bot.lastSent(t).Text)

	f.handler.HandleUpdate(context.Background(), callback(multiChat, "switch|nas"))
	assert.Equal(t, render.SwitchResult(models.SelectSuccess, "nas"), f.bot.lastEdit(t).Text)

	f.handler.HandleUpdate(context.Background(), callback(multiChat, "switch|ghost"))
	assert.Equal(t, render.SwitchResult(models.SelectFailure, "ghost"), f.bot.lastEdit(t).Text)

	f.nasRPC.EXPECT().Pause(gomock.Any(), "g1").Return(nil)
	f.handler.HandleUpdate(context.Background(), callback(multiChat, "pause|g1"))
	assert.Equal(t, render.ActionResult("Pause", "g1", nil), f.bot.lastEdit(t).Text)
}

func TestHandler_TaskCallbacks(t *testing.T) {
	f := createHandlerFixture(t)
	f.home.Cache.Apply([]*models.Status{{ID: "g1", State: models.StatePaused, TotalLength: 10, Name: "n"}})

	f.handler.HandleUpdate(context.Background(), callback(soloChat, "task|g1"))
	sent := f.bot.lastSent(t)
	text, _, _ := f.home.Cache.FmtTask("g1")
	assert.Equal(t, text, sent.Text)
	assert.Equal(t, "resume|g1", buttonData(t, sent.ReplyMarkup, 0, 0))
	assert.True(t, f.home.Cache.HasSubscriber())

	f.handler.HandleUpdate(context.Background(), callback(soloChat, "task|missing"))
	assert.Equal(t, render.TaskNotFound("missing"), f.bot.lastSent(t).Text)

	f.homeRPC.EXPECT().Remove(gomock.Any(), "g1").Return(errors.New("rpc error 1: GID g1 is not found"))
	f.handler.HandleUpdate(context.Background(), callback(soloChat, "remove|g1"))
	assert.Contains(t, f.bot.lastEdit(t).Text, "failed")

	// cache is still fresh, so refreshing does not hit the daemon
	f.handler.HandleUpdate(context.Background(), callback(soloChat, "rlist"))
	edit := f.bot.lastEdit(t)
	assert.Equal(t, render.MsgTaskList, edit.Text)
	require.NotNil(t, edit.ReplyMarkup)
}

func TestHandler_Run(t *testing.T) {
	f := createHandlerFixture(t)
	updates := make(chan tgbotapi.Update, 1)
	updates <- textMessage(strangers, "/start")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.handler.Run(ctx, updates)
		close(done)
	}()

	require.Eventually(t, func() bool {
		f.bot.mu.Lock()
		defer f.bot.mu.Unlock()
		return len(f.bot.sent) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not stop")
	}
}
