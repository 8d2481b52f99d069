package telegram

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/supchaser/aria2bot/internal/app/models"
	"github.com/supchaser/aria2bot/internal/app/render"
	"github.com/supchaser/aria2bot/internal/app/usecase"
	"github.com/supchaser/aria2bot/internal/utils/errs"
	"github.com/supchaser/aria2bot/internal/utils/logger"
	"github.com/supchaser/aria2bot/internal/utils/validate"
	"go.uber.org/zap"
)

const (
	cmdHelp   = "help"
	cmdStart  = "start"
	cmdID     = "id"
	cmdSwitch = "switch"
	cmdTask   = "task"
	cmdPurge  = "purge"
)

// Handler answers messages and inline button presses.
type Handler struct {
	bot       Sender
	router    *usecase.Router
	downloads *usecase.DownloadUsecase

	inflight sync.WaitGroup
}

func CreateHandler(bot Sender, router *usecase.Router, downloads *usecase.DownloadUsecase) *Handler {
	return &Handler{
		bot:       bot,
		router:    router,
		downloads: downloads,
	}
}

// Run handles updates until ctx is done, then waits for handlers still
// running.
func (h *Handler) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	const funcName = "Handler.Run"
	logger.Info("bot is running", zap.String("function", funcName))

	defer h.inflight.Wait()

	for {
		select {
		case <-ctx.Done():
			logger.Info("bot stopped", zap.String("function", funcName))
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			h.inflight.Add(1)
			go func() {
				defer h.inflight.Done()
				h.HandleUpdate(ctx, update)
			}()
		}
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	const funcName = "Handler.HandleUpdate"

	var err error
	switch {
	case update.Message != nil:
		err = h.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		err = h.handleCallback(ctx, update.CallbackQuery)
	default:
		return
	}

	if err != nil {
		logger.Error("failed to handle update",
			zap.String("function", funcName),
			zap.Int("update_id", update.UpdateID),
			zap.Error(err),
		)
	}
}

func (h *Handler) reply(chatID int64, replyTo int, text string, keyboard models.Keyboard) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	if keyboard != nil {
		msg.ReplyMarkup = markup(keyboard)
	}
	return h.bot.Send(msg)
}

func sentTarget(sent tgbotapi.Message, chatID int64) models.Target {
	if sent.Chat != nil {
		chatID = sent.Chat.ID
	}
	return models.Target{ChatID: chatID, MessageID: sent.MessageID}
}

func (h *Handler) edit(chatID int64, messageID int, text string, keyboard models.Keyboard) error {
	var cfg tgbotapi.EditMessageTextConfig
	if keyboard != nil {
		cfg = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup(keyboard))
	} else {
		cfg = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}

	_, err := h.bot.Request(cfg)
	if errors.Is(translateError(err), errs.ErrMessageNotModified) {
		return nil
	}
	return err
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case cmdHelp:
			_, err := h.reply(chatID, msg.MessageID, render.MsgHelp, nil)
			return err
		case cmdStart:
			_, err := h.reply(chatID, 0, render.MsgStart, nil)
			return err
		case cmdID:
			idMsg := tgbotapi.NewMessage(chatID, fmt.Sprintf("`%d`", chatID))
			idMsg.ParseMode = tgbotapi.ModeMarkdownV2
			idMsg.ReplyToMessageID = msg.MessageID
			_, err := h.bot.Send(idMsg)
			return err
		case cmdSwitch:
			return h.selectOrUnauthorized(chatID, msg.MessageID)
		case cmdTask:
			server, ok := h.router.Selected(chatID)
			if !ok {
				return h.selectOrUnauthorized(chatID, msg.MessageID)
			}
			return h.sendTaskList(ctx, server, chatID, msg.MessageID)
		case cmdPurge:
			server, ok := h.router.Selected(chatID)
			if !ok {
				return h.selectOrUnauthorized(chatID, msg.MessageID)
			}
			err := server.Client.PurgeDownloaded(ctx)
			_, sendErr := h.reply(chatID, msg.MessageID, render.PurgeResult(err), nil)
			return sendErr
		}
	}

	handled, err := h.handleContent(chatID, msg)
	if err != nil {
		return err
	}
	if !handled {
		_, err = h.reply(chatID, 0, render.MsgInvalidCommand, nil)
	}
	return err
}

// handleContent offers to download magnets, links or a torrent file found
// in msg. It reports whether msg carried anything to download.
func (h *Handler) handleContent(chatID int64, msg *tgbotapi.Message) (bool, error) {
	server, ok := h.router.Selected(chatID)
	if !ok {
		return true, h.selectOrUnauthorized(chatID, msg.MessageID)
	}
	dirs := server.Download

	if magnets := validate.ExtractMagnets(msg.Text); len(magnets) > 0 {
		keyboard := render.DownloadConfirmKeyboard(dirs.MagnetDirs, dirs.DefaultDir, h.stageURIs(magnets))
		_, err := h.reply(chatID, msg.MessageID, render.ConfirmMagnets(magnets), keyboard)
		return true, err
	}

	if links := validate.ExtractLinks(msg.Text); len(links) > 0 {
		keyboard := render.DownloadConfirmKeyboard(dirs.LinkDirs, dirs.DefaultDir, h.stageURIs(links))
		_, err := h.reply(chatID, msg.MessageID, render.ConfirmLinks(links), keyboard)
		return true, err
	}

	if doc := msg.Document; doc != nil {
		if err := validate.ValidateTorrentSize(int64(doc.FileSize)); err != nil {
			_, sendErr := h.reply(chatID, 0, render.MsgFileTooLarge, nil)
			return true, sendErr
		}
		keyboard := render.DownloadConfirmKeyboard(dirs.TorrentDirs, dirs.DefaultDir, func(dir string) string {
			return render.CallbackData(render.ActionAddTorrent, h.downloads.StageTorrent(dir, doc.FileID))
		})
		_, err := h.reply(chatID, msg.MessageID, render.ConfirmTorrent(doc.FileName, doc.FileID), keyboard)
		return true, err
	}

	return false, nil
}

func (h *Handler) stageURIs(uris []string) func(dir string) string {
	return func(dir string) string {
		return render.CallbackData(render.ActionAddURI, h.downloads.StageURIs(dir, uris))
	}
}

func (h *Handler) selectOrUnauthorized(chatID int64, replyTo int) error {
	names, ok := h.router.Authorized(chatID)
	if !ok {
		_, err := h.reply(chatID, replyTo, render.Unauthorized(chatID), nil)
		return err
	}
	if len(names) == 1 {
		_, err := h.reply(chatID, replyTo, render.MsgSingleServer, nil)
		return err
	}

	var current string
	if server, ok := h.router.Selected(chatID); ok {
		current = server.Name
	}
	_, err := h.reply(chatID, replyTo, render.SwitchPrompt(current), render.SwitchServerKeyboard(names))
	return err
}

func (h *Handler) sendTaskList(ctx context.Context, server *usecase.ServerState, chatID int64, replyTo int) error {
	if err := server.Refresh(ctx); err != nil {
		_, sendErr := h.reply(chatID, replyTo, render.FetchFailed(err), nil)
		return sendErr
	}

	sent, err := h.reply(chatID, replyTo, render.MsgTaskList, render.TasksKeyboard(server.Cache.FmtTasks()))
	if err != nil {
		return err
	}
	server.Cache.AddListSubscriber(sentTarget(sent, chatID))
	return nil
}

func (h *Handler) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	const funcName = "Handler.handleCallback"

	if query.Message == nil || query.Message.Chat == nil {
		return nil
	}
	if _, err := h.bot.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logger.Debug("failed to answer callback",
			zap.String("function", funcName),
			zap.Error(err),
		)
	}

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	action, err := ParseAction(query.Data)
	if err != nil {
		logger.Warn("unknown callback data",
			zap.String("function", funcName),
			zap.String("data", query.Data),
		)
		return nil
	}

	if action.Kind == render.ActionSwitch {
		result := h.router.TrySelect(chatID, action.Arg)
		return h.edit(chatID, messageID, render.SwitchResult(result, action.Arg), nil)
	}

	server, ok := h.router.Selected(chatID)
	if !ok {
		return h.selectOrUnauthorized(chatID, 0)
	}

	switch action.Kind {
	case render.ActionTask:
		return h.sendTask(server, chatID, messageID, action.Arg)
	case render.ActionPause:
		return h.edit(chatID, messageID, render.ActionResult("Pause", action.Arg, server.Client.Pause(ctx, action.Arg)), nil)
	case render.ActionResume:
		return h.edit(chatID, messageID, render.ActionResult("Resume", action.Arg, server.Client.Resume(ctx, action.Arg)), nil)
	case render.ActionRemove:
		return h.edit(chatID, messageID, render.ActionResult("Remove", action.Arg, server.Client.Remove(ctx, action.Arg)), nil)
	case render.ActionAddURI:
		return h.addURIs(ctx, server, chatID, messageID, action.Arg)
	case render.ActionAddTorrent:
		return h.addTorrent(ctx, server, chatID, messageID, action.Arg)
	case render.ActionRefreshList:
		return h.refreshList(ctx, server, chatID, messageID)
	case render.ActionRefreshTask:
		return h.refreshTask(ctx, server, chatID, messageID, action.Arg)
	}
	return nil
}

func (h *Handler) sendTask(server *usecase.ServerState, chatID int64, replyTo int, id string) error {
	text, status, ok := server.Cache.FmtTask(id)
	if !ok {
		_, err := h.reply(chatID, 0, render.TaskNotFound(id), nil)
		return err
	}

	sent, err := h.reply(chatID, replyTo, text, render.TaskKeyboard(id, status.State))
	if err != nil {
		return err
	}
	server.Cache.AddTaskSubscriber(id, sentTarget(sent, chatID))
	return nil
}

func (h *Handler) addURIs(ctx context.Context, server *usecase.ServerState, chatID int64, messageID int, token string) error {
	outcome, err := h.downloads.DispatchURIs(ctx, server, token)
	if errors.Is(err, errs.ErrTokenNotFound) {
		return h.edit(chatID, messageID, render.TokenNotFound("Uri", token), nil)
	}
	if err != nil {
		return err
	}

	if outcome.RetryToken == "" {
		return h.edit(chatID, messageID, render.AddURIsReport(outcome.Dir, outcome.URIs, outcome.IDs, nil), nil)
	}

	text := render.AddURIsReport(outcome.Dir, outcome.URIs, outcome.IDs, outcome.Err)
	if outcome.TimedOut() && len(outcome.IDs) == 0 {
		text = render.MsgAddURIsTimeout
	}
	retry := render.RetryKeyboard(render.CallbackData(render.ActionAddURI, outcome.RetryToken))
	return h.edit(chatID, messageID, text, retry)
}

func (h *Handler) addTorrent(ctx context.Context, server *usecase.ServerState, chatID int64, messageID int, token string) error {
	outcome, err := h.downloads.DispatchTorrent(ctx, server, token)
	if errors.Is(err, errs.ErrTokenNotFound) {
		return h.edit(chatID, messageID, render.TokenNotFound("File", token), nil)
	}
	if err != nil {
		return err
	}

	if outcome.Err == nil {
		return h.edit(chatID, messageID, render.AddTorrentReport(outcome.Dir, outcome.ID), nil)
	}

	var retry models.Keyboard
	if outcome.RetryToken != "" {
		retry = render.RetryKeyboard(render.CallbackData(render.ActionAddTorrent, outcome.RetryToken))
	}
	return h.edit(chatID, messageID, render.AddTorrentFailure(outcome.Err, outcome.TimedOut()), retry)
}

func (h *Handler) refreshList(ctx context.Context, server *usecase.ServerState, chatID int64, messageID int) error {
	if err := server.Refresh(ctx); err != nil {
		return h.edit(chatID, messageID, render.FetchFailed(err), render.RefreshListKeyboard())
	}

	if err := h.edit(chatID, messageID, render.MsgTaskList, render.TasksKeyboard(server.Cache.FmtTasks())); err != nil {
		return err
	}
	server.Cache.AddListSubscriber(models.Target{ChatID: chatID, MessageID: messageID})
	return nil
}

func (h *Handler) refreshTask(ctx context.Context, server *usecase.ServerState, chatID int64, messageID int, id string) error {
	if err := server.Refresh(ctx); err != nil {
		return h.edit(chatID, messageID, render.FetchFailed(err), render.RefreshTaskKeyboard(id))
	}

	text, status, ok := server.Cache.FmtTask(id)
	if !ok {
		return h.edit(chatID, messageID, render.TaskNotFound(id), nil)
	}

	if err := h.edit(chatID, messageID, text, render.TaskKeyboard(id, status.State)); err != nil {
		return err
	}
	server.Cache.AddTaskSubscriber(id, models.Target{ChatID: chatID, MessageID: messageID})
	return nil
}
