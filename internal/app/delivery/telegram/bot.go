// Package telegram connects the bot to the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/supchaser/aria2bot/internal/app"
	"github.com/supchaser/aria2bot/internal/app/models"
	"github.com/supchaser/aria2bot/internal/utils/errs"
	"github.com/supchaser/aria2bot/internal/utils/validate"
)

// Sender is the part of *tgbotapi.BotAPI the bot talks through.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type fileLocator interface {
	GetFileDirectURL(fileID string) (string, error)
}

func markup(keyboard models.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func translateError(err error) error {
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return errs.ErrMessageNotModified
	}
	return err
}

// Notifier edits live task messages.
type Notifier struct {
	bot Sender
}

var _ app.Notifier = (*Notifier)(nil)

func CreateNotifier(bot Sender) *Notifier {
	return &Notifier{bot: bot}
}

// The API client has no context support; ctx only bounds the caller.
func (n *Notifier) EditListMarkup(ctx context.Context, target models.Target, keyboard models.Keyboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := n.bot.Request(tgbotapi.NewEditMessageReplyMarkup(target.ChatID, target.MessageID, markup(keyboard)))
	return translateError(err)
}

func (n *Notifier) EditTaskMessage(ctx context.Context, target models.Target, text string, keyboard models.Keyboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := n.bot.Request(tgbotapi.NewEditMessageTextAndMarkup(target.ChatID, target.MessageID, text, markup(keyboard)))
	return translateError(err)
}

// FileFetcher downloads chat attachments through the file endpoint.
type FileFetcher struct {
	locator fileLocator
	client  *http.Client
}

var _ app.FileFetcher = (*FileFetcher)(nil)

func CreateFileFetcher(locator fileLocator, client *http.Client) *FileFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &FileFetcher{locator: locator, client: client}
}

func (f *FileFetcher) FetchFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := f.locator.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	// one byte over the limit is enough to reject the file
	return io.ReadAll(io.LimitReader(resp.Body, validate.MaxTorrentSize+1))
}
