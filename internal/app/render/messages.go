package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/supchaser/aria2bot/internal/app/models"
	"github.com/supchaser/aria2bot/internal/utils/errs"
)

const (
	MsgStart = "Welcome to aria2 bot!\nUse /help to get help.\nUse /task to get task list.\n" +
		"To download, send magnet link, torrent file or http(s) link to me!"
	MsgTaskList       = "Tasks:\nThis page will be updated automatically within 3mins.\nUse /task to refresh again."
	MsgInvalidCommand = "Invalid command or format!"
	MsgSingleServer   = "No need to switch server, there is only one server."
	MsgFileTooLarge   = "File size too large!"
	MsgAddURIsTimeout = "Add uris task timeout"
	MsgHelp           = "/help - Display this text\n/start - Start\n/id - Show chat id\n" +
		"/switch - Switch server\n/task - Task list\n/purge - Purge all downloaded results"
)

func SwitchResult(result models.SelectResult, name string) string {
	switch result {
	case models.SelectSuccess:
		return fmt.Sprintf("Server switched to %s.", name)
	case models.SelectNoNeed:
		return "Only one server is accessible."
	default:
		return "Failed to switch server. The server may not exist, or you may not have permission to access it."
	}
}

func SwitchPrompt(current string) string {
	if current == "" {
		return "No server selected. Please select server:"
	}
	return fmt.Sprintf("Current server: %s. Please select server:", current)
}

func Unauthorized(userID int64) string {
	return fmt.Sprintf("User or group(%d) are not authorized to use this command!", userID)
}

func ConfirmMagnets(magnets []string) string {
	if len(magnets) == 1 {
		return fmt.Sprintf("Confirm download %s?", magnets[0])
	}
	return fmt.Sprintf("Confirm download %d magnets?", len(magnets))
}

func ConfirmLinks(links []string) string {
	if len(links) == 1 {
		return fmt.Sprintf("Confirm download %s?", links[0])
	}
	return fmt.Sprintf("Confirm download %d links?", len(links))
}

func ConfirmTorrent(fileName, fileID string) string {
	if fileName == "" {
		return fmt.Sprintf("Confirm download torrent file_%s?", fileID)
	}
	return fmt.Sprintf("Confirm download torrent file %s?", fileName)
}

func TaskNotFound(id string) string {
	return fmt.Sprintf("Task %s not found!", id)
}

func TokenNotFound(kind, token string) string {
	return fmt.Sprintf("%s cache %s not found!", kind, token)
}

func FetchFailed(err error) string {
	return fmt.Sprintf("Failed to fetch tasks: %s", err)
}

func ActionResult(action, id string, err error) string {
	if err != nil {
		return fmt.Sprintf("%s task %s failed: %s", action, id, err)
	}
	return fmt.Sprintf("%s task %s successfully!", action, id)
}

func PurgeResult(err error) string {
	if err != nil {
		return fmt.Sprintf("Purge downloaded results failed: %s", err)
	}
	return "Purge downloaded results successfully!"
}

// AddURIsReport pairs each added uri with its gid and appends the failure,
// if any, at the position it happened.
func AddURIsReport(dir string, uris, ids []string, err error) string {
	var b strings.Builder
	if len(ids) > 0 {
		fmt.Fprintf(&b, "Add download uris task to %s successfully:\n", dir)
	}
	for i, id := range ids {
		fmt.Fprintf(&b, "%s: %s\n", uris[i], id)
	}

	switch {
	case err != nil && len(ids) > 0:
		fmt.Fprintf(&b, "\nPartially failed at uri[%d]: %s", len(ids), err)
	case err != nil:
		return fmt.Sprintf("Push add uris task failed: %s", err)
	default:
		b.WriteString("\nUse /task to list all tasks.")
	}
	return b.String()
}

func AddTorrentReport(dir, id string) string {
	return fmt.Sprintf("Add download torrent task to %s successfully:\nGID: %s\n\nUse /task to list all tasks.", dir, id)
}

// AddTorrentFailure describes why a torrent could not be queued.
func AddTorrentFailure(err error, timedOut bool) string {
	switch {
	case errors.Is(err, errs.ErrTorrentTooLarge):
		return MsgFileTooLarge
	case timedOut:
		return "Add torrent task timeout"
	default:
		return fmt.Sprintf("Add torrent task failed: %s", err)
	}
}
