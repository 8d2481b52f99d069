package render

import (
	"github.com/supchaser/aria2bot/internal/app/models"
	"github.com/supchaser/aria2bot/internal/config"
)

// Callback data prefixes understood by the callback handler.
const (
	ActionTask        = "task"
	ActionPause       = "pause"
	ActionResume      = "resume"
	ActionRemove      = "remove"
	ActionAddURI      = "uri"
	ActionAddTorrent  = "t"
	ActionRefreshTask = "rtask"
	ActionSwitch      = "switch"
	ActionRefreshList = "rlist"
)

const dirsPerRow = 3

func CallbackData(action, arg string) string {
	return action + "|" + arg
}

func TasksKeyboard(lines []models.TaskLine) models.Keyboard {
	keyboard := make(models.Keyboard, 0, len(lines))
	for _, line := range lines {
		keyboard = append(keyboard, []models.Button{{Text: line.Text, Data: CallbackData(ActionTask, line.ID)}})
	}
	return keyboard
}

func TaskKeyboard(id string, state models.TaskState) models.Keyboard {
	pause := models.Button{Text: "⏸ Pause", Data: CallbackData(ActionPause, id)}
	resume := models.Button{Text: "▶️ Resume", Data: CallbackData(ActionResume, id)}
	remove := models.Button{Text: "⏹ Remove", Data: CallbackData(ActionRemove, id)}

	var row []models.Button
	switch state {
	case models.StateActive, models.StateWaiting:
		row = []models.Button{pause, remove}
	case models.StatePaused:
		row = []models.Button{resume, remove}
	case models.StateError, models.StateComplete:
		row = []models.Button{remove}
	default:
		row = []models.Button{}
	}
	return models.Keyboard{row}
}

func RefreshListKeyboard() models.Keyboard {
	return models.Keyboard{{{Text: "🔄 Refresh", Data: ActionRefreshList}}}
}

func RefreshTaskKeyboard(id string) models.Keyboard {
	return models.Keyboard{{{Text: "🔄 Refresh", Data: CallbackData(ActionRefreshTask, id)}}}
}

func SwitchServerKeyboard(names []string) models.Keyboard {
	keyboard := make(models.Keyboard, 0, len(names))
	for _, name := range names {
		keyboard = append(keyboard, []models.Button{{Text: name, Data: CallbackData(ActionSwitch, name)}})
	}
	return keyboard
}

// DownloadConfirmKeyboard lays out one button per directory plus a default
// button. register is called once per button and returns its callback data.
func DownloadConfirmKeyboard(dirs []config.DirConfig, defaultDir string, register func(dir string) string) models.Keyboard {
	keyboard := models.Keyboard{}
	for start := 0; start < len(dirs); start += dirsPerRow {
		end := min(start+dirsPerRow, len(dirs))
		row := make([]models.Button, 0, end-start)
		for _, dir := range dirs[start:end] {
			row = append(row, models.Button{Text: dir.Name, Data: register(dir.Path)})
		}
		keyboard = append(keyboard, row)
	}
	keyboard = append(keyboard, []models.Button{{Text: "Default", Data: register(defaultDir)}})
	return keyboard
}

func RetryKeyboard(data string) models.Keyboard {
	return models.Keyboard{{{Text: "🔁 Retry", Data: data}}}
}
