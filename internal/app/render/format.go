// Package render turns task statuses into chat text and inline keyboards.
package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/supchaser/aria2bot/internal/app/models"
)

const maxBriefNameLen = 40

var briefIcons = map[models.TaskState]string{
	models.StateActive:   "⏬",
	models.StateWaiting:  "🕒",
	models.StatePaused:   "⏸️",
	models.StateError:    "❌",
	models.StateComplete: "✅",
	models.StateRemoved:  "❎",
}

var stateTitles = map[models.TaskState]string{
	models.StateActive:   "Active",
	models.StateWaiting:  "Waiting",
	models.StatePaused:   "Paused",
	models.StateError:    "Error",
	models.StateComplete: "Complete",
	models.StateRemoved:  "Removed",
}

func Size(n uint64) string {
	return humanize.IBytes(n)
}

func percent(s *models.Status) string {
	return fmt.Sprintf("%.3f%%", s.Progress()*100)
}

func shortName(name string) string {
	name = strings.TrimPrefix(name, "https://")
	name = strings.TrimPrefix(name, "http://")
	runes := []rune(name)
	if len(runes) > maxBriefNameLen {
		runes = runes[:maxBriefNameLen]
	}
	return string(runes)
}

// Brief is the one-line form used as a list button label.
func Brief(s *models.Status) string {
	icon := briefIcons[s.State]
	switch s.State {
	case models.StateActive, models.StateWaiting, models.StatePaused:
		return fmt.Sprintf("%s|%s|%s/%s|%s",
			icon, percent(s), Size(s.CompletedLength), Size(s.TotalLength), shortName(s.Name))
	default:
		return fmt.Sprintf("%s|%s|%s", icon, Size(s.TotalLength), shortName(s.Name))
	}
}

func Detailed(s *models.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task Name: %s\n", s.Name)
	fmt.Fprintf(&b, "GID: %s\n", s.ID)
	fmt.Fprintf(&b, "Status: %s\n", stateTitles[s.State])

	dir := s.Dir
	if dir == "" {
		dir = "Unknown"
	}
	fmt.Fprintf(&b, "Dir: %s\n", dir)

	if s.State == models.StateActive {
		fmt.Fprintf(&b, "Conn/Seeder: %d/%d\n", s.Connections, s.NumSeeders)
		fmt.Fprintf(&b, "Speed: ⬆ %s/s | ⬇ %s/s\n", Size(s.UploadSpeed), Size(s.DownloadSpeed))
	}

	fmt.Fprintf(&b, "Progress: %s %s/%s\n", percent(s), Size(s.CompletedLength), Size(s.TotalLength))
	return b.String()
}
