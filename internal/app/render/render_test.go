package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/supchaser/aria2bot/internal/app/models"
	"github.com/supchaser/aria2bot/internal/config"
)

func TestSize(t *testing.T) {
	tests := []struct {
		name string
		in   uint64
		want string
	}{
		{name: "zero", in: 0, want: "0 B"},
		{name: "bytes", in: 512, want: "512 B"},
		{name: "kib", in: 1536, want: "1.5 KiB"},
		{name: "mib", in: 5 * 1024 * 1024, want: "5.0 MiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Size(tt.in))
		})
	}
}

func TestBrief(t *testing.T) {
	active := &models.Status{
		ID: "a", State: models.StateActive, CompletedLength: 512, TotalLength: 1024,
		Name: "https://example.com/" + strings.Repeat("x", 60),
	}
	brief := Brief(active)
	assert.True(t, strings.HasPrefix(brief, "⏬|50.000%|512 B/1.0 KiB|example.com/"))
	assert.Len(t, []rune(strings.Split(brief, "|")[3]), maxBriefNameLen)

	done := &models.Status{ID: "c", State: models.StateComplete, TotalLength: 1024, Name: "file.iso"}
	assert.Equal(t, "✅|1.0 KiB|file.iso", Brief(done))
}

func TestDetailed(t *testing.T) {
	active := &models.Status{
		ID: "g1", State: models.StateActive, CompletedLength: 0, TotalLength: 0,
		Connections: 4, NumSeeders: 2, Name: "ubuntu.iso",
	}
	text := Detailed(active)
	assert.Contains(t, text, "Task Name: ubuntu.iso\n")
	assert.Contains(t, text, "GID: g1\n")
	assert.Contains(t, text, "Status: Active\n")
	assert.Contains(t, text, "Dir: Unknown\n")
	assert.Contains(t, text, "Conn/Seeder: 4/2\n")
	assert.Contains(t, text, "Progress: 0.000% 0 B/0 B\n")

	paused := &models.Status{ID: "g2", State: models.StatePaused, Dir: "/d", Name: "n"}
	text = Detailed(paused)
	assert.NotContains(t, text, "Speed:")
	assert.Contains(t, text, "Dir: /d\n")
}

func TestTaskKeyboard(t *testing.T) {
	tests := []struct {
		state models.TaskState
		data  []string
	}{
		{models.StateActive, []string{"pause|g", "remove|g"}},
		{models.StateWaiting, []string{"pause|g", "remove|g"}},
		{models.StatePaused, []string{"resume|g", "remove|g"}},
		{models.StateError, []string{"remove|g"}},
		{models.StateComplete, []string{"remove|g"}},
		{models.StateRemoved, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			keyboard := TaskKeyboard("g", tt.state)
			assert.Len(t, keyboard, 1)
			data := make([]string, 0, len(keyboard[0]))
			for _, button := range keyboard[0] {
				data = append(data, button.Data)
			}
			assert.Equal(t, tt.data, data)
		})
	}
}

func TestDownloadConfirmKeyboard(t *testing.T) {
	dirs := []config.DirConfig{
		{Name: "a", Path: "/a"}, {Name: "b", Path: "/b"}, {Name: "c", Path: "/c"}, {Name: "d", Path: "/d"},
	}
	var registered []string
	keyboard := DownloadConfirmKeyboard(dirs, "/default", func(dir string) string {
		registered = append(registered, dir)
		return "uri|" + dir
	})

	assert.Len(t, keyboard, 3)
	assert.Len(t, keyboard[0], 3)
	assert.Len(t, keyboard[1], 1)
	assert.Equal(t, models.Button{Text: "Default", Data: "uri|/default"}, keyboard[2][0])
	assert.Equal(t, []string{"/a", "/b", "/c", "/d", "/default"}, registered)
}

func TestAddURIsReport(t *testing.T) {
	uris := []string{"m1", "m2"}

	full := AddURIsReport("/d", uris, []string{"id1", "id2"}, nil)
	assert.Contains(t, full, "m1: id1\nm2: id2\n")
	assert.Contains(t, full, "Use /task")

	partial := AddURIsReport("/d", uris, []string{"id1"}, errors.New("boom"))
	assert.Contains(t, partial, "m1: id1\n")
	assert.Contains(t, partial, "Partially failed at uri[1]: boom")

	none := AddURIsReport("/d", uris, nil, errors.New("boom"))
	assert.Equal(t, "Push add uris task failed: boom", none)
}

func TestSwitchResult(t *testing.T) {
	assert.Equal(t, "Server switched to B.", SwitchResult(models.SelectSuccess, "B"))
	assert.NotEqual(t, SwitchResult(models.SelectNoNeed, "B"), SwitchResult(models.SelectFailure, "B"))
}
