package aria2

import (
	"strconv"

	"github.com/supchaser/aria2bot/internal/app/models"
)

// statusKeys limits tell* responses to the fields the bot renders.
var statusKeys = []string{
	"gid", "status", "totalLength", "completedLength", "downloadSpeed",
	"uploadSpeed", "connections", "numSeeders", "dir", "files", "bittorrent",
}

const unknownTaskName = "Unknown Task Name"

type wireStatus struct {
	GID             string          `json:"gid"`
	Status          string          `json:"status"`
	TotalLength     string          `json:"totalLength"`
	CompletedLength string          `json:"completedLength"`
	DownloadSpeed   string          `json:"downloadSpeed"`
	UploadSpeed     string          `json:"uploadSpeed"`
	Connections     string          `json:"connections"`
	NumSeeders      string          `json:"numSeeders"`
	Dir             string          `json:"dir"`
	Files           []wireFile      `json:"files"`
	Bittorrent      *wireBittorrent `json:"bittorrent"`
}

type wireFile struct {
	Path string    `json:"path"`
	URIs []wireURI `json:"uris"`
}

type wireURI struct {
	URI string `json:"uri"`
}

type wireBittorrent struct {
	Info *struct {
		Name string `json:"name"`
	} `json:"info"`
}

func parseCounter(raw string) uint64 {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// name prefers the torrent name, then the first file's uri or path, then the gid.
func (w *wireStatus) name() string {
	if w.Bittorrent != nil && w.Bittorrent.Info != nil && w.Bittorrent.Info.Name != "" {
		return w.Bittorrent.Info.Name
	}
	if len(w.Files) > 0 {
		first := w.Files[0]
		if len(first.URIs) > 0 && first.URIs[0].URI != "" {
			return first.URIs[0].URI
		}
		if first.Path != "" {
			return first.Path
		}
		return unknownTaskName
	}
	if w.GID != "" {
		return w.GID
	}
	return unknownTaskName
}

func (w *wireStatus) toModel() *models.Status {
	state, _ := models.ParseTaskState(w.Status)
	return &models.Status{
		ID:              w.GID,
		State:           state,
		CompletedLength: parseCounter(w.CompletedLength),
		TotalLength:     parseCounter(w.TotalLength),
		DownloadSpeed:   parseCounter(w.DownloadSpeed),
		UploadSpeed:     parseCounter(w.UploadSpeed),
		Connections:     parseCounter(w.Connections),
		NumSeeders:      parseCounter(w.NumSeeders),
		Dir:             w.Dir,
		Name:            w.name(),
	}
}
