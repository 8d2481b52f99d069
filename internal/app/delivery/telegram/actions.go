package telegram

import (
	"strings"

	"github.com/supchaser/aria2bot/internal/app/render"
	"github.com/supchaser/aria2bot/internal/utils/errs"
)

// Action is a decoded inline button press.
type Action struct {
	Kind string
	Arg  string
}

func ParseAction(data string) (Action, error) {
	if data == render.ActionRefreshList {
		return Action{Kind: render.ActionRefreshList}, nil
	}

	kind, arg, ok := strings.Cut(data, "|")
	if !ok {
		return Action{}, errs.ErrInvalidAction
	}

	switch kind {
	case render.ActionTask, render.ActionPause, render.ActionResume, render.ActionRemove,
		render.ActionAddURI, render.ActionAddTorrent, render.ActionRefreshTask:
		return Action{Kind: kind, Arg: arg}, nil
	case render.ActionSwitch:
		name, _, _ := strings.Cut(arg, "|")
		return Action{Kind: kind, Arg: name}, nil
	default:
		return Action{}, errs.ErrInvalidAction
	}
}
