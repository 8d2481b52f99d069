package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/supchaser/aria2bot/internal/app"
	"github.com/supchaser/aria2bot/internal/app/models"
	"github.com/supchaser/aria2bot/internal/app/repository"
	"github.com/supchaser/aria2bot/internal/utils/errs"
	"github.com/supchaser/aria2bot/internal/utils/logger"
	"github.com/supchaser/aria2bot/internal/utils/validate"
	"go.uber.org/zap"
)

const OpTimeout = 10 * time.Second

// URIOutcome describes one confirmed add-uri request. IDs line up with the
// leading URIs. When Err is set the remaining URIs were staged again under
// RetryToken.
type URIOutcome struct {
	Dir        string
	URIs       []string
	IDs        []string
	Err        error
	RetryToken string
}

func (o URIOutcome) TimedOut() bool {
	return errors.Is(o.Err, context.DeadlineExceeded)
}

// TorrentOutcome describes one confirmed add-torrent request.
type TorrentOutcome struct {
	Dir        string
	ID         string
	Err        error
	RetryToken string
}

func (o TorrentOutcome) TimedOut() bool {
	return errors.Is(o.Err, context.DeadlineExceeded)
}

type DownloadUsecase struct {
	uris      *repository.PendingStore[models.PendingURIs]
	torrents  *repository.PendingStore[models.PendingTorrent]
	fetcher   app.FileFetcher
	opTimeout time.Duration
}

func CreateDownloadUsecase(fetcher app.FileFetcher) (*DownloadUsecase, error) {
	uris, err := repository.CreatePendingStore[models.PendingURIs]("uri", repository.PendingCapacity)
	if err != nil {
		return nil, err
	}

	torrents, err := repository.CreatePendingStore[models.PendingTorrent]("torrent", repository.PendingCapacity)
	if err != nil {
		return nil, err
	}

	return &DownloadUsecase{
		uris:      uris,
		torrents:  torrents,
		fetcher:   fetcher,
		opTimeout: OpTimeout,
	}, nil
}

func (u *DownloadUsecase) StageURIs(dir string, uris []string) string {
	return u.uris.Put(models.PendingURIs{Dir: dir, URIs: uris})
}

func (u *DownloadUsecase) StageTorrent(dir, fileID string) string {
	return u.torrents.Put(models.PendingTorrent{Dir: dir, FileID: fileID})
}

func (u *DownloadUsecase) DispatchURIs(ctx context.Context, server *ServerState, token string) (URIOutcome, error) {
	const funcName = "DownloadUsecase.DispatchURIs"

	pending, ok := u.uris.Take(token)
	if !ok {
		return URIOutcome{}, errs.ErrTokenNotFound
	}

	opCtx, cancel := context.WithTimeout(ctx, u.opTimeout)
	defer cancel()

	result := server.Client.AddURIs(opCtx, pending.URIs, pending.Dir)
	outcome := URIOutcome{
		Dir:  pending.Dir,
		URIs: pending.URIs,
		IDs:  result.IDs,
		Err:  result.Err,
	}

	if result.Err == nil {
		logger.Info("uris added",
			zap.String("function", funcName),
			zap.String("server", server.Name),
			zap.Int("count", len(result.IDs)),
		)
		return outcome, nil
	}

	added := min(len(result.IDs), len(pending.URIs))
	failed := append([]string(nil), pending.URIs[added:]...)
	outcome.RetryToken = u.StageURIs(pending.Dir, failed)

	logger.Warn("add uris failed",
		zap.String("function", funcName),
		zap.String("server", server.Name),
		zap.Int("added", added),
		zap.Int("failed", len(failed)),
		zap.Error(result.Err),
	)

	return outcome, nil
}

// DispatchTorrent downloads the staged attachment and hands it to the
// daemon. Failures other than an oversized file are staged for retry.
func (u *DownloadUsecase) DispatchTorrent(ctx context.Context, server *ServerState, token string) (TorrentOutcome, error) {
	const funcName = "DownloadUsecase.DispatchTorrent"

	pending, ok := u.torrents.Take(token)
	if !ok {
		return TorrentOutcome{}, errs.ErrTokenNotFound
	}

	outcome := TorrentOutcome{Dir: pending.Dir}
	fail := func(err error, retry bool) (TorrentOutcome, error) {
		outcome.Err = err
		if retry {
			outcome.RetryToken = u.StageTorrent(pending.Dir, pending.FileID)
		}
		logger.Warn("add torrent failed",
			zap.String("function", funcName),
			zap.String("server", server.Name),
			zap.String("file_id", pending.FileID),
			zap.Error(err),
		)
		return outcome, nil
	}

	data, err := u.fetchTorrent(ctx, pending.FileID)
	if err != nil {
		return fail(fmt.Errorf("download torrent file: %w", err), true)
	}
	if err := validate.ValidateTorrentSize(int64(len(data))); err != nil {
		return fail(err, false)
	}

	addCtx, cancel := context.WithTimeout(ctx, u.opTimeout)
	defer cancel()

	id, err := server.Client.AddTorrent(addCtx, data, pending.Dir)
	if err != nil {
		return fail(fmt.Errorf("push add torrent task: %w", err), true)
	}

	outcome.ID = id
	logger.Info("torrent added",
		zap.String("function", funcName),
		zap.String("server", server.Name),
		zap.String("gid", id),
	)
	return outcome, nil
}

func (u *DownloadUsecase) fetchTorrent(ctx context.Context, fileID string) ([]byte, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, u.opTimeout)
	defer cancel()

	return u.fetcher.FetchFile(fetchCtx, fileID)
}
