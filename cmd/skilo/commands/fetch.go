package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/jinford/skilo/internal/core/skill"
	"github.com/jinford/skilo/internal/infra/cache"
	"github.com/jinford/skilo/internal/infra/git"
)

// FetchAction はソースの取得を検証するコマンドのアクション
//
// 一時ディレクトリへクローンしてルートを解決できるか確認し、
// 結果は保持せずに破棄する
func FetchAction(ctx context.Context, cmd *cli.Command) error {
	url := cmd.Args().First()
	if url == "" {
		return errors.New("url is required")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// ネットワークアクセスの前にオフラインモードを確認する
	if cfg.Offline {
		return errors.New("offline mode is enabled (SKILO_OFFLINE)")
	}

	src := &skill.GitSource{
		URL:    url,
		Branch: cmd.String("branch"),
		Tag:    cmd.String("tag"),
		Subdir: cmd.String("subdir"),
	}

	slog.Info("ソースの取得を開始", "url", url, "reference", src.Reference())

	fetcher := git.NewFetcher(cfg.Git.SSHKeyPath, cfg.Git.SSHPassword, cfg.Git.Token)

	result, err := fetcher.Fetch(ctx, src)
	if err != nil {
		slog.Error("ソースの取得に失敗しました", "url", url, "error", err, "retryable", git.IsRetryable(err))
		return err
	}
	defer func() {
		if err := result.Close(); err != nil {
			slog.Warn("一時ディレクトリの削除に失敗しました", "dir", result.Dir, "error", err)
		}
	}()

	fmt.Printf("OK: %s\n", url)
	if owner, repo, ok := cache.ParseOwnerRepo(url); ok {
		fmt.Printf("  cache name: %s\n", cache.MirrorName(owner, repo))
	}
	fmt.Printf("  root: %s\n", result.Root)

	return nil
}
