package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/jinford/skilo/internal/infra/cache"
)

// CacheStatusAction はキャッシュの状態を表示するコマンドのアクション
func CacheStatusAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	paths, err := cachePaths(cfg)
	if err != nil {
		return err
	}

	if _, err := os.Stat(paths.Root()); err != nil {
		fmt.Printf("Cache directory: %s (not created yet)\n", paths.Root())
		return nil
	}

	stats := cache.NewStore(paths).Collect()
	now := time.Now()

	fmt.Printf("Cache directory: %s\n\n", paths.Root())

	fmt.Printf("  db/: %d repositories, %s\n", len(stats.Repos), cache.FormatSize(stats.DBSize))
	for _, repo := range stats.Repos {
		fmt.Printf("    %s\n", repo.Name)
	}

	if len(stats.Repos) > 0 && len(stats.Checkouts) > 0 {
		fmt.Println()
	}

	fmt.Printf("  checkouts/: %d checkouts, %s\n", len(stats.Checkouts), cache.FormatSize(stats.CheckoutsSize))
	for _, checkout := range stats.Checkouts {
		fmt.Printf("    %s %s\n", checkout.Name, cache.FormatAge(checkout.Modified, now))
	}

	if len(stats.Repos) > 0 || len(stats.Checkouts) > 0 {
		fmt.Printf("\nTotal: %s\n", cache.FormatSize(stats.TotalSize()))
	}

	for _, skipped := range stats.Skipped {
		slog.Warn("キャッシュエントリを読み飛ばしました", "name", skipped.Name, "reason", skipped.Reason)
	}

	return nil
}

// CachePathAction はキャッシュディレクトリのパスを表示するコマンドのアクション
func CachePathAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	paths, err := cachePaths(cfg)
	if err != nil {
		return err
	}

	fmt.Println(paths.Root())
	return nil
}

// CacheCleanAction はキャッシュを削除するコマンドのアクション
func CacheCleanAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	paths, err := cachePaths(cfg)
	if err != nil {
		return err
	}

	evictor := cache.NewEvictor(paths)

	if cmd.Bool("all") {
		slog.Info("キャッシュ全体の削除を開始")

		report, err := evictor.EvictAll()
		if err != nil {
			return err
		}

		fmt.Printf("Removed %d repositories, %d checkouts (%s freed)\n",
			report.ReposRemoved, report.CheckoutsRemoved, cache.FormatSize(report.Freed))
		warnSkipped(report.Skipped)
		return nil
	}

	// 明示的な --max-age 0 も尊重する（未指定のときだけ設定値を使う）
	maxAge := cfg.Clean.MaxAgeDays
	if cmd.IsSet("max-age") {
		maxAge = int(cmd.Int("max-age"))
	}

	slog.Info("古い checkout の削除を開始", "maxAgeDays", maxAge)

	report, err := evictor.EvictOlderThan(maxAge)
	if err != nil {
		return err
	}

	if report.Removed > 0 {
		fmt.Printf("Removed %d checkouts (%s freed)\n", report.Removed, cache.FormatSize(report.Freed))
	} else {
		fmt.Printf("No checkouts older than %d days found\n", maxAge)
	}
	warnSkipped(report.Skipped)

	return nil
}

func warnSkipped(skipped []cache.SkippedEntry) {
	for _, entry := range skipped {
		slog.Warn("エントリを削除できませんでした", "name", entry.Name, "reason", entry.Reason)
	}
}
