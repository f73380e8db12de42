package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/jinford/skilo/internal/infra/cache"
	"github.com/jinford/skilo/pkg/config"
)

// loadConfig は --env フラグのパスを使って設定を読み込む
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	return config.Load(cmd.String("env"))
}

// cachePaths は設定からキャッシュ配置を解決する
func cachePaths(cfg *config.Config) (*cache.Paths, error) {
	return cache.NewPaths(cfg.GitCacheDir)
}
