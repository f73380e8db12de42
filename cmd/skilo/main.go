package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/jinford/skilo/cmd/skilo/commands"
	"github.com/jinford/skilo/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 構造化ログの設定
	cfg := logger.DefaultConfig()
	cfg.Level = logger.ParseLevel(os.Getenv("SKILO_LOG_LEVEL"))
	logger.New(cfg)

	app := &cli.Command{
		Name:  "skilo",
		Usage: "エージェントスキルのパッケージマネージャー",
		Commands: []*cli.Command{
			{
				Name:   "cache",
				Usage:  "git キャッシュの状態を表示",
				Flags:  []cli.Flag{newEnvFlag()},
				Action: commands.CacheStatusAction,
				Commands: []*cli.Command{
					{
						Name:   "path",
						Usage:  "キャッシュディレクトリのパスを表示",
						Flags:  []cli.Flag{newEnvFlag()},
						Action: commands.CachePathAction,
					},
					{
						Name:  "clean",
						Usage: "古い checkout またはキャッシュ全体を削除",
						Flags: []cli.Flag{
							newEnvFlag(),
							&cli.BoolFlag{
								Name:  "all",
								Usage: "db/ と checkouts/ をすべて削除",
							},
							&cli.IntFlag{
								Name:  "max-age",
								Usage: "この日数より古い checkout を削除（未指定時は設定値）",
							},
						},
						Action: commands.CacheCleanAction,
					},
				},
			},
			{
				Name:      "fetch",
				Usage:     "ソースを取得できるか検証（一時ディレクトリへクローンして破棄）",
				ArgsUsage: "<url>",
				Flags: []cli.Flag{
					newEnvFlag(),
					&cli.StringFlag{
						Name:  "branch",
						Usage: "取得するブランチ",
					},
					&cli.StringFlag{
						Name:  "tag",
						Usage: "取得するタグ",
					},
					&cli.StringFlag{
						Name:  "subdir",
						Usage: "リポジトリ内のサブディレクトリ",
					},
				},
				Action: commands.FetchAction,
			},
			{
				Name:      "lint",
				Usage:     "スキルディレクトリの SKILL.md を検証",
				ArgsUsage: "<dir>",
				Flags:     []cli.Flag{newEnvFlag()},
				Action:    commands.LintAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// newEnvFlag は各コマンド共通の --env フラグを作成する
func newEnvFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "環境変数ファイルパス",
		Value: ".env",
	}
}
