package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// newCleanCommand は main.go と同じフラグ構成の clean コマンドを作成する
func newCleanCommand() *cli.Command {
	return &cli.Command{
		Name: "clean",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env"},
			&cli.BoolFlag{Name: "all"},
			&cli.IntFlag{Name: "max-age"},
		},
		Action: CacheCleanAction,
	}
}

// newStaleCheckout は 1 日前に更新された checkout を持つキャッシュを作成する
func newStaleCheckout(t *testing.T) (cacheDir, checkout string) {
	t.Helper()

	cacheDir = t.TempDir()
	t.Setenv("SKILO_CACHE", cacheDir)
	t.Setenv("SKILO_CLEAN_MAX_AGE_DAYS", "")

	checkout = filepath.Join(cacheDir, "checkouts", "owner-repo-abc1234")
	require.NoError(t, os.MkdirAll(checkout, 0o755))
	past := time.Now().Add(-24 * time.Hour)
	require.NoError(t, os.Chtimes(checkout, past, past))

	return cacheDir, checkout
}

func TestCacheCleanAction(t *testing.T) {
	t.Run("明示的な --max-age 0 は設定のデフォルトに置き換えない", func(t *testing.T) {
		_, checkout := newStaleCheckout(t)

		err := newCleanCommand().Run(context.Background(), []string{"clean", "--max-age", "0"})
		require.NoError(t, err)

		// デフォルト（30日）なら残るはずのエントリが 0 日指定で削除される
		assert.NoDirExists(t, checkout)
	})

	t.Run("--max-age 未指定時は設定のデフォルトを使う", func(t *testing.T) {
		_, checkout := newStaleCheckout(t)

		err := newCleanCommand().Run(context.Background(), []string{"clean"})
		require.NoError(t, err)

		assert.DirExists(t, checkout)
	})

	t.Run("--all は db と checkouts をすべて削除する", func(t *testing.T) {
		cacheDir, checkout := newStaleCheckout(t)
		mirror := filepath.Join(cacheDir, "db", "owner-repo")
		require.NoError(t, os.MkdirAll(mirror, 0o755))

		err := newCleanCommand().Run(context.Background(), []string{"clean", "--all"})
		require.NoError(t, err)

		assert.NoDirExists(t, checkout)
		assert.NoDirExists(t, mirror)
	})
}
