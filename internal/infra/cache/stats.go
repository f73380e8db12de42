package cache

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// CachedRepo は db/ 配下にキャッシュされた bare リポジトリの情報
type CachedRepo struct {
	// Name はディレクトリ名（owner-repo 形式）
	Name string
	// Path は bare リポジトリへのパス
	Path string
	// Size はバイト単位のサイズ
	Size int64
}

// CachedCheckout は checkouts/ 配下の checkout の情報
type CachedCheckout struct {
	// Name はディレクトリ名（owner-repo-rev 形式）
	Name string
	// Path は checkout へのパス
	Path string
	// Size はバイト単位のサイズ
	Size int64
	// Modified は最終更新時刻（取得できなかった場合は zero value）
	Modified time.Time
}

// SkippedEntry は列挙・削除中に読み飛ばしたエントリとその理由
// ベストエフォートで継続した事実を結果に残し、テストで検証可能にする
type SkippedEntry struct {
	Name   string
	Reason string
}

// Stats はキャッシュ統計のスナップショット
// 表示と差分比較を安定させるため、各リストは名前昇順でソート済み
type Stats struct {
	// Repos は db/ 配下のリポジトリ一覧
	Repos []CachedRepo
	// Checkouts は checkouts/ 配下の checkout 一覧
	Checkouts []CachedCheckout
	// DBSize は db/ の合計サイズ（バイト）
	DBSize int64
	// CheckoutsSize は checkouts/ の合計サイズ（バイト）
	CheckoutsSize int64
	// Skipped は列挙中に読み飛ばしたエントリ
	Skipped []SkippedEntry
}

// TotalSize はキャッシュ全体のサイズを返す
func (s *Stats) TotalSize() int64 {
	return s.DBSize + s.CheckoutsSize
}

// Store はキャッシュディレクトリの棚卸しを提供する
type Store struct {
	paths *Paths
}

// NewStore は新しい Store を作成する
func NewStore(paths *Paths) *Store {
	return &Store{paths: paths}
}

// Collect はキャッシュ統計を収集する
//
// 各セクションは直下のディレクトリのみを列挙する。個々のエントリの
// 読み取り失敗は Skipped に記録して継続する（検証ではなく棚卸しのため）。
// セクションのトップレベル列挙に失敗した場合はそのセクションごと
// スキップする。キャッシュが存在しない場合は空のスナップショットを返す。
func (s *Store) Collect() *Stats {
	stats := &Stats{}

	for _, entry := range listSubdirs(s.paths.DB(), &stats.Skipped) {
		size := dirSize(entry.path)
		stats.DBSize += size
		stats.Repos = append(stats.Repos, CachedRepo{
			Name: entry.name,
			Path: entry.path,
			Size: size,
		})
	}

	for _, entry := range listSubdirs(s.paths.Checkouts(), &stats.Skipped) {
		size := dirSize(entry.path)
		stats.CheckoutsSize += size
		stats.Checkouts = append(stats.Checkouts, CachedCheckout{
			Name:     entry.name,
			Path:     entry.path,
			Size:     size,
			Modified: entry.modified,
		})
	}

	sort.Slice(stats.Repos, func(i, j int) bool {
		return stats.Repos[i].Name < stats.Repos[j].Name
	})
	sort.Slice(stats.Checkouts, func(i, j int) bool {
		return stats.Checkouts[i].Name < stats.Checkouts[j].Name
	})

	return stats
}

type subdirEntry struct {
	name     string
	path     string
	modified time.Time
}

// listSubdirs は dir 直下のディレクトリを列挙する
// dir 自体が存在しない・読めない場合は空を返す
func listSubdirs(dir string, skipped *[]SkippedEntry) []subdirEntry {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var result []subdirEntry
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		sub := subdirEntry{
			name: entry.Name(),
			path: filepath.Join(dir, entry.Name()),
		}

		info, err := entry.Info()
		if err != nil {
			*skipped = append(*skipped, SkippedEntry{
				Name:   entry.Name(),
				Reason: err.Error(),
			})
			continue
		}
		sub.modified = info.ModTime()

		result = append(result, sub)
	}

	return result
}

// dirSize はディレクトリサイズを再帰的に計算する
// シンボリックリンクや権限エラーは無視して合計を続ける
func dirSize(path string) int64 {
	var size int64

	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		size += info.Size()
		return nil
	})

	return size
}

// FormatSize はバイト数を人間が読みやすい形式（1024進）に整形する
func FormatSize(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatAge は最終更新時刻からの経過を人間が読みやすい形式に整形する
// 例: "(2 days ago)"。更新時刻が不明・未来の場合は空文字列
func FormatAge(modified time.Time, now time.Time) string {
	if modified.IsZero() {
		return ""
	}

	age := now.Sub(modified)
	if age < 0 {
		return ""
	}

	mins := int64(age.Minutes())
	hours := mins / 60
	days := hours / 24
	weeks := days / 7

	switch {
	case weeks > 0:
		return fmt.Sprintf("(%d %s ago)", weeks, plural("week", weeks))
	case days > 0:
		return fmt.Sprintf("(%d %s ago)", days, plural("day", days))
	case hours > 0:
		return fmt.Sprintf("(%d %s ago)", hours, plural("hour", hours))
	case mins > 0:
		return fmt.Sprintf("(%d %s ago)", mins, plural("minute", mins))
	default:
		return "(just now)"
	}
}

func plural(unit string, n int64) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
