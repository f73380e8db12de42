package cache

import (
	"os"
	"time"
)

// EvictReport は経過日数ベースの掃除結果
type EvictReport struct {
	// Removed は削除した checkout の数
	Removed int
	// Freed は解放したバイト数
	Freed int64
	// Skipped は削除に失敗して読み飛ばしたエントリ
	Skipped []SkippedEntry
}

// EvictAllReport は全削除の結果
type EvictAllReport struct {
	// ReposRemoved は削除した db/ エントリの数
	ReposRemoved int
	// CheckoutsRemoved は削除した checkout の数
	CheckoutsRemoved int
	// Freed は解放したバイト数
	Freed int64
	// Skipped は削除に失敗して読み飛ばしたエントリ
	Skipped []SkippedEntry
}

// Evictor はキャッシュエントリの削除を提供する
//
// 個々のエントリの削除失敗は致命的エラーにせず、レポートの Skipped に
// 記録して継続する
type Evictor struct {
	paths *Paths
	now   func() time.Time
}

// NewEvictor は新しい Evictor を作成する
func NewEvictor(paths *Paths) *Evictor {
	return &Evictor{
		paths: paths,
		now:   time.Now,
	}
}

// EvictOlderThan は最終更新から maxAgeDays 日を超えて経過した checkout を
// 削除する。checkouts/ が存在しない場合は空のレポートを返す
func (e *Evictor) EvictOlderThan(maxAgeDays int) (*EvictReport, error) {
	report := &EvictReport{}

	maxAge := time.Duration(maxAgeDays) * 24 * time.Hour
	now := e.now()

	var skippedList []SkippedEntry
	for _, entry := range listSubdirs(e.paths.Checkouts(), &skippedList) {
		if entry.modified.IsZero() {
			continue
		}
		if now.Sub(entry.modified) <= maxAge {
			continue
		}

		size := dirSize(entry.path)
		if err := os.RemoveAll(entry.path); err != nil {
			report.Skipped = append(report.Skipped, SkippedEntry{
				Name:   entry.name,
				Reason: err.Error(),
			})
			continue
		}

		report.Removed++
		report.Freed += size
	}
	report.Skipped = append(report.Skipped, skippedList...)

	return report, nil
}

// EvictAll は checkouts/ と db/ の直下エントリをすべて削除する
// （checkouts を先に、db を後に処理する）
func (e *Evictor) EvictAll() (*EvictAllReport, error) {
	report := &EvictAllReport{}

	var skippedList []SkippedEntry

	for _, entry := range listSubdirs(e.paths.Checkouts(), &skippedList) {
		size := dirSize(entry.path)
		if err := os.RemoveAll(entry.path); err != nil {
			report.Skipped = append(report.Skipped, SkippedEntry{
				Name:   entry.name,
				Reason: err.Error(),
			})
			continue
		}
		report.CheckoutsRemoved++
		report.Freed += size
	}

	for _, entry := range listSubdirs(e.paths.DB(), &skippedList) {
		size := dirSize(entry.path)
		if err := os.RemoveAll(entry.path); err != nil {
			report.Skipped = append(report.Skipped, SkippedEntry{
				Name:   entry.name,
				Reason: err.Error(),
			})
			continue
		}
		report.ReposRemoved++
		report.Freed += size
	}

	report.Skipped = append(report.Skipped, skippedList...)

	return report, nil
}
