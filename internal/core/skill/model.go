// Package skill はスキル（エージェントへ配布されるパッケージ）の
// ソース記述・マニフェスト・検証を提供する
package skill

import "context"

// GitSource は git リポジトリ上のスキルソースを表す
// Branch と Tag は高々どちらか一方が意味を持つ
type GitSource struct {
	// URL はリポジトリの URL（HTTPS または SSH 形式）
	URL string
	// Branch は取得するブランチ（任意）
	Branch string
	// Tag は取得するタグ（任意）
	Tag string
	// Subdir はリポジトリ内の利用対象サブディレクトリ（任意、相対パス）
	Subdir string
}

// Reference は取得時に使う参照名を返す
// branch が指定されていれば branch、なければ tag、どちらもなければ空
// （デフォルトブランチを意味する）
func (s *GitSource) Reference() string {
	if s.Branch != "" {
		return s.Branch
	}
	return s.Tag
}

// Installer は取得済みソースを最終的なインストール先へ配置する
// コラボレータのインターフェース
//
// 実装は fetch 結果の root からの複製を担う（本サブシステムの範囲外）
type Installer interface {
	Install(ctx context.Context, src *GitSource, destDir string) error
}
