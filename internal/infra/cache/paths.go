// Package cache は git キャッシュディレクトリの管理を提供する
//
// Cargo に倣ったキャッシュ構造:
//
//	~/.skilo/git/
//	├── db/           # bare リポジトリ（fetch 先）: <owner>-<repo>
//	└── checkouts/    # 特定リビジョンのワーキングツリー: <owner>-<repo>-<rev[:7]>
package cache

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNoCacheDir はキャッシュディレクトリが決定できない場合に返されます
// （ホームディレクトリ不明かつ SKILO_HOME / SKILO_CACHE 未設定）
var ErrNoCacheDir = errors.New("could not determine cache directory")

// Paths は解決済みの git キャッシュディレクトリ配置を表す
// 解決は設定読み込み時に一度だけ行い、以降は値として引き回す
type Paths struct {
	root string
}

// NewPaths は新しい Paths を作成する
// root が空の場合は ErrNoCacheDir を返す
func NewPaths(root string) (*Paths, error) {
	if root == "" {
		return nil, ErrNoCacheDir
	}
	return &Paths{root: root}, nil
}

// Root は git キャッシュディレクトリを返す
func (p *Paths) Root() string {
	return p.root
}

// DB は bare リポジトリディレクトリ（<root>/db）を返す
func (p *Paths) DB() string {
	return filepath.Join(p.root, "db")
}

// Checkouts は checkout ディレクトリ（<root>/checkouts）を返す
func (p *Paths) Checkouts() string {
	return filepath.Join(p.root, "checkouts")
}

// EnsureDir はディレクトリを祖先ごと作成する（存在していればなにもしない）
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
