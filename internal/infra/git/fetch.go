// Package git はリモートリポジトリの取得と認証フォールバックを提供する
package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/jinford/skilo/internal/core/skill"
)

// FetchResult は取得に成功したリポジトリの一時的な置き場所を表す
//
// 呼び出し側が所有し、利用終了時に Close で必ず解放すること
// （エラーパスを含むすべての経路で）
type FetchResult struct {
	// Dir はクローン先の一時ディレクトリ
	Dir string
	// Root は利用対象のルート（subdir 指定があればそのサブパス）
	Root string
}

// Close は一時ディレクトリを削除する
func (r *FetchResult) Close() error {
	return os.RemoveAll(r.Dir)
}

// Fetcher は git リポジトリの取得を提供する
type Fetcher struct {
	providers []CredentialProvider
}

// NewFetcher は新しい Fetcher を作成する
//
// 認証は固定順のフォールバックチェーンで解決する:
// SSH エージェント → SSH 鍵ファイル → トークン → 匿名
func NewFetcher(sshKeyPath, sshPassword, token string) *Fetcher {
	return &Fetcher{
		providers: []CredentialProvider{
			SSHAgentProvider(),
			SSHKeyFileProvider(sshKeyPath, sshPassword),
			TokenProvider(token),
			AnonymousProvider(),
		},
	}
}

// NewFetcherWithProviders は認証チェーンを差し替えた Fetcher を作成する
func NewFetcherWithProviders(providers []CredentialProvider) *Fetcher {
	return &Fetcher{providers: providers}
}

// Fetch はソースを一時ディレクトリへクローンする
//
// 取得は一回きりで、内部でのリトライは行わない。失敗は
// NetworkError / RepoNotFoundError / InvalidSourceError / GitError の
// いずれかに分類して返す
func (f *Fetcher) Fetch(ctx context.Context, src *skill.GitSource) (*FetchResult, error) {
	dir, err := os.MkdirTemp("", "skilo-git-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	if err := f.clone(ctx, src, dir); err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	// subdir の存在はクローン後に確認する（事前には判断できない）
	root := dir
	if src.Subdir != "" {
		root = filepath.Join(dir, src.Subdir)
		if _, err := os.Stat(root); err != nil {
			_ = os.RemoveAll(dir)
			return nil, &InvalidSourceError{
				URL:    src.URL,
				Reason: fmt.Sprintf("subdirectory %q not found in repository", src.Subdir),
			}
		}
	}

	return &FetchResult{Dir: dir, Root: root}, nil
}

func (f *Fetcher) clone(ctx context.Context, src *skill.GitSource, dest string) error {
	ep, err := transport.NewEndpoint(src.URL)
	if err != nil {
		return &GitError{Message: fmt.Sprintf("failed to parse URL %s: %s", src.URL, err)}
	}

	auth, err := resolveAuth(f.providers, ep)
	if err != nil {
		return err
	}

	opts := buildCloneOptions(src, auth)

	slog.Debug("リポジトリのクローンを開始",
		"url", src.URL,
		"reference", src.Reference(),
		"shallow", opts.Depth > 0,
	)

	if _, err := gogit.PlainCloneContext(ctx, dest, false, opts); err != nil {
		return classifyCloneError(err, src.URL)
	}

	return nil
}

// buildCloneOptions は取得ポリシーをクローンオプションへ変換する
//
// 参照指定がないときだけ shallow（depth 1）クローンにする。shallow と
// 特定 ref の組み合わせは信頼できないため、branch/tag 指定時は全履歴
// クローンとする
func buildCloneOptions(src *skill.GitSource, auth transport.AuthMethod) *gogit.CloneOptions {
	opts := &gogit.CloneOptions{
		URL:  src.URL,
		Auth: auth,
	}

	switch {
	case src.Branch != "":
		opts.ReferenceName = plumbing.NewBranchReferenceName(src.Branch)
		opts.SingleBranch = true
	case src.Tag != "":
		opts.ReferenceName = plumbing.NewTagReferenceName(src.Tag)
		opts.SingleBranch = true
	default:
		opts.Depth = 1
	}

	return opts
}
