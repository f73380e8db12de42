package git

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// ErrNoCredentials は適用可能な認証プロバイダがひとつもない場合に返されます
var ErrNoCredentials = errors.New("no valid credentials available")

// NetworkError はホスト解決・接続などネットワーク起因の失敗を表す
// 上位レイヤではリトライ対象として扱える
type NetworkError struct {
	Message string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s", e.Message)
}

// RepoNotFoundError はリモートがリポジトリの不存在を明示した失敗を表す
// リトライでは回復しない
type RepoNotFoundError struct {
	URL string
}

func (e *RepoNotFoundError) Error() string {
	return fmt.Sprintf("repository not found: %s", e.URL)
}

// InvalidSourceError はソース指定の誤り（クローン後に subdir が存在しない等）を表す
type InvalidSourceError struct {
	URL    string
	Reason string
}

func (e *InvalidSourceError) Error() string {
	return fmt.Sprintf("invalid source %s: %s", e.URL, e.Reason)
}

// GitError は上記に分類されないクローン時の失敗を表す
// 元のメッセージをそのまま保持する
type GitError struct {
	Message string
}

func (e *GitError) Error() string {
	return fmt.Sprintf("git error: %s", e.Message)
}

// IsRetryable はリトライで回復しうる失敗かどうかを返す
func IsRetryable(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// classifyCloneError はクローン失敗をエラー分類へ変換する
func classifyCloneError(err error, url string) error {
	if errors.Is(err, transport.ErrRepositoryNotFound) {
		return &RepoNotFoundError{URL: url}
	}

	if isNetworkError(err) {
		return &NetworkError{Message: err.Error()}
	}

	return &GitError{Message: err.Error()}
}

// isNetworkError はネットワーク起因の失敗かどうかを判定する
func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"could not resolve host", "no such host", "network", "connection"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}
