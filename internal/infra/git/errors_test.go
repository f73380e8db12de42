package git

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCloneError(t *testing.T) {
	const url = "https://github.com/anthropics/skills.git"

	tests := []struct {
		name string
		err  error
		want any
	}{
		{
			name: "リモートが不存在を明示した場合は RepoNotFoundError",
			err:  fmt.Errorf("clone: %w", transport.ErrRepositoryNotFound),
			want: &RepoNotFoundError{},
		},
		{
			name: "ホスト解決失敗は NetworkError",
			err:  errors.New("Could not resolve host: github.com"),
			want: &NetworkError{},
		},
		{
			name: "DNS 由来のメッセージは NetworkError",
			err:  errors.New("dial tcp: lookup github.com: no such host"),
			want: &NetworkError{},
		},
		{
			name: "接続失敗は NetworkError",
			err:  errors.New("connection refused"),
			want: &NetworkError{},
		},
		{
			name: "その他のクローン失敗は GitError",
			err:  errors.New("authentication required"),
			want: &GitError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyCloneError(tt.err, url)

			switch tt.want.(type) {
			case *RepoNotFoundError:
				var notFound *RepoNotFoundError
				require.ErrorAs(t, got, &notFound)
				assert.Equal(t, url, notFound.URL)
			case *NetworkError:
				var netErr *NetworkError
				require.ErrorAs(t, got, &netErr)
				assert.Equal(t, tt.err.Error(), netErr.Message)
			case *GitError:
				var gitErr *GitError
				require.ErrorAs(t, got, &gitErr)
				assert.Equal(t, tt.err.Error(), gitErr.Message)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&NetworkError{Message: "connection reset"}))
	assert.False(t, IsRetryable(&RepoNotFoundError{URL: "https://example.com/a/b"}))
	assert.False(t, IsRetryable(&GitError{Message: "broken"}))
	assert.False(t, IsRetryable(errors.New("plain")))
}
