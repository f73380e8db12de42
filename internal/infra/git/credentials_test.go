package git

import (
	"errors"
	"testing"

	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEndpoint(t *testing.T, url string) *transport.Endpoint {
	t.Helper()
	ep, err := transport.NewEndpoint(url)
	require.NoError(t, err)
	return ep
}

func staticProvider(auth transport.AuthMethod) CredentialProvider {
	return func(ep *transport.Endpoint) (transport.AuthMethod, bool, error) {
		return auth, true, nil
	}
}

func notApplicableProvider() CredentialProvider {
	return func(ep *transport.Endpoint) (transport.AuthMethod, bool, error) {
		return nil, false, nil
	}
}

func failingProvider(err error) CredentialProvider {
	return func(ep *transport.Endpoint) (transport.AuthMethod, bool, error) {
		return nil, true, err
	}
}

func TestResolveAuth(t *testing.T) {
	ep := newEndpoint(t, "https://github.com/anthropics/skills.git")
	auth := &githttp.BasicAuth{Username: "git", Password: "token"}

	t.Run("最初に成功したプロバイダの認証を使う", func(t *testing.T) {
		other := &githttp.BasicAuth{Username: "git", Password: "other"}

		got, err := resolveAuth([]CredentialProvider{
			notApplicableProvider(),
			staticProvider(auth),
			staticProvider(other),
		}, ep)

		require.NoError(t, err)
		assert.Same(t, auth, got)
	})

	t.Run("失敗したプロバイダは読み飛ばして次へフォールバックする", func(t *testing.T) {
		got, err := resolveAuth([]CredentialProvider{
			failingProvider(errors.New("agent unavailable")),
			staticProvider(auth),
		}, ep)

		require.NoError(t, err)
		assert.Same(t, auth, got)
	})

	t.Run("適用可能なプロバイダがなければ ErrNoCredentials", func(t *testing.T) {
		_, err := resolveAuth([]CredentialProvider{
			notApplicableProvider(),
			notApplicableProvider(),
		}, ep)

		assert.ErrorIs(t, err, ErrNoCredentials)
	})

	t.Run("全プロバイダが失敗した場合も ErrNoCredentials", func(t *testing.T) {
		_, err := resolveAuth([]CredentialProvider{
			failingProvider(errors.New("agent unavailable")),
		}, ep)

		assert.ErrorIs(t, err, ErrNoCredentials)
		assert.Contains(t, err.Error(), "agent unavailable")
	})
}

func TestSSHAgentProvider(t *testing.T) {
	t.Run("HTTPS エンドポイントには適用されない", func(t *testing.T) {
		_, applicable, err := SSHAgentProvider()(newEndpoint(t, "https://github.com/anthropics/skills.git"))
		require.NoError(t, err)
		assert.False(t, applicable)
	})

	t.Run("ユーザー名のない SSH エンドポイントには適用されない", func(t *testing.T) {
		_, applicable, err := SSHAgentProvider()(newEndpoint(t, "ssh://github.com/anthropics/skills.git"))
		require.NoError(t, err)
		assert.False(t, applicable)
	})
}

func TestSSHKeyFileProvider(t *testing.T) {
	t.Run("鍵ファイルが存在しない場合は適用されない", func(t *testing.T) {
		provider := SSHKeyFileProvider("/nonexistent/id_ed25519", "")

		_, applicable, err := provider(newEndpoint(t, "git@github.com:anthropics/skills.git"))
		require.NoError(t, err)
		assert.False(t, applicable)
	})

	t.Run("鍵パス未設定の場合は適用されない", func(t *testing.T) {
		provider := SSHKeyFileProvider("", "")

		_, applicable, err := provider(newEndpoint(t, "git@github.com:anthropics/skills.git"))
		require.NoError(t, err)
		assert.False(t, applicable)
	})
}

func TestTokenProvider(t *testing.T) {
	t.Run("HTTPS エンドポイントに basic 認証を返す", func(t *testing.T) {
		auth, applicable, err := TokenProvider("secret")(newEndpoint(t, "https://github.com/anthropics/skills.git"))

		require.NoError(t, err)
		require.True(t, applicable)
		basic, ok := auth.(*githttp.BasicAuth)
		require.True(t, ok)
		assert.Equal(t, "git", basic.Username)
		assert.Equal(t, "secret", basic.Password)
	})

	t.Run("SSH エンドポイントには適用されない", func(t *testing.T) {
		_, applicable, err := TokenProvider("secret")(newEndpoint(t, "git@github.com:anthropics/skills.git"))
		require.NoError(t, err)
		assert.False(t, applicable)
	})

	t.Run("トークン未設定の場合は適用されない", func(t *testing.T) {
		_, applicable, err := TokenProvider("")(newEndpoint(t, "https://github.com/anthropics/skills.git"))
		require.NoError(t, err)
		assert.False(t, applicable)
	})
}

func TestAnonymousProvider(t *testing.T) {
	auth, applicable, err := AnonymousProvider()(newEndpoint(t, "https://github.com/anthropics/skills.git"))

	require.NoError(t, err)
	assert.True(t, applicable)
	assert.Nil(t, auth)
}
