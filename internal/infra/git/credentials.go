package git

import (
	"fmt"
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// CredentialProvider は接続先エンドポイントに対して認証手段を提供する
// 戦略ひとつを表す
//
// 戻り値は三値: applicable=false はこのプロバイダの対象外、
// applicable=true かつ err != nil は適用対象だが認証材料の用意に失敗、
// applicable=true かつ err == nil は成功（auth は匿名アクセスを意味する
// nil でもよい）
type CredentialProvider func(ep *transport.Endpoint) (auth transport.AuthMethod, applicable bool, err error)

// SSHAgentProvider は SSH エージェントから鍵を取得するプロバイダを返す
// SSH エンドポイントかつ URL からユーザー名が分かる場合のみ適用される
func SSHAgentProvider() CredentialProvider {
	return func(ep *transport.Endpoint) (transport.AuthMethod, bool, error) {
		if ep.Protocol != "ssh" || ep.User == "" {
			return nil, false, nil
		}
		auth, err := gitssh.NewSSHAgentAuth(ep.User)
		if err != nil {
			return nil, true, fmt.Errorf("failed to connect SSH agent: %w", err)
		}
		return auth, true, nil
	}
}

// SSHKeyFileProvider は秘密鍵ファイルを使うプロバイダを返す
// SSH エンドポイントかつ鍵ファイルが存在する場合のみ適用される
func SSHKeyFileProvider(keyPath, password string) CredentialProvider {
	return func(ep *transport.Endpoint) (transport.AuthMethod, bool, error) {
		if ep.Protocol != "ssh" || keyPath == "" {
			return nil, false, nil
		}
		if _, err := os.Stat(keyPath); err != nil {
			return nil, false, nil
		}

		user := ep.User
		if user == "" {
			user = "git"
		}

		auth, err := gitssh.NewPublicKeysFromFile(user, keyPath, password)
		if err != nil {
			return nil, true, fmt.Errorf("failed to load SSH key: %w", err)
		}
		return auth, true, nil
	}
}

// TokenProvider は設定済みトークンで HTTP basic 認証を行うプロバイダを返す
// OS の credential helper に相当する位置づけで、HTTP(S) エンドポイント
// かつトークンが設定されている場合のみ適用される
func TokenProvider(token string) CredentialProvider {
	return func(ep *transport.Endpoint) (transport.AuthMethod, bool, error) {
		if token == "" {
			return nil, false, nil
		}
		if ep.Protocol != "http" && ep.Protocol != "https" {
			return nil, false, nil
		}

		user := ep.User
		if user == "" {
			user = "git"
		}

		return &githttp.BasicAuth{Username: user, Password: token}, true, nil
	}
}

// AnonymousProvider は匿名アクセス（認証なし）のプロバイダを返す
// 公開リポジトリ向けのフォールバックとして常に適用される
func AnonymousProvider() CredentialProvider {
	return func(ep *transport.Endpoint) (transport.AuthMethod, bool, error) {
		return nil, true, nil
	}
}

// resolveAuth はプロバイダを順に試し、最初に成功したものの認証手段を返す
//
// 適用対象のプロバイダが材料の用意に失敗した場合は次のプロバイダへ
// フォールバックする。適用可能なプロバイダがひとつもなければ
// ErrNoCredentials を返す
func resolveAuth(providers []CredentialProvider, ep *transport.Endpoint) (transport.AuthMethod, error) {
	var lastErr error

	for _, provider := range providers {
		auth, applicable, err := provider(ep)
		if !applicable {
			continue
		}
		if err != nil {
			lastErr = err
			continue
		}
		return auth, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCredentials, lastErr)
	}
	return nil, ErrNoCredentials
}
