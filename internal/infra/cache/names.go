package cache

import (
	"fmt"
	"strings"

	giturls "github.com/whilp/git-urls"
)

// MirrorName は db/ 配下のディレクトリ名を生成する
//
// 形式: {owner}-{repo}
func MirrorName(owner, repo string) string {
	return fmt.Sprintf("%s-%s", owner, repo)
}

// CheckoutName は checkouts/ 配下のディレクトリ名を生成する
//
// 形式: {owner}-{repo}-{short_rev}
// short_rev はリビジョン先頭7文字（7文字未満ならそのまま）
func CheckoutName(owner, repo, rev string) string {
	shortRev := rev
	if len(rev) > 7 {
		shortRev = rev[:7]
	}
	return fmt.Sprintf("%s-%s-%s", owner, repo, shortRev)
}

// ParseOwnerRepo は git URL から owner と repo を抽出する
//
// 対応形式:
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
//
// 抽出できない形状は ok=false を返す（呼び出し側で扱う回復可能な結果で
// あり、エラーではない）
func ParseOwnerRepo(rawURL string) (owner, repo string, ok bool) {
	trimmed := strings.TrimSuffix(rawURL, ".git")

	u, err := giturls.Parse(trimmed)
	if err != nil {
		return "", "", false
	}

	// スキームも scp 形式も持たないローカルパス（例: host/owner/repo）は
	// owner/repo を持たない
	if u.Scheme == "file" {
		return "", "", false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	return parts[0], parts[1], true
}
