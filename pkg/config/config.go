package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持します
//
// 環境変数はプロセス起動時に一度だけ読み込まれ、以降は解決済みの値を
// 各コンポーネントのコンストラクタへ渡します。コンポーネント側が
// 環境変数を直接参照することはありません。
type Config struct {
	// Home は skilo ホームディレクトリ（~/.skilo）
	Home string

	// GitCacheDir は git キャッシュディレクトリ
	// 解決できない場合は空文字列（キャッシュ操作側で設定エラーとして扱う）
	GitCacheDir string

	// Offline はオフラインモードフラグ
	Offline bool

	// Git は git 認証設定
	Git GitConfig

	// Clean はキャッシュ掃除設定
	Clean CleanConfig

	// Lint は SKILL.md 検証設定
	Lint LintConfig
}

// GitConfig は git リモートアクセスの認証設定
type GitConfig struct {
	SSHKeyPath  string
	SSHPassword string // SSH秘密鍵のパスフレーズ
	Token       string // HTTPS 用トークン（credential helper 相当）
}

// CleanConfig はキャッシュ掃除設定
type CleanConfig struct {
	MaxAgeDays int // この日数より古い checkout を削除対象とする
}

// LintConfig は SKILL.md 検証ルールの閾値設定
type LintConfig struct {
	MaxNameLength          int
	MaxDescriptionLength   int
	MaxCompatibilityLength int
	MaxBodyLines           int
}

// Load は環境変数または.envファイルから設定を読み込みます
func Load(envFilePath string) (*Config, error) {
	// .envファイルが存在する場合は読み込む（環境変数のみでも動作可能）
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	home := skiloHome()

	cfg := &Config{
		Home:        home,
		GitCacheDir: gitCacheDir(home),
		Offline:     isOffline(),
		Git: GitConfig{
			SSHKeyPath:  getEnv("SKILO_GIT_SSH_KEY_PATH", ""),
			SSHPassword: getEnv("SKILO_GIT_SSH_PASSWORD", ""),
			Token:       getEnv("SKILO_GIT_TOKEN", ""),
		},
		Clean: CleanConfig{
			MaxAgeDays: getEnvAsInt("SKILO_CLEAN_MAX_AGE_DAYS", 30),
		},
		Lint: LintConfig{
			MaxNameLength:          getEnvAsInt("SKILO_LINT_MAX_NAME_LENGTH", 64),
			MaxDescriptionLength:   getEnvAsInt("SKILO_LINT_MAX_DESCRIPTION_LENGTH", 1024),
			MaxCompatibilityLength: getEnvAsInt("SKILO_LINT_MAX_COMPATIBILITY_LENGTH", 500),
			MaxBodyLines:           getEnvAsInt("SKILO_LINT_MAX_BODY_LINES", 500),
		},
	}

	return cfg, nil
}

// skiloHome は skilo ホームディレクトリを解決します
//
// 解決順序:
//  1. SKILO_HOME 環境変数
//  2. ~/.skilo
//
// ホームディレクトリが決定できない場合は空文字列を返します
func skiloHome() string {
	if v := os.Getenv("SKILO_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skilo")
}

// gitCacheDir は git キャッシュディレクトリを解決します
//
// 解決順序:
//  1. SKILO_CACHE 環境変数
//  2. <skilo home>/git
func gitCacheDir(home string) string {
	if v := os.Getenv("SKILO_CACHE"); v != "" {
		return v
	}
	if home == "" {
		return ""
	}
	return filepath.Join(home, "git")
}

// isOffline は SKILO_OFFLINE によるオフラインモード指定を判定します
// 値が "1" または大文字小文字を無視した "true" のときに有効
func isOffline() bool {
	v := os.Getenv("SKILO_OFFLINE")
	return v == "1" || strings.EqualFold(v, "true")
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt は環境変数を整数として取得します
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
