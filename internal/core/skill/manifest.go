package skill

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName はスキルマニフェストのファイル名
const ManifestFileName = "SKILL.md"

var (
	// ErrManifestNotFound は SKILL.md が存在しない場合に返されます
	ErrManifestNotFound = errors.New("SKILL.md not found")

	// ErrInvalidFrontmatter は YAML frontmatter が不正な場合に返されます
	ErrInvalidFrontmatter = errors.New("invalid YAML frontmatter")
)

// Frontmatter は SKILL.md 先頭の YAML frontmatter
type Frontmatter struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	License       string `yaml:"license"`
	Compatibility string `yaml:"compatibility"`
}

// Manifest はパース済みのスキルマニフェストを表す
type Manifest struct {
	// Dir はスキルディレクトリ
	Dir string
	// Path は SKILL.md へのパス
	Path string
	// Frontmatter は frontmatter の内容
	Frontmatter Frontmatter
	// Body は frontmatter を除いた本文
	Body string
}

// BodyLines は本文の行数を返す
func (m *Manifest) BodyLines() int {
	body := strings.TrimRight(m.Body, "\n")
	if body == "" {
		return 0
	}
	return strings.Count(body, "\n") + 1
}

// DirName はスキルディレクトリ名を返す
func (m *Manifest) DirName() string {
	return filepath.Base(m.Dir)
}

// ParseManifest はスキルディレクトリの SKILL.md を読み込んでパースする
func ParseManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	fm, body, err := splitFrontmatter(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidFrontmatter, path, err)
	}

	var frontmatter Frontmatter
	if err := yaml.Unmarshal([]byte(fm), &frontmatter); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidFrontmatter, path, err)
	}

	return &Manifest{
		Dir:         dir,
		Path:        path,
		Frontmatter: frontmatter,
		Body:        body,
	}, nil
}

// splitFrontmatter は "---" で囲まれた frontmatter と本文を分離する
func splitFrontmatter(content string) (frontmatter, body string, err error) {
	const fence = "---"

	rest, found := strings.CutPrefix(content, fence+"\n")
	if !found {
		return "", "", errors.New("missing frontmatter opening fence")
	}

	idx := strings.Index(rest, "\n"+fence)
	if idx < 0 {
		return "", "", errors.New("missing frontmatter closing fence")
	}

	frontmatter = rest[:idx]
	body = rest[idx+len("\n"+fence):]
	body = strings.TrimPrefix(body, "\n")

	return frontmatter, body, nil
}
