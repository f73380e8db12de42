package skill

import (
	"fmt"
	"regexp"
	"strings"
)

// Code は診断コード。E で始まるものはエラー、W で始まるものは警告
type Code string

// 診断コード一覧
const (
	CodeInvalidNameFormat  Code = "E001" // 名前の形式が不正
	CodeNameTooLong        Code = "E002" // 名前が長すぎる
	CodeNameDirMismatch    Code = "E003" // 名前とディレクトリ名の不一致
	CodeMissingDescription Code = "E004" // description 欠落
	CodeDescriptionTooLong Code = "E005" // description が長すぎる
	CodeCompatTooLong      Code = "E006" // compatibility が長すぎる
	CodeBodyTooLong        Code = "W001" // 本文の行数超過
)

// IsError はこのコードがエラー（E###）かどうかを返す
func (c Code) IsError() bool {
	return strings.HasPrefix(string(c), "E")
}

// Diagnostic は検証で検出した問題ひとつを表す
type Diagnostic struct {
	// Path は対象ファイルのパス
	Path string
	// Line / Column は位置情報（0 は位置なし）
	Line   int
	Column int
	// Message は人間向けの説明
	Message string
	// Code は診断コード
	Code Code
	// FixHint は修正のヒント（任意）
	FixHint string
}

// Rule はマニフェストひとつを検査して診断を返すルール
type Rule func(m *Manifest) []Diagnostic

// RuleConfig は検証ルールの閾値設定
type RuleConfig struct {
	MaxNameLength          int
	MaxDescriptionLength   int
	MaxCompatibilityLength int
	MaxBodyLines           int
}

// DefaultRuleConfig はデフォルトの閾値設定
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		MaxNameLength:          64,
		MaxDescriptionLength:   1024,
		MaxCompatibilityLength: 500,
		MaxBodyLines:           500,
	}
}

// Validator は宣言的なルールリストでマニフェストを検証する
type Validator struct {
	rules []Rule
}

// NewValidator は設定からルールリストを組み立てて Validator を作成する
func NewValidator(cfg RuleConfig) *Validator {
	return &Validator{
		rules: []Rule{
			nameFormatRule(),
			nameLengthRule(cfg.MaxNameLength),
			nameDirectoryRule(),
			descriptionRequiredRule(),
			descriptionLengthRule(cfg.MaxDescriptionLength),
			compatibilityLengthRule(cfg.MaxCompatibilityLength),
			bodyLengthRule(cfg.MaxBodyLines),
		},
	}
}

// Check は全ルールを実行して診断の一覧を返す
func (v *Validator) Check(m *Manifest) []Diagnostic {
	var diagnostics []Diagnostic
	for _, rule := range v.rules {
		diagnostics = append(diagnostics, rule(m)...)
	}
	return diagnostics
}

// HasErrors は診断にエラーが含まれるかどうかを返す
func HasErrors(diagnostics []Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Code.IsError() {
			return true
		}
	}
	return false
}

// スキル名: 小文字英数字をハイフン単独で区切った形式
var nameFormatPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func nameFormatRule() Rule {
	return func(m *Manifest) []Diagnostic {
		name := m.Frontmatter.Name
		if name == "" || nameFormatPattern.MatchString(name) {
			return nil
		}
		return []Diagnostic{{
			Path:    m.Path,
			Message: fmt.Sprintf("Invalid skill name %q: must be lowercase alphanumeric with single hyphens", name),
			Code:    CodeInvalidNameFormat,
			FixHint: "use a name like 'pdf-processing'",
		}}
	}
}

func nameLengthRule(max int) Rule {
	return func(m *Manifest) []Diagnostic {
		name := m.Frontmatter.Name
		if len(name) <= max {
			return nil
		}
		return []Diagnostic{{
			Path:    m.Path,
			Message: fmt.Sprintf("Skill name too long (%d chars, max %d)", len(name), max),
			Code:    CodeNameTooLong,
		}}
	}
}

func nameDirectoryRule() Rule {
	return func(m *Manifest) []Diagnostic {
		name := m.Frontmatter.Name
		if name == "" || name == m.DirName() {
			return nil
		}
		return []Diagnostic{{
			Path:    m.Path,
			Message: fmt.Sprintf("Skill name %q does not match directory name %q", name, m.DirName()),
			Code:    CodeNameDirMismatch,
			FixHint: fmt.Sprintf("rename the directory to %q or update the name field", name),
		}}
	}
}

func descriptionRequiredRule() Rule {
	return func(m *Manifest) []Diagnostic {
		if strings.TrimSpace(m.Frontmatter.Description) != "" {
			return nil
		}
		return []Diagnostic{{
			Path:    m.Path,
			Message: "Missing description",
			Code:    CodeMissingDescription,
			FixHint: "add a description field to the frontmatter",
		}}
	}
}

func descriptionLengthRule(max int) Rule {
	return func(m *Manifest) []Diagnostic {
		desc := m.Frontmatter.Description
		if len(desc) <= max {
			return nil
		}
		return []Diagnostic{{
			Path:    m.Path,
			Message: fmt.Sprintf("Description too long (%d chars, max %d)", len(desc), max),
			Code:    CodeDescriptionTooLong,
		}}
	}
}

func compatibilityLengthRule(max int) Rule {
	return func(m *Manifest) []Diagnostic {
		compat := m.Frontmatter.Compatibility
		if len(compat) <= max {
			return nil
		}
		return []Diagnostic{{
			Path:    m.Path,
			Message: fmt.Sprintf("Compatibility too long (%d chars, max %d)", len(compat), max),
			Code:    CodeCompatTooLong,
		}}
	}
}

func bodyLengthRule(max int) Rule {
	return func(m *Manifest) []Diagnostic {
		lines := m.BodyLines()
		if lines <= max {
			return nil
		}
		return []Diagnostic{{
			Path:    m.Path,
			Message: fmt.Sprintf("Body exceeds %d lines (%d lines)", max, lines),
			Code:    CodeBodyTooLong,
			FixHint: "move detailed material into reference files",
		}}
	}
}
