package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/jinford/skilo/internal/core/skill"
)

// LintAction はスキルディレクトリを検証するコマンドのアクション
func LintAction(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.Args().First()
	if dir == "" {
		dir = "."
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	slog.Info("スキル検証を開始", "dir", dir)

	manifest, err := skill.ParseManifest(dir)
	if err != nil {
		return err
	}

	validator := skill.NewValidator(skill.RuleConfig{
		MaxNameLength:          cfg.Lint.MaxNameLength,
		MaxDescriptionLength:   cfg.Lint.MaxDescriptionLength,
		MaxCompatibilityLength: cfg.Lint.MaxCompatibilityLength,
		MaxBodyLines:           cfg.Lint.MaxBodyLines,
	})

	diagnostics := validator.Check(manifest)
	if len(diagnostics) == 0 {
		fmt.Printf("OK: %s\n", manifest.Path)
		return nil
	}

	errorCount := 0
	for _, d := range diagnostics {
		severity := "warning"
		if d.Code.IsError() {
			severity = "error"
			errorCount++
		}
		fmt.Printf("%s: %s [%s] %s\n", d.Path, severity, d.Code, d.Message)
		if d.FixHint != "" {
			fmt.Printf("  hint: %s\n", d.FixHint)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("validation failed with %d error(s)", errorCount)
	}
	return nil
}
