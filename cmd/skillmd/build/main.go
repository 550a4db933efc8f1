package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-skillmd/cmd/skillmd/internal/bootstrap"
	"github.com/goliatone/go-skillmd/internal/commands"
	skillcmd "github.com/goliatone/go-skillmd/internal/commands/skill"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("skill build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("skill-build", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the dialect content root")
	outputDir := fs.String("output-dir", ".", "Directory assembled skills are written to")
	manifestPath := fs.String("manifest", "", "Skill manifest path, relative to the content root")
	output := fs.String("output", "", "Output file override, relative to the output directory")
	refData := fs.String("ref-data", "", "Companion file holding substitution and reference tables")
	docsHost := fs.String("docs-host", "", "Documentation host whose links are checked (empty disables checking)")
	pathPrefixes := fs.String("path-prefixes", "", "Comma separated path prefixes restricting which links are checked")
	probeTimeout := fs.Duration("probe-timeout", 3*time.Second, "Timeout applied to each link probe")
	cacheDSN := fs.String("cache-dsn", "", "SQLite DSN for the persistent probe cache")
	tokenCeiling := fs.Int("token-ceiling", 0, "Advisory token budget for the assembled skill (0 disables)")
	commandTimeout := fs.Duration("command-timeout", 0, "Deadline for the build command (0 keeps the default)")
	dryRun := fs.Bool("dry-run", false, "Assemble the skill without writing the output file")
	logLevel := fs.String("log-level", "info", "Minimum log level for diagnostics")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*manifestPath) == "" {
		return fmt.Errorf("-manifest is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:     *contentDir,
		OutputDir:      *outputDir,
		RefData:        *refData,
		DocsHost:       *docsHost,
		PathPrefixes:   bootstrap.SplitList(*pathPrefixes),
		ProbeTimeout:   *probeTimeout,
		CacheDSN:       *cacheDSN,
		TokenCeiling:   *tokenCeiling,
		CommandTimeout: *commandTimeout,
		LogLevel:       *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Service == nil {
		return fmt.Errorf("skill service not configured")
	}
	defer module.Service.Close()

	ctx := context.Background()

	var handlerOpts []commands.HandlerOption[skillcmd.BuildSkillCommand]
	if timeout := module.Service.Config().Commands.Timeout; timeout > 0 {
		handlerOpts = append(handlerOpts, commands.WithTimeout[skillcmd.BuildSkillCommand](timeout))
	}
	handler := skillcmd.NewBuildSkillHandler(
		module.Service.Content(),
		module.Service.Builder(),
		module.Service.Writer(),
		module.Logger,
		handlerOpts...,
	)
	cmd := skillcmd.BuildSkillCommand{
		Manifest: *manifestPath,
		Output:   *output,
		DryRun:   *dryRun,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "skill build command executed successfully")

	return nil
}
