package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-skillmd/cmd/skillmd/internal/bootstrap"
	"github.com/goliatone/go-skillmd/internal/commands"
	skillcmd "github.com/goliatone/go-skillmd/internal/commands/skill"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runNormalize(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("skill normalize: %v", err)
	}
}

func runNormalize(args []string, sink io.Writer) error {
	fs := flag.NewFlagSet("skill-normalize", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the dialect content root")
	file := fs.String("file", "", "Document to normalize, relative to the content root")
	refData := fs.String("ref-data", "", "Companion file holding substitution and reference tables")
	exclude := fs.String("exclude", "", "Comma separated section titles to drop from the output")
	commandTimeout := fs.Duration("command-timeout", 0, "Deadline for the normalize command (0 keeps the default)")
	logLevel := fs.String("log-level", "warn", "Minimum log level for diagnostics")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*file) == "" {
		return fmt.Errorf("-file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:     *contentDir,
		RefData:        *refData,
		CommandTimeout: *commandTimeout,
		LogLevel:       *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Service == nil {
		return fmt.Errorf("skill service not configured")
	}

	ctx := context.Background()

	var handlerOpts []commands.HandlerOption[skillcmd.NormalizeFileCommand]
	if timeout := module.Service.Config().Commands.Timeout; timeout > 0 {
		handlerOpts = append(handlerOpts, commands.WithTimeout[skillcmd.NormalizeFileCommand](timeout))
	}
	handler := skillcmd.NewNormalizeFileHandler(
		module.Service.Loader(),
		module.Service.Normalizer(),
		module.Service.References(),
		sink,
		module.Logger,
		handlerOpts...,
	)
	cmd := skillcmd.NormalizeFileCommand{
		Path:            *file,
		ReferenceData:   *refData,
		ExcludeSections: bootstrap.SplitList(*exclude),
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute normalize command: %w", err)
	}

	return nil
}
