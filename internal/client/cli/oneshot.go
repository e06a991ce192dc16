package cli

import (
	"context"
	"errors"
	"fmt"
)

var ErrUsage = errors.New("usage")

const usageText = `Usage:
  sharecli [flags]                  interactive shell
  sharecli [flags] upload <path>    share a file
  sharecli [flags] paste            share text read from stdin
  sharecli [flags] view <id|url>    show a shared item
  sharecli [flags] download <id|url> save a shared file

Flags:
  -c, -config <file>  JSON configuration
  -a <origin>         server origin
  -t <seconds>        metadata request timeout
  -d <dir>            download directory
  -l <level>          log level`

// RunCommand executes one non-interactive command. args starts with the
// command name and has configuration flags already removed.
func (a *App) RunCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", ErrUsage)
	}

	cmd, rest := args[0], args[1:]
	arg := ""
	if len(rest) > 0 {
		arg = rest[0]
	}

	switch cmd {
	case "upload":
		if len(rest) != 1 {
			return fmt.Errorf("%w: upload <path>", ErrUsage)
		}
		if err := a.SelectMode(ctx, "file"); err != nil {
			return err
		}
		if err := a.StageFile(ctx, arg); err != nil {
			return err
		}
		return a.Submit(ctx)

	case "paste":
		text, err := ReadAll(a.reader)
		if err != nil {
			return err
		}
		if err := a.SelectMode(ctx, "text"); err != nil {
			return err
		}
		if err := a.stageText(text); err != nil {
			return err
		}
		return a.Submit(ctx)

	case "view":
		if len(rest) != 1 {
			return fmt.Errorf("%w: view <id|url>", ErrUsage)
		}
		return a.Open(ctx, arg)

	case "download":
		if len(rest) != 1 {
			return fmt.Errorf("%w: download <id|url>", ErrUsage)
		}
		if err := a.Open(ctx, arg); err != nil {
			return err
		}
		if err := a.Download(ctx); err != nil {
			return err
		}
		a.downloader.Wait()
		return shown(a.lastDownloadErr())

	case "help":
		a.printf("%s\n", usageText)
		return nil
	}

	return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
}

// Usage is the one-shot help text.
func Usage() string {
	return usageText
}
