package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	SelectMode(ctx context.Context, mode string) error
	StageFile(ctx context.Context, path string) error
	StageText(ctx context.Context, inline string) error
	Submit(ctx context.Context) error
	ShowStatus(ctx context.Context) error
	CopyLink(ctx context.Context) error
	Reset(ctx context.Context) error
	Open(ctx context.Context, target string) error
	CopyText(ctx context.Context) error
	Download(ctx context.Context) error
}

const helpText = `Available commands:
  mode file|text      choose what to share
  file <path>         stage a file
  text [snippet]      stage text; without a snippet, type lines and end with "."
  submit              upload the staged content
  status              show the current screen
  copylink            copy the link of the last upload
  reset               start a new upload
  open <route|url|id> go to "/" or a "/view/<id>" link
  view <id|url>       open a shared link
  copy                copy the shared text
  download            save the shared file
  exit | quit         leave the program`

// runREPL starts a simple read–eval–print loop for sharecli.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is cancelled, or when the user types
// "exit" or "quit".
//
// Handlers print their own outcome. Errors returned by them are only shown
// here when the handler has not already done so.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("share %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "mode":
			cmdErr = a.SelectMode(ctx, arg)

		case "file":
			cmdErr = a.StageFile(ctx, arg)

		case "text":
			cmdErr = a.StageText(ctx, arg)

		case "submit":
			cmdErr = a.Submit(ctx)

		case "status":
			cmdErr = a.ShowStatus(ctx)

		case "copylink":
			cmdErr = a.CopyLink(ctx)

		case "reset":
			cmdErr = a.Reset(ctx)

		case "open":
			cmdErr = a.Open(ctx, arg)

		case "view":
			if arg == "" {
				printlnFn("Usage: view <id|url>")
				continue
			}
			cmdErr = a.Open(ctx, arg)

		case "copy":
			cmdErr = a.CopyText(ctx)

		case "download":
			cmdErr = a.Download(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil && !Shown(cmdErr) {
			printlnFn(errorStyle.Render(cmdErr.Error()))
		}
	}
}

// shownError marks an error whose message has already reached the user.
type shownError struct {
	err error
}

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return &shownError{err: err}
}

// Shown reports whether err has already been presented to the user.
func Shown(err error) bool {
	var se *shownError
	return errors.As(err, &se)
}
