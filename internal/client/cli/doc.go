// Package cli is the sharecli shell: an interactive REPL and a handful of
// one-shot commands on top of the upload and link workflows.
//
// The shell has two screens, mirroring the routes of the web client. "/" is
// the submission screen (mode, file, text, submit, copylink, reset) and
// "/view/<id>" shows one shared item (copy, download). open and view move
// between them; a full view URL pasted from a browser works too.
//
// Output is plain text styled with lipgloss. Upload progress is drawn as a
// bubbles progress bar that is redrawn in place while the body is sent.
package cli
