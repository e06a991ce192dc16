// Package flagx lets several components share one command line: each one
// picks out the flags it owns and leaves everything else to the others.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// ConfigFlags are the flags that select a JSON configuration file.
var ConfigFlags = []string{"-c", "-config"}

// Partition splits args into the ones that belong to allowedFlags (flag names
// together with their values) and the rest, keeping the original order in
// both slices.
//
// Two spellings are understood:
//
//	-c conf.json        flag and value as separate arguments
//	-config=conf.json   flag and value joined with '='
//
// A token that follows an allowed flag is treated as its value unless it
// starts with '-'.
func Partition(args []string, allowedFlags []string) (matched, rest []string) {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	matched = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				matched = append(matched, arg)
			} else {
				rest = append(rest, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			rest = append(rest, arg)
			continue
		}

		matched = append(matched, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			matched = append(matched, args[i+1])
			i++
		}
	}

	return matched, rest
}

// FilterArgs returns only the arguments that belong to allowedFlags.
func FilterArgs(args []string, allowedFlags []string) []string {
	matched, _ := Partition(args, allowedFlags)
	return matched
}

// ConfigPath extracts the JSON config file path given with -c or -config.
// When both appear, the last one wins. An empty path means no file was
// requested; a flag given without a value is an error.
func ConfigPath(args []string) (string, error) {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	if err := fs.Parse(FilterArgs(args, ConfigFlags)); err != nil {
		return "", err
	}

	return path, nil
}
