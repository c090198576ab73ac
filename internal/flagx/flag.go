// Package flagx lets several independent flag sets share one argv. Each
// consumer filters the arguments down to the flags it owns before parsing,
// so unknown flags from other layers never cause a parse error.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the flags named in allowedFlags together with their
// values. Both "-f value" and "-f=value" forms are recognised; a value that
// starts with '-' is treated as the next flag.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// stringFlag extracts one string option known by a short and a long name.
func stringFlag(args []string, short, long, usage string) string {
	var v string

	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&v, long, "", usage)
	fs.StringVar(&v, short, "", usage+" (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-" + short, "-" + long, "--" + short, "--" + long}))

	return v
}

// ConfigPath returns the JSON config file given with -c or -config, or "".
func ConfigPath(args []string) string {
	return stringFlag(args, "c", "config", "path to JSON config file")
}

// EnvPath returns the dotenv file given with -e or -env, or "".
func EnvPath(args []string) string {
	return stringFlag(args, "e", "env", "path to .env file")
}
