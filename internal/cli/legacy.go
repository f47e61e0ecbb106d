package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// legacyActions maps the action flags of the getopt interface onto command words.
var legacyActions = map[string]string{
	"-a": "add", "--add": "add",
	"-s": "link", "--link": "link",
	"-l": "list", "--list": "list",
	"-r": "remove", "--remove": "remove",
	"-p": "purge", "--purge": "purge",
}

// normalizeArgs rewrites the legacy action flag that follows any leading
// global flags into its command word:
//
//	-a example.com         -> add example.com
//	--remove=example.com   -> remove example.com
//	-pexample.com          -> purge example.com
//	-V -s example.com      -> -V link example.com
//
// Only the first non-global argument is considered, so "remove -p host"
// keeps -p as the remove command's purge flag.
func normalizeArgs(args []string) []string {
	i := skipGlobalFlags(args)
	if i >= len(args) {
		return args
	}
	head, first, rest := args[:i:i], args[i], args[i+1:]

	if cmd, ok := legacyActions[first]; ok {
		return join(head, []string{cmd}, rest)
	}

	if name, value, ok := strings.Cut(first, "="); ok && strings.HasPrefix(name, "--") {
		if cmd, ok := legacyActions[name]; ok {
			return join(head, []string{cmd, value}, rest)
		}
	}

	if len(first) > 2 && first[0] == '-' && first[1] != '-' {
		if cmd, ok := legacyActions[first[:2]]; ok && cmd != "list" {
			return join(head, []string{cmd, first[2:]}, rest)
		}
	}

	return args
}

// skipGlobalFlags returns the index of the first argument that is not a
// persistent root flag or the value of one.
func skipGlobalFlags(args []string) int {
	flags := rootCmd.PersistentFlags()
	i := 0
	for i < len(args) {
		arg := args[i]
		var flag *pflag.Flag
		name, _, hasValue := strings.Cut(arg, "=")
		switch {
		case strings.HasPrefix(arg, "--"):
			flag = flags.Lookup(name[2:])
		case len(arg) == 2 && arg[0] == '-':
			flag = flags.ShorthandLookup(arg[1:])
		}
		if flag == nil {
			return i
		}
		i++
		if !hasValue && flag.NoOptDefVal == "" {
			i++
		}
	}
	return len(args)
}

func join(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
