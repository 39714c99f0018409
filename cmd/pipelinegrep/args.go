package main

import (
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	pipelinegrep "github.com/alnah/go-pipelinegrep"
)

// Sentinel errors for argument parsing. All of them are usage errors.
var (
	ErrUsage         = errors.New("invalid arguments")
	ErrUnknownFlag   = errors.New("unrecognized option flag")
	ErrMissingFormat = errors.New("-f needs a format argument")
)

// expandArgs rewrites single-dash letter bundles into long flags so pflag
// can parse them: "-np" becomes "--line-number --pipeline" and "-nf csv"
// becomes "--line-number --format=csv". Each f takes the next whole
// argument, whatever it looks like. Long flags, patterns and everything
// after "--" pass through unchanged.
func expandArgs(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(out, args[i:]...), nil

		case strings.HasPrefix(arg, "--"):
			out = append(out, arg)
			if valueFlags[arg[2:]] && i+1 < len(args) {
				i++
				out = append(out, args[i])
			}

		case strings.HasPrefix(arg, "-"):
			for _, letter := range arg[1:] {
				long, ok := shortFlags[letter]
				if !ok {
					return nil, fmt.Errorf("%w: %c", ErrUnknownFlag, letter)
				}
				if long != flagFormat {
					out = append(out, "--"+long)
					continue
				}
				if i+1 >= len(args) {
					return nil, ErrMissingFormat
				}
				i++
				out = append(out, "--"+flagFormat+"="+args[i])
			}

		default:
			out = append(out, arg)
		}
	}
	return out, nil
}

// parseArgs parses the full argument list, program name first.
// The returned options are usable for error reporting even on failure.
func parseArgs(args []string) (*cliOptions, error) {
	opts := &cliOptions{program: "pipelinegrep", set: map[string]bool{}}
	if len(args) > 0 {
		opts.program = args[0]
		args = args[1:]
	}

	expanded, err := expandArgs(args)
	if err != nil {
		return opts, err
	}

	fs := newFlagSet(opts)
	if err := fs.Parse(expanded); err != nil {
		return opts, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	opts.patterns = fs.Args()

	return opts, nil
}

// isUsageError reports whether err should be followed by the usage text.
func isUsageError(err error) bool {
	return errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownFlag) ||
		errors.Is(err, ErrMissingFormat) ||
		errors.Is(err, pipelinegrep.ErrNoPatterns)
}
