package invoke

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vk/bake/internal/task"
)

// tokenPattern splits a token into its name and an optional bracketed
// argument list. Brackets are not permitted inside the name, so a token
// with unbalanced brackets fails to match.
var tokenPattern = regexp.MustCompile(`^([^\[\]]+)(\[(.*)\])?$`)

// Parse turns one raw command-line token into an Invocation.
func Parse(raw string) (*Invocation, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty task token", task.ErrInvocation)
	}

	matches := tokenPattern.FindStringSubmatch(raw)
	if matches == nil {
		return nil, fmt.Errorf("%w: malformed task token %q", task.ErrInvocation, raw)
	}

	inv := &Invocation{
		Raw:  raw,
		Task: strings.TrimSpace(matches[1]),
	}

	if matches[2] == "" {
		// No bracketed argument list at all.
		return inv, nil
	}

	args, err := parseArgs(matches[3], raw)
	if err != nil {
		return nil, err
	}
	inv.Args = args
	return inv, nil
}

// parseArgs parses the comma-separated contents of the bracket list. An
// item with `=` is a keyword argument; any other item is the next
// positional argument. Positional items may not follow keyword items.
func parseArgs(list string, raw string) (task.Args, error) {
	var args task.Args

	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			return task.Args{}, fmt.Errorf("%w: empty argument item in %q", task.ErrInvocation, raw)
		}

		key, value, isKeyword := strings.Cut(item, "=")
		if !isKeyword {
			if len(args.Keyword) > 0 {
				return task.Args{}, fmt.Errorf("%w: positional argument %q cannot follow a keyword argument in %q",
					task.ErrInvocation, item, raw)
			}
			args.Positional = append(args.Positional, item)
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			return task.Args{}, fmt.Errorf("%w: keyword argument with empty name in %q", task.ErrInvocation, raw)
		}
		if args.Keyword == nil {
			args.Keyword = make(map[string]string)
		}
		if _, dup := args.Keyword[key]; dup {
			return task.Args{}, fmt.Errorf("%w: duplicate keyword argument %q in %q", task.ErrInvocation, key, raw)
		}
		args.Keyword[key] = value
	}

	return args, nil
}
