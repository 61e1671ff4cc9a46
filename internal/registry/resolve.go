package registry

import (
	"fmt"
	"strings"

	"github.com/vk/bake/internal/task"
)

// Resolve maps a user-typed token to exactly one registered task. An exact
// name match wins outright; otherwise the token is treated as a prefix over
// the sorted name index. Private tasks participate in prefix matching even
// though they are hidden from listings.
func (r *Registry) Resolve(token string) (*task.Task, error) {
	if t, ok := r.tasks[token]; ok {
		return t, nil
	}

	var matches []string
	for _, name := range r.names {
		if strings.HasPrefix(name, token) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: unknown task %q, task should be one of: %s",
			task.ErrInvocation, token, strings.Join(r.names, ", "))
	case 1:
		return r.tasks[matches[0]], nil
	default:
		return nil, fmt.Errorf("%w: ambiguous task name %q, matches: %s",
			task.ErrInvocation, token, strings.Join(matches, ", "))
	}
}
