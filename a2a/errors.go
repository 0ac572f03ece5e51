package a2a

import "errors"

// ErrTaskNotFound is returned by a TaskManager when asked for a task
// id it has no snapshot for.
var ErrTaskNotFound = errors.New("a2a: task not found")
