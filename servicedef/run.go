package servicedef

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Run is a named command that can be run inside the service container.
// Runs are persisted as an object mapping the name to the command line.
type Run struct {
	Name    string
	Command string
}

// DeserializeRuns converts the raw Runs collection of a record, ordered by name.
func DeserializeRuns(raw json.RawMessage) ([]Run, error) {
	items, names, err := decodeNamed[interface{}](raw)
	if err != nil || items == nil {
		return nil, err
	}

	runs := make([]Run, 0, len(names))
	for _, name := range names {
		command, ok := items[name].(string)
		if !ok {
			return nil, fmt.Errorf("run %q: expected a command string, got %T", name, items[name])
		}
		runs = append(runs, Run{Name: name, Command: command})
	}
	return runs, nil
}

// SerializeRuns is the inverse of DeserializeRuns.
func SerializeRuns(runs []Run) (json.RawMessage, error) {
	if runs == nil {
		return encodeValue(nil, true)
	}

	out := make(map[string]string, len(runs))
	for _, run := range runs {
		out[run.Name] = run.Command
	}
	return encodeValue(out, false)
}
