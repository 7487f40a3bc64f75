package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// messager describes an error that can report its own message without the chain,
// as zerr.Error does.
type messager interface {
	Message() string
}

// metadataer describes an error carrying structured key/value context.
type metadataer interface {
	Metadata() map[string]any
}

// annotator describes an error that can render a richer, multi-line message.
type annotator interface {
	Annotated() string
}

// errorEntry is one level of an error chain.
type errorEntry struct {
	message  string
	metadata map[string]any
}

// collectErrorEntries flattens err into one entry per chain level.
// Wrappers without a message (zerr.With on a plain error) fold their metadata
// into the next level. Joined errors contribute each branch in order.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	var pending map[string]any

	for err != nil {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				entries = append(entries, collectErrorEntries(e)...)
			}
			break
		}

		m, ok := err.(messager)
		if !ok {
			msg := err.Error()
			if a, ok := err.(annotator); ok {
				msg = a.Annotated()
			}
			entries = append(entries, errorEntry{message: msg, metadata: pending})
			break
		}

		var meta map[string]any
		if md, ok := err.(metadataer); ok {
			meta = md.Metadata()
		}
		if pending != nil {
			if meta == nil {
				meta = map[string]any{}
			}
			maps.Copy(meta, pending)
			pending = nil
		}

		if m.Message() == "" {
			pending = meta
		} else {
			entries = append(entries, errorEntry{message: m.Message(), metadata: meta})
		}
		err = errors.Unwrap(err)
	}

	return entries
}

// formatErrorEntries renders entries as:
//
//	Error: outer
//	       key: value
//
//	  Caused by:
//	    → inner
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.message, "\n")

		head, indent := "    → ", "      "
		if i == 0 {
			head, indent = "Error: ", "       "
		} else if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
