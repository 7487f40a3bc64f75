package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Command is a task name from the fixed command set.
type Command string

const (
	CommandCSS     Command = "css"
	CommandLess    Command = "less"
	CommandSass    Command = "sass"
	CommandJS      Command = "js"
	CommandBabel   Command = "babel"
	CommandCopy    Command = "copy"
	CommandWatch   Command = "watch"
	CommandProd    Command = "prod"
	CommandDefault Command = "default"
)

// TaskKind groups commands that run the same procedure.
type TaskKind string

const (
	TaskStyle   TaskKind = "css"
	TaskScript  TaskKind = "js"
	TaskCopy    TaskKind = "copy"
	TaskWatch   TaskKind = "watch"
	TaskProd    TaskKind = "prod"
	TaskDefault TaskKind = "default"
)

// CommandInfo describes one entry of the command set.
type CommandInfo struct {
	Name        Command
	Kind        TaskKind
	Description string
}

var commands = []CommandInfo{
	{CommandDefault, TaskDefault, "Build styles, scripts and static files, then watch for changes"},
	{CommandCSS, TaskStyle, "Compile stylesheets with the configured preprocessor"},
	{CommandLess, TaskStyle, "Alias of css"},
	{CommandSass, TaskStyle, "Alias of css"},
	{CommandJS, TaskScript, "Bundle and transpile script entries"},
	{CommandBabel, TaskScript, "Alias of js"},
	{CommandCopy, TaskCopy, "Copy static file directories"},
	{CommandWatch, TaskWatch, "Watch sources and rebuild on change"},
	{CommandProd, TaskProd, "Build everything once in production mode"},
}

// Commands returns the full command set in presentation order.
func Commands() []CommandInfo {
	out := make([]CommandInfo, len(commands))
	copy(out, commands)
	return out
}

// ParseCommand resolves a task name. Unknown names fail with ErrUnknownTask.
func ParseCommand(name string) (Command, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CommandDefault, nil
	}
	for _, c := range commands {
		if string(c.Name) == name {
			return c.Name, nil
		}
	}
	return "", zerr.With(ErrUnknownTask, "task", name)
}

// Kind returns the procedure c runs.
func (c Command) Kind() TaskKind {
	for _, info := range commands {
		if info.Name == c {
			return info.Kind
		}
	}
	return ""
}
