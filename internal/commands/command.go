package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeToggle  Type = "toggle"
	TypeNote    Type = "note"
	TypeValue   Type = "value"
	TypeReload  Type = "reload"
	TypeNotify  Type = "notify"
	TypeRoadmap Type = "roadmap"
	TypeHelp    Type = "help"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type ToggleArgs struct {
	Task string
}

type NoteArgs struct {
	Task string
	Text string
}

type ValueArgs struct {
	Task string
	Text string
}

type NotifyMode string

const (
	NotifyModeOn     NotifyMode = "on"
	NotifyModeOff    NotifyMode = "off"
	NotifyModeStatus NotifyMode = "status"
)

type NotifyArgs struct {
	Mode NotifyMode
}

type Command struct {
	Type   Type
	Raw    string
	Toggle *ToggleArgs
	Note   *NoteArgs
	Value  *ValueArgs
	Notify *NotifyArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeToggle:
		if len(args) != 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "usage: toggle <task>"}
		}
		return Command{Type: TypeToggle, Raw: raw, Toggle: &ToggleArgs{Task: strings.ToLower(args[0])}}, nil
	case TypeNote:
		if len(args) < 2 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "usage: note <task> <text>"}
		}
		return Command{Type: TypeNote, Raw: raw, Note: &NoteArgs{
			Task: strings.ToLower(args[0]),
			Text: strings.Join(args[1:], " "),
		}}, nil
	case TypeValue:
		if len(args) < 2 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "usage: value <task> <text>"}
		}
		return Command{Type: TypeValue, Raw: raw, Value: &ValueArgs{
			Task: strings.ToLower(args[0]),
			Text: strings.Join(args[1:], " "),
		}}, nil
	case TypeReload:
		if len(args) != 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "usage: reload"}
		}
		return Command{Type: TypeReload, Raw: raw}, nil
	case TypeNotify:
		mode := NotifyModeStatus
		if len(args) > 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "usage: notify [on|off]"}
		}
		if len(args) == 1 {
			switch strings.ToLower(args[0]) {
			case "on":
				mode = NotifyModeOn
			case "off":
				mode = NotifyModeOff
			default:
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown notify mode: %s", args[0])}
			}
		}
		return Command{Type: TypeNotify, Raw: raw, Notify: &NotifyArgs{Mode: mode}}, nil
	case TypeRoadmap:
		return Command{Type: TypeRoadmap, Raw: raw}, nil
	case TypeHelp:
		return Command{Type: TypeHelp, Raw: raw}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command: %s", head)}
	}
}
