package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Toggle  func(ToggleArgs) (Result, error)
	Note    func(NoteArgs) (Result, error)
	Value   func(ValueArgs) (Result, error)
	Reload  func() (Result, error)
	Notify  func(NotifyArgs) (Result, error)
	Roadmap func() (Result, error)
	Help    func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeToggle:
		if handlers.Toggle == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "toggle handler not configured"}
		}
		return handlers.Toggle(*cmd.Toggle)
	case TypeNote:
		if handlers.Note == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "note handler not configured"}
		}
		return handlers.Note(*cmd.Note)
	case TypeValue:
		if handlers.Value == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "value handler not configured"}
		}
		return handlers.Value(*cmd.Value)
	case TypeReload:
		if handlers.Reload == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "reload handler not configured"}
		}
		return handlers.Reload()
	case TypeNotify:
		if handlers.Notify == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "notify handler not configured"}
		}
		return handlers.Notify(*cmd.Notify)
	case TypeRoadmap:
		if handlers.Roadmap == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "roadmap handler not configured"}
		}
		return handlers.Roadmap()
	case TypeHelp:
		if handlers.Help == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "help handler not configured"}
		}
		return handlers.Help()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
