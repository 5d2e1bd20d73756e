package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskboard/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeFilter Type = "filter"
	TypeSearch Type = "search"
	TypeDate   Type = "date"
	TypeGo     Type = "go"
	TypeClear  Type = "clear"
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

// AddArgs carries an add request. Priority, DueDate and DueTime are empty
// when not given so the store applies its defaults.
type AddArgs struct {
	Text     string
	Priority model.Priority
	DueDate  string
	DueTime  string
}

type FilterArgs struct {
	Status model.StatusFilter
}

type SearchArgs struct {
	Text string
}

// DateArgs selects a date. Today asks the caller for its own notion of today;
// Clear removes the date predicate.
type DateArgs struct {
	Date  string
	Today bool
	Clear bool
}

type GoArgs struct {
	Page string
}

type ClearArgs struct {
	All bool
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Filter *FilterArgs
	Search *SearchArgs
	Date   *DateArgs
	Go     *GoArgs
	Clear  *ClearArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(raw, ":"), "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Text: strings.Join(args, " ")}}, nil
	case TypeDate:
		return parseDate(input, args)
	case TypeGo:
		return parseGo(input, args)
	case TypeClear:
		return parseClear(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd pulls trailing modifiers off the text: !priority, @YYYY-MM-DD and
// HH:MM. Tokens that look like modifiers but do not parse are rejected.
func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "!") && len(arg) > 1:
			p, err := model.ParsePriority(arg[1:])
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown priority %q", arg[1:])}
			}
			out.Priority = p
		case strings.HasPrefix(arg, "@") && len(arg) > 1:
			if !model.ValidDate(arg[1:]) {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("date must be YYYY-MM-DD, got %q", arg[1:])}
			}
			out.DueDate = arg[1:]
		case model.ValidTime(arg):
			out.DueTime = arg
		default:
			words = append(words, arg)
		}
	}
	out.Text = strings.TrimSpace(strings.Join(words, " "))
	if out.Text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of all, completed, pending"}
	}
	status := model.StatusFilter(strings.ToLower(args[0]))
	if !status.IsValid() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter %q", args[0])}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Status: status}}, nil
}

func parseDate(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "date requires YYYY-MM-DD, today or clear"}
	}
	switch v := strings.ToLower(args[0]); {
	case v == "today":
		return Command{Type: TypeDate, Raw: raw, Date: &DateArgs{Today: true}}, nil
	case v == "clear" || v == "none":
		return Command{Type: TypeDate, Raw: raw, Date: &DateArgs{Clear: true}}, nil
	case model.ValidDate(v):
		return Command{Type: TypeDate, Raw: raw, Date: &DateArgs{Date: v}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("date must be YYYY-MM-DD, got %q", args[0])}
	}
}

func parseGo(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "go requires a page name"}
	}
	return Command{Type: TypeGo, Raw: raw, Go: &GoArgs{Page: strings.ToLower(args[0])}}, nil
}

func parseClear(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "clear requires completed or all"}
	}
	switch strings.ToLower(args[0]) {
	case "completed", "done":
		return Command{Type: TypeClear, Raw: raw, Clear: &ClearArgs{}}, nil
	case "all":
		return Command{Type: TypeClear, Raw: raw, Clear: &ClearArgs{All: true}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("clear target must be completed or all, got %q", args[0])}
	}
}
