package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/taskboard/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent", TypeAdd},
		{":filter pending", TypeFilter},
		{"search milk", TypeSearch},
		{"date 2025-06-01", TypeDate},
		{"go calendar", TypeGo},
		{"clear completed", TypeClear},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddModifiers(t *testing.T) {
	cmd, err := Parse("add Buy milk !high @2025-06-01 10:00")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := AddArgs{Text: "Buy milk", Priority: model.PriorityHigh, DueDate: "2025-06-01", DueTime: "10:00"}
	if *cmd.Add != want {
		t.Fatalf("unexpected args: %+v", *cmd.Add)
	}

	cmd, err = Parse("add plain words only")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Priority != "" || cmd.Add.DueDate != "" || cmd.Add.DueTime != "" {
		t.Fatalf("expected no modifiers: %+v", *cmd.Add)
	}
}

func TestParseRejectsBadArguments(t *testing.T) {
	for _, in := range []string{
		"add",
		"add !high 10:00",
		"add task !urgent",
		"add task @06/01/2025",
		"filter done",
		"filter",
		"date tomorrow",
		"go",
		"clear everything",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("%q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	var ce *CommandError
	if _, err := Parse("  / "); !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if _, err := Parse("/unknown do x"); !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseDateKeywords(t *testing.T) {
	cmd, err := Parse("date today")
	if err != nil || !cmd.Date.Today {
		t.Fatalf("expected today, got %+v err=%v", cmd.Date, err)
	}
	cmd, err = Parse("date clear")
	if err != nil || !cmd.Date.Clear {
		t.Fatalf("expected clear, got %+v err=%v", cmd.Date, err)
	}
}

func TestParseSearchAllowsEmpty(t *testing.T) {
	cmd, err := Parse("search")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Search.Text != "" {
		t.Fatalf("expected empty search, got %q", cmd.Search.Text)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Text != "write docs" {
				t.Fatalf("unexpected text: %q", a.Text)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("clear all")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
