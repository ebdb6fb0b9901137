package tui

import (
	"fmt"
	"strconv"
	"strings"
)

// parseFunc turns the text after a command keyword into an Action.
type parseFunc func(args string) (Action, error)

// commandRegistry maps palette keywords to their parsers. Built once at
// startup, read-only afterward.
type commandRegistry map[string]parseFunc

// Dispatch splits a command line into keyword and remainder and parses it.
// A blank line is a no-op; an unknown keyword is a not-found error.
func (r commandRegistry) Dispatch(line string) (Action, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return NoAction, nil
	}
	keyword, rest, _ := strings.Cut(line, " ")
	parse, ok := r[keyword]
	if !ok {
		return NoAction, fmt.Errorf("command not found: %s", keyword)
	}
	return parse(strings.TrimSpace(rest))
}

// Keywords returns the registered command keywords.
func (r commandRegistry) Keywords() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	return keys
}

func newCommandRegistry() commandRegistry {
	r := commandRegistry{}

	query := requireArgs("query", func(args string) Action {
		return Action{Kind: ActQuery, Text: args}
	})
	r["query"] = query
	r["q"] = query

	r["select"] = requireArgs("select", func(args string) Action {
		return Action{Kind: ActSelectColumns, Text: args}
	})
	r["order"] = requireArgs("order", func(args string) Action {
		return Action{Kind: ActOrderBy, Text: args}
	})
	r["filter"] = requireArgs("filter", func(args string) Action {
		return Action{Kind: ActFilter, Text: args}
	})

	r["goto"] = func(args string) (Action, error) {
		n, err := parseRowNumber(args)
		if err != nil {
			return NoAction, err
		}
		return Action{Kind: ActGoto, Index: n - 1}, nil
	}
	r["goup"] = relativeMove("goup", ActUp, ActUpHalfPage, ActUpFullPage)
	r["godown"] = relativeMove("godown", ActDown, ActDownHalfPage, ActDownFullPage)
	r["rand"] = noArgs("rand", Action{Kind: ActGotoRandom})

	r["view"] = func(args string) (Action, error) {
		switch args {
		case "table":
			return Action{Kind: ActSheetDismiss}, nil
		case "sheet":
			return Action{Kind: ActSheetShow}, nil
		case "", "switch":
			return Action{Kind: ActSheetToggle}, nil
		}
		return NoAction, fmt.Errorf("view: unknown mode %q (want table, sheet, or switch)", args)
	}

	r["schema"] = noArgs("schema", Action{Kind: ActSchemaShow})
	r["info"] = noArgs("info", Action{Kind: ActInfoShow})
	r["reset"] = noArgs("reset", Action{Kind: ActReset})

	r["tabs"] = noArgs("tabs", Action{Kind: ActTabPanelShow})
	r["tabn"] = func(args string) (Action, error) {
		n, err := parseRowNumber(args)
		if err != nil {
			return NoAction, err
		}
		return Action{Kind: ActTabSelect, Index: n - 1}, nil
	}
	r["tab"] = func(args string) (Action, error) {
		switch args {
		case "next", "":
			return Action{Kind: ActTabNext}, nil
		case "prev":
			return Action{Kind: ActTabPrev}, nil
		}
		return NoAction, fmt.Errorf("tab: unknown direction %q (want next or prev)", args)
	}
	r["tabr"] = noArgs("tabr", Action{Kind: ActTabRemoveOrQuit})

	return r
}

// requireArgs rejects an empty remainder before building the action.
func requireArgs(name string, build func(string) Action) parseFunc {
	return func(args string) (Action, error) {
		if args == "" {
			return NoAction, fmt.Errorf("%s: missing argument", name)
		}
		return build(args), nil
	}
}

func noArgs(name string, act Action) parseFunc {
	return func(args string) (Action, error) {
		if args != "" {
			return NoAction, fmt.Errorf("%s: takes no argument", name)
		}
		return act, nil
	}
}

// relativeMove parses goup/godown arguments: blank or a positive count, or
// the words half and page.
func relativeMove(name string, step, half, full ActionKind) parseFunc {
	return func(args string) (Action, error) {
		switch args {
		case "":
			return Action{Kind: step, Count: 1}, nil
		case "half":
			return Action{Kind: half}, nil
		case "page":
			return Action{Kind: full}, nil
		}
		n, err := strconv.Atoi(args)
		if err != nil || n < 1 {
			return NoAction, fmt.Errorf("%s: want a positive count, half, or page", name)
		}
		return Action{Kind: step, Count: n}, nil
	}
}

// parseRowNumber parses a one-based row or tab number.
func parseRowNumber(args string) (int, error) {
	if args == "" {
		return 0, fmt.Errorf("missing row number")
	}
	n, err := strconv.Atoi(args)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid row number %q", args)
	}
	return n, nil
}
