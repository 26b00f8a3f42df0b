package quiz

import "strings"

// Shortcut is the (choice id, token) pair the matcher compares input against.
type Shortcut struct {
	ID    int64
	Token string
}

// Result is what a line of input resolved to.
// ChoiceIDs is nil when no shortcut matched; Detail is empty when there is no free text.
type Result struct {
	ChoiceIDs []int64
	Detail    string
}

// Match splits raw input into selected choice ids and leftover free text.
//
// Everything before the first colon is read as space separated shortcut tokens,
// compared case-insensitively. Everything after it is detail. Tokens that match
// no shortcut are kept as detail too, in front of the colon text:
//
//	Match("a zz: slept well", ...) => ids of "a", detail "zz; slept well"
func Match(raw string, shortcuts []Shortcut) Result {
	if strings.TrimSpace(raw) == "" {
		return Result{}
	}

	parts := strings.Split(raw, ":")

	var ids []int64
	var unknown []string
	for _, token := range strings.Split(parts[0], " ") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if id, ok := lookup(token, shortcuts); ok {
			ids = append(ids, id)
			continue
		}
		unknown = append(unknown, token)
	}

	var details []string
	if len(unknown) > 0 {
		details = append(details, strings.Join(unknown, " "))
	}
	if len(parts) > 1 {
		rest := make([]string, 0, len(parts)-1)
		for _, p := range parts[1:] {
			rest = append(rest, strings.TrimSpace(p))
		}
		if detail := strings.TrimSpace(strings.Join(rest, " : ")); detail != "" {
			details = append(details, detail)
		}
	}

	return Result{
		ChoiceIDs: ids,
		Detail:    strings.Join(details, "; "),
	}
}

func lookup(token string, shortcuts []Shortcut) (int64, bool) {
	for _, s := range shortcuts {
		if strings.EqualFold(token, s.Token) {
			return s.ID, true
		}
	}
	return 0, false
}
