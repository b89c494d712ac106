package handbrake

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var decombDefaultPattern = regexp.MustCompile(`--decomb[\s\S]+?default: ([-:\d]+:)`)

// DecombValue derives a --decomb value for a decomb menu choice from the
// defaults listed in HandBrakeCLI's help text. The final field selects the
// mode: choice 1 yields -1 (automatic), 2 yields 0 and 3 yields 1.
func DecombValue(help string, choice int) (string, bool) {
	match := decombDefaultPattern.FindStringSubmatch(help)
	if match == nil {
		return "", false
	}
	return match[1] + strconv.Itoa(choice-2), true
}

type option struct {
	name  string
	value any
}

// optionList keeps options in insertion order; setting an existing name
// replaces its value in place.
type optionList struct {
	items []option
	index map[string]int
}

func newOptionList(encoding map[string]any) *optionList {
	list := &optionList{index: make(map[string]int, len(encoding)+8)}
	names := make([]string, 0, len(encoding))
	for name := range encoding {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		list.set(name, encoding[name])
	}
	return list
}

func (l *optionList) set(name string, value any) {
	name = strings.TrimLeft(strings.TrimSpace(name), "-")
	if name == "" {
		return
	}
	if i, ok := l.index[name]; ok {
		l.items[i].value = value
		return
	}
	l.index[name] = len(l.items)
	l.items = append(l.items, option{name: name, value: value})
}

func (l *optionList) args() []string {
	args := make([]string, 0, len(l.items)*2)
	for _, item := range l.items {
		flag := "--" + item.name
		switch v := item.value.(type) {
		case nil:
		case bool:
			if v {
				args = append(args, flag)
			}
		case string:
			if v != "" {
				args = append(args, flag, v)
			}
		case int:
			args = append(args, flag, strconv.Itoa(v))
		case int64:
			args = append(args, flag, strconv.FormatInt(v, 10))
		case float64:
			args = append(args, flag, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			args = append(args, flag, fmt.Sprint(v))
		}
	}
	return args
}
