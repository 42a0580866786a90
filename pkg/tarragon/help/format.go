package help

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tarragon-lang/tarragon/pkg/tarragon/evaluator"
)

// FormatText formats a TopicResult for terminal output with the given width
func FormatText(result *TopicResult, width int) string {
	if width <= 0 {
		width = 80
	}

	var sb strings.Builder

	switch result.Kind {
	case "builtin":
		formatBuiltinText(&sb, result, width)
	case "builtin-list":
		formatBuiltinListText(&sb, result, width)
	case "operator":
		formatOperatorText(&sb, result, width)
	case "operator-list":
		formatOperatorListText(&sb, result, width)
	case "type":
		fmt.Fprintf(&sb, "Type: %s\n\n", result.Name)
		sb.WriteString(wrap(result.Description, width, ""))
		sb.WriteString("\n")
	case "type-list":
		formatTypeListText(&sb, result, width)
	case "keyword-list":
		sb.WriteString("Keywords\n")
		sb.WriteString("========\n\n")
		sb.WriteString(wrap(strings.Join(result.Keywords, ", "), width, "  "))
		sb.WriteString("\n")
	default:
		fmt.Fprintf(&sb, "Unknown result kind: %s\n", result.Kind)
	}

	return sb.String()
}

// FormatJSON formats a TopicResult as JSON
func FormatJSON(result *TopicResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

func formatBuiltinText(sb *strings.Builder, result *TopicResult, width int) {
	fmt.Fprintf(sb, "%s(%s)\n\n", result.Name, strings.Join(result.Params, ", "))
	sb.WriteString(wrap(result.Description, width, ""))
	sb.WriteString("\n\n")
	fmt.Fprintf(sb, "Arity: %s\n", result.Arity)
	fmt.Fprintf(sb, "Category: %s\n", result.Category)
}

func formatBuiltinListText(sb *strings.Builder, result *TopicResult, width int) {
	sb.WriteString("Builtin Functions\n")
	sb.WriteString("=================\n\n")

	var category string
	maxLen := 0
	for _, b := range result.Builtins {
		if n := len(builtinSignature(b)); n > maxLen {
			maxLen = n
		}
	}

	for _, b := range result.Builtins {
		if b.Category != category {
			if category != "" {
				sb.WriteString("\n")
			}
			category = b.Category
			fmt.Fprintf(sb, "%s:\n", capitalize(category))
		}
		display := builtinSignature(b)
		padding := strings.Repeat(" ", maxLen-len(display)+2)
		indent := strings.Repeat(" ", maxLen+4)
		desc := strings.TrimPrefix(wrap(b.Description, width, indent), indent)
		fmt.Fprintf(sb, "  %s%s%s\n", display, padding, desc)
	}
}

func builtinSignature(b evaluator.BuiltinInfo) string {
	return b.Name + "(" + strings.Join(b.Params, ", ") + ")"
}

func formatOperatorText(sb *strings.Builder, result *TopicResult, width int) {
	fmt.Fprintf(sb, "Operator: %s\n\n", result.Name)
	sb.WriteString(wrap(result.Description, width, ""))
	sb.WriteString("\n\n")
	fmt.Fprintf(sb, "Category: %s\n", result.Category)
}

// formatOperatorListText groups operators by category in order of first
// appearance, which is precedence order.
func formatOperatorListText(sb *strings.Builder, result *TopicResult, width int) {
	sb.WriteString("Operators\n")
	sb.WriteString("=========\n\n")

	var order []string
	byCategory := make(map[string][]evaluator.OperatorInfo)
	for _, op := range result.Operators {
		if _, seen := byCategory[op.Category]; !seen {
			order = append(order, op.Category)
		}
		byCategory[op.Category] = append(byCategory[op.Category], op)
	}

	for i, cat := range order {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(sb, "%s:\n", capitalize(cat))
		for _, op := range byCategory[cat] {
			padding := strings.Repeat(" ", 4-min(len(op.Symbol), 3))
			indent := strings.Repeat(" ", 6)
			desc := strings.TrimPrefix(wrap(op.Description, width, indent), indent)
			fmt.Fprintf(sb, "  %s%s%s\n", op.Symbol, padding, desc)
		}
	}
}

func formatTypeListText(sb *strings.Builder, result *TopicResult, width int) {
	sb.WriteString("Types\n")
	sb.WriteString("=====\n\n")

	maxLen := 0
	for _, t := range result.Types {
		if len(t.Name) > maxLen {
			maxLen = len(t.Name)
		}
	}
	for _, t := range result.Types {
		padding := strings.Repeat(" ", maxLen-len(t.Name)+2)
		fmt.Fprintf(sb, "  %s%s%s\n", t.Name, padding, t.Description)
	}
	sb.WriteString("\nUse 'tarragon describe <type>' for a single type.\n")
}

// wrap breaks text into lines of at most width columns, each prefixed by indent.
// A single word longer than the width gets a line of its own.
func wrap(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return indent
	}

	var lines []string
	line := indent + words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = indent + w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
