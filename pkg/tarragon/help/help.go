// Package help looks up documentation for builtins, operators, types and
// keywords. It backs `tarragon describe` and the REPL's `:describe`.
package help

import (
	"fmt"
	"sort"
	"strings"

	perrors "github.com/tarragon-lang/tarragon/pkg/tarragon/errors"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/evaluator"
	"github.com/tarragon-lang/tarragon/pkg/tarragon/lexer"
)

// TopicResult represents the help output for a topic
type TopicResult struct {
	Kind        string                   `json:"kind"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Builtins    []evaluator.BuiltinInfo  `json:"builtins,omitempty"`
	Operators   []evaluator.OperatorInfo `json:"operators,omitempty"`
	Types       []evaluator.TypeInfo     `json:"types,omitempty"`
	Keywords    []string                 `json:"keywords,omitempty"`
	Params      []string                 `json:"params,omitempty"`
	Arity       string                   `json:"arity,omitempty"`
	Category    string                   `json:"category,omitempty"`
}

// Topics lists the fixed topic keywords.
var Topics = []string{"builtins", "operators", "types", "keywords"}

// DescribeTopic returns help for topic: one of Topics, a builtin name, a type
// name (case-insensitive) or an operator symbol.
func DescribeTopic(topic string) (*TopicResult, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("no topic specified (try: %s, len, array)", strings.Join(Topics, ", "))
	}

	switch topic {
	case "builtins":
		return describeBuiltins(), nil
	case "operators":
		return describeOperators(), nil
	case "types":
		return describeTypes(), nil
	case "keywords":
		return describeKeywords(), nil
	}

	if result := describeBuiltinByName(topic); result != nil {
		return result, nil
	}
	if result := describeType(topic); result != nil {
		return result, nil
	}
	if result := describeOperator(topic); result != nil {
		return result, nil
	}

	return nil, unknownTopicError(topic)
}

// describeBuiltins returns all builtins sorted by category, then name
func describeBuiltins() *TopicResult {
	builtins := make([]evaluator.BuiltinInfo, 0, len(evaluator.BuiltinMetadata))
	for _, info := range evaluator.BuiltinMetadata {
		builtins = append(builtins, info)
	}
	sort.Slice(builtins, func(i, j int) bool {
		if builtins[i].Category != builtins[j].Category {
			return builtins[i].Category < builtins[j].Category
		}
		return builtins[i].Name < builtins[j].Name
	})

	return &TopicResult{Kind: "builtin-list", Name: "builtins", Builtins: builtins}
}

// describeOperators keeps the metadata's precedence order
func describeOperators() *TopicResult {
	operators := make([]evaluator.OperatorInfo, len(evaluator.OperatorMetadata))
	copy(operators, evaluator.OperatorMetadata)
	return &TopicResult{Kind: "operator-list", Name: "operators", Operators: operators}
}

func describeTypes() *TopicResult {
	types := make([]evaluator.TypeInfo, len(evaluator.TypeMetadata))
	copy(types, evaluator.TypeMetadata)
	return &TopicResult{Kind: "type-list", Name: "types", Types: types}
}

func describeKeywords() *TopicResult {
	keywords := lexer.Keywords()
	sort.Strings(keywords)
	return &TopicResult{Kind: "keyword-list", Name: "keywords", Keywords: keywords}
}

func describeBuiltinByName(name string) *TopicResult {
	info, ok := evaluator.BuiltinMetadata[name]
	if !ok {
		return nil
	}
	return &TopicResult{
		Kind:        "builtin",
		Name:        info.Name,
		Description: info.Description,
		Params:      info.Params,
		Arity:       info.Arity,
		Category:    info.Category,
	}
}

func describeType(name string) *TopicResult {
	for _, info := range evaluator.TypeMetadata {
		if strings.EqualFold(info.Name, name) {
			return &TopicResult{
				Kind:        "type",
				Name:        perrors.TypeName(info.Name),
				Description: info.Description,
			}
		}
	}
	return nil
}

func describeOperator(symbol string) *TopicResult {
	for _, info := range evaluator.OperatorMetadata {
		if info.Symbol == symbol {
			return &TopicResult{
				Kind:        "operator",
				Name:        info.Symbol,
				Description: info.Description,
				Category:    info.Category,
			}
		}
	}
	return nil
}

// allTopicNames is every name DescribeTopic resolves
func allTopicNames() []string {
	names := append([]string{}, Topics...)
	names = append(names, evaluator.BuiltinNames()...)
	for _, info := range evaluator.TypeMetadata {
		names = append(names, perrors.TypeName(info.Name))
	}
	return names
}

// unknownTopicError suggests up to three close topic names
func unknownTopicError(topic string) error {
	suggestions := perrors.FindTopMatches(strings.ToLower(topic), allTopicNames(), 3)
	if len(suggestions) > 0 {
		return fmt.Errorf("unknown topic: %s\nDid you mean: %s?", topic, strings.Join(suggestions, ", "))
	}
	return fmt.Errorf("unknown topic: %s\nTry: %s, len, array", topic, strings.Join(Topics, ", "))
}
