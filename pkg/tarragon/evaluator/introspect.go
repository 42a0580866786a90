package evaluator

// BuiltinInfo describes a builtin function for help output.
type BuiltinInfo struct {
	Name        string   `json:"name"`
	Arity       string   `json:"arity"`
	Params      []string `json:"params"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
}

// OperatorInfo describes an operator for help output.
type OperatorInfo struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// TypeInfo describes a value type for help output.
type TypeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BuiltinMetadata is keyed by builtin name and covers every entry in builtins.
var BuiltinMetadata = map[string]BuiltinInfo{
	"len": {
		Name:        "len",
		Arity:       "1",
		Params:      []string{"value"},
		Category:    "collection",
		Description: "Number of characters in a string or elements in an array",
	},
	"first": {
		Name:        "first",
		Arity:       "1",
		Params:      []string{"value"},
		Category:    "collection",
		Description: "First element of an array or first character of a string; nil when empty",
	},
	"last": {
		Name:        "last",
		Arity:       "1",
		Params:      []string{"value"},
		Category:    "collection",
		Description: "Last element of an array or last character of a string; nil when empty",
	},
	"rest": {
		Name:        "rest",
		Arity:       "1",
		Params:      []string{"value"},
		Category:    "collection",
		Description: "Everything but the first element or character; nil when empty",
	},
	"push": {
		Name:        "push",
		Arity:       "2",
		Params:      []string{"array", "value"},
		Category:    "collection",
		Description: "New array with value appended; the original is unchanged",
	},
}

// OperatorMetadata lists the operators in precedence order, lowest first.
var OperatorMetadata = []OperatorInfo{
	{Symbol: "==", Name: "equal", Category: "comparison", Description: "Equal; values of different types are never equal"},
	{Symbol: "!=", Name: "not equal", Category: "comparison", Description: "Not equal"},
	{Symbol: "<", Name: "less than", Category: "comparison", Description: "Integers numerically, strings byte-wise"},
	{Symbol: ">", Name: "greater than", Category: "comparison", Description: "Integers numerically, strings byte-wise"},
	{Symbol: "<=", Name: "less or equal", Category: "comparison", Description: "Integers numerically, strings byte-wise"},
	{Symbol: ">=", Name: "greater or equal", Category: "comparison", Description: "Integers numerically, strings byte-wise"},
	{Symbol: "+", Name: "add", Category: "arithmetic", Description: "Integer addition or string concatenation"},
	{Symbol: "-", Name: "subtract", Category: "arithmetic", Description: "Integer subtraction; as a prefix, negation"},
	{Symbol: "*", Name: "multiply", Category: "arithmetic", Description: "Integer multiplication"},
	{Symbol: "/", Name: "divide", Category: "arithmetic", Description: "Integer division, truncating toward zero"},
	{Symbol: "!", Name: "not", Category: "logical", Description: "True when the operand is false or nil"},
	{Symbol: "()", Name: "call", Category: "access", Description: "Call a function or builtin"},
	{Symbol: "[]", Name: "index", Category: "access", Description: "Array element; nil when out of range"},
}

// TypeMetadata lists the value types by their runtime names.
var TypeMetadata = []TypeInfo{
	{Name: INTEGER_OBJ, Description: "64-bit signed integer"},
	{Name: BOOLEAN_OBJ, Description: "true or false"},
	{Name: STRING_OBJ, Description: "Immutable text"},
	{Name: NULL_OBJ, Description: "The nil value; falsy"},
	{Name: ARRAY_OBJ, Description: "Immutable ordered list of values"},
	{Name: FUNCTION_OBJ, Description: "Closure created by fn"},
	{Name: BUILTIN_OBJ, Description: "Native function such as len"},
	{Name: ERROR_OBJ, Description: "Runtime error; ends evaluation"},
}
