package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// pythonKinds maps grammar node kinds that are not lowered to the class name
// Python's own ast module uses for the same construct.
var pythonKinds = map[string]string{
	"list":                     "List",
	"tuple":                    "Tuple",
	"pattern_list":             "Tuple",
	"tuple_pattern":            "Tuple",
	"expression_list":          "Tuple",
	"list_pattern":             "List",
	"dictionary":               "Dict",
	"set":                      "Set",
	"list_comprehension":       "ListComp",
	"dictionary_comprehension": "DictComp",
	"set_comprehension":        "SetComp",
	"generator_expression":     "GeneratorExp",
	"lambda":                   "Lambda",
	"conditional_expression":   "IfExp",
	"boolean_operator":         "BoolOp",
	"not_operator":             "UnaryOp",
	"unary_operator":           "UnaryOp",
	"subscript":                "Subscript",
	"slice":                    "Slice",
	"await":                    "Await",
	"named_expression":         "NamedExpr",
	"yield":                    "Yield",
	"list_splat":               "Starred",
	"list_splat_pattern":       "Starred",
	"string":                   "JoinedStr",
	"while_statement":          "While",
	"with_statement":           "With",
	"raise_statement":          "Raise",
	"assert_statement":         "Assert",
	"global_statement":         "Global",
	"nonlocal_statement":       "Nonlocal",
	"delete_statement":         "Delete",
	"match_statement":          "Match",
	"type_alias_statement":     "TypeAlias",
	"print_statement":          "Print",
	"exec_statement":           "Exec",
}

// pythonKind names an unlowered node the way Python's ast module would.
// Unknown grammar kinds are camel-cased with any _statement suffix removed.
func pythonKind(node *sitter.Node) string {
	if node == nil {
		return "Unknown"
	}
	kind := node.Kind()
	// Definitions and loops are only left unlowered when they are async, and
	// try statements only when they use except*.
	switch kind {
	case "try_statement":
		return "TryStar"
	case "function_definition":
		return "AsyncFunctionDef"
	case "for_statement":
		return "AsyncFor"
	}
	if mapped, ok := pythonKinds[kind]; ok {
		if mapped == "With" && hasToken(node, "async") {
			return "AsyncWith"
		}
		return mapped
	}
	kind = strings.TrimSuffix(kind, "_statement")
	var b strings.Builder
	for _, part := range strings.Split(kind, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	if b.Len() == 0 {
		return "Unknown"
	}
	return b.String()
}
