// Copyright © 2025 The lispindent authors

package classify

// Builtins returns the default symbol table covering the dialect's special
// forms, core macros, and primitive functions.  Hosts typically overlay
// their own library bindings on top of this table.
func Builtins() MapTable {
	t := MapTable{}
	add := func(kind Kind, names ...string) {
		for _, name := range names {
			t[name] = Entry{Kind: kind}
		}
	}

	add(SpecialForm,
		"quote", "quasiquote", "unquote", "unquote-splicing",
		"if", "cond", "and", "or", "do",
		"lambda", "let", "let*", "flet", "labels", "macrolet",
		"set!", "progn", "handler-bind",
	)
	add(Macro,
		"defun", "defmacro", "deftype",
		"when", "unless", "dotimes",
		"thread-first", "thread-last",
		"ignore-errors",
	)
	add(FunctionPrimitive,
		"cons", "car", "cdr", "list", "append", "reverse", "length",
		"+", "-", "*", "/", "=", "<", "<=", ">", ">=",
		"eq?", "equal?", "nil?", "not",
		"apply", "funcall", "map", "foldl", "foldr",
	)
	add(FunctionLibrary,
		"assoc", "sort", "concat", "format-string",
	)
	add(SpecialVariable, "true", "false", "nil")

	// Conventional shorthands resolve through the alias map.
	t["first"] = Entry{AliasFor: "car"}
	t["rest"] = Entry{AliasFor: "cdr"}
	t["second"] = Entry{AliasFor: "cadr"}
	t["cadr"] = Entry{Kind: FunctionPrimitive}

	return t
}
