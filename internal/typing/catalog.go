package typing

// DefaultSnippets is the built-in prompt catalog.
var DefaultSnippets = []string{
	`const hello = () => "world";`,
	"function debugIt() { return true; }",
	"let x = 42; x *= 2;",
	"async await Promise.resolve();",
	"const [state, setState] = useState();",
	`import React from "react";`,
	"export default Component;",
	"type Props = { id: number }",
}
