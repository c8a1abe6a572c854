package script

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a parsed robot script.
type File struct {
	Stmts []*Stmt `parser:"@@*"`
}

// Stmt is one action, loop or branch.
type Stmt struct {
	Pos lexer.Position

	Action *string `parser:"  @('forward' | 'left' | 'right' | 'fire' | 'radar')"`
	Repeat *Repeat `parser:"| @@"`
	If     *If     `parser:"| @@"`
}

// Repeat runs Body Count times.
type Repeat struct {
	Count int     `parser:"'repeat' @Int"`
	Body  []*Stmt `parser:"'{' @@* '}'"`
}

// If picks a branch from a sensor reading taken when the branch is reached.
type If struct {
	Cond *Cond   `parser:"'if' @@"`
	Then []*Stmt `parser:"'{' @@* '}'"`
	Else []*Stmt `parser:"( 'else' '{' @@* '}' )?"`
}

// Cond tests one sensor, optionally negated.
type Cond struct {
	Not    bool   `parser:"@'not'?"`
	Sensor string `parser:"@('wall' | 'laser' | 'radar' | 'seen' | 'inrange')"`
}

var scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[{}]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[File](
	participle.Lexer(scriptLexer),
	participle.Elide("Comment", "Whitespace"),
)
