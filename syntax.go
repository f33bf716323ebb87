package texpand

import "github.com/elixir-tools/texpand/internal/core/specast"

// Node is a typespec syntax tree node: what a TypespecProvider or
// SpecTextParser implementation must produce for the Spec Parser to
// consume. It is a distinct vocabulary from Value: syntax describes a
// not-yet-parsed @spec/@type, never an expanded result.
type Node = specast.Node

type (
	SyntaxUnion = specast.Union
	StructLit   = specast.StructLit
	MapLit      = specast.MapLit
	SyntaxField = specast.Field
	MapNullary  = specast.MapNullary
	TupleLit    = specast.TupleLit
	RemoteType  = specast.RemoteType
	LocalType   = specast.LocalType
	NoReturn    = specast.NoReturn
	SyntaxAtom  = specast.Atom
	SyntaxInt   = specast.Int
	ParamRef    = specast.ParamRef
	ParamSpec   = specast.ParamSpec
)
