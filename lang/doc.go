// Package lang implements the front end of the aleatoric composition
// language: a line-oriented notation of keyword statements describing notes,
// phrases, sections, repeats, meter and output directives.
//
// A script is translated into block-structured host source in which every
// keyword statement opens a block that is explicitly closed, and in which the
// nesting of statements has been checked against the grammar.
//
// # Example
//
//	tempo = 120
//	section "A" :
//	phrase "melody":
//	note "C4"
//	amplitude NEXT
//
// compiles to
//
//	tempo=120
//	section "A"()do
//	phrase "melody"()do
//	note "C4" do
//	amplitude @cur_start
//	end
//	end
//	end
//
// # Pipeline
//
// [Compile] runs five stages in sequence, each consuming the output of the
// previous one:
//
//  1. [Tokenize] splits lines on whitespace after spacing out operators, and
//     merges quoted literals.
//  2. [Bindings.Resolve] substitutes variables. Assignments are only
//     recognized at the head of a script, before the first other statement.
//  3. [Normalize] rewrites the call shorthand "name:" to "name(...)".
//  4. [Unit.Build] places each line in a tree. A keyword line becomes a
//     child of the nearest open block that accepts it, and its block is
//     closed by a synthetic "end" node appended right after it. Any other
//     line is attached as a leaf of the most recent keyword line.
//  5. [Unit.Emit] validates each node against its structural constraint
//     and writes the tree in pre-order.
//
// The rules for each keyword (accepted arguments, parents and children,
// block delimiters) are listed by [RuleOf].
//
// # Errors
//
// Compilation stops at the first problem. The returned [*Error] reports the
// [Kind] of failure, the offending line and keyword, and the partially built
// tree. Use [errors.Is] with [ErrArgument], [ErrAttachment] or
// [ErrStructure] to classify it.
package lang
