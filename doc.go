/* Package main: goed, a line-oriented text editor

goed is an interactive, line-oriented editor in the tradition of Unix ed.
It addresses ranges of lines by number, pattern, mark, or relative offset,
and mutates them with compact single-letter commands: append, change,
delete, move, copy, join, substitute, and the global command that runs a
command list over every line matching a pattern.

Unlike a screen editor, goed has no notion of a cursor moving around a
visible buffer; its "current line" is simply the last line addressed by a
command, and every command's effect is either a printed line, a modified
buffer, or a reported error. Scripting is a first-class use: a file of
ed commands replayed on stdin reproduces the same edits every time, which
is what makes goed's signal handling and undo bookkeeping worth getting
right.

Every line's text lives in an append-only scratch file rather than in
memory, addressed by (offset, length) pairs held in a doubly-linked
sequence of line records. Structural edits push reversible atoms onto a
one-frame-deep undo stack; a command that is interrupted midway leaves
whatever it already committed in place, recoverable with a single undo.

See Editor for the session type, and the per-concern files (buffer.go,
undo.go, address.go, dispatch.go, globalset.go, regexfacade.go) for the
subsystems that back it.
*/
package main
