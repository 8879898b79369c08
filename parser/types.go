// Package parser holds the data model of the HTML5 tree-construction
// protocol: the insertion-mode states, the token shapes the tree stage
// consumes, and the insertion points it resolves against a dom.Sink.
// The state machine that drives these types lives outside this module;
// the dom package executes the structural operations it decides on.
package parser

import (
	"github.com/heathj/domsink/parser/dom"
)

// InsertionMode is a state of the tree-construction state machine.
// https://html.spec.whatwg.org/multipage/parsing.html#the-insertion-mode
type InsertionMode uint

const (
	Initial InsertionMode = iota
	BeforeHTML
	BeforeHead
	InHead
	InHeadNoScript
	AfterHead
	InBody
	Text
	InTable
	InTableText
	InCaption
	InColumnGroup
	InTableBody
	InRow
	InCell
	InSelect
	InSelectInTable
	InTemplate
	AfterBody
	InFrameset
	AfterFrameset
	AfterAfterBody
	AfterAfterFrameset
)

// SplitStatus records what is known about a character run: whether it
// has been split yet and, once split, whether the run is all
// whitespace. Used upstream for whitespace-only fast paths.
type SplitStatus uint

const (
	NotSplit SplitStatus = iota
	Whitespace
	NotWhitespace
)

type TokenType uint

const (
	CharacterToken TokenType = iota
	NullCharacterToken
	StartTagToken
	EndTagToken
	CommentToken
	EndOfFileToken
)

// Token is a token as presented to the tree-construction stage, a
// filtered subset of the tokenizer's output. TagName, Attributes and
// SelfClosing are set for tag tokens; Data carries comment or
// character data; Split qualifies character tokens.
type Token struct {
	TokenType   TokenType
	TagName     string
	Attributes  []dom.Attribute
	SelfClosing bool
	Data        string
	Split       SplitStatus
}

type ProcessResultKind uint

const (
	ProcessDone ProcessResultKind = iota
	ProcessDoneAckSelfClosing
	ProcessSplitWhitespace
	ProcessReprocess
)

// ProcessResult is what one step of the tree-construction stage tells
// its driver loop: the token is consumed (possibly acknowledging a
// self-closing flag), the remaining characters need re-splitting, or
// the same token must be reprocessed in another mode.
type ProcessResult struct {
	Kind ProcessResultKind

	// Mode and Token are set for ProcessReprocess.
	Mode  InsertionMode
	Token *Token

	// Remainder is set for ProcessSplitWhitespace.
	Remainder string
}

// Done reports the token fully processed.
func Done() ProcessResult {
	return ProcessResult{Kind: ProcessDone}
}

// DoneAckSelfClosing reports the token processed with its self-closing
// flag acknowledged.
func DoneAckSelfClosing() ProcessResult {
	return ProcessResult{Kind: ProcessDoneAckSelfClosing}
}

// SplitWhitespace hands the unconsumed remainder of a character run
// back to the driver for re-splitting.
func SplitWhitespace(remainder string) ProcessResult {
	return ProcessResult{Kind: ProcessSplitWhitespace, Remainder: remainder}
}

// Reprocess asks the driver to run the same token through another
// insertion mode.
func Reprocess(mode InsertionMode, t *Token) ProcessResult {
	return ProcessResult{Kind: ProcessReprocess, Mode: mode, Token: t}
}

// FormatEntry is an entry of the list of active formatting elements:
// either an element with the tag token that created it, or a scope
// marker.
type FormatEntry struct {
	Element dom.Handle
	Tag     *Token
	marker  bool
}

// Marker is the scope-marker entry.
var Marker = FormatEntry{Element: dom.NullHandle, marker: true}

// NewFormatEntry records a formatting element and its creating tag.
func NewFormatEntry(element dom.Handle, tag *Token) FormatEntry {
	return FormatEntry{Element: element, Tag: tag}
}

// IsMarker reports whether the entry is a scope marker.
func (f FormatEntry) IsMarker() bool {
	return f.marker
}
