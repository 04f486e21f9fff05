// Package options holds the editor options recognized by the editing
// core. Each option affects exactly one documented algorithm; nothing
// here is consulted implicitly.
package options

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Options is the full recognized option set for one document view.
type Options struct {
	// TabSize is the display width of a tab character.
	TabSize int
	// IndentSize is the width of one indent level.
	IndentSize int
	// ConvertTabsToSpaces makes synthesized whitespace all spaces.
	ConvertTabsToSpaces bool
	// TrimTrailingWhitespaceOnNewline trims the departed line when a
	// newline is inserted.
	TrimTrailingWhitespaceOnNewline bool
	// InsertFinalNewline keeps the document terminated by one break.
	InsertFinalNewline bool
	// MoveCaretOnSelectAll places the caret at the document end after
	// SelectAll instead of leaving it in place.
	MoveCaretOnSelectAll bool
	// OutliningUndo records collapse/expand in undo history.
	OutliningUndo bool
	// CutCopyBlankLineIfNoSelection cuts/copies the whole current line
	// when the selection is empty, including blank lines.
	CutCopyBlankLineIfNoSelection bool
	// OverwriteMode makes typed text replace the element after the
	// caret instead of inserting.
	OverwriteMode bool
}

// Default returns the standard option values.
func Default() Options {
	return Options{
		TabSize:                       4,
		IndentSize:                    4,
		MoveCaretOnSelectAll:          true,
		OutliningUndo:                 true,
		CutCopyBlankLineIfNoSelection: true,
	}
}

// Option is a functional option applied on top of Default.
type Option func(*Options)

// New builds an option set from Default plus overrides.
func New(opts ...Option) Options {
	o := Default()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTabSize sets the tab display width.
func WithTabSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.TabSize = n
		}
	}
}

// WithIndentSize sets the indent level width.
func WithIndentSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.IndentSize = n
		}
	}
}

// WithSpaces enables convert-tabs-to-spaces.
func WithSpaces() Option {
	return func(o *Options) {
		o.ConvertTabsToSpaces = true
	}
}

// WithOverwrite enables overwrite mode.
func WithOverwrite() Option {
	return func(o *Options) {
		o.OverwriteMode = true
	}
}

// fileSchema mirrors the TOML fragment; pointers distinguish "absent"
// from zero values so a partial file only overrides what it names.
type fileSchema struct {
	TabSize                         *int  `toml:"tab_size"`
	IndentSize                      *int  `toml:"indent_size"`
	ConvertTabsToSpaces             *bool `toml:"convert_tabs_to_spaces"`
	TrimTrailingWhitespaceOnNewline *bool `toml:"trim_trailing_whitespace_on_newline"`
	InsertFinalNewline              *bool `toml:"insert_final_newline"`
	MoveCaretOnSelectAll            *bool `toml:"move_caret_on_select_all"`
	OutliningUndo                   *bool `toml:"outlining_undo"`
	CutCopyBlankLineIfNoSelection   *bool `toml:"cut_copy_blank_line_if_no_selection"`
	OverwriteMode                   *bool `toml:"overwrite_mode"`
}

// Load parses a TOML fragment over the given base options.
func Load(data []byte, base Options) (Options, error) {
	var f fileSchema
	if err := toml.Unmarshal(data, &f); err != nil {
		return base, fmt.Errorf("parse options: %w", err)
	}

	o := base
	if f.TabSize != nil && *f.TabSize > 0 {
		o.TabSize = *f.TabSize
	}
	if f.IndentSize != nil && *f.IndentSize > 0 {
		o.IndentSize = *f.IndentSize
	}
	if f.ConvertTabsToSpaces != nil {
		o.ConvertTabsToSpaces = *f.ConvertTabsToSpaces
	}
	if f.TrimTrailingWhitespaceOnNewline != nil {
		o.TrimTrailingWhitespaceOnNewline = *f.TrimTrailingWhitespaceOnNewline
	}
	if f.InsertFinalNewline != nil {
		o.InsertFinalNewline = *f.InsertFinalNewline
	}
	if f.MoveCaretOnSelectAll != nil {
		o.MoveCaretOnSelectAll = *f.MoveCaretOnSelectAll
	}
	if f.OutliningUndo != nil {
		o.OutliningUndo = *f.OutliningUndo
	}
	if f.CutCopyBlankLineIfNoSelection != nil {
		o.CutCopyBlankLineIfNoSelection = *f.CutCopyBlankLineIfNoSelection
	}
	if f.OverwriteMode != nil {
		o.OverwriteMode = *f.OverwriteMode
	}
	return o, nil
}

// LoadFile reads a TOML options file over the given base options.
func LoadFile(path string, base Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read options file: %w", err)
	}
	return Load(data, base)
}
