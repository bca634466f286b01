package ezexcel

import "github.com/Descent098/ezexcel/pkg/ezexcel/sheetio"

type options struct {
	mode     sheetio.Mode
	sheet    string
	readable bool
}

func defaultOptions() options {
	return options{mode: sheetio.Create}
}

// Option configures an open session.
type Option func(*options)

// WithAppend keeps the file's existing rows and writes new ones after them.
// The header row is only written when the file is empty.
func WithAppend() Option {
	return func(o *options) { o.mode = sheetio.Append }
}

// WithReadOnly opens the file for loading only; Store fails.
func WithReadOnly() Option {
	return func(o *options) { o.mode = sheetio.Read }
}

// WithSheetName selects the worksheet for xlsx files. Ignored for CSV.
func WithSheetName(name string) Option {
	return func(o *options) { o.sheet = name }
}

// WithReadable writes collection fields as "- element" bullet lines, one
// per element. Readable output is meant for humans; it does not decode back
// to the original collection.
func WithReadable() Option {
	return func(o *options) { o.readable = true }
}
