package multiform

import "log/slog"

// Option configures a [Decoder].
type Option func(*Decoder)

// WithSink sets where uploaded file contents are stored.
//
// Default: a [TempDirSink] writing to the system temporary directory.
func WithSink(s FileSink) Option {
	return func(d *Decoder) {
		d.sink = s
	}
}

// WithLogger sets the logger used to report dropped parts and failed
// writes. Dropped parts are logged at debug level.
//
// Default: a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(d *Decoder) {
		d.logger = l
	}
}
