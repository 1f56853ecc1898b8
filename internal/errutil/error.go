package errutil

var (
	ErrHTTPRequest          = NewInternalError("http request error")
	ErrJSONDecode           = NewInternalError("json decode error")
	ErrTimeParse            = NewInternalError("time parse error")
	ErrSourceUnavailable    = NewInternalError("upstream source unavailable")
	ErrStreamClosed         = NewInternalError("audio stream closed")
	ErrDatabaseOpen         = NewFatalError("database open error")
	ErrDatabaseQuery        = NewInternalError("database query error")
	ErrDatabaseScan         = NewInternalError("database scan error")
	ErrDatabaseNotFoundUnit = NewPermanentError("not found unit")
	ErrFfmpeg               = NewInternalError("ffmpeg error")
	ErrCutTooSmall          = NewInternalError("cut output too small")
	ErrArchiveGone          = NewPermanentError("archive segment gone")
	ErrAlreadyQueued        = NewPermanentError("unit already queued")
	ErrQueueFull            = NewPermanentError("play queue full")
	ErrChannelUnknown       = NewPermanentError("unknown channel")
	ErrScheduler            = NewFatalError("scheduler error")
	// anything we cannot classify
	ErrInternal = NewInternalError("internal something error")
)
