// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"errors"
	"log/slog"
	"time"
)

// Valuer returns an Attr for the given slog.LogValuer value.
func Valuer(key string, value slog.LogValuer) slog.Attr {
	return slog.Any(key, value)
}

// Err returns an Attr for the given error value.
// If the error chain contains a slog.LogValuer (such as a classified
// *cerr.Error), it is logged as a group. Otherwise, the error value
// is resolved as a string by its Error() method.
// If error value is nil, the constant "no-error" value will be used.
func Err(key string, value error) slog.Attr {
	if value == nil {
		return slog.String(key, "no-error")
	}
	var lv slog.LogValuer
	if errors.As(value, &lv) {
		return slog.Any(key, lv)
	}
	return slog.String(key, value.Error())
}

// Elapsed returns an Attr holding the time which is passed since the
// start time, e.g., for reporting the latency of a remote call.
func Elapsed(key string, start time.Time) slog.Attr {
	return slog.Duration(key, time.Since(start))
}
