// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the building blocks of the configuration
// settings, such as text encoded durations and helpers for filling the
// missing optional settings with their default values.
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Duration is a time.Duration which is written in configuration files
// in its textual form, e.g., 1m30s, and is marshaled without the zero
// trailing units, e.g., 1h instead of 1h0m0s.
type Duration time.Duration

// UnmarshalText implements the encoding.TextUnmarshaler interface, so
// a duration can be read from a YAML file in the time.ParseDuration
// format. The d receiver is only updated when data is acceptable.
func (d *Duration) UnmarshalText(data []byte) error {
	dd, err := time.ParseDuration(string(data))
	if err != nil {
		return fmt.Errorf("parsing duration: %w", err)
	}
	*d = Duration(dd)
	return nil
}

// Marshal returns a string representation of d, or nil if d is nil.
// Zero trailing minutes and seconds are dropped, so 90 minutes become
// 1h30m and a zero duration becomes 0s.
func (d *Duration) Marshal() *string {
	if d == nil {
		return nil
	}
	s := (*time.Duration)(d).String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return &s
}

// MarshalText implements the encoding.TextMarshaler interface using
// the Marshal method. It is used by both of the YAML and JSON encoders.
func (d *Duration) MarshalText() ([]byte, error) {
	if s := d.Marshal(); s != nil {
		return []byte(*s), nil
	}
	return nil, errors.New("nil duration")
}

// Std returns d as a time.Duration. A nil d is taken as zero.
func (d *Duration) Std() time.Duration {
	if d == nil {
		return 0
	}
	return time.Duration(*d)
}

// LogValue implements slog.LogValuer.
func (d *Duration) LogValue() slog.Value {
	if d == nil {
		return slog.StringValue("nil-duration")
	}
	return slog.DurationValue(time.Duration(*d))
}
