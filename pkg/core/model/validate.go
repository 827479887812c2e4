// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	digitsRegexp = regexp.MustCompile(`^[0-9]+$`)
	plateRegexp  = regexp.MustCompile(`^[A-Z]{3}-[0-9]{4}$`)
)

// ValidationError describes the first rule which a Car (or a car
// identifier) failed to satisfy. The Msg is ready to be shown to
// end-users as is, while Field names the offending JSON field.
type ValidationError struct {
	Field string // JSON name of the rejected field
	Msg   string // user-facing description of the failed rule
}

// Error implements the error interface, returning the Msg alone.
func (ve *ValidationError) Error() string {
	return ve.Msg
}

// rule is one step of the validation chain. The value function picks
// the checked value out of a Car and tag is a validator/v10 tag which
// must be satisfied by that value.
type rule struct {
	field string
	value func(c *Car) any
	tag   string
	msg   string
}

// rules are checked in order and the first failing rule wins.
// The first two rules are shared with ValidateID.
var rules = []rule{
	{"id", carID, "required", "identifier is required"},
	{"id", carID, "digits", "identifier must be numeric"},
	{"name", carName, "required", "name is required"},
	{"name", carName, "min=2", "name is too short"},
	{"name", carName, "max=50", "name is too long"},
	{"year", carYear, "required", "year is required"},
	{"licence", carLicence, "required", "licence is required"},
	{"licence", carLicence, "plate", "licence must be ABC-1234 format"},
	{"imageUrl", carImageURL, "required", "image url is required"},
	{"place", carPlace, "required", "location is required"},
}

func carID(c *Car) any       { return c.ID }
func carName(c *Car) any     { return c.Name }
func carYear(c *Car) any     { return c.Year }
func carLicence(c *Car) any  { return c.Licence }
func carImageURL(c *Car) any { return c.ImageURL }

// carPlace exposes the location as an array, so the zero (0, 0) pair
// is reported as a missing value by the required tag.
func carPlace(c *Car) any { return [2]float64{c.Place.Lat, c.Place.Lon} }

// validate returns the shared validator instance. Custom tags are
// registered once: digits accepts ASCII digits only (in contrast to the
// numeric tag which accepts signs and fractions too) and plate accepts
// the ABC-1234 licence plate format.
var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New()
	mustRegister(v, "digits", digitsRegexp)
	mustRegister(v, "plate", plateRegexp)
	return v
})

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic("registering " + tag + " validation: " + err.Error())
	}
}

// Validate checks c against the car field rules before it may be sent
// to the remote service. Rules are checked in a fixed order and the
// first failing rule is returned as a *ValidationError. A conformant
// car yields nil. Validate has no side effects.
func (c *Car) Validate() error {
	return check(c, rules)
}

// ValidateID checks a car identifier alone, as required before the
// fetching, updating, or deleting of a car by its identifier.
func ValidateID(id string) error {
	return check(&Car{ID: id}, rules[:2])
}

func check(c *Car, rs []rule) error {
	v := validate()
	for _, r := range rs {
		if err := v.Var(r.value(c), r.tag); err != nil {
			return &ValidationError{Field: r.field, Msg: r.msg}
		}
	}
	return nil
}
