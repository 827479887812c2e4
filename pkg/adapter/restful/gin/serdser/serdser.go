// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the serialization and deserialization
// helpers which are shared by the gin resource packages. Failures are
// reported as {"error": "...", "errors": [{"id": "...", "error": "..."}]}
// JSON bodies, where errors lists the rejected fields (if any).
package serdser

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/carsync/pkg/core/cerr"
	"github.com/momeni/carsync/pkg/core/model"
)

// ErrorResponse is the body of unsuccessful responses.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError describes one rejected field.
type FieldError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Bind deserializes the request into req using the b binding, or the
// URI parameters if b is nil. If deserialization fails, a 400 response
// is sent and false is returned.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	var err error
	if b == nil {
		err = c.ShouldBindUri(req)
	} else {
		err = c.ShouldBindWith(req, b)
	}
	var verrs validator.ValidationErrors
	var ierr *validator.InvalidValidationError
	switch {
	case err == nil:
		return true
	case errors.As(err, &ierr):
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: err.Error(),
		})
	case errors.As(err, &verrs):
		res := ErrorResponse{Error: "invalid data"}
		for _, ferr := range verrs {
			res.Errors = append(res.Errors, FieldError{
				ID: ferr.Field(), Error: ferr.Error(),
			})
		}
		c.JSON(http.StatusBadRequest, res)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return false
}

// SerErr sends the err error. Classified errors are sent with their
// HTTP status code, while other errors are sent as 500 responses.
// A *model.ValidationError in the chain is also reported in the
// errors list.
func SerErr(c *gin.Context, err error) {
	_ = c.Error(err)
	res := ErrorResponse{Error: err.Error()}
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		res.Errors = []FieldError{{ID: ve.Field, Error: ve.Msg}}
	}
	code := http.StatusInternalServerError
	var ce *cerr.Error
	if errors.As(err, &ce) && ce.HTTPStatusCode != 0 {
		code = ce.HTTPStatusCode
	}
	c.JSON(code, res)
}
