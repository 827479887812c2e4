// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/carsync/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carsync/pkg/core/model"
)

type rawCarIDReq struct {
	ID string `uri:"id" binding:"required"`
}

// DeleteResponse is the body of a successful deletion.
type DeleteResponse struct {
	Message string `json:"message"`
}

// DserCarID deserializes the id path parameter. The id format is
// checked by the use case, so its error messages match the messages
// of the cars validation. An empty string is returned (after sending
// a 400 response) if there is no id.
func (rs *resource) DserCarID(c *gin.Context) string {
	req := &rawCarIDReq{}
	if ok := serdser.Bind(c, req, nil); !ok {
		return ""
	}
	return req.ID
}

// DserCar deserializes a car from the JSON body. When id is not
// empty, a car without identifier takes the id identifier. The nil
// value is returned (after sending a 400 response) if the body is
// not a car.
func (rs *resource) DserCar(c *gin.Context, id string) *model.Car {
	car := &model.Car{}
	if ok := serdser.Bind(c, car, binding.JSON); !ok {
		return nil
	}
	if car.ID == "" {
		car.ID = id
	}
	return car
}
