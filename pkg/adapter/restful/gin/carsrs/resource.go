// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrs realizes the cars resource, allowing the cars
// manipulation REST APIs to be accepted and delegated to the
// cars use cases respectively.
package carsrs

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/carsync/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carsync/pkg/core/model"
	"github.com/momeni/carsync/pkg/core/usecase/carsuc"
)

type resource struct {
	cars *carsuc.UseCase
}

// Register instantiates a resource adapting the cars use case instance
// with the relevant REST APIs including:
//  1. GET request to /car in order to list all cars,
//  2. POST request to /car in order to create a car,
//  3. GET request to /car/:id in order to fetch a car,
//  4. PATCH request to /car/:id in order to update a car,
//  5. DELETE request to /car/:id in order to delete a car.
func Register(r gin.IRouter, cars *carsuc.UseCase) {
	rs := &resource{cars: cars}
	r.GET("car", rs.ListCars)
	r.POST("car", rs.CreateCar)
	r.GET("car/:id", rs.GetCar)
	r.PATCH("car/:id", rs.UpdateCar)
	r.DELETE("car/:id", rs.DeleteCar)
}

func (rs *resource) ListCars(c *gin.Context) {
	cars, err := rs.cars.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cars)
}

func (rs *resource) GetCar(c *gin.Context) {
	id := rs.DserCarID(c)
	if id == "" {
		return
	}
	car, err := rs.cars.Get(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, model.CarEnvelope{ID: car.ID, Value: car})
}

func (rs *resource) CreateCar(c *gin.Context) {
	car := rs.DserCar(c, "")
	if car == nil {
		return
	}
	created, err := rs.cars.Create(c, car)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (rs *resource) UpdateCar(c *gin.Context) {
	id := rs.DserCarID(c)
	if id == "" {
		return
	}
	car := rs.DserCar(c, id)
	if car == nil {
		return
	}
	updated, err := rs.cars.Update(c, id, car)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (rs *resource) DeleteCar(c *gin.Context) {
	id := rs.DserCarID(c)
	if id == "" {
		return
	}
	if err := rs.cars.Delete(c, id); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{
		Message: fmt.Sprintf("car %s deleted successfully", id),
	})
}
