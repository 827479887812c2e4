// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsuc_test

import (
	"context"
	"testing"

	"github.com/momeni/carsync/pkg/adapter/db/memory"
	"github.com/momeni/carsync/pkg/adapter/db/memory/carsrp"
	"github.com/momeni/carsync/pkg/core/cerr"
	"github.com/momeni/carsync/pkg/core/model"
	"github.com/momeni/carsync/pkg/core/usecase/carsuc"
	"github.com/stretchr/testify/suite"
)

func car(id string) *model.Car {
	return &model.Car{
		ID:       id,
		ImageURL: "https://example.com/" + id + ".jpg",
		Year:     "2020",
		Name:     "Car " + id,
		Licence:  "ABC-1234",
		Place:    model.Coordinate{Lat: 1, Lon: 2},
	}
}

type UseCaseSuite struct {
	suite.Suite

	ctx context.Context
	uc  *carsuc.UseCase
}

func TestUseCaseSuite(t *testing.T) {
	suite.Run(t, new(UseCaseSuite))
}

func (ucs *UseCaseSuite) SetupTest() {
	ucs.ctx = context.Background()
	var err error
	ucs.uc, err = carsuc.New(
		ucs.ctx, memory.NewPool(), carsrp.New(), carsuc.WithMigration(),
	)
	ucs.Require().NoError(err)
}

func (ucs *UseCaseSuite) TestCreateListAndGet() {
	for _, id := range []string{"2", "1"} {
		_, err := ucs.uc.Create(ucs.ctx, car(id))
		ucs.Require().NoError(err)
	}
	cars, err := ucs.uc.List(ucs.ctx)
	ucs.Require().NoError(err)
	ucs.Equal([]model.Car{*car("2"), *car("1")}, cars)

	got, err := ucs.uc.Get(ucs.ctx, "1")
	ucs.Require().NoError(err)
	ucs.Equal(car("1"), got)
}

func (ucs *UseCaseSuite) TestCreateRejections() {
	bad := car("3")
	bad.Name = "X"
	_, err := ucs.uc.Create(ucs.ctx, bad)
	ucs.Equal(cerr.KindUnprocessable, cerr.KindOf(err))
	ucs.EqualError(err, "name is too short")

	_, err = ucs.uc.Create(ucs.ctx, car("3"))
	ucs.Require().NoError(err)
	_, err = ucs.uc.Create(ucs.ctx, car("3"))
	ucs.Equal(cerr.KindConflict, cerr.KindOf(err))
}

func (ucs *UseCaseSuite) TestUpdate() {
	_, err := ucs.uc.Create(ucs.ctx, car("4"))
	ucs.Require().NoError(err)

	renamed := car("4")
	renamed.Name = "Renamed"
	got, err := ucs.uc.Update(ucs.ctx, "4", renamed)
	ucs.Require().NoError(err)
	ucs.Equal("Renamed", got.Name)

	_, err = ucs.uc.Update(ucs.ctx, "5", car("5"))
	ucs.Equal(cerr.KindNotFound, cerr.KindOf(err))
	_, err = ucs.uc.Update(ucs.ctx, "x", car("5"))
	ucs.Equal(cerr.KindBadRequest, cerr.KindOf(err))
}

func (ucs *UseCaseSuite) TestDelete() {
	_, err := ucs.uc.Create(ucs.ctx, car("6"))
	ucs.Require().NoError(err)
	ucs.NoError(ucs.uc.Delete(ucs.ctx, "6"))
	ucs.Equal(cerr.KindNotFound, cerr.KindOf(ucs.uc.Delete(ucs.ctx, "6")))

	_, err = ucs.uc.Get(ucs.ctx, "6")
	ucs.EqualError(err, "car 6 not found")
}

func (ucs *UseCaseSuite) TestDuplicateOptions() {
	_, err := carsuc.New(
		ucs.ctx, memory.NewPool(), carsrp.New(),
		carsuc.WithMigration(), carsuc.WithMigration(),
	)
	ucs.Error(err)
}
