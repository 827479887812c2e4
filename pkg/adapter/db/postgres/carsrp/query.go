// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/momeni/carsync/pkg/adapter/db/postgres"
	"github.com/momeni/carsync/pkg/core/cerr"
	"github.com/momeni/carsync/pkg/core/model"
)

type gCar struct {
	ID        string           `gorm:"primaryKey"`
	ImageURL  string           `gorm:"not null"`
	Year      string           `gorm:"not null"`
	Name      string           `gorm:"not null"`
	Licence   string           `gorm:"not null"`
	Place     model.Coordinate `gorm:"embedded"`
	CreatedAt time.Time        `gorm:"index"`
}

func (gc *gCar) TableName() string {
	return "cars"
}

func (gc *gCar) Model() *model.Car {
	return &model.Car{
		ID:       gc.ID,
		ImageURL: gc.ImageURL,
		Year:     gc.Year,
		Name:     gc.Name,
		Licence:  gc.Licence,
		Place:    gc.Place,
	}
}

func fromModel(c *model.Car) *gCar {
	return &gCar{
		ID:       c.ID,
		ImageURL: c.ImageURL,
		Year:     c.Year,
		Name:     c.Name,
		Licence:  c.Licence,
		Place:    c.Place,
	}
}

// Migrate creates the cars table and its indices if they are missing.
func Migrate[Q postgres.Queryer](ctx context.Context, q Q) error {
	if err := q.GORM(ctx).AutoMigrate(&gCar{}); err != nil {
		return fmt.Errorf("auto-migrate cars: %w", err)
	}
	return nil
}

// List returns all cars in the order of their creation.
func List[Q postgres.Queryer](ctx context.Context, q Q) ([]model.Car, error) {
	var gcs []gCar
	err := q.GORM(ctx).Order("created_at, id").Find(&gcs).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	cars := make([]model.Car, 0, len(gcs))
	for i := range gcs {
		cars = append(cars, *gcs[i].Model())
	}
	return cars, nil
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id string) (*model.Car, error) {
	var gc gCar
	err := q.GORM(ctx).Where("id = ?", id).Take(&gc).Error
	if err != nil {
		return nil, notFound(postgres.Classify(err), id)
	}
	return gc.Model(), nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, c *model.Car) (*model.Car, error) {
	gc := fromModel(c)
	if err := q.GORM(ctx).Create(gc).Error; err != nil {
		err = postgres.Classify(err)
		if cerr.KindOf(err) == cerr.KindConflict {
			return nil, cerr.Conflict(
				fmt.Errorf("car %s already exists: %w", c.ID, err),
			)
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gc.Model(), nil
}

// Update replaces all fields of the id car (including its identifier)
// by the fields of the c car.
func Update[Q postgres.Queryer](ctx context.Context, q Q, id string, c *model.Car) (*model.Car, error) {
	tt := q.GORM(ctx).Model(&gCar{}).Where("id = ?", id).Updates(
		map[string]any{
			"id":        c.ID,
			"image_url": c.ImageURL,
			"year":      c.Year,
			"name":      c.Name,
			"licence":   c.Licence,
			"lat":       c.Place.Lat,
			"lon":       c.Place.Lon,
		},
	)
	if err := postgres.Classify(tt.Error); err != nil {
		if cerr.KindOf(err) == cerr.KindConflict {
			return nil, cerr.Conflict(
				fmt.Errorf("car %s already exists: %w", c.ID, err),
			)
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	if tt.RowsAffected == 0 {
		return nil, notFound(nil, id)
	}
	updated := *c
	return &updated, nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, id string) error {
	tt := q.GORM(ctx).Where("id = ?", id).Delete(&gCar{})
	if err := tt.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if tt.RowsAffected == 0 {
		return notFound(nil, id)
	}
	return nil
}

// notFound converts a missing id car (reported by the err cerr.NotFound
// error or nil) into a cerr.NotFound error. Other errors are wrapped.
func notFound(err error, id string) error {
	if err != nil && cerr.KindOf(err) != cerr.KindNotFound {
		return fmt.Errorf("query: %w", err)
	}
	return cerr.NotFound(fmt.Errorf("car %s not found", id))
}
