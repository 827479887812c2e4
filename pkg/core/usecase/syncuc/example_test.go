// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package syncuc_test

import (
	"context"
	"fmt"

	"github.com/momeni/carsync/pkg/core/model"
	"github.com/momeni/carsync/pkg/core/usecase/syncuc"
)

func ExampleStore() {
	ctx := context.Background()
	remote := &fakeRemote{stored: []model.Car{car("1"), car("2")}}
	s, err := syncuc.New(remote)
	if err != nil {
		panic(err)
	}
	defer s.Close()

	<-s.Refresh(ctx)
	<-s.Add(ctx, car("7"))
	<-s.Remove(ctx, "1")
	st := s.Snapshot()
	fmt.Println(ids(st.Items), st.Busy, st.Deleted, st.Message)

	<-s.Add(ctx, car("2"))
	fmt.Printf("%q\n", s.Snapshot().LastError)
	// Output:
	// [2 7] false true car deleted successfully
	// "car already exists for this id"
}
