package storage_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/technique-ps/technique/internal/storage"
)

func TestActualsUpdateValidate(t *testing.T) {
	ip := func(v int) *int { return &v }
	fp := func(v float64) *float64 { return &v }

	Convey("Given logged actuals", t, func() {
		Convey("Then non-negative values pass", func() {
			upd := storage.ActualsUpdate{Sets: ip(3), Reps: ip(8), LoadKg: fp(42.5)}
			So(upd.Validate(), ShouldBeNil)
		})

		Convey("And zero and empty updates pass", func() {
			So(storage.ActualsUpdate{}.Validate(), ShouldBeNil)
			So(storage.ActualsUpdate{Reps: ip(0), LoadKg: fp(0)}.Validate(), ShouldBeNil)
		})

		Convey("And an update without done/notes leaves them unset", func() {
			upd := storage.ActualsUpdate{Reps: ip(6)}
			So(upd.Completed, ShouldBeNil)
			So(upd.Notes, ShouldBeNil)
		})

		Convey("And any negative field is rejected", func() {
			bad := []storage.ActualsUpdate{
				{Sets: ip(-1)},
				{Reps: ip(-3)},
				{TimeSec: ip(-10)},
				{LoadKg: fp(-0.5)},
			}
			for _, upd := range bad {
				So(errors.Is(upd.Validate(), storage.ErrInvalidInput), ShouldBeTrue)
			}
		})
	})
}
