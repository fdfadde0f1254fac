package offer

import (
	"testing"

	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOfferLifecycle(t *testing.T) {
	Convey("Given two funded users and an empty ledger", t, func() {
		f := newFixture(t)
		amount := coin.NewAmount(offerAmount)

		Convey("Creating an offer escrows the amount", func() {
			id, err := f.ledger.Create(f.ctx, f.db, f.user1, f.user2, amount)
			So(err, ShouldBeNil)
			So(id, ShouldEqual, 1)
			So(f.balance(t, f.user1), ShouldResemble, coin.NewAmount(userBalance-offerAmount))
			So(f.balance(t, f.custody), ShouldResemble, amount)

			Convey("The recipient accepts it", func() {
				_, err := f.ledger.Accept(f.ctx, f.db, f.user2, id)
				So(err, ShouldBeNil)
				So(f.status(t, id), ShouldEqual, StatusAccepted)
				So(f.balance(t, f.user2), ShouldResemble, coin.NewAmount(userBalance+offerAmount))
				So(f.balance(t, f.custody).IsZero(), ShouldBeTrue)

				Convey("and it cannot be released again", func() {
					_, err := f.ledger.Accept(f.ctx, f.db, f.user2, id)
					So(errors.ErrInvalidState.Is(err), ShouldBeTrue)
					_, err = f.ledger.Cancel(f.ctx, f.db, f.user1, id)
					So(errors.ErrInvalidState.Is(err), ShouldBeTrue)
					So(f.balance(t, f.user1), ShouldResemble, coin.NewAmount(userBalance-offerAmount))
				})
			})

			Convey("The creator cancels it", func() {
				_, err := f.ledger.Cancel(f.ctx, f.db, f.user1, id)
				So(err, ShouldBeNil)
				So(f.status(t, id), ShouldEqual, StatusCancelled)
				So(f.balance(t, f.user1), ShouldResemble, coin.NewAmount(userBalance))

				Convey("and the recipient can no longer accept", func() {
					_, err := f.ledger.Accept(f.ctx, f.db, f.user2, id)
					So(errors.ErrInvalidState.Is(err), ShouldBeTrue)
					So(f.balance(t, f.user2), ShouldResemble, coin.NewAmount(userBalance))
				})
			})

			Convey("Nobody else can release it", func() {
				_, err := f.ledger.Accept(f.ctx, f.db, f.user3, id)
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
				_, err = f.ledger.Cancel(f.ctx, f.db, f.user3, id)
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
				So(f.status(t, id), ShouldEqual, StatusActive)
			})

			Convey("The next offer gets the next id", func() {
				next, err := f.ledger.Create(f.ctx, f.db, f.user2, f.user1, amount)
				So(err, ShouldBeNil)
				So(next, ShouldEqual, 2)
				So(f.lastID(t), ShouldEqual, 2)
			})
		})

		Convey("Rejected offers leave no trace", func() {
			_, err := f.ledger.Create(f.ctx, f.db, f.user1, f.user2, coin.NewAmount(0))
			So(errors.ErrInvalidAmount.Is(err), ShouldBeTrue)
			_, err = f.ledger.Create(f.ctx, f.db, f.user1, f.user1, amount)
			So(ErrSelfDealing.Is(err), ShouldBeTrue)
			_, err = f.ledger.Create(f.ctx, f.db, f.user3, f.user1, amount)
			So(errors.ErrInsufficientAmount.Is(err), ShouldBeTrue)

			So(f.lastID(t), ShouldEqual, 0)
			So(f.balance(t, f.user1), ShouldResemble, coin.NewAmount(userBalance))
			So(f.balance(t, f.custody).IsZero(), ShouldBeTrue)
		})
	})
}
