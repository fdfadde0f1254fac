package offer

import (
	"context"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/store"
	"github.com/iov-one/ledger/x/cash"
	. "github.com/smartystreets/goconvey/convey"
)

type testRegistry map[string]ledger.Handler

func (r testRegistry) Handle(path string, h ledger.Handler) {
	if _, ok := r[path]; ok {
		panic("duplicate path " + path)
	}
	r[path] = h
}

func TestHandlers(t *testing.T) {
	Convey("Given two funded users and the offer handlers", t, func() {
		user1 := ledgertest.NewCondition()
		user2 := ledgertest.NewCondition()
		auth := &ledgertest.CtxAuth{Key: "offer"}

		kv := store.MemStore()
		bank := cash.NewController(cash.NewBucket())
		So(bank.IssueCoins(kv, user1.Address(), coin.NewAmount(userBalance)), ShouldBeNil)
		So(bank.IssueCoins(kv, user2.Address(), coin.NewAmount(userBalance)), ShouldBeNil)

		r := testRegistry{}
		RegisterRoutes(r, auth, bank)
		So(r, ShouldContainKey, "offer/create")
		So(r, ShouldContainKey, "offer/accept")
		So(r, ShouldContainKey, "offer/cancel")

		as := func(c ledger.Condition) ledger.Context {
			return auth.SetConditions(context.Background(), c)
		}
		deliver := func(c ledger.Condition, msg ledger.Msg) (*ledger.DeliverResult, error) {
			return r[msg.Path()].Deliver(as(c), kv, &ledgertest.Tx{Msg: msg})
		}
		check := func(c ledger.Condition, msg ledger.Msg) error {
			_, err := r[msg.Path()].Check(as(c), kv.CacheWrap(), &ledgertest.Tx{Msg: msg})
			return err
		}
		create := &CreateMsg{Recipient: user2.Address(), Amount: coin.NewAmount(offerAmount)}

		Convey("an unsigned create is rejected", func() {
			_, err := r["offer/create"].Deliver(context.Background(), kv, &ledgertest.Tx{Msg: create})
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})

		Convey("a zero deposit is rejected by check and deliver", func() {
			msg := &CreateMsg{Recipient: user2.Address()}
			So(errors.ErrInvalidAmount.Is(check(user1, msg)), ShouldBeTrue)
			_, err := deliver(user1, msg)
			So(errors.ErrInvalidAmount.Is(err), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "Must pay more than 0")
		})

		Convey("a zero deposit to a malformed recipient reports the amount", func() {
			msg := &CreateMsg{Recipient: ledger.Address("short")}
			So(errors.ErrInvalidAmount.Is(check(user1, msg)), ShouldBeTrue)
			_, err := deliver(user1, msg)
			So(errors.ErrInvalidAmount.Is(err), ShouldBeTrue)
		})

		Convey("an offer to self is rejected", func() {
			msg := &CreateMsg{Recipient: user1.Address(), Amount: coin.NewAmount(offerAmount)}
			So(ErrSelfDealing.Is(check(user1, msg)), ShouldBeTrue)
			_, err := deliver(user1, msg)
			So(err.Error(), ShouldEqual, "Cannot create offer for self")
		})

		Convey("when user1 creates an offer for user2", func() {
			So(check(user1, create), ShouldBeNil)
			res, err := deliver(user1, create)
			So(err, ShouldBeNil)
			So(res.Data, ShouldResemble, orm.EncodeSequence(1))
			So(string(res.Tags[0].Value), ShouldEqual, "offer/create")
			So(string(res.Tags[1].Value), ShouldEqual, "1")

			Convey("user1 cannot accept it", func() {
				accept := &AcceptMsg{OfferID: 1}
				So(errors.ErrUnauthorized.Is(check(user1, accept)), ShouldBeTrue)
				_, err := deliver(user1, accept)
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
			})

			Convey("user2 accepts it and is paid", func() {
				accept := &AcceptMsg{OfferID: 1}
				So(check(user2, accept), ShouldBeNil)
				res, err := deliver(user2, accept)
				So(err, ShouldBeNil)
				So(string(res.Tags[0].Value), ShouldEqual, "offer/accept")

				balance, err := bank.Balance(kv, user2.Address())
				So(err, ShouldBeNil)
				So(balance, ShouldResemble, coin.NewAmount(userBalance+offerAmount))

				Convey("and the offer cannot be released again", func() {
					_, err := deliver(user2, accept)
					So(errors.ErrInvalidState.Is(err), ShouldBeTrue)
					_, err = deliver(user1, &CancelMsg{OfferID: 1})
					So(errors.ErrInvalidState.Is(err), ShouldBeTrue)
				})
			})

			Convey("user1 cancels it and is refunded", func() {
				cancel := &CancelMsg{OfferID: 1}
				So(errors.ErrUnauthorized.Is(check(user2, cancel)), ShouldBeTrue)
				So(check(user1, cancel), ShouldBeNil)
				_, err := deliver(user1, cancel)
				So(err, ShouldBeNil)

				balance, err := bank.Balance(kv, user1.Address())
				So(err, ShouldBeNil)
				So(balance, ShouldResemble, coin.NewAmount(userBalance))
			})
		})

		Convey("releasing an unknown offer is not found", func() {
			So(errors.ErrNotFound.Is(check(user2, &AcceptMsg{OfferID: 3})), ShouldBeTrue)
			_, err := deliver(user1, &CancelMsg{OfferID: 3})
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})

		Convey("a message of another type is refused", func() {
			_, err := r["offer/accept"].Deliver(as(user2), kv, &ledgertest.Tx{Msg: create})
			So(errors.ErrInvalidType.Is(err), ShouldBeTrue)
		})
	})
}

func TestQueries(t *testing.T) {
	Convey("Given a ledger with two offers", t, func() {
		kv := store.MemStore()
		bank := cash.NewController(cash.NewBucket())
		user1, user2 := ledgertest.NewAddress(), ledgertest.NewAddress()
		So(bank.IssueCoins(kv, user1, coin.NewAmount(100)), ShouldBeNil)

		l := NewLedger(bank)
		ctx := context.Background()
		_, err := l.Create(ctx, kv, user1, user2, coin.NewAmount(10))
		So(err, ShouldBeNil)
		_, err = l.Create(ctx, kv, user1, user2, coin.NewAmount(20))
		So(err, ShouldBeNil)

		qr := ledger.NewQueryRouter()
		RegisterQuery(qr)

		Convey("/offers/last returns the counter", func() {
			res, err := qr.Handler("/offers/last").Query(kv, ledger.KeyQueryMod, nil)
			So(err, ShouldBeNil)
			So(res, ShouldHaveLength, 1)
			last, err := orm.DecodeSequence(res[0].Value)
			So(err, ShouldBeNil)
			So(last, ShouldEqual, 2)

			_, err = qr.Handler("/offers/last").Query(kv, ledger.PrefixQueryMod, nil)
			So(errors.ErrInvalidInput.Is(err), ShouldBeTrue)
		})

		Convey("/offers returns an offer by id", func() {
			res, err := qr.Handler("/offers").Query(kv, ledger.KeyQueryMod, orm.EncodeSequence(2))
			So(err, ShouldBeNil)
			So(res, ShouldHaveLength, 1)

			var o Offer
			So(NewBucket().Decode(res[0].Value, &o), ShouldBeNil)
			So(o.ID, ShouldEqual, 2)
			So(o.Amount, ShouldResemble, coin.NewAmount(20))
			So(o.Status, ShouldEqual, StatusActive)
		})

		Convey("/offers/recipient lists the offers of a recipient", func() {
			res, err := qr.Handler("/offers/recipient").Query(kv, ledger.KeyQueryMod, user2)
			So(err, ShouldBeNil)
			So(res, ShouldHaveLength, 2)

			res, err = qr.Handler("/offers/creator").Query(kv, ledger.KeyQueryMod, user2)
			So(err, ShouldBeNil)
			So(res, ShouldBeEmpty)
		})
	})
}
