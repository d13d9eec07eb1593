package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "shortlet/internal/domain/booking"
	"shortlet/internal/domain/listings"
	"shortlet/internal/domain/pricing"
	domainrange "shortlet/internal/domain/shared/daterange"
	"shortlet/internal/domain/shared/money"
)

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("agg_booking")}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

// Save upserts with a {_id, version} filter: a matched document proves the
// caller held the latest version, anything else is a concurrent update.
func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainbooking.ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return domainbooking.ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID string) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"guest_id": guestID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

var _ domainbooking.Repository = (*BookingRepository)(nil)

type moneyDocument struct {
	Amount   int64  `bson:"amount"`
	Currency string `bson:"currency"`
}

type breakdownDocument struct {
	Nights   int           `bson:"nights"`
	Nightly  moneyDocument `bson:"nightly"`
	Base     moneyDocument `bson:"base"`
	Cleaning moneyDocument `bson:"cleaning"`
	Service  moneyDocument `bson:"service"`
	Taxes    moneyDocument `bson:"taxes"`
	Total    moneyDocument `bson:"total"`
}

type bookingDocument struct {
	ID           string            `bson:"_id"`
	ListingID    string            `bson:"listing_id"`
	GuestID      string            `bson:"guest_id"`
	CheckIn      int64             `bson:"check_in"`
	CheckOut     int64             `bson:"check_out"`
	Guests       int               `bson:"guests"`
	Price        breakdownDocument `bson:"price"`
	DisplayTotal moneyDocument     `bson:"display_total"`
	Status       string            `bson:"status"`
	CancelReason string            `bson:"cancel_reason,omitempty"`
	CreatedAt    int64             `bson:"created_at"`
	UpdatedAt    int64             `bson:"updated_at"`
	Version      int64             `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:           string(b.ID),
		ListingID:    string(b.ListingID),
		GuestID:      b.GuestID,
		CheckIn:      b.Range.CheckIn.UnixMilli(),
		CheckOut:     b.Range.CheckOut.UnixMilli(),
		Guests:       b.Guests,
		Price:        newBreakdownDocument(b.Price),
		DisplayTotal: newMoneyDocument(b.DisplayTotal),
		Status:       string(b.Status),
		CancelReason: b.CancelReason,
		CreatedAt:    b.CreatedAt.UnixMilli(),
		UpdatedAt:    b.UpdatedAt.UnixMilli(),
		Version:      b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:        domainbooking.BookingID(d.ID),
		ListingID: listings.ListingID(d.ListingID),
		GuestID:   d.GuestID,
		Range: domainrange.DateRange{
			CheckIn:  timestampToTime(d.CheckIn),
			CheckOut: timestampToTime(d.CheckOut),
		},
		Guests:       d.Guests,
		Price:        d.Price.toBreakdown(),
		DisplayTotal: d.DisplayTotal.toMoney(),
		Status:       domainbooking.ParseStatus(d.Status),
		CancelReason: d.CancelReason,
		CreatedAt:    timestampToTime(d.CreatedAt),
		UpdatedAt:    timestampToTime(d.UpdatedAt),
		Version:      d.Version,
	}
}

func newBreakdownDocument(p pricing.PriceBreakdown) breakdownDocument {
	return breakdownDocument{
		Nights:   p.Nights,
		Nightly:  newMoneyDocument(p.Nightly),
		Base:     newMoneyDocument(p.Base),
		Cleaning: newMoneyDocument(p.Cleaning),
		Service:  newMoneyDocument(p.Service),
		Taxes:    newMoneyDocument(p.Taxes),
		Total:    newMoneyDocument(p.Total),
	}
}

func (d breakdownDocument) toBreakdown() pricing.PriceBreakdown {
	return pricing.PriceBreakdown{
		Nights:   d.Nights,
		Nightly:  d.Nightly.toMoney(),
		Base:     d.Base.toMoney(),
		Cleaning: d.Cleaning.toMoney(),
		Service:  d.Service.toMoney(),
		Taxes:    d.Taxes.toMoney(),
		Total:    d.Total.toMoney(),
	}
}

func newMoneyDocument(m money.Money) moneyDocument {
	return moneyDocument{Amount: m.Amount, Currency: m.Currency}
}

func (d moneyDocument) toMoney() money.Money {
	return money.Money{Amount: d.Amount, Currency: d.Currency}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
