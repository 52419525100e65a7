package repo

import (
	"context"

	"gorm.io/gorm"

	"rental-backoffice/internal/domain"
)

// The list views carry a few related records. They are loaded in one
// IN query per relation after the page itself, so paging and ordering stay
// on the primary table.

func uniq(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func userRefs(ctx context.Context, db *gorm.DB, ids []string) (map[string]*domain.UserRef, error) {
	out := map[string]*domain.UserRef{}
	if ids = uniq(ids); len(ids) == 0 {
		return out, nil
	}
	var refs []domain.UserRef
	err := db.WithContext(ctx).Model(&domain.User{}).
		Select("id", "name", "email").
		Where("id IN ?", ids).
		Find(&refs).Error
	if err != nil {
		return nil, domain.Upstream("load users", err)
	}
	for i := range refs {
		out[refs[i].ID] = &refs[i]
	}
	return out, nil
}

// countBy returns COUNT(*) grouped by col for the given keys.
func countBy(ctx context.Context, db *gorm.DB, model any, col string, ids []string) (map[string]int64, error) {
	out := map[string]int64{}
	if ids = uniq(ids); len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		K string
		N int64
	}
	err := db.WithContext(ctx).Model(model).
		Select(col+" AS k, COUNT(*) AS n").
		Where(col+" IN ?", ids).
		Group(col).
		Scan(&rows).Error
	if err != nil {
		return nil, domain.Upstream("count by "+col, err)
	}
	for _, r := range rows {
		out[r.K] = r.N
	}
	return out, nil
}

func withUserDetails(ctx context.Context, db *gorm.DB, us []domain.User) error {
	ids := make([]string, len(us))
	for i := range us {
		ids[i] = us[i].ID
	}
	if len(ids) == 0 {
		return nil
	}
	var kycs []domain.KYC
	if err := db.WithContext(ctx).Where("user_id IN ?", ids).Find(&kycs).Error; err != nil {
		return domain.Upstream("load kyc", err)
	}
	byUser := make(map[string]*domain.KYC, len(kycs))
	for i := range kycs {
		byUser[kycs[i].UserID] = &kycs[i]
	}
	listings, err := countBy(ctx, db, &domain.Listing{}, "user_id", ids)
	if err != nil {
		return err
	}
	rented, err := countBy(ctx, db, &domain.Booking{}, "renter_id", ids)
	if err != nil {
		return err
	}
	lent, err := countBy(ctx, db, &domain.Booking{}, "lender_id", ids)
	if err != nil {
		return err
	}
	for i := range us {
		id := us[i].ID
		us[i].KYC = byUser[id]
		us[i].Count = &domain.UserCount{
			Listings:         listings[id],
			BookingsAsRenter: rented[id],
			BookingsAsLender: lent[id],
		}
	}
	return nil
}

func withListingDetails(ctx context.Context, db *gorm.DB, ls []domain.Listing) error {
	if len(ls) == 0 {
		return nil
	}
	ids := make([]string, len(ls))
	owners := make([]string, len(ls))
	for i := range ls {
		ids[i], owners[i] = ls[i].ID, ls[i].UserID
	}
	refs, err := userRefs(ctx, db, owners)
	if err != nil {
		return err
	}
	bookings, err := countBy(ctx, db, &domain.Booking{}, "listing_id", ids)
	if err != nil {
		return err
	}
	for i := range ls {
		ls[i].Owner = refs[ls[i].UserID]
		ls[i].Count = &domain.ListingCount{Bookings: bookings[ls[i].ID]}
	}
	return nil
}

func withBookingDetails(ctx context.Context, db *gorm.DB, bs []domain.Booking) error {
	if len(bs) == 0 {
		return nil
	}
	listingIDs := make([]string, 0, len(bs))
	people := make([]string, 0, 2*len(bs))
	for _, b := range bs {
		listingIDs = append(listingIDs, b.ListingID)
		people = append(people, b.RenterID, b.LenderID)
	}
	var ls []domain.Listing
	if err := db.WithContext(ctx).Where("id IN ?", uniq(listingIDs)).Find(&ls).Error; err != nil {
		return domain.Upstream("load listings", err)
	}
	byID := make(map[string]*domain.Listing, len(ls))
	for i := range ls {
		byID[ls[i].ID] = &ls[i]
	}
	refs, err := userRefs(ctx, db, people)
	if err != nil {
		return err
	}
	for i := range bs {
		bs[i].Listing = byID[bs[i].ListingID]
		bs[i].Renter = refs[bs[i].RenterID]
		bs[i].Lender = refs[bs[i].LenderID]
	}
	return nil
}

func withDisputeDetails(ctx context.Context, db *gorm.DB, ds []domain.Dispute) error {
	if len(ds) == 0 {
		return nil
	}
	bookingIDs := make([]string, 0, len(ds))
	reporters := make([]string, 0, len(ds))
	for _, d := range ds {
		bookingIDs = append(bookingIDs, d.BookingID)
		reporters = append(reporters, d.ReportedBy)
	}
	var bs []domain.Booking
	if err := db.WithContext(ctx).Where("id IN ?", uniq(bookingIDs)).Find(&bs).Error; err != nil {
		return domain.Upstream("load bookings", err)
	}
	if err := withBookingDetails(ctx, db, bs); err != nil {
		return err
	}
	byID := make(map[string]*domain.Booking, len(bs))
	for i := range bs {
		byID[bs[i].ID] = &bs[i]
	}
	refs, err := userRefs(ctx, db, reporters)
	if err != nil {
		return err
	}
	for i := range ds {
		ds[i].Booking = byID[ds[i].BookingID]
		ds[i].Reporter = refs[ds[i].ReportedBy]
	}
	return nil
}
