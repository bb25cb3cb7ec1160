package facade_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stayhub/internal/facade"
	"github.com/iliyamo/stayhub/internal/model"
	"github.com/iliyamo/stayhub/internal/repository"
	"github.com/iliyamo/stayhub/internal/validate"
)

const testCost = 4

func newFacade() *facade.Facade {
	return facade.NewInMemory(testCost)
}

func seedUser(t *testing.T, f *facade.Facade, first, email string) (*model.User, facade.Caller) {
	t.Helper()
	u, err := f.CreateUser(context.Background(), facade.CreateUserInput{
		FirstName: first,
		LastName:  "Tester",
		Email:     email,
		Password:  "Secret1",
	}, facade.Caller{})
	require.NoError(t, err)
	return u, facade.Caller{ID: u.ID}
}

func seedAdmin(t *testing.T, f *facade.Facade, email string) (*model.User, facade.Caller) {
	t.Helper()
	u, err := f.CreateUser(context.Background(), facade.CreateUserInput{
		FirstName: "Admin",
		LastName:  "Tester",
		Email:     email,
		Password:  "Secret1",
		IsAdmin:   true,
	}, facade.Caller{ID: "bootstrap", IsAdmin: true})
	require.NoError(t, err)
	require.True(t, u.IsAdmin)
	return u, facade.Caller{ID: u.ID, IsAdmin: true}
}

func seedPlace(t *testing.T, f *facade.Facade, owner facade.Caller, title string, amenityIDs ...string) *model.Place {
	t.Helper()
	p, err := f.CreatePlace(context.Background(), facade.CreatePlaceInput{
		Title:      title,
		Price:      100,
		Latitude:   48.85,
		Longitude:  2.35,
		AmenityIDs: amenityIDs,
	}, owner)
	require.NoError(t, err)
	return p
}

func assertViolated(t *testing.T, err error, fields ...string) {
	t.Helper()
	var vErr *validate.ValidationError
	require.ErrorAs(t, err, &vErr)
	got := make([]string, 0, len(vErr.Violations))
	for _, v := range vErr.Violations {
		got = append(got, v.Field)
	}
	assert.ElementsMatch(t, fields, got)
}

func f64(v float64) *float64 { return &v }

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFacade()

	_, _ = seedUser(t, f, "Ada", "ada@example.com")

	_, err := f.CreateUser(ctx, facade.CreateUserInput{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "ADA@example.com",
		Password:  "Secret1",
	}, facade.Caller{})
	require.ErrorIs(t, err, facade.ErrConflict)

	users, err := f.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1, "the conflicting registration must not persist anything")
}

func TestCreateUserIgnoresAdminFlagFromNonAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFacade()

	u, err := f.CreateUser(ctx, facade.CreateUserInput{
		FirstName: "Sneaky",
		LastName:  "Tester",
		Email:     "sneaky@example.com",
		Password:  "Secret1",
		IsAdmin:   true,
	}, facade.Caller{})
	require.NoError(t, err)
	assert.False(t, u.IsAdmin)
}

func TestGetUserNotFound(t *testing.T) {
	f := newFacade()
	_, err := f.GetUser(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetUserByEmail(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	u, _ := seedUser(t, f, "Ada", "ada@example.com")

	got, err := f.GetUserByEmail(ctx, "  ADA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = f.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateUserAuthorization(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	u, owner := seedUser(t, f, "Ada", "ada@example.com")
	_, stranger := seedUser(t, f, "Eve", "eve@example.com")
	_, admin := seedAdmin(t, f, "admin@example.com")

	first := "Changed"

	_, err := f.UpdateUser(ctx, u.ID, model.UserUpdate{FirstName: &first}, facade.Caller{})
	assert.ErrorIs(t, err, facade.ErrUnauthenticated)

	_, err = f.UpdateUser(ctx, u.ID, model.UserUpdate{FirstName: &first}, stranger)
	assert.ErrorIs(t, err, facade.ErrForbidden)

	got, err := f.UpdateUser(ctx, u.ID, model.UserUpdate{FirstName: &first}, owner)
	require.NoError(t, err)
	assert.Equal(t, "Changed", got.FirstName)

	other := "ByAdmin"
	got, err = f.UpdateUser(ctx, u.ID, model.UserUpdate{FirstName: &other}, admin)
	require.NoError(t, err)
	assert.Equal(t, "ByAdmin", got.FirstName)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, _ = seedUser(t, f, "Ada", "ada@example.com")
	u, caller := seedUser(t, f, "Eve", "eve@example.com")

	taken := "ada@example.com"
	_, err := f.UpdateUser(ctx, u.ID, model.UserUpdate{Email: &taken}, caller)
	require.ErrorIs(t, err, facade.ErrConflict)

	same, err := f.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "eve@example.com", same.Email)

	// Re-submitting one's own address is not a conflict.
	own := "eve@example.com"
	_, err = f.UpdateUser(ctx, u.ID, model.UserUpdate{Email: &own}, caller)
	assert.NoError(t, err)
}

func TestUpdateUserTimestamps(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	u, caller := seedUser(t, f, "Ada", "ada@example.com")

	time.Sleep(time.Millisecond)
	first := "Grace"
	got, err := f.UpdateUser(ctx, u.ID, model.UserUpdate{FirstName: &first}, caller)
	require.NoError(t, err)

	assert.Equal(t, u.CreatedAt, got.CreatedAt, "CreatedAt never changes")
	assert.True(t, got.UpdatedAt.After(u.UpdatedAt), "UpdatedAt advances on every successful update")
}

func TestDeleteUserBlockedByOwnedPlaces(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	u, owner := seedUser(t, f, "Ada", "ada@example.com")
	seedPlace(t, f, owner, "Loft")

	err := f.DeleteUser(ctx, u.ID, owner)
	require.ErrorIs(t, err, facade.ErrConflict)

	_, err = f.GetUser(ctx, u.ID)
	assert.NoError(t, err)
}

func TestDeleteUserBlockedByAuthoredReviews(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, owner := seedUser(t, f, "Ada", "ada@example.com")
	reviewer, rcaller := seedUser(t, f, "Eve", "eve@example.com")
	p := seedPlace(t, f, owner, "Loft")

	_, err := f.CreateReview(ctx, facade.CreateReviewInput{
		Rating: 4, Comment: "nice", PlaceID: p.ID,
	}, rcaller)
	require.NoError(t, err)

	err = f.DeleteUser(ctx, reviewer.ID, rcaller)
	assert.ErrorIs(t, err, facade.ErrConflict)
}

func TestDeleteUserClean(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	u, caller := seedUser(t, f, "Ada", "ada@example.com")

	require.NoError(t, f.DeleteUser(ctx, u.ID, caller))
	_, err := f.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreatePlaceRequiresAuth(t *testing.T) {
	f := newFacade()
	_, err := f.CreatePlace(context.Background(), facade.CreatePlaceInput{
		Title: "Loft", Price: 10,
	}, facade.Caller{})
	assert.ErrorIs(t, err, facade.ErrUnauthenticated)
}

func TestCreatePlaceDefaultsOwnerToCaller(t *testing.T) {
	f := newFacade()
	u, caller := seedUser(t, f, "Ada", "ada@example.com")

	p := seedPlace(t, f, caller, "Loft")
	assert.Equal(t, u.ID, p.OwnerID)
}

func TestCreatePlaceForOtherOwner(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	target, _ := seedUser(t, f, "Ada", "ada@example.com")
	_, stranger := seedUser(t, f, "Eve", "eve@example.com")
	_, admin := seedAdmin(t, f, "admin@example.com")

	in := facade.CreatePlaceInput{
		Title: "Loft", Price: 10, OwnerID: target.ID,
	}
	_, err := f.CreatePlace(ctx, in, stranger)
	assert.ErrorIs(t, err, facade.ErrForbidden)

	p, err := f.CreatePlace(ctx, in, admin)
	require.NoError(t, err)
	assert.Equal(t, target.ID, p.OwnerID)
}

func TestCreatePlaceAggregatesCrossEntityViolations(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, caller := seedUser(t, f, "Ada", "ada@example.com")

	_, err := f.CreatePlace(ctx, facade.CreatePlaceInput{
		Title:      "Loft",
		Price:      -5,
		AmenityIDs: []string{"ghost-amenity"},
	}, caller)
	assertViolated(t, err, "price", "amenity_ids")

	places, lerr := f.ListPlaces(ctx)
	require.NoError(t, lerr)
	assert.Empty(t, places, "nothing persists when validation fails")
}

func TestUpdatePlaceOwnerOrAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, owner := seedUser(t, f, "Ada", "ada@example.com")
	_, stranger := seedUser(t, f, "Eve", "eve@example.com")
	_, admin := seedAdmin(t, f, "admin@example.com")
	p := seedPlace(t, f, owner, "Loft")

	price := 250.0
	_, err := f.UpdatePlace(ctx, p.ID, model.PlaceUpdate{Price: &price}, stranger)
	assert.ErrorIs(t, err, facade.ErrForbidden)

	got, err := f.UpdatePlace(ctx, p.ID, model.PlaceUpdate{Price: &price}, owner)
	require.NoError(t, err)
	assert.Equal(t, 250.0, got.Price)

	price = 300
	got, err = f.UpdatePlace(ctx, p.ID, model.PlaceUpdate{Price: &price}, admin)
	require.NoError(t, err)
	assert.Equal(t, 300.0, got.Price)
}

func TestUpdatePlaceRejectsUnknownAmenity(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, owner := seedUser(t, f, "Ada", "ada@example.com")
	p := seedPlace(t, f, owner, "Loft")

	ids := []string{"ghost"}
	_, err := f.UpdatePlace(ctx, p.ID, model.PlaceUpdate{AmenityIDs: &ids}, owner)
	assertViolated(t, err, "amenity_ids")
}

func TestUpdatePlaceAggregatesFieldAndReferenceViolations(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, owner := seedUser(t, f, "Ada", "ada@example.com")
	p := seedPlace(t, f, owner, "Loft")

	empty := ""
	ids := []string{"ghost"}
	_, err := f.UpdatePlace(ctx, p.ID, model.PlaceUpdate{Title: &empty, AmenityIDs: &ids}, owner)
	assertViolated(t, err, "title", "amenity_ids")

	// The failed attempt left the place untouched.
	got, gerr := f.GetPlace(ctx, p.ID)
	require.NoError(t, gerr)
	assert.Equal(t, "Loft", got.Title)
	assert.Empty(t, got.AmenityIDs)
	assert.Equal(t, p.UpdatedAt, got.UpdatedAt)
}

func TestDeletePlaceCascadesReviews(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, owner := seedUser(t, f, "Ada", "ada@example.com")
	_, reviewer := seedUser(t, f, "Eve", "eve@example.com")
	p := seedPlace(t, f, owner, "Loft")

	r, err := f.CreateReview(ctx, facade.CreateReviewInput{
		Rating: 5, Comment: "great", PlaceID: p.ID,
	}, reviewer)
	require.NoError(t, err)

	require.NoError(t, f.DeletePlace(ctx, p.ID, owner))

	_, err = f.GetPlace(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.GetReview(ctx, r.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateReviewRejectsOwner(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, owner := seedUser(t, f, "Ada", "ada@example.com")
	p := seedPlace(t, f, owner, "Loft")

	_, err := f.CreateReview(ctx, facade.CreateReviewInput{
		Rating: 5, Comment: "my own place is great", PlaceID: p.ID,
	}, owner)
	assertViolated(t, err, "user_id")

	reviews, lerr := f.ListReviews(ctx)
	require.NoError(t, lerr)
	assert.Empty(t, reviews)
}

func TestCreateReviewUnknownReferences(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, admin := seedAdmin(t, f, "admin@example.com")

	_, err := f.CreateReview(ctx, facade.CreateReviewInput{
		Rating:  3,
		Comment: "ok",
		PlaceID: "ghost-place",
		UserID:  "ghost-user",
	}, admin)
	assertViolated(t, err, "place_id", "user_id")
}

func TestCreateReviewForOtherUserNeedsAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, owner := seedUser(t, f, "Ada", "ada@example.com")
	other, _ := seedUser(t, f, "Eve", "eve@example.com")
	_, stranger := seedUser(t, f, "Mal", "mal@example.com")
	_, admin := seedAdmin(t, f, "admin@example.com")
	p := seedPlace(t, f, owner, "Loft")

	in := facade.CreateReviewInput{
		Rating: 4, Comment: "fine", PlaceID: p.ID, UserID: other.ID,
	}
	_, err := f.CreateReview(ctx, in, stranger)
	assert.ErrorIs(t, err, facade.ErrForbidden)

	r, err := f.CreateReview(ctx, in, admin)
	require.NoError(t, err)
	assert.Equal(t, other.ID, r.UserID)
}

func TestReviewsByPlace(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, owner := seedUser(t, f, "Ada", "ada@example.com")
	_, reviewer := seedUser(t, f, "Eve", "eve@example.com")
	p1 := seedPlace(t, f, owner, "Loft")
	p2 := seedPlace(t, f, owner, "Cabin")

	_, err := f.CreateReview(ctx, facade.CreateReviewInput{Rating: 5, Comment: "a", PlaceID: p1.ID}, reviewer)
	require.NoError(t, err)
	_, err = f.CreateReview(ctx, facade.CreateReviewInput{Rating: 3, Comment: "b", PlaceID: p2.ID}, reviewer)
	require.NoError(t, err)

	rs, err := f.ReviewsByPlace(ctx, p1.ID)
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "a", rs[0].Comment)

	// An existing place with no reviews yields an empty list, an unknown
	// place id is a lookup failure.
	p3 := seedPlace(t, f, owner, "Tent")
	rs, err = f.ReviewsByPlace(ctx, p3.ID)
	require.NoError(t, err)
	assert.Empty(t, rs)

	_, err = f.ReviewsByPlace(ctx, "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateReviewAuthorOrAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, owner := seedUser(t, f, "Ada", "ada@example.com")
	_, reviewer := seedUser(t, f, "Eve", "eve@example.com")
	_, admin := seedAdmin(t, f, "admin@example.com")
	p := seedPlace(t, f, owner, "Loft")

	r, err := f.CreateReview(ctx, facade.CreateReviewInput{Rating: 2, Comment: "meh", PlaceID: p.ID}, reviewer)
	require.NoError(t, err)

	rating := 4
	_, err = f.UpdateReview(ctx, r.ID, model.ReviewUpdate{Rating: &rating}, owner)
	assert.ErrorIs(t, err, facade.ErrForbidden)

	got, err := f.UpdateReview(ctx, r.ID, model.ReviewUpdate{Rating: &rating}, reviewer)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)

	require.NoError(t, f.DeleteReview(ctx, r.ID, admin))
	_, err = f.GetReview(ctx, r.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAmenityAdminOnly(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, user := seedUser(t, f, "Ada", "ada@example.com")
	_, admin := seedAdmin(t, f, "admin@example.com")

	_, err := f.CreateAmenity(ctx, facade.CreateAmenityInput{Name: "Wi-Fi"}, user)
	assert.ErrorIs(t, err, facade.ErrForbidden)

	_, err = f.CreateAmenity(ctx, facade.CreateAmenityInput{Name: "Wi-Fi"}, facade.Caller{})
	assert.ErrorIs(t, err, facade.ErrUnauthenticated)

	a, err := f.CreateAmenity(ctx, facade.CreateAmenityInput{Name: "Wi-Fi"}, admin)
	require.NoError(t, err)

	// Reads stay public.
	got, err := f.GetAmenity(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wi-Fi", got.Name)
}

func TestAmenityNameUnique(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, admin := seedAdmin(t, f, "admin@example.com")

	_, err := f.CreateAmenity(ctx, facade.CreateAmenityInput{Name: "Pool"}, admin)
	require.NoError(t, err)
	_, err = f.CreateAmenity(ctx, facade.CreateAmenityInput{Name: "Pool"}, admin)
	require.ErrorIs(t, err, facade.ErrConflict)

	all, err := f.ListAmenities(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeleteAmenityStripsReferences(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, owner := seedUser(t, f, "Ada", "ada@example.com")
	_, admin := seedAdmin(t, f, "admin@example.com")

	wifi, err := f.CreateAmenity(ctx, facade.CreateAmenityInput{Name: "Wi-Fi"}, admin)
	require.NoError(t, err)
	pool, err := f.CreateAmenity(ctx, facade.CreateAmenityInput{Name: "Pool"}, admin)
	require.NoError(t, err)

	p1 := seedPlace(t, f, owner, "Loft", wifi.ID, pool.ID)
	p2 := seedPlace(t, f, owner, "Cabin", wifi.ID)

	time.Sleep(time.Millisecond)
	require.NoError(t, f.DeleteAmenity(ctx, wifi.ID, admin))

	_, err = f.GetAmenity(ctx, wifi.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got1, err := f.GetPlace(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{pool.ID}, got1.AmenityIDs)
	assert.True(t, got1.UpdatedAt.After(p1.UpdatedAt), "stripped places are touched")

	got2, err := f.GetPlace(ctx, p2.ID)
	require.NoError(t, err)
	assert.Empty(t, got2.AmenityIDs)
}

func TestSearchPlacesInvalidFilter(t *testing.T) {
	f := newFacade()

	_, err := f.SearchPlaces(context.Background(), facade.PlaceFilter{MinPrice: f64(-1)})
	assertViolated(t, err, "min_price")

	_, err = f.SearchPlaces(context.Background(), facade.PlaceFilter{
		MinPrice: f64(100), MaxPrice: f64(50),
	})
	assertViolated(t, err, "min_price")
}

func TestSearchPlaces(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, owner := seedUser(t, f, "Ada", "ada@example.com")
	_, admin := seedAdmin(t, f, "admin@example.com")

	wifi, err := f.CreateAmenity(ctx, facade.CreateAmenityInput{Name: "Wi-Fi"}, admin)
	require.NoError(t, err)

	cheap, err := f.CreatePlace(ctx, facade.CreatePlaceInput{
		Title: "Cheap", Price: 40, Latitude: 10, Longitude: 10,
	}, owner)
	require.NoError(t, err)
	pricey, err := f.CreatePlace(ctx, facade.CreatePlaceInput{
		Title: "Pricey", Price: 400, Latitude: 50, Longitude: 50, AmenityIDs: []string{wifi.ID},
	}, owner)
	require.NoError(t, err)

	got, err := f.SearchPlaces(ctx, facade.PlaceFilter{MaxPrice: f64(100)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, cheap.ID, got[0].ID)

	got, err = f.SearchPlaces(ctx, facade.PlaceFilter{
		MinLatitude: f64(40), MaxLatitude: f64(60),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pricey.ID, got[0].ID)

	got, err = f.SearchPlaces(ctx, facade.PlaceFilter{AmenityID: wifi.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pricey.ID, got[0].ID)

	// A filter nothing matches is an empty result, not an error.
	got, err = f.SearchPlaces(ctx, facade.PlaceFilter{MinPrice: f64(1_000_000)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetPlaceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFacade()
	_, owner := seedUser(t, f, "Ada", "ada@example.com")
	p := seedPlace(t, f, owner, "Loft")

	a, err := f.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	b, err := f.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// Mutating a returned snapshot never leaks into the store.
	a.Title = "Vandalized"
	c, err := f.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loft", c.Title)
}
