// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used on the default exchange.
const (
	PlaceCreatedQueue  = "place.created"
	ReviewCreatedQueue = "review.created"
)

// PlaceCreatedEvent is published when a new place is listed.  It carries
// enough information for downstream consumers to log, notify, or feed
// analytics without querying the primary store.
type PlaceCreatedEvent struct {
	PlaceID   string  `json:"place_id"`
	OwnerID   string  `json:"owner_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	CreatedAt string  `json:"created_at"`
}

// ReviewCreatedEvent is published when a review is accepted, so the place
// owner can be notified out of band.
type ReviewCreatedEvent struct {
	ReviewID  string `json:"review_id"`
	PlaceID   string `json:"place_id"`
	AuthorID  string `json:"author_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}
