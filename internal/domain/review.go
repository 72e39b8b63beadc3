package domain

import "time"

// Review is a customer review embedded in a product record
type Review struct {
	ReviewerName  string    `json:"reviewerName"`
	ReviewerEmail string    `json:"reviewerEmail,omitempty"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	Date          time.Time `json:"date"`
}
