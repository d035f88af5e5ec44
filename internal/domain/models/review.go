package models

// Review is a customer review left after a purchase.
type Review struct {
	ID            string `bson:"_id,omitempty" json:"id"`
	Date          string `bson:"date" json:"date"`
	Customer      string `bson:"customer" json:"customer"`
	Rating        int    `bson:"rating" json:"rating"`
	Rooster       string `bson:"rooster" json:"rooster"`
	Comment       string `bson:"comment" json:"comment"`
	Status        string `bson:"status" json:"status"`
	CustomerID    string `bson:"customerId,omitempty" json:"customerId,omitempty"`
	TransactionID string `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}
