package models

// PaymentStatus is the settlement state of a sale.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
	PaymentUnpaid  PaymentStatus = "unpaid"
)

// SaleStatus is the fulfilment state of a sale.
type SaleStatus string

const (
	SaleCompleted SaleStatus = "completed"
	SalePending   SaleStatus = "pending"
	SaleCancelled SaleStatus = "cancelled"
)

// SalesTransaction captures a single rooster sale as stored by the sales module.
type SalesTransaction struct {
	ID            string        `bson:"_id,omitempty" json:"id"`
	Date          string        `bson:"date" json:"date"`
	RoosterID     string        `bson:"roosterId" json:"roosterId"`
	Breed         string        `bson:"breed" json:"breed"`
	CustomerName  string        `bson:"customerName" json:"customerName"`
	Amount        float64       `bson:"amount" json:"amount"`
	PaymentStatus PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	Status        SaleStatus    `bson:"status" json:"status"`
}

// IsPaid reports whether the transaction contributes to revenue.
func (t SalesTransaction) IsPaid() bool {
	return t.PaymentStatus == PaymentPaid
}

// SalesStats summarises the sales ledger for an identity.
type SalesStats struct {
	TotalTransactions int     `bson:"totalTransactions" json:"totalTransactions"`
	PaidTransactions  int     `bson:"paidTransactions" json:"paidTransactions"`
	TotalRevenue      float64 `bson:"totalRevenue" json:"totalRevenue"`
	PendingPayments   float64 `bson:"pendingPayments" json:"pendingPayments"`
}
