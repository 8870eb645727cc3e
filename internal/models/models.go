package models

import "time"

// OrderStage is the fulfillment stage of an order. The backend drives it
// strictly forward; this client never writes it except through the admin
// transition endpoints.
type OrderStage int

const (
	StagePendingConfirmation OrderStage = 0
	StageProcessing          OrderStage = 1
	StageHandedToCarrier     OrderStage = 2
)

func (s OrderStage) Valid() bool {
	switch s {
	case StagePendingConfirmation, StageProcessing, StageHandedToCarrier:
		return true
	default:
		return false
	}
}

func (s OrderStage) String() string {
	switch s {
	case StagePendingConfirmation:
		return "pending_confirmation"
	case StageProcessing:
		return "processing"
	case StageHandedToCarrier:
		return "handed_to_carrier"
	default:
		return "unknown"
	}
}

// DeliveryStage is the carrier-side stage, meaningful only once the order
// has been handed to the carrier.
type DeliveryStage int

const (
	DeliveryReceivedByCarrier DeliveryStage = 0
	DeliveryInTransit         DeliveryStage = 1
	DeliveryDelivered         DeliveryStage = 2
)

func (s DeliveryStage) Valid() bool {
	switch s {
	case DeliveryReceivedByCarrier, DeliveryInTransit, DeliveryDelivered:
		return true
	default:
		return false
	}
}

func (s DeliveryStage) String() string {
	switch s {
	case DeliveryReceivedByCarrier:
		return "received_by_carrier"
	case DeliveryInTransit:
		return "in_transit"
	case DeliveryDelivered:
		return "delivered"
	default:
		return "unknown"
	}
}

// CustomerAction is the customer's terminal action on an order. At most one
// is ever recorded; absence means the customer has done nothing yet.
type CustomerAction int

const (
	ActionConfirmedReceipt CustomerAction = 0
	ActionCancelled        CustomerAction = 1
)

func (a CustomerAction) String() string {
	switch a {
	case ActionConfirmedReceipt:
		return "confirmed_receipt"
	case ActionCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

type PaymentMethod int

const (
	PayCashOnDelivery PaymentMethod = 0
	PayBankTransfer   PaymentMethod = 1
)

func (m PaymentMethod) String() string {
	switch m {
	case PayCashOnDelivery:
		return "cash_on_delivery"
	case PayBankTransfer:
		return "bank_transfer"
	default:
		return "unknown"
	}
}

// Order is the backend's read model. The nullable status fields are pointers
// so JSON null and absent both decode to nil.
type Order struct {
	ID              int64           `json:"id"`
	StatusOrder     OrderStage      `json:"status_order"`
	StatusDelivery  *DeliveryStage  `json:"status_delivery"`
	StatusUserOrder *CustomerAction `json:"status_user_order"`
	ReasonUserOrder string          `json:"reason_user_order,omitempty"`
	TotalOrder      float64         `json:"total_order"`
	DateOrder       time.Time       `json:"date_order"`
	MethodPay       PaymentMethod   `json:"method_pay"`
	NameCustomer    string          `json:"name_customer"`
	AddressCustomer string          `json:"address_customer"`
	PhoneCustomer   string          `json:"phone_customer"`
	NoteCustomer    string          `json:"note_customer,omitempty"`
	Items           []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
}

// Cancelled reports whether the customer has cancelled the order.
func (o *Order) Cancelled() bool {
	return o.StatusUserOrder != nil && *o.StatusUserOrder == ActionCancelled
}

// ReceiptConfirmed reports whether the customer has confirmed receipt.
func (o *Order) ReceiptConfirmed() bool {
	return o.StatusUserOrder != nil && *o.StatusUserOrder == ActionConfirmedReceipt
}

// DeliveredToCustomer reports whether the carrier has completed delivery.
func (o *Order) DeliveredToCustomer() bool {
	return o.StatusOrder == StageHandedToCarrier &&
		o.StatusDelivery != nil && *o.StatusDelivery == DeliveryDelivered
}

// User is the profile cached alongside the bearer token in the session.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}
