package models

// SwapTransaction represents a completed or in-flight swap payment record at
// a station.
type SwapTransaction struct {
	TransactionID   int64     `json:"transactionId"`
	StationID       int64     `json:"stationId"`
	TransactionDate Timestamp `json:"transactionDate"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	VehicleVIN      string    `json:"vehicleVin"`
	Amount          string    `json:"amount"`
	Status          string    `json:"status"`
	ReturnDate      *Timestamp `json:"returnDate,omitempty"`
	CreatedAt       Timestamp `json:"createdAt"`
	UpdatedAt       Timestamp `json:"updatedAt"`
}

// SwapTransactionCreateRequest is the body for recording a transaction.
type SwapTransactionCreateRequest struct {
	TransactionDate *Timestamp `json:"transactionDate"`
	CustomerName    string     `json:"customerName"`
	CustomerEmail   string     `json:"customerEmail"`
	VehicleVIN      string     `json:"vehicleVin"`
	Amount          string     `json:"amount"`
}

// StationRevenue is the aggregated revenue of one station.
type StationRevenue struct {
	StationID         int64      `json:"stationId"`
	TotalRevenue      string     `json:"totalRevenue"`
	TotalTransactions int64      `json:"totalTransactions"`
	FromDate          *Timestamp `json:"fromDate,omitempty"`
	ToDate            *Timestamp `json:"toDate,omitempty"`
}

// TotalRevenue is the aggregated revenue across all stations.
type TotalRevenue struct {
	TotalRevenue      string `json:"totalRevenue"`
	TotalTransactions int64  `json:"totalTransactions"`
}

// BatteryReturn records a battery handed back against a swap transaction.
type BatteryReturn struct {
	BatteryID     int64     `json:"batteryId"`
	TransactionID int64     `json:"transactionId"`
	ReturnDate    Timestamp `json:"returnDateTime"`
	Customer      string    `json:"customer"`
	Phone         string    `json:"phone"`
	Status        string    `json:"status"`
}

// BatteryReturnRequest is the body for registering a battery return.
type BatteryReturnRequest struct {
	BatteryID     int64  `json:"batteryId"`
	TransactionID int64  `json:"transactionId"`
	Customer      string `json:"customer"`
	Phone         string `json:"phone"`
}
