package entity

import "time"

// Customer representa un cliente del brechó (destinatario de ventas y donaciones).
type Customer struct {
	ID        string
	Name      string
	Document  string // CPF o CNPJ
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
