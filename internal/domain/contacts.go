package domain

// Contacts — справочная информация магазина.
type Contacts struct {
	Phone   string
	Email   string
	Address string
	Hours   []string
}
