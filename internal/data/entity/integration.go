package entity

// Integration switches a third-party feature on or off from the admin
// settings page. Checkout requires the "iyzico" record active.
type Integration struct {
	BaseNoDelete
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}

const IntegrationIyzico = "iyzico"
