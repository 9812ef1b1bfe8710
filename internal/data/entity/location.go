package entity

type Location struct {
	Base
	Name     string  `db:"name"`
	Address  *string `db:"address"`
	Fee      float64 `db:"fee"`
	IsActive bool    `db:"is_active"`
}
