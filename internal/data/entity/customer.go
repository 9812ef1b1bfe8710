package entity

type Customer struct {
	Base
	FullName string  `db:"full_name"`
	Email    string  `db:"email"`
	Phone    string  `db:"phone"`
	Notes    *string `db:"notes"`
}
