package model

import "time"

type Customer struct {
	ID        string    `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Phone     string    `db:"phone"`
	Email     *string   `db:"email"`
	JoinedAt  time.Time `db:"joined_at"`
}

type Staff struct {
	ID        string  `db:"id"`
	FirstName string  `db:"first_name"`
	LastName  string  `db:"last_name"`
	StoreID   *string `db:"store_id"`
}

type BookStore struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Location *string `db:"location"`
}
