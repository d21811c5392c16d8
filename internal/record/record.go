package record

import (
	"fmt"

	"github.com/tuannm99/arenadb/internal/alias/bx"
)

// Record is one row of exactly one shape: User or Car.
// The owning table is implied by the shape; nothing is tagged on disk.
type Record interface {
	Table() TableName
	Serialize(w *bx.Writer) error
	String() string

	isRecord()
}

var (
	_ Record = User{}
	_ Record = Car{}
)

// ---- User ----

type User struct {
	ID       int64
	Username string
	Email    string
}

func NewUser(id int64, username, email string) User {
	return User{ID: id, Username: username, Email: email}
}

func (User) Table() TableName { return TableUser }
func (User) isRecord()        {}

// Serialize writes [id i64][username text][email text].
func (u User) Serialize(w *bx.Writer) error {
	if err := writeInt64(w, u.ID); err != nil {
		return err
	}
	if err := writeText(w, u.Username); err != nil {
		return err
	}
	return writeText(w, u.Email)
}

func DecodeUser(r *bx.Reader) (User, error) {
	var (
		u   User
		err error
	)
	if u.ID, err = readInt64(r); err != nil {
		return User{}, err
	}
	if u.Username, err = readText(r); err != nil {
		return User{}, err
	}
	if u.Email, err = readText(r); err != nil {
		return User{}, err
	}
	return u, nil
}

func (u User) String() string {
	return fmt.Sprintf("{id: %d, username: %q, email: %q}", u.ID, u.Username, u.Email)
}

// ---- Car ----

type Car struct {
	ID    string
	Brand string
}

func NewCar(id, brand string) Car {
	return Car{ID: id, Brand: brand}
}

func (Car) Table() TableName { return TableCar }
func (Car) isRecord()        {}

// Serialize writes [id text][brand text].
func (c Car) Serialize(w *bx.Writer) error {
	if err := writeText(w, c.ID); err != nil {
		return err
	}
	return writeText(w, c.Brand)
}

func DecodeCar(r *bx.Reader) (Car, error) {
	var (
		c   Car
		err error
	)
	if c.ID, err = readText(r); err != nil {
		return Car{}, err
	}
	if c.Brand, err = readText(r); err != nil {
		return Car{}, err
	}
	return c, nil
}

func (c Car) String() string {
	return fmt.Sprintf("{id: %q, brand: %q}", c.ID, c.Brand)
}
