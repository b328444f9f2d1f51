package entity

import "time"

// Company representa la organización/tenant raíz. Se crea una sola vez, en el registro.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
