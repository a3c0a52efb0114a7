package usecase

import "github.com/google/uuid"

// validID informa si id es un UUID bien formado.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
