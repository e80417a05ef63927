package session

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/edutrack/core"
)

// Operator is the single demo account allowed through the login view.
type Operator struct {
	Email        string
	PasswordHash []byte
}

func NewOperator(email, pwd string) (Operator, error) {
	op := Operator{Email: core.CleanString(email, true /* lower */)}
	if err := op.SetPassword(pwd); err != nil {
		return Operator{}, err
	}
	return op, nil
}

func (op *Operator) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	op.PasswordHash = hash
	return nil
}

func (op Operator) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(op.PasswordHash, []byte(pwd))
}
