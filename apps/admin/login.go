package main

import (
	"fmt"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/session"
)

// checkLogin verifies `email` and `pwd` against the configured operator.
func (cli *commandLine) checkLogin(email, pwd string) error {
	op, err := session.NewOperator(cli.conf.Login.Email, cli.conf.Login.Password)
	if err != nil {
		return err
	}
	if core.CleanString(email, true /* lower */) != op.Email || op.CheckPassword(pwd) != nil {
		return session.ErrInvalidCredentials
	}
	fmt.Fprintln(cli.out, "credentials OK")
	return nil
}
