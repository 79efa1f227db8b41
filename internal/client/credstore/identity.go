package credstore

import (
	"errors"
	"os"
	"os/user"
)

var currentUser = user.Current

// UserIdentity returns bytes that identify the current OS account. They
// are mixed into the token sealing key so a copied data directory does not
// open for another account.
func UserIdentity() ([]byte, error) {
	u, err := currentUser()
	if err == nil && (u.Uid != "" || u.Username != "") {
		return []byte(u.Uid + ":" + u.Username), nil
	}
	for _, env := range []string{"USER", "USERNAME"} {
		if name := os.Getenv(env); name != "" {
			return []byte(":" + name), nil
		}
	}
	if err == nil {
		err = errors.New("empty user record")
	}
	return nil, err
}
