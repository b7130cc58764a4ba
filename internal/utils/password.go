package utils

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt cost for new hashes. Tests lower it.
var PasswordCost = bcrypt.DefaultCost

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(b), err
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
