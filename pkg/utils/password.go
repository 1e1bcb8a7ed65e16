package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword and CheckPassword are the one-way password primitive; nothing
// outside this file touches bcrypt directly.

func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b)
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
