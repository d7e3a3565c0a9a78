package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher quyết định cách lưu và so khớp mật khẩu
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) (bool, error)
}

// NewPasswordHasher trả về hasher theo chế độ cấu hình: "plain" hoặc "bcrypt"
func NewPasswordHasher(mode string) (PasswordHasher, error) {
	switch mode {
	case "", "plain":
		return PlainPasswords{}, nil
	case "bcrypt":
		return BcryptPasswords{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hashing mode %q", mode)
	}
}

// PlainPasswords lưu mật khẩu nguyên văn và so sánh bằng nhau tuyệt đối
type PlainPasswords struct{}

func (PlainPasswords) Hash(password string) (string, error) {
	return password, nil
}

func (PlainPasswords) Compare(stored, password string) (bool, error) {
	return stored == password, nil
}

// BcryptPasswords lưu mật khẩu đã hash bằng bcrypt
type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), b.Cost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare coi hash sai định dạng (vd. dòng cũ lưu nguyên văn) là không khớp
func (BcryptPasswords) Compare(stored, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	if err != nil {
		return false, nil
	}
	return true, nil
}
