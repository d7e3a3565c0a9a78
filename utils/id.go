package utils

import "github.com/google/uuid"

// GenerateRandomID tạo một ID ngẫu nhiên dạng UUID v4
func GenerateRandomID() string {
	return uuid.NewString()
}

// IsValidID kiểm tra chuỗi có phải UUID hợp lệ không
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
