package services

import "errors"

var (
	ErrInvalidInput = errors.New("missing required field")
	ErrUserNotFound = errors.New("user not found")
	ErrTodoNotFound = errors.New("todo not found")
	// ErrUnauthorized: user tồn tại nhưng sai mật khẩu
	ErrUnauthorized = errors.New("username exists but password is incorrect")
	ErrForbidden    = errors.New("admin credentials required")
	// ErrConflict: name bị một lượt đăng ký đồng thời chiếm trước
	ErrConflict = errors.New("user name already taken")
)
