package models

// Todo là một mục việc cần làm thuộc về đúng một User
type Todo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Data  string `json:"data"`
}

// User sở hữu danh sách todos theo thứ tự thêm vào
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Password string `json:"-"` // không trả mật khẩu ra client
	Todos    []Todo `json:"todos"`
}
