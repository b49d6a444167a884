package api

// Игровые сущности админки. JSON-имена совпадают с REST API бэкенда
// (вьетнамские имена полей), Go-имена — английские.

// Level представляет игровой уровень (/CapDo)
type Level struct {
	LevelID     int    `json:"maCapDo"`
	Name        string `json:"tenCapDo"`
	RequiredXP  int    `json:"diemKinhNghiem"` // опыт, необходимый для достижения уровня
	Description string `json:"moTa,omitempty"`
}

// Achievement представляет задание/достижение (/NhiemVu)
type Achievement struct {
	AchievementID int    `json:"maNhiemVu"`
	Name          string `json:"tenNhiemVu"`
	Description   string `json:"moTa,omitempty"`
	TypeID        int    `json:"maLoaiNhiemVu"`
	RewardID      int    `json:"maPhanThuong"`
	Active        bool   `json:"trangThai"`
}

// AchievementType представляет тип задания (/LoaiNhiemVu)
type AchievementType struct {
	TypeID int    `json:"maLoaiNhiemVu"`
	Name   string `json:"tenLoaiNhiemVu"`
}

// Reward представляет награду за задание (/PhanThuong)
type Reward struct {
	RewardID int    `json:"maPhanThuong"`
	Name     string `json:"tenPhanThuong"`
	Gold     int    `json:"soLuongVang"`
	Diamonds int    `json:"soLuongKimCuong"`
}

// Skin представляет игровой костюм (/TrangPhuc)
type Skin struct {
	SkinID   int    `json:"maTrangPhuc"`
	Name     string `json:"tenTrangPhuc"`
	Price    int    `json:"gia"`
	ImageURL string `json:"hinhAnh,omitempty"`
}

// Player представляет игрока (/NguoiChoi)
type Player struct {
	PlayerID  string `json:"maNguoiChoi"`
	Name      string `json:"tenNguoiChoi"`
	Level     int    `json:"capDo"`
	XP        int    `json:"diemKinhNghiem"`
	CreatedAt string `json:"ngayTao,omitempty"`
}
