package api

import "encoding/json"

// roleFieldVariants is the ordered list of historical field names the backend
// has used for the role array. Checked in priority order; the first variant
// that decodes to a non-empty list wins. Ambiguity stays inside UnmarshalJSON
// and never leaks to callers.
var roleFieldVariants = []string{
	"roleUsers",
	"RoleUsers",
	"roles",
	"Roles",
	"vaiTros",
}

// UserInfoResponse represents the employee profile as returned by the backend,
// both nested in the login response and from GET /NguoiDung/getInforUser.
//
// Roles is normalized from whichever role-field variant the backend sent;
// RolesField records the field name that matched (empty when none did) so the
// extraction path can be logged.
type UserInfoResponse struct {
	UserID      string   `json:"maNguoiDung"`
	Username    string   `json:"taiKhoan"`
	Email       string   `json:"email"`
	DisplayName string   `json:"ten"`
	LoginMethod string   `json:"phuongThucDangNhap"`
	Roles       []string `json:"-"`
	RolesField  string   `json:"-"`
}

// UnmarshalJSON decodes the typed fields, then probes the role-field variants
// against the raw object in priority order.
func (u *UserInfoResponse) UnmarshalJSON(data []byte) error {
	type plain UserInfoResponse
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*u = UserInfoResponse(p)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	for _, name := range roleFieldVariants {
		raw, ok := fields[name]
		if !ok || string(raw) == "null" {
			continue
		}
		roles := decodeRoleList(raw)
		if len(roles) > 0 {
			u.Roles = roles
			u.RolesField = name
			return nil
		}
	}
	return nil
}

// decodeRoleList tolerates both forms the backend has shipped: a plain string
// array and an array of role objects. Malformed elements are skipped.
func decodeRoleList(raw json.RawMessage) []string {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}

	var roles []string
	for _, elem := range elems {
		var s string
		if err := json.Unmarshal(elem, &s); err == nil {
			if s != "" {
				roles = append(roles, s)
			}
			continue
		}

		var obj struct {
			TenVaiTro string `json:"tenVaiTro"`
			RoleName  string `json:"roleName"`
			Name      string `json:"name"`
		}
		if err := json.Unmarshal(elem, &obj); err != nil {
			continue
		}
		switch {
		case obj.TenVaiTro != "":
			roles = append(roles, obj.TenVaiTro)
		case obj.RoleName != "":
			roles = append(roles, obj.RoleName)
		case obj.Name != "":
			roles = append(roles, obj.Name)
		}
	}
	return roles
}

// Employee представляет сотрудника в админке (GET /NguoiDung/getAllEmployees)
type Employee struct {
	UserID      string   `json:"maNguoiDung"`
	Username    string   `json:"taiKhoan"`
	Email       string   `json:"email"`
	DisplayName string   `json:"ten"`
	Active      bool     `json:"trangThai"` // false = учетная запись заблокирована
	Roles       []string `json:"roles"`
}

// CreateEmployeeRequest представляет запрос POST /NguoiDung/createEmployee
type CreateEmployeeRequest struct {
	Username    string   `json:"taiKhoan"`
	Password    string   `json:"matKhau"`
	Email       string   `json:"email"`
	DisplayName string   `json:"ten"`
	Roles       []string `json:"roles"`
}

// UpdateRolesRequest представляет запрос PUT /NguoiDung/{id}/updateRoles
type UpdateRolesRequest struct {
	Roles []string `json:"roles"`
}

// ToggleAccountStatusRequest представляет запрос POST /NguoiDung/toggleAccountStatus
type ToggleAccountStatusRequest struct {
	UserID string `json:"maNguoiDung"`
}

// ResetPasswordRequest представляет запрос POST /NguoiDung/admin/resetpassword
type ResetPasswordRequest struct {
	UserID      string `json:"maNguoiDung"`
	NewPassword string `json:"matKhauMoi"`
}

// Role представляет роль сотрудника (GET /VaiTro)
type Role struct {
	RoleID string `json:"maVaiTro"`
	Name   string `json:"tenVaiTro"`
}
