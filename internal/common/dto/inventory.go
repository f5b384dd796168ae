package dto

// Department is a department record with its derived fields
type Department struct {
	ID                      uint    `json:"id"`
	RoomNumber              int     `json:"room_number"`
	InternalPhone           int     `json:"internal_phone"`
	EmployeeCount           int     `json:"employee_count"`
	EmployeePhones          []int   `json:"employee_phones"`
	ComputersCount          int64   `json:"computers_count"`
	AvgComputersPerEmployee float64 `json:"avg_computers_per_employee"`
	IsLargeDepartment       bool    `json:"is_large_department"`
	HostComputerIP          *string `json:"host_computer_ip"`
	HostComputer            *uint   `json:"hostcomputer"`
}

type Computer struct {
	ID              uint     `json:"id"`
	SerialNumber    int64    `json:"serial_number"`
	Model           string   `json:"model"`
	OS              string   `json:"os"`
	InventoryNumber int64    `json:"inventory_number"`
	DepartmentID    *uint    `json:"department_id"`
	DepartmentInfo  string   `json:"department_info"`
	UsersCount      int64    `json:"users_count"`
	SoftwareList    []string `json:"software_list"`
	NetworkSpeed    int      `json:"network_speed"`
}

// ComputerInfo is the short computer form listed on a user
type ComputerInfo struct {
	ID    uint   `json:"id"`
	Model string `json:"model"`
	OS    string `json:"os"`
}

type User struct {
	ID               uint           `json:"id"`
	FullName         string         `json:"full_name"`
	Phone            string         `json:"phone"`
	Email            string         `json:"email"`
	PositionID       int            `json:"position_id"`
	DepartmentID     *uint          `json:"department_id"`
	DepartmentRoom   *int           `json:"department_room"`
	ComputersInfo    []ComputerInfo `json:"computers_info"`
	CanManageNetwork bool           `json:"can_manage_network"`
}

type Software struct {
	ID                  uint     `json:"id"`
	Name                string   `json:"name"`
	Version             string   `json:"version"`
	License             string   `json:"license"`
	Vendor              string   `json:"vendor"`
	InstalledCount      int64    `json:"installed_count"`
	PopularOS           []string `json:"popular_os"`
	NeedsLicenseRenewal bool     `json:"needs_license_renewal"`
}

type Equipment struct {
	ID              uint    `json:"id"`
	Type            string  `json:"type"`
	Bandwidth       int     `json:"bandwidth"`
	PortCount       int     `json:"port_count"`
	SetupDate       *string `json:"setup_date"`
	TypeOfBandwidth string  `json:"type_of_bandwidth"`
}

// EquipmentList is the equipment collection envelope
type EquipmentList struct {
	Count     int         `json:"count"`
	Equipment []Equipment `json:"equipment"`
}

type NetworkComputer struct {
	ID            uint   `json:"id"`
	NetworkID     uint   `json:"network_id"`
	ComputerID    uint   `json:"computer_id"`
	IPAddress     string `json:"ip_address"`
	MACAddress    string `json:"mac_address"`
	Speed         int    `json:"speed"`
	ComputerModel string `json:"computer_model"`
	NetworkVLAN   int    `json:"network_vlan"`
}

type Network struct {
	ID                 uint              `json:"id"`
	SubnetMask         string            `json:"subnet_mask"`
	VLAN               int               `json:"vlan"`
	IPRange            string            `json:"ip_range"`
	EquipmentID        uint              `json:"equipment_id"`
	EquipmentPortCount *int              `json:"equipment_port_count"`
	EquipmentType      *string           `json:"equipment_type"`
	NetworkComputers   []NetworkComputer `json:"network_computers"`
}

type Server struct {
	ID             uint    `json:"id"`
	Port           int     `json:"port"`
	Hostname       string  `json:"hostname"`
	ConnectionDate *string `json:"connection_date"`
	Location       string  `json:"location"`
	NetworksInfo   []int   `json:"networks_info"`
}

type HostComputer struct {
	ID             uint   `json:"id"`
	Hostname       string `json:"hostname"`
	IPAddress      string `json:"ip_address"`
	MACAddress     string `json:"mac_address"`
	DepartmentID   *uint  `json:"department_id"`
	DepartmentRoom *int   `json:"department_room"`
}

type SoftwareComputer struct {
	ID            uint   `json:"id"`
	SoftwareID    uint   `json:"software_id"`
	ComputerID    uint   `json:"computer_id"`
	SoftwareName  string `json:"software_name"`
	ComputerModel string `json:"computer_model"`
}

type UserComputer struct {
	ID            uint   `json:"id"`
	UserID        uint   `json:"user_id"`
	ComputerID    uint   `json:"computer_id"`
	UserName      string `json:"user_name"`
	ComputerModel string `json:"computer_model"`
}

type ServerNetwork struct {
	ID             uint   `json:"id"`
	ServerID       uint   `json:"server_id"`
	NetworkID      uint   `json:"network_id"`
	ServerHostname string `json:"server_hostname"`
	NetworkVLAN    int    `json:"network_vlan"`
}
