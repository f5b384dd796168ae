package database

import (
	"gorm.io/datatypes"
)

// Department is an organizational unit occupying one room
type Department struct {
	ID             uint                     `gorm:"primaryKey" json:"id"`
	RoomNumber     int                      `gorm:"not null" json:"room_number"`
	InternalPhone  int                      `json:"internal_phone"`
	EmployeeCount  int                      `gorm:"not null" json:"employee_count"`
	EmployeePhones datatypes.JSONSlice[int] `json:"employee_phones"`
}

func (Department) TableName() string { return "departments" }

// Computer is a workstation, optionally assigned to a department
type Computer struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	SerialNumber    int64       `gorm:"not null;uniqueIndex" json:"serial_number"`
	Model           string      `gorm:"size:255;not null" json:"model"`
	OS              string      `gorm:"column:os;size:255;not null" json:"os"`
	InventoryNumber int64       `gorm:"not null" json:"inventory_number"`
	DepartmentID    *uint       `gorm:"index" json:"department_id"`
	Department      *Department `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}

func (Computer) TableName() string { return "computers" }

// User is an employee
type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	FullName     string      `gorm:"size:255;not null" json:"full_name"`
	Phone        string      `gorm:"size:64" json:"phone"`
	Email        string      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PositionID   int         `json:"position_id"`
	DepartmentID *uint       `gorm:"index" json:"department_id"`
	Department   *Department `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}

func (User) TableName() string { return "users" }

// UserComputer links a user to a computer they use
type UserComputer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_computer" json:"user_id"`
	ComputerID uint      `gorm:"not null;uniqueIndex:idx_user_computer" json:"computer_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Computer   *Computer `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (UserComputer) TableName() string { return "user_computers" }

// Software is an installable product identified by name and version
type Software struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:255;not null;uniqueIndex:idx_software_name_version" json:"name"`
	Version string `gorm:"size:100;not null;uniqueIndex:idx_software_name_version" json:"version"`
	License string `gorm:"size:255" json:"license"`
	Vendor  string `gorm:"size:255" json:"vendor"`
}

func (Software) TableName() string { return "software" }

// SoftwareComputer records an installation
type SoftwareComputer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SoftwareID uint      `gorm:"not null;uniqueIndex:idx_software_computer" json:"software_id"`
	ComputerID uint      `gorm:"not null;uniqueIndex:idx_software_computer" json:"computer_id"`
	Software   *Software `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Computer   *Computer `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (SoftwareComputer) TableName() string { return "software_computers" }

// Equipment is an active network device
type Equipment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Type      string `gorm:"size:255;not null" json:"type"`
	Bandwidth int    `json:"bandwidth"`
	PortCount int    `json:"port_count"`
	SetupDate Date   `json:"setup_date"`
}

func (Equipment) TableName() string { return "equipment" }

// Network is a VLAN served by one piece of equipment
type Network struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	SubnetMask  string     `gorm:"size:64" json:"subnet_mask"`
	VLAN        int        `gorm:"column:vlan" json:"vlan"`
	IPRange     string     `gorm:"column:ip_range;size:255" json:"ip_range"`
	EquipmentID uint       `gorm:"not null;index" json:"equipment_id"`
	Equipment   *Equipment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Network) TableName() string { return "networks" }

// NetworkComputer is a computer's connection to a network
type NetworkComputer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	NetworkID  uint      `gorm:"not null;uniqueIndex:idx_network_computer" json:"network_id"`
	ComputerID uint      `gorm:"not null;uniqueIndex:idx_network_computer" json:"computer_id"`
	IPAddress  string    `gorm:"column:ip_address;size:64" json:"ip_address"`
	MACAddress string    `gorm:"column:mac_address;size:64" json:"mac_address"`
	Speed      int       `json:"speed"`
	Network    *Network  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Computer   *Computer `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (NetworkComputer) TableName() string { return "network_computers" }

// Server is a host reachable on the networks it is linked to
type Server struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Port           int    `json:"port"`
	Hostname       string `gorm:"size:255;not null" json:"hostname"`
	ConnectionDate Date   `json:"connection_date"`
	Location       string `gorm:"size:255" json:"location"`
}

func (Server) TableName() string { return "servers" }

// ServerNetwork links a server to a network
type ServerNetwork struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	ServerID  uint     `gorm:"not null;uniqueIndex:idx_server_network" json:"server_id"`
	NetworkID uint     `gorm:"not null;uniqueIndex:idx_server_network" json:"network_id"`
	Server    *Server  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Network   *Network `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (ServerNetwork) TableName() string { return "server_networks" }

// HostComputer is the per-department gateway host
type HostComputer struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Hostname     string      `gorm:"size:255;not null" json:"hostname"`
	IPAddress    string      `gorm:"column:ip_address;size:64" json:"ip_address"`
	MACAddress   string      `gorm:"column:mac_address;size:64" json:"mac_address"`
	DepartmentID *uint       `gorm:"uniqueIndex" json:"department_id"`
	Department   *Department `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}

func (HostComputer) TableName() string { return "host_computers" }

// AllModels lists every table in dependency order
func AllModels() []any {
	return []any{
		&Department{},
		&Computer{},
		&User{},
		&UserComputer{},
		&Software{},
		&SoftwareComputer{},
		&Equipment{},
		&Network{},
		&NetworkComputer{},
		&Server{},
		&ServerNetwork{},
		&HostComputer{},
	}
}
