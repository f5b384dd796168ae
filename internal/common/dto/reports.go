package dto

import "github.com/gold2201/LocalNetworkProject/internal/apiserver/database"

// ManagersResponse is returned by the users managers action
type ManagersResponse struct {
	Count    int    `json:"count"`
	Managers []User `json:"managers"`
}

type NonManagersResponse struct {
	Count       int    `json:"count"`
	NonManagers []User `json:"non_managers"`
}

type PopularityReport struct {
	Count              int        `json:"count"`
	Software           []Software `json:"software"`
	TotalInstallations int64      `json:"total_installations"`
}

// NetworkDetails flattens the network record next to its extras
type NetworkDetails struct {
	Network
	ConnectedComputersCount int64                     `json:"connected_computers_count"`
	EquipmentInfo           *database.EquipmentInfo   `json:"equipment_info"`
	RecentComputers         []database.RecentComputer `json:"recent_computers"`
}

type DepartmentDetails struct {
	RoomNumber    int `json:"room_number"`
	InternalPhone int `json:"internal_phone"`
	EmployeeCount int `json:"employee_count"`
}

type HostComputerDetails struct {
	HostComputer
	DepartmentDetails *DepartmentDetails `json:"department_details,omitempty"`
}

// AdvancedQueryResponse wraps the rows of one advanced query
type AdvancedQueryResponse struct {
	Type    string `json:"type"`
	Count   int    `json:"count"`
	Results any    `json:"results"`
}
