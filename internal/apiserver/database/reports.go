package database

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/gold2201/LocalNetworkProject/internal/common/cnst"
	"github.com/gold2201/LocalNetworkProject/pkg/trace"
)

// Reports are read-only aggregate queries over current data. Nothing is
// cached; every call hits the database.
type Reports interface {
	DepartmentStatistics(ctx context.Context, id uint) (*DepartmentStatistics, error)

	ComputerReport(ctx context.Context) (*ComputerReport, error)
	ComputerNetworkStats(ctx context.Context) ([]ComputerNetworkStat, error)
	ComputerDetails(ctx context.Context, id uint) (*ComputerDetails, error)

	// UsersByPosition returns users whose position is in positions, or
	// not in positions when include is false.
	UsersByPosition(ctx context.Context, positions []int64, include bool) ([]User, error)
	UserComputerHistory(ctx context.Context, id uint) (*UserComputerHistory, error)
	UserStatistics(ctx context.Context) (*UserStatistics, error)

	// SoftwareByPopularity returns every software row, most installed first.
	SoftwareByPopularity(ctx context.Context) ([]Software, error)
	CompatibleComputers(ctx context.Context, id uint) (*CompatibleComputers, error)
	LicenseSummary(ctx context.Context) (*LicenseSummary, error)

	NetworkStatistics(ctx context.Context, vlanLimit int) (*NetworkStatistics, error)
	NetworkDetails(ctx context.Context, id uint, recentLimit int) (*NetworkDetails, error)

	EquipmentStatistics(ctx context.Context) (*EquipmentStatistics, error)

	DepartmentStats(ctx context.Context, minComputers int) ([]DepartmentStat, error)
	NetworkUsage(ctx context.Context) ([]NetworkUsage, error)
	SoftwareDistribution(ctx context.Context) ([]SoftwareDistribution, error)
	UserComputerRelationships(ctx context.Context) ([]UserComputerRelationship, error)
	HighSpeedConnections(ctx context.Context, threshold int) ([]HighSpeedConnection, error)
	SoftwareByVendor(ctx context.Context, vendor string) ([]VendorSoftware, error)
}

type DepartmentStatistics struct {
	DepartmentID         uint    `json:"department_id"`
	RoomNumber           int     `json:"room_number"`
	TotalComputers       int64   `json:"total_computers"`
	TotalUsers           int64   `json:"total_users"`
	ComputersPerEmployee float64 `json:"computers_per_employee"`
	IsUnderEquipped      bool    `json:"is_under_equipped"`
}

type OSDepartmentRow struct {
	OS                   string  `gorm:"column:os" json:"os"`
	DepartmentRoomNumber *int    `gorm:"column:department__room_number" json:"department__room_number"`
	ComputerCount        int64   `json:"computer_count"`
	AvgInventory         float64 `json:"avg_inventory"`
}

type DepartmentOSRow struct {
	DepartmentRoomNumber *int  `gorm:"column:department__room_number" json:"department__room_number"`
	TotalComputers       int64 `json:"total_computers"`
	WindowsCount         int64 `json:"windows_count"`
	LinuxCount           int64 `json:"linux_count"`
}

type ComputerReport struct {
	ByOSAndDepartment []OSDepartmentRow `json:"by_os_and_department"`
	ByDepartment      []DepartmentOSRow `json:"by_department"`
}

type ComputerNetworkStat struct {
	ID             uint   `json:"id"`
	Model          string `json:"model"`
	OS             string `gorm:"column:os" json:"os"`
	DepartmentRoom *int   `json:"department_room"`
	NetworkSpeed   int    `json:"network_speed"`
	IPAddress      string `gorm:"column:ip_address" json:"ip_address"`
}

type DepartmentRef struct {
	ID         *uint `json:"id"`
	RoomNumber *int  `json:"room_number"`
}

type UserRef struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type SoftwareRef struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ConnectionRef struct {
	ID         uint   `json:"id"`
	IPAddress  string `gorm:"column:ip_address" json:"ip_address"`
	MACAddress string `gorm:"column:mac_address" json:"mac_address"`
	Speed      int    `json:"speed"`
}

type ComputerDetails struct {
	ID                 uint            `json:"id"`
	Model              string          `json:"model"`
	OS                 string          `json:"os"`
	SerialNumber       int64           `json:"serial_number"`
	InventoryNumber    int64           `json:"inventory_number"`
	Department         DepartmentRef   `json:"department"`
	Users              []UserRef       `json:"users"`
	Software           []SoftwareRef   `json:"software"`
	NetworkConnections []ConnectionRef `json:"network_connections"`
}

type ComputerRow struct {
	ID           uint   `json:"id"`
	Model        string `json:"model"`
	OS           string `gorm:"column:os" json:"os"`
	SerialNumber int64  `json:"serial_number"`
}

type UserComputerHistory struct {
	User           string        `json:"user"`
	TotalComputers int           `json:"total_computers"`
	Computers      []ComputerRow `json:"computers"`
}

type PositionCount struct {
	PositionID int   `json:"position_id"`
	Count      int64 `json:"count"`
}

type RoomCount struct {
	DepartmentRoomNumber *int  `gorm:"column:department__room_number" json:"department__room_number"`
	Count                int64 `json:"count"`
}

type UserStatistics struct {
	Total            int64           `json:"total"`
	ByPosition       []PositionCount `json:"by_position"`
	ByDepartment     []RoomCount     `json:"by_department"`
	WithComputers    int64           `json:"with_computers"`
	WithoutComputers int64           `json:"without_computers"`
}

type CompatibleComputer struct {
	ID                   uint   `json:"id"`
	Model                string `json:"model"`
	OS                   string `gorm:"column:os" json:"os"`
	DepartmentRoomNumber *int   `gorm:"column:department__room_number" json:"department__room_number"`
}

type CompatibleComputers struct {
	Software                 string               `json:"software"`
	Vendor                   string               `json:"vendor"`
	License                  string               `json:"license"`
	CompatibleComputersCount int                  `json:"compatible_computers_count"`
	CompatibleComputers      []CompatibleComputer `json:"compatible_computers"`
}

type LicenseRow struct {
	License            string `json:"license"`
	Count              int64  `json:"count"`
	TotalInstallations int64  `json:"total_installations"`
}

type LicenseSummary struct {
	LicenseSummary     []LicenseRow `json:"license_summary"`
	TotalSoftware      int64        `json:"total_software"`
	TotalInstallations int64        `json:"total_installations"`
}

type VLANCount struct {
	VLAN  int   `gorm:"column:vlan" json:"vlan"`
	Count int64 `json:"count"`
}

type NetworkStatistics struct {
	TotalNetworks           int64       `json:"total_networks"`
	AverageVLAN             float64     `gorm:"column:average_vlan" json:"average_vlan"`
	MaxVLAN                 *int        `gorm:"column:max_vlan" json:"max_vlan"`
	MinVLAN                 *int        `gorm:"column:min_vlan" json:"min_vlan"`
	NetworksWithEquipment   int64       `json:"networks_with_equipment"`
	TotalComputersConnected int64       `gorm:"-" json:"total_computers_connected"`
	VLANDistribution        []VLANCount `gorm:"-" json:"vlan_distribution"`
}

type EquipmentInfo struct {
	Type      string `json:"type"`
	Bandwidth int    `json:"bandwidth"`
	PortCount int    `json:"port_count"`
	SetupDate string `json:"setup_date"`
}

type RecentComputer struct {
	ID           uint   `json:"id"`
	Model        string `json:"model"`
	SerialNumber int64  `json:"serial_number"`
	IPAddress    string `gorm:"column:ip_address" json:"ip_address"`
	Speed        int    `json:"speed"`
}

// NetworkDetails carries the extras attached to a network record on the
// details action. The record itself is shaped by the caller.
type NetworkDetails struct {
	Network                 Network
	ConnectedComputersCount int64
	EquipmentInfo           *EquipmentInfo
	RecentComputers         []RecentComputer
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type EquipmentStatistics struct {
	TotalEquipment   int64       `json:"total_equipment"`
	AveragePorts     float64     `json:"average_ports"`
	MaxPorts         *int        `json:"max_ports"`
	MinPorts         *int        `json:"min_ports"`
	TypesCount       int64       `json:"types_count"`
	TypeDistribution []TypeCount `gorm:"-" json:"type_distribution"`
}

type DepartmentStat struct {
	RoomNumber    int     `json:"room_number"`
	EmployeeCount int     `json:"employee_count"`
	ComputerCount int64   `json:"computer_count"`
	AvgInventory  float64 `json:"avg_inventory"`
}

type NetworkUsage struct {
	VLAN          int    `gorm:"column:vlan" json:"vlan"`
	IPRange       string `gorm:"column:ip_range" json:"ip_range"`
	ComputerCount int64  `json:"computer_count"`
	MaxSpeed      int    `json:"max_speed"`
}

type SoftwareDistribution struct {
	Name              string `json:"name"`
	Version           string `json:"version"`
	InstallationCount int64  `json:"installation_count"`
	DepartmentCount   int64  `json:"department_count"`
}

type UserComputerRelationship struct {
	FullName       string `json:"full_name"`
	PositionID     int    `json:"position_id"`
	DepartmentName *int   `json:"department_name"`
	ComputerCount  int64  `json:"computer_count"`
}

type HighSpeedConnection struct {
	ComputerModel string `gorm:"column:computer__model" json:"computer__model"`
	NetworkVLAN   int    `gorm:"column:network__vlan" json:"network__vlan"`
	Speed         int    `json:"speed"`
	IPAddress     string `gorm:"column:ip_address" json:"ip_address"`
}

type VendorSoftware struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Vendor       string `json:"vendor"`
	InstallCount int64  `json:"install_count"`
}

// report runs fn inside a span named after the report
func (s *store) report(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	sc := trace.Tracer(cnst.TraceStore).
		Start(ctx, cnst.SpanReportPrefix+name).
		WithAttrs(attribute.String(cnst.AttrReportName, name))
	defer sc.End()

	if err := fn(sc.Ctx); err != nil {
		sc.Fail(err)
		return fmt.Errorf("report %s: %w", name, translateError(err))
	}
	return nil
}

// LikeEscape is appended to every LIKE taking a ContainsPattern argument.
// '!' needs no quoting in any supported dialect, unlike a backslash on MySQL.
const LikeEscape = " ESCAPE '!'"

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ContainsPattern turns v into a lower-cased substring pattern in which
// % and _ match literally
func ContainsPattern(v string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(v)) + "%"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *store) DepartmentStatistics(ctx context.Context, id uint) (*DepartmentStatistics, error) {
	var out *DepartmentStatistics
	err := s.report(ctx, "department_statistics", func(ctx context.Context) error {
		dept, err := s.departments.Get(ctx, id)
		if err != nil {
			return err
		}
		st := &DepartmentStatistics{DepartmentID: dept.ID, RoomNumber: dept.RoomNumber}
		if err := s.conn(ctx).Model(&Computer{}).Where("department_id = ?", id).Count(&st.TotalComputers).Error; err != nil {
			return err
		}
		if err := s.conn(ctx).Model(&User{}).Where("department_id = ?", id).Count(&st.TotalUsers).Error; err != nil {
			return err
		}
		if dept.EmployeeCount > 0 {
			ratio := float64(st.TotalComputers) / float64(dept.EmployeeCount)
			st.ComputersPerEmployee = round2(ratio)
			st.IsUnderEquipped = ratio < 0.5
		} else {
			st.IsUnderEquipped = true
		}
		out = st
		return nil
	})
	return out, err
}

func (s *store) ComputerReport(ctx context.Context) (*ComputerReport, error) {
	out := &ComputerReport{ByOSAndDepartment: []OSDepartmentRow{}, ByDepartment: []DepartmentOSRow{}}
	err := s.report(ctx, "computer_report", func(ctx context.Context) error {
		err := s.conn(ctx).Table("computers").
			Select("computers.os, departments.room_number AS department__room_number, " +
				"COUNT(computers.id) AS computer_count, COALESCE(AVG(computers.inventory_number), 0) AS avg_inventory").
			Joins("LEFT JOIN departments ON departments.id = computers.department_id").
			Group("computers.os, departments.room_number").
			Order("computers.os, departments.room_number").
			Scan(&out.ByOSAndDepartment).Error
		if err != nil {
			return err
		}
		return s.conn(ctx).Table("computers").
			Select("departments.room_number AS department__room_number, COUNT(computers.id) AS total_computers, " +
				"SUM(CASE WHEN LOWER(computers.os) LIKE '%windows%' THEN 1 ELSE 0 END) AS windows_count, " +
				"SUM(CASE WHEN LOWER(computers.os) LIKE '%linux%' THEN 1 ELSE 0 END) AS linux_count").
			Joins("LEFT JOIN departments ON departments.id = computers.department_id").
			Group("departments.room_number").
			Order("departments.room_number").
			Scan(&out.ByDepartment).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *store) ComputerNetworkStats(ctx context.Context) ([]ComputerNetworkStat, error) {
	out := []ComputerNetworkStat{}
	err := s.report(ctx, "computer_network_stats", func(ctx context.Context) error {
		return s.conn(ctx).Table("computers").
			Select("computers.id, computers.model, computers.os, departments.room_number AS department_room, " +
				"network_computers.speed AS network_speed, network_computers.ip_address").
			Joins("JOIN network_computers ON network_computers.computer_id = computers.id AND " +
				"network_computers.id = (SELECT MIN(nc.id) FROM network_computers nc WHERE nc.computer_id = computers.id)").
			Joins("LEFT JOIN departments ON departments.id = computers.department_id").
			Order("computers.id").
			Scan(&out).Error
	})
	return out, err
}

func (s *store) ComputerDetails(ctx context.Context, id uint) (*ComputerDetails, error) {
	var out *ComputerDetails
	err := s.report(ctx, "computer_details", func(ctx context.Context) error {
		c, err := s.computers.Get(ctx, id)
		if err != nil {
			return err
		}
		d := &ComputerDetails{
			ID:                 c.ID,
			Model:              c.Model,
			OS:                 c.OS,
			SerialNumber:       c.SerialNumber,
			InventoryNumber:    c.InventoryNumber,
			Users:              []UserRef{},
			Software:           []SoftwareRef{},
			NetworkConnections: []ConnectionRef{},
		}
		if c.Department != nil {
			deptID, room := c.Department.ID, c.Department.RoomNumber
			d.Department = DepartmentRef{ID: &deptID, RoomNumber: &room}
		}

		err = s.conn(ctx).Table("users").
			Select("users.id, users.full_name, users.email").
			Joins("JOIN user_computers ON user_computers.user_id = users.id").
			Where("user_computers.computer_id = ?", id).
			Order("users.id").
			Scan(&d.Users).Error
		if err != nil {
			return err
		}
		err = s.conn(ctx).Table("software").
			Select("software.id, software.name, software.version").
			Joins("JOIN software_computers ON software_computers.software_id = software.id").
			Where("software_computers.computer_id = ?", id).
			Order("software.id").
			Scan(&d.Software).Error
		if err != nil {
			return err
		}
		err = s.conn(ctx).Table("network_computers").
			Select("id, ip_address, mac_address, speed").
			Where("computer_id = ?", id).
			Order("id").
			Scan(&d.NetworkConnections).Error
		if err != nil {
			return err
		}
		out = d
		return nil
	})
	return out, err
}

func (s *store) UsersByPosition(ctx context.Context, positions []int64, include bool) ([]User, error) {
	var scope Scope
	switch {
	case len(positions) == 0 && include:
		scope = func(db *gorm.DB) *gorm.DB { return db.Where("1 = 0") }
	case len(positions) == 0:
		scope = func(db *gorm.DB) *gorm.DB { return db }
	case include:
		scope = func(db *gorm.DB) *gorm.DB { return db.Where("users.position_id IN ?", positions) }
	default:
		scope = func(db *gorm.DB) *gorm.DB { return db.Where("users.position_id NOT IN ?", positions) }
	}
	return s.users.List(ctx, scope)
}

func (s *store) UserComputerHistory(ctx context.Context, id uint) (*UserComputerHistory, error) {
	var out *UserComputerHistory
	err := s.report(ctx, "user_computer_history", func(ctx context.Context) error {
		u, err := s.users.Get(ctx, id)
		if err != nil {
			return err
		}
		h := &UserComputerHistory{User: u.FullName, Computers: []ComputerRow{}}
		err = s.conn(ctx).Table("computers").
			Select("computers.id, computers.model, computers.os, computers.serial_number").
			Joins("JOIN user_computers ON user_computers.computer_id = computers.id").
			Where("user_computers.user_id = ?", id).
			Order("user_computers.id").
			Scan(&h.Computers).Error
		if err != nil {
			return err
		}
		h.TotalComputers = len(h.Computers)
		out = h
		return nil
	})
	return out, err
}

func (s *store) UserStatistics(ctx context.Context) (*UserStatistics, error) {
	out := &UserStatistics{ByPosition: []PositionCount{}, ByDepartment: []RoomCount{}}
	err := s.report(ctx, "user_statistics", func(ctx context.Context) error {
		db := s.conn(ctx)
		if err := db.Model(&User{}).Count(&out.Total).Error; err != nil {
			return err
		}
		err := db.Table("users").
			Select("position_id, COUNT(id) AS count").
			Group("position_id").
			Order("position_id").
			Scan(&out.ByPosition).Error
		if err != nil {
			return err
		}
		err = db.Table("users").
			Select("departments.room_number AS department__room_number, COUNT(users.id) AS count").
			Joins("LEFT JOIN departments ON departments.id = users.department_id").
			Group("departments.room_number").
			Order("departments.room_number").
			Scan(&out.ByDepartment).Error
		if err != nil {
			return err
		}
		linked := "EXISTS (SELECT 1 FROM user_computers WHERE user_computers.user_id = users.id)"
		if err := db.Model(&User{}).Where(linked).Count(&out.WithComputers).Error; err != nil {
			return err
		}
		return db.Model(&User{}).Where("NOT " + linked).Count(&out.WithoutComputers).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *store) SoftwareByPopularity(ctx context.Context) ([]Software, error) {
	var out []Software
	err := s.report(ctx, "software_popularity", func(ctx context.Context) error {
		var err error
		out, err = s.software.List(ctx, func(db *gorm.DB) *gorm.DB {
			return db.Order("(SELECT COUNT(*) FROM software_computers WHERE software_computers.software_id = software.id) DESC")
		})
		return err
	})
	return out, err
}

func (s *store) CompatibleComputers(ctx context.Context, id uint) (*CompatibleComputers, error) {
	var out *CompatibleComputers
	err := s.report(ctx, "compatible_computers", func(ctx context.Context) error {
		sw, err := s.software.Get(ctx, id)
		if err != nil {
			return err
		}
		cc := &CompatibleComputers{
			Software:            sw.Label(),
			Vendor:              sw.Vendor,
			License:             sw.License,
			CompatibleComputers: []CompatibleComputer{},
		}
		err = s.conn(ctx).Table("computers").
			Select("computers.id, computers.model, computers.os, departments.room_number AS department__room_number").
			Joins("JOIN software_computers ON software_computers.computer_id = computers.id").
			Joins("LEFT JOIN departments ON departments.id = computers.department_id").
			Where("software_computers.software_id = ?", id).
			Order("computers.id").
			Scan(&cc.CompatibleComputers).Error
		if err != nil {
			return err
		}
		cc.CompatibleComputersCount = len(cc.CompatibleComputers)
		out = cc
		return nil
	})
	return out, err
}

func (s *store) LicenseSummary(ctx context.Context) (*LicenseSummary, error) {
	out := &LicenseSummary{LicenseSummary: []LicenseRow{}}
	err := s.report(ctx, "license_summary", func(ctx context.Context) error {
		db := s.conn(ctx)
		err := db.Table("software").
			Select("software.license, COUNT(DISTINCT software.id) AS count, " +
				"COUNT(software_computers.id) AS total_installations").
			Joins("LEFT JOIN software_computers ON software_computers.software_id = software.id").
			Group("software.license").
			Order("COUNT(DISTINCT software.id) DESC, software.license").
			Scan(&out.LicenseSummary).Error
		if err != nil {
			return err
		}
		if err := db.Model(&Software{}).Count(&out.TotalSoftware).Error; err != nil {
			return err
		}
		return db.Model(&SoftwareComputer{}).Count(&out.TotalInstallations).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *store) NetworkStatistics(ctx context.Context, vlanLimit int) (*NetworkStatistics, error) {
	out := &NetworkStatistics{}
	err := s.report(ctx, "network_statistics", func(ctx context.Context) error {
		db := s.conn(ctx)
		err := db.Table("networks").
			Select("COUNT(id) AS total_networks, COALESCE(AVG(vlan), 0) AS average_vlan, " +
				"MAX(vlan) AS max_vlan, MIN(vlan) AS min_vlan, " +
				"COUNT(DISTINCT equipment_id) AS networks_with_equipment").
			Scan(out).Error
		if err != nil {
			return err
		}
		if err := db.Model(&NetworkComputer{}).Count(&out.TotalComputersConnected).Error; err != nil {
			return err
		}
		out.VLANDistribution = []VLANCount{}
		return db.Table("networks").
			Select("vlan, COUNT(id) AS count").
			Group("vlan").
			Order("vlan").
			Limit(vlanLimit).
			Scan(&out.VLANDistribution).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *store) NetworkDetails(ctx context.Context, id uint, recentLimit int) (*NetworkDetails, error) {
	var out *NetworkDetails
	err := s.report(ctx, "network_details", func(ctx context.Context) error {
		n, err := s.networks.Get(ctx, id)
		if err != nil {
			return err
		}
		d := &NetworkDetails{Network: *n, RecentComputers: []RecentComputer{}}
		if n.Equipment != nil {
			d.EquipmentInfo = &EquipmentInfo{
				Type:      n.Equipment.Type,
				Bandwidth: n.Equipment.Bandwidth,
				PortCount: n.Equipment.PortCount,
			}
			if !n.Equipment.SetupDate.IsZero() {
				d.EquipmentInfo.SetupDate = n.Equipment.SetupDate.Format("02.01.2006")
			}
		}
		if err := s.conn(ctx).Model(&NetworkComputer{}).Where("network_id = ?", id).Count(&d.ConnectedComputersCount).Error; err != nil {
			return err
		}
		err = s.conn(ctx).Table("network_computers").
			Select("computers.id, computers.model, computers.serial_number, network_computers.ip_address, network_computers.speed").
			Joins("JOIN computers ON computers.id = network_computers.computer_id").
			Where("network_computers.network_id = ?", id).
			Order("network_computers.id DESC").
			Limit(recentLimit).
			Scan(&d.RecentComputers).Error
		if err != nil {
			return err
		}
		out = d
		return nil
	})
	return out, err
}

func (s *store) EquipmentStatistics(ctx context.Context) (*EquipmentStatistics, error) {
	out := &EquipmentStatistics{}
	err := s.report(ctx, "equipment_statistics", func(ctx context.Context) error {
		db := s.conn(ctx)
		err := db.Table("equipment").
			Select("COUNT(id) AS total_equipment, COALESCE(AVG(port_count), 0) AS average_ports, " +
				"MAX(port_count) AS max_ports, MIN(port_count) AS min_ports, COUNT(DISTINCT type) AS types_count").
			Scan(out).Error
		if err != nil {
			return err
		}
		out.TypeDistribution = []TypeCount{}
		return db.Table("equipment").
			Select("type, COUNT(id) AS count").
			Group("type").
			Order("COUNT(id) DESC, type").
			Scan(&out.TypeDistribution).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *store) DepartmentStats(ctx context.Context, minComputers int) ([]DepartmentStat, error) {
	out := []DepartmentStat{}
	err := s.report(ctx, "department_stats", func(ctx context.Context) error {
		return s.conn(ctx).Table("departments").
			Select("departments.room_number, departments.employee_count, COUNT(computers.id) AS computer_count, " +
				"COALESCE(AVG(computers.inventory_number), 0) AS avg_inventory").
			Joins("LEFT JOIN computers ON computers.department_id = departments.id").
			Group("departments.id, departments.room_number, departments.employee_count").
			Having("COUNT(computers.id) > ?", minComputers).
			Order("COUNT(computers.id) DESC, departments.id").
			Scan(&out).Error
	})
	return out, err
}

func (s *store) NetworkUsage(ctx context.Context) ([]NetworkUsage, error) {
	out := []NetworkUsage{}
	err := s.report(ctx, "network_usage", func(ctx context.Context) error {
		return s.conn(ctx).Table("networks").
			Select("networks.vlan, networks.ip_range, COUNT(network_computers.id) AS computer_count, " +
				"MAX(network_computers.speed) AS max_speed").
			Joins("JOIN network_computers ON network_computers.network_id = networks.id").
			Group("networks.id, networks.vlan, networks.ip_range").
			Order("COUNT(network_computers.id) DESC, networks.id").
			Scan(&out).Error
	})
	return out, err
}

func (s *store) SoftwareDistribution(ctx context.Context) ([]SoftwareDistribution, error) {
	out := []SoftwareDistribution{}
	err := s.report(ctx, "software_distribution", func(ctx context.Context) error {
		return s.conn(ctx).Table("software").
			Select("software.name, software.version, COUNT(software_computers.id) AS installation_count, " +
				"COUNT(DISTINCT computers.department_id) AS department_count").
			Joins("JOIN software_computers ON software_computers.software_id = software.id").
			Joins("JOIN computers ON computers.id = software_computers.computer_id").
			Group("software.id, software.name, software.version").
			Order("COUNT(software_computers.id) DESC, software.id").
			Scan(&out).Error
	})
	return out, err
}

func (s *store) UserComputerRelationships(ctx context.Context) ([]UserComputerRelationship, error) {
	out := []UserComputerRelationship{}
	err := s.report(ctx, "user_computer_relationships", func(ctx context.Context) error {
		return s.conn(ctx).Table("users").
			Select("users.full_name, users.position_id, departments.room_number AS department_name, " +
				"COUNT(user_computers.id) AS computer_count").
			Joins("JOIN user_computers ON user_computers.user_id = users.id").
			Joins("LEFT JOIN departments ON departments.id = users.department_id").
			Group("users.id, users.full_name, users.position_id, departments.room_number").
			Order("COUNT(user_computers.id) DESC, users.id").
			Scan(&out).Error
	})
	return out, err
}

func (s *store) HighSpeedConnections(ctx context.Context, threshold int) ([]HighSpeedConnection, error) {
	out := []HighSpeedConnection{}
	err := s.report(ctx, "high_speed_networks", func(ctx context.Context) error {
		return s.conn(ctx).Table("network_computers").
			Select("computers.model AS computer__model, networks.vlan AS network__vlan, " +
				"network_computers.speed, network_computers.ip_address").
			Joins("JOIN computers ON computers.id = network_computers.computer_id").
			Joins("JOIN networks ON networks.id = network_computers.network_id").
			Where("network_computers.speed >= ?", threshold).
			Order("network_computers.speed DESC, network_computers.id").
			Scan(&out).Error
	})
	return out, err
}

func (s *store) SoftwareByVendor(ctx context.Context, vendor string) ([]VendorSoftware, error) {
	out := []VendorSoftware{}
	err := s.report(ctx, "software_by_vendor", func(ctx context.Context) error {
		return s.conn(ctx).Table("software").
			Select("software.name, software.version, software.vendor, COUNT(software_computers.id) AS install_count").
			Joins("LEFT JOIN software_computers ON software_computers.software_id = software.id").
			Where("LOWER(software.vendor) LIKE ?"+LikeEscape, ContainsPattern(vendor)).
			Group("software.id, software.name, software.version, software.vendor").
			Order("COUNT(software_computers.id) DESC, software.id").
			Scan(&out).Error
	})
	return out, err
}
