package database

import (
	"context"
	"fmt"
)

// Derived loads the per-row aggregates that list and detail responses
// attach to records. Each call issues a fixed number of queries per chunk
// of idChunkSize ids.
type Derived interface {
	DepartmentExtras(ctx context.Context, ids []uint) (map[uint]DepartmentExtra, error)
	ComputerExtras(ctx context.Context, ids []uint) (map[uint]ComputerExtra, error)
	UserExtras(ctx context.Context, ids []uint) (map[uint]UserExtra, error)
	SoftwareExtras(ctx context.Context, ids []uint) (map[uint]SoftwareExtra, error)
	NetworkExtras(ctx context.Context, ids []uint) (map[uint]NetworkExtra, error)
	ServerExtras(ctx context.Context, ids []uint) (map[uint]ServerExtra, error)
}

type DepartmentExtra struct {
	ComputersCount int64
	HostComputerID *uint
	HostComputerIP *string
}

type ComputerExtra struct {
	UsersCount   int64
	SoftwareList []string
	NetworkSpeed int
}

// ComputerBrief is the short computer form embedded in user records
type ComputerBrief struct {
	ID    uint   `json:"id"`
	Model string `json:"model"`
	OS    string `gorm:"column:os" json:"os"`
}

type UserExtra struct {
	Computers []ComputerBrief
}

type SoftwareExtra struct {
	InstalledCount int64
	PopularOS      []string
}

type NetworkExtra struct {
	Connections []NetworkComputer
}

type ServerExtra struct {
	VLANs []int
}

// idChunkSize bounds the ids bound into one IN list, well below the
// SQLite (32766) and Postgres (65535) parameter limits.
var idChunkSize = 2000

// inChunks calls fn with consecutive slices of ids of at most idChunkSize
func inChunks(ids []uint, fn func(chunk []uint) error) error {
	for start := 0; start < len(ids); start += idChunkSize {
		end := min(start+idChunkSize, len(ids))
		if err := fn(ids[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *store) DepartmentExtras(ctx context.Context, ids []uint) (map[uint]DepartmentExtra, error) {
	out := make(map[uint]DepartmentExtra, len(ids))
	err := inChunks(ids, func(chunk []uint) error {
		var counts []struct {
			DepartmentID uint
			N            int64
		}
		err := s.conn(ctx).Model(&Computer{}).
			Select("department_id, COUNT(*) AS n").
			Where("department_id IN ?", chunk).
			Group("department_id").
			Scan(&counts).Error
		if err != nil {
			return fmt.Errorf("department computer counts: %w", translateError(err))
		}
		for _, c := range counts {
			e := out[c.DepartmentID]
			e.ComputersCount = c.N
			out[c.DepartmentID] = e
		}

		var hosts []HostComputer
		if err := s.conn(ctx).Where("department_id IN ?", chunk).Find(&hosts).Error; err != nil {
			return fmt.Errorf("department hosts: %w", translateError(err))
		}
		for _, h := range hosts {
			id, ip := h.ID, h.IPAddress
			e := out[*h.DepartmentID]
			e.HostComputerID = &id
			e.HostComputerIP = &ip
			out[*h.DepartmentID] = e
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *store) ComputerExtras(ctx context.Context, ids []uint) (map[uint]ComputerExtra, error) {
	out := make(map[uint]ComputerExtra, len(ids))
	err := inChunks(ids, func(chunk []uint) error {
		var counts []struct {
			ComputerID uint
			N          int64
		}
		err := s.conn(ctx).Model(&UserComputer{}).
			Select("computer_id, COUNT(*) AS n").
			Where("computer_id IN ?", chunk).
			Group("computer_id").
			Scan(&counts).Error
		if err != nil {
			return fmt.Errorf("computer user counts: %w", translateError(err))
		}
		for _, c := range counts {
			e := out[c.ComputerID]
			e.UsersCount = c.N
			out[c.ComputerID] = e
		}

		var installs []struct {
			ComputerID uint
			Name       string
		}
		err = s.conn(ctx).Table("software_computers").
			Select("software_computers.computer_id, software.name").
			Joins("JOIN software ON software.id = software_computers.software_id").
			Where("software_computers.computer_id IN ?", chunk).
			Order("software_computers.id").
			Scan(&installs).Error
		if err != nil {
			return fmt.Errorf("computer software: %w", translateError(err))
		}
		for _, in := range installs {
			e := out[in.ComputerID]
			e.SoftwareList = append(e.SoftwareList, in.Name)
			out[in.ComputerID] = e
		}

		var conns []NetworkComputer
		if err := s.conn(ctx).Where("computer_id IN ?", chunk).Order("id").Find(&conns).Error; err != nil {
			return fmt.Errorf("computer connections: %w", translateError(err))
		}
		seen := make(map[uint]bool, len(conns))
		for _, nc := range conns {
			if seen[nc.ComputerID] {
				continue
			}
			seen[nc.ComputerID] = true
			e := out[nc.ComputerID]
			e.NetworkSpeed = nc.Speed
			out[nc.ComputerID] = e
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *store) UserExtras(ctx context.Context, ids []uint) (map[uint]UserExtra, error) {
	out := make(map[uint]UserExtra, len(ids))
	err := inChunks(ids, func(chunk []uint) error {
		var rows []struct {
			UserID uint
			ComputerBrief
		}
		err := s.conn(ctx).Table("user_computers").
			Select("user_computers.user_id, computers.id, computers.model, computers.os").
			Joins("JOIN computers ON computers.id = user_computers.computer_id").
			Where("user_computers.user_id IN ?", chunk).
			Order("user_computers.id").
			Scan(&rows).Error
		if err != nil {
			return fmt.Errorf("user computers: %w", translateError(err))
		}
		for _, r := range rows {
			e := out[r.UserID]
			e.Computers = append(e.Computers, r.ComputerBrief)
			out[r.UserID] = e
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *store) SoftwareExtras(ctx context.Context, ids []uint) (map[uint]SoftwareExtra, error) {
	out := make(map[uint]SoftwareExtra, len(ids))
	err := inChunks(ids, func(chunk []uint) error {
		var counts []struct {
			SoftwareID uint
			N          int64
		}
		err := s.conn(ctx).Model(&SoftwareComputer{}).
			Select("software_id, COUNT(*) AS n").
			Where("software_id IN ?", chunk).
			Group("software_id").
			Scan(&counts).Error
		if err != nil {
			return fmt.Errorf("software install counts: %w", translateError(err))
		}
		for _, c := range counts {
			e := out[c.SoftwareID]
			e.InstalledCount = c.N
			out[c.SoftwareID] = e
		}

		var oses []struct {
			SoftwareID uint
			OS         string `gorm:"column:os"`
		}
		err = s.conn(ctx).Table("software_computers").
			Distinct("software_computers.software_id", "computers.os").
			Joins("JOIN computers ON computers.id = software_computers.computer_id").
			Where("software_computers.software_id IN ?", chunk).
			Order("software_computers.software_id").Order("computers.os").
			Scan(&oses).Error
		if err != nil {
			return fmt.Errorf("software os: %w", translateError(err))
		}
		for _, o := range oses {
			e := out[o.SoftwareID]
			e.PopularOS = append(e.PopularOS, o.OS)
			out[o.SoftwareID] = e
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *store) NetworkExtras(ctx context.Context, ids []uint) (map[uint]NetworkExtra, error) {
	out := make(map[uint]NetworkExtra, len(ids))
	err := inChunks(ids, func(chunk []uint) error {
		var conns []NetworkComputer
		err := s.conn(ctx).Preload("Computer").Preload("Network").
			Where("network_id IN ?", chunk).
			Order("id").
			Find(&conns).Error
		if err != nil {
			return fmt.Errorf("network connections: %w", translateError(err))
		}
		for _, nc := range conns {
			e := out[nc.NetworkID]
			e.Connections = append(e.Connections, nc)
			out[nc.NetworkID] = e
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *store) ServerExtras(ctx context.Context, ids []uint) (map[uint]ServerExtra, error) {
	out := make(map[uint]ServerExtra, len(ids))
	err := inChunks(ids, func(chunk []uint) error {
		var rows []struct {
			ServerID uint
			VLAN     int `gorm:"column:vlan"`
		}
		err := s.conn(ctx).Table("server_networks").
			Select("server_networks.server_id, networks.vlan").
			Joins("JOIN networks ON networks.id = server_networks.network_id").
			Where("server_networks.server_id IN ?", chunk).
			Order("server_networks.id").
			Scan(&rows).Error
		if err != nil {
			return fmt.Errorf("server networks: %w", translateError(err))
		}
		for _, r := range rows {
			e := out[r.ServerID]
			e.VLANs = append(e.VLANs, r.VLAN)
			out[r.ServerID] = e
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
