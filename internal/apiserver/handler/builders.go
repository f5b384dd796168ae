package handler

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gold2201/LocalNetworkProject/internal/apiserver/database"
	"github.com/gold2201/LocalNetworkProject/internal/common/dto"
	"github.com/gold2201/LocalNetworkProject/internal/i18n"
)

func ids[T any](items []T, id func(*T) *uint) []uint {
	out := make([]uint, len(items))
	for i := range items {
		out[i] = *id(&items[i])
	}
	return out
}

func departmentRoom(d *database.Department) *int {
	if d == nil {
		return nil
	}
	room := d.RoomNumber
	return &room
}

func dateString(d database.Date) *string {
	if d.IsZero() {
		return nil
	}
	s := d.String()
	return &s
}

func bandwidthType(bandwidth int) string {
	switch bandwidth {
	case 100:
		return "Basic internet"
	case 1000:
		return "Online gaming"
	default:
		return "Video calls"
	}
}

func needsLicenseRenewal(license string) bool {
	l := strings.ToLower(license)
	return strings.Contains(l, "trial") || strings.Contains(l, "expired")
}

func departmentID(d *database.Department) *uint { return &d.ID }
func computerID(v *database.Computer) *uint     { return &v.ID }
func userID(v *database.User) *uint             { return &v.ID }
func softwareID(v *database.Software) *uint     { return &v.ID }
func networkID(v *database.Network) *uint       { return &v.ID }
func serverID(v *database.Server) *uint         { return &v.ID }

func (h *Handler) buildDepartments(c *gin.Context, items []database.Department) ([]dto.Department, error) {
	extras, err := h.db.DepartmentExtras(c.Request.Context(), ids(items, departmentID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.Department, len(items))
	for i, d := range items {
		x := extras[d.ID]
		avg := 0.0
		if d.EmployeeCount > 0 {
			avg = math.Round(float64(x.ComputersCount)/float64(d.EmployeeCount)*100) / 100
		}
		phones := []int(d.EmployeePhones)
		if phones == nil {
			phones = []int{}
		}
		out[i] = dto.Department{
			ID:                      d.ID,
			RoomNumber:              d.RoomNumber,
			InternalPhone:           d.InternalPhone,
			EmployeeCount:           d.EmployeeCount,
			EmployeePhones:          phones,
			ComputersCount:          x.ComputersCount,
			AvgComputersPerEmployee: avg,
			IsLargeDepartment:       d.EmployeeCount > h.cfg.Validation.LargeDepartmentThreshold,
			HostComputerIP:          x.HostComputerIP,
			HostComputer:            x.HostComputerID,
		}
	}
	return out, nil
}

func (h *Handler) buildComputers(c *gin.Context, items []database.Computer) ([]dto.Computer, error) {
	extras, err := h.db.ComputerExtras(c.Request.Context(), ids(items, computerID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.Computer, len(items))
	for i, v := range items {
		x := extras[v.ID]
		info := h.translate(c, i18n.MsgNotAssigned, nil)
		if v.Department != nil {
			info = fmt.Sprintf("Room %d (phone: %d)", v.Department.RoomNumber, v.Department.InternalPhone)
		}
		list := x.SoftwareList
		if list == nil {
			list = []string{}
		}
		out[i] = dto.Computer{
			ID:              v.ID,
			SerialNumber:    v.SerialNumber,
			Model:           v.Model,
			OS:              v.OS,
			InventoryNumber: v.InventoryNumber,
			DepartmentID:    v.DepartmentID,
			DepartmentInfo:  info,
			UsersCount:      x.UsersCount,
			SoftwareList:    list,
			NetworkSpeed:    x.NetworkSpeed,
		}
	}
	return out, nil
}

func (h *Handler) buildUsers(c *gin.Context, items []database.User) ([]dto.User, error) {
	extras, err := h.db.UserExtras(c.Request.Context(), ids(items, userID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.User, len(items))
	for i, u := range items {
		computers := make([]dto.ComputerInfo, 0, len(extras[u.ID].Computers))
		for _, b := range extras[u.ID].Computers {
			computers = append(computers, dto.ComputerInfo{ID: b.ID, Model: b.Model, OS: b.OS})
		}
		out[i] = dto.User{
			ID:               u.ID,
			FullName:         u.FullName,
			Phone:            u.Phone,
			Email:            u.Email,
			PositionID:       u.PositionID,
			DepartmentID:     u.DepartmentID,
			DepartmentRoom:   departmentRoom(u.Department),
			ComputersInfo:    computers,
			CanManageNetwork: slices.Contains(h.cfg.Validation.ManagerPositions, int64(u.PositionID)),
		}
	}
	return out, nil
}

func (h *Handler) buildSoftware(c *gin.Context, items []database.Software) ([]dto.Software, error) {
	extras, err := h.db.SoftwareExtras(c.Request.Context(), ids(items, softwareID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.Software, len(items))
	for i, s := range items {
		x := extras[s.ID]
		osList := x.PopularOS
		if osList == nil {
			osList = []string{}
		}
		out[i] = dto.Software{
			ID:                  s.ID,
			Name:                s.Name,
			Version:             s.Version,
			License:             s.License,
			Vendor:              s.Vendor,
			InstalledCount:      x.InstalledCount,
			PopularOS:           osList,
			NeedsLicenseRenewal: needsLicenseRenewal(s.License),
		}
	}
	return out, nil
}

func (h *Handler) buildEquipment(_ *gin.Context, items []database.Equipment) ([]dto.Equipment, error) {
	out := make([]dto.Equipment, len(items))
	for i, e := range items {
		out[i] = dto.Equipment{
			ID:              e.ID,
			Type:            e.Type,
			Bandwidth:       e.Bandwidth,
			PortCount:       e.PortCount,
			SetupDate:       dateString(e.SetupDate),
			TypeOfBandwidth: bandwidthType(e.Bandwidth),
		}
	}
	return out, nil
}

func networkComputer(nc database.NetworkComputer) dto.NetworkComputer {
	out := dto.NetworkComputer{
		ID:         nc.ID,
		NetworkID:  nc.NetworkID,
		ComputerID: nc.ComputerID,
		IPAddress:  nc.IPAddress,
		MACAddress: nc.MACAddress,
		Speed:      nc.Speed,
	}
	if nc.Computer != nil {
		out.ComputerModel = nc.Computer.Model
	}
	if nc.Network != nil {
		out.NetworkVLAN = nc.Network.VLAN
	}
	return out
}

func (h *Handler) buildNetworkComputers(_ *gin.Context, items []database.NetworkComputer) ([]dto.NetworkComputer, error) {
	out := make([]dto.NetworkComputer, len(items))
	for i, nc := range items {
		out[i] = networkComputer(nc)
	}
	return out, nil
}

func (h *Handler) buildNetworks(c *gin.Context, items []database.Network) ([]dto.Network, error) {
	extras, err := h.db.NetworkExtras(c.Request.Context(), ids(items, networkID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.Network, len(items))
	for i, n := range items {
		conns := make([]dto.NetworkComputer, 0, len(extras[n.ID].Connections))
		for _, nc := range extras[n.ID].Connections {
			conns = append(conns, networkComputer(nc))
		}
		out[i] = dto.Network{
			ID:               n.ID,
			SubnetMask:       n.SubnetMask,
			VLAN:             n.VLAN,
			IPRange:          n.IPRange,
			EquipmentID:      n.EquipmentID,
			NetworkComputers: conns,
		}
		if n.Equipment != nil {
			ports, typ := n.Equipment.PortCount, n.Equipment.Type
			out[i].EquipmentPortCount = &ports
			out[i].EquipmentType = &typ
		}
	}
	return out, nil
}

func (h *Handler) buildServers(c *gin.Context, items []database.Server) ([]dto.Server, error) {
	extras, err := h.db.ServerExtras(c.Request.Context(), ids(items, serverID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.Server, len(items))
	for i, s := range items {
		vlans := extras[s.ID].VLANs
		if vlans == nil {
			vlans = []int{}
		}
		out[i] = dto.Server{
			ID:             s.ID,
			Port:           s.Port,
			Hostname:       s.Hostname,
			ConnectionDate: dateString(s.ConnectionDate),
			Location:       s.Location,
			NetworksInfo:   vlans,
		}
	}
	return out, nil
}

func (h *Handler) buildHostComputers(_ *gin.Context, items []database.HostComputer) ([]dto.HostComputer, error) {
	out := make([]dto.HostComputer, len(items))
	for i, hc := range items {
		out[i] = dto.HostComputer{
			ID:             hc.ID,
			Hostname:       hc.Hostname,
			IPAddress:      hc.IPAddress,
			MACAddress:     hc.MACAddress,
			DepartmentID:   hc.DepartmentID,
			DepartmentRoom: departmentRoom(hc.Department),
		}
	}
	return out, nil
}

func (h *Handler) buildSoftwareComputers(_ *gin.Context, items []database.SoftwareComputer) ([]dto.SoftwareComputer, error) {
	out := make([]dto.SoftwareComputer, len(items))
	for i, v := range items {
		out[i] = dto.SoftwareComputer{ID: v.ID, SoftwareID: v.SoftwareID, ComputerID: v.ComputerID}
		if v.Software != nil {
			out[i].SoftwareName = v.Software.Name
		}
		if v.Computer != nil {
			out[i].ComputerModel = v.Computer.Model
		}
	}
	return out, nil
}

func (h *Handler) buildUserComputers(_ *gin.Context, items []database.UserComputer) ([]dto.UserComputer, error) {
	out := make([]dto.UserComputer, len(items))
	for i, v := range items {
		out[i] = dto.UserComputer{ID: v.ID, UserID: v.UserID, ComputerID: v.ComputerID}
		if v.User != nil {
			out[i].UserName = v.User.FullName
		}
		if v.Computer != nil {
			out[i].ComputerModel = v.Computer.Model
		}
	}
	return out, nil
}

func (h *Handler) buildServerNetworks(_ *gin.Context, items []database.ServerNetwork) ([]dto.ServerNetwork, error) {
	out := make([]dto.ServerNetwork, len(items))
	for i, v := range items {
		out[i] = dto.ServerNetwork{ID: v.ID, ServerID: v.ServerID, NetworkID: v.NetworkID}
		if v.Server != nil {
			out[i].ServerHostname = v.Server.Hostname
		}
		if v.Network != nil {
			out[i].NetworkVLAN = v.Network.VLAN
		}
	}
	return out, nil
}
