package handler

import (
	"context"

	"github.com/gold2201/LocalNetworkProject/internal/apiserver/database"
	"github.com/gold2201/LocalNetworkProject/internal/apiserver/filter"
	"github.com/gold2201/LocalNetworkProject/internal/apiserver/validate"
	"github.com/gold2201/LocalNetworkProject/internal/common/dto"
	"github.com/gold2201/LocalNetworkProject/internal/common/errorx"
	"github.com/gold2201/LocalNetworkProject/internal/i18n"
)

func conflictIf(taken bool, err error, msgID string) error {
	if err != nil {
		return err
	}
	if taken {
		return errorx.ConflictError(msgID, nil)
	}
	return nil
}

func (h *Handler) departments() *resource[database.Department, dto.Department] {
	return &resource[database.Department, dto.Department]{
		h:             h,
		path:          "departments",
		entity:        "department",
		exportBase:    "departments_export",
		repo:          h.db.Departments(),
		filters:       filter.Departments,
		exportFilters: filter.Departments,
		id:            departmentID,
		build:         h.buildDepartments,
		check: func(_ context.Context, v *database.Department, _ uint) error {
			return h.validator.Department(v)
		},
	}
}

func (h *Handler) computers() *resource[database.Computer, dto.Computer] {
	return &resource[database.Computer, dto.Computer]{
		h:             h,
		path:          "computers",
		entity:        "computer",
		exportBase:    "computers_export",
		repo:          h.db.Computers(),
		filters:       filter.Computers,
		exportFilters: filter.ComputersExport,
		id:            computerID,
		build:         h.buildComputers,
		conflict:      i18n.MsgConflictSerialNumber,
		check: func(ctx context.Context, v *database.Computer, id uint) error {
			if err := h.validator.Record(v); err != nil {
				return err
			}
			err := h.validator.References(ctx,
				validate.Ref{Field: "department_id", ID: v.DepartmentID, Exists: h.db.Departments().Exists})
			if err != nil {
				return err
			}
			taken, err := h.db.SerialNumberTaken(ctx, v.SerialNumber, id)
			return conflictIf(taken, err, i18n.MsgConflictSerialNumber)
		},
		afterCreate: h.provisionComputer,
	}
}

// provisionComputer attaches a new computer to the default network when
// provisioning is enabled
func (h *Handler) provisionComputer(ctx context.Context, v *database.Computer) error {
	p := h.cfg.Provisioning
	if !p.AttachDefaultNetwork || p.DefaultNetworkID == 0 {
		return nil
	}
	_, err := h.db.AttachDefaultNetwork(ctx, v.ID, p)
	return err
}

func (h *Handler) users() *resource[database.User, dto.User] {
	return &resource[database.User, dto.User]{
		h:             h,
		path:          "users",
		entity:        "user",
		exportBase:    "users_export",
		repo:          h.db.Users(),
		filters:       filter.Users,
		exportFilters: filter.Users,
		id:            userID,
		build:         h.buildUsers,
		conflict:      i18n.MsgConflictEmail,
		check: func(ctx context.Context, v *database.User, id uint) error {
			if err := h.validator.User(v); err != nil {
				return err
			}
			err := h.validator.References(ctx,
				validate.Ref{Field: "department_id", ID: v.DepartmentID, Exists: h.db.Departments().Exists})
			if err != nil {
				return err
			}
			taken, err := h.db.EmailTaken(ctx, v.Email, id)
			return conflictIf(taken, err, i18n.MsgConflictEmail)
		},
	}
}

func (h *Handler) software() *resource[database.Software, dto.Software] {
	return &resource[database.Software, dto.Software]{
		h:             h,
		path:          "software",
		entity:        "software",
		exportBase:    "software_export",
		repo:          h.db.Software(),
		filters:       filter.Software,
		exportFilters: filter.Software,
		id:            softwareID,
		build:         h.buildSoftware,
		conflict:      i18n.MsgConflictSoftware,
		check: func(ctx context.Context, v *database.Software, id uint) error {
			if err := h.validator.Record(v); err != nil {
				return err
			}
			taken, err := h.db.SoftwareTaken(ctx, v.Name, v.Version, id)
			return conflictIf(taken, err, i18n.MsgConflictSoftware)
		},
	}
}

func (h *Handler) equipment() *resource[database.Equipment, dto.Equipment] {
	return &resource[database.Equipment, dto.Equipment]{
		h:             h,
		path:          "equipment",
		entity:        "equipment",
		exportBase:    "equipment_export",
		repo:          h.db.Equipment(),
		filters:       filter.Equipment,
		exportFilters: filter.EquipmentExport,
		id:            func(v *database.Equipment) *uint { return &v.ID },
		build:         h.buildEquipment,
		check: func(_ context.Context, v *database.Equipment, _ uint) error {
			return h.validator.Record(v)
		},
		envelope: func(items []dto.Equipment) any {
			return dto.EquipmentList{Count: len(items), Equipment: items}
		},
	}
}

func (h *Handler) networks() *resource[database.Network, dto.Network] {
	return &resource[database.Network, dto.Network]{
		h:             h,
		path:          "networks",
		entity:        "network",
		exportBase:    "networks_export",
		repo:          h.db.Networks(),
		filters:       filter.Networks,
		exportFilters: filter.Networks,
		id:            networkID,
		build:         h.buildNetworks,
		check: func(ctx context.Context, v *database.Network, _ uint) error {
			if err := h.validator.Record(v); err != nil {
				return err
			}
			return h.validator.References(ctx, validate.RefTo("equipment_id", v.EquipmentID, h.db.Equipment().Exists))
		},
	}
}

func (h *Handler) networkComputers() *resource[database.NetworkComputer, dto.NetworkComputer] {
	return &resource[database.NetworkComputer, dto.NetworkComputer]{
		h:             h,
		path:          "network-computers",
		entity:        "network_computer",
		exportBase:    "network_computers_export",
		repo:          h.db.NetworkComputers(),
		filters:       filter.NetworkComputers,
		exportFilters: filter.NetworkComputers,
		id:            func(v *database.NetworkComputer) *uint { return &v.ID },
		build:         h.buildNetworkComputers,
		conflict:      i18n.MsgConflictAssociation,
		check: func(ctx context.Context, v *database.NetworkComputer, _ uint) error {
			if err := h.validator.Record(v); err != nil {
				return err
			}
			return h.validator.References(ctx,
				validate.RefTo("network_id", v.NetworkID, h.db.Networks().Exists),
				validate.RefTo("computer_id", v.ComputerID, h.db.Computers().Exists))
		},
	}
}

func (h *Handler) servers() *resource[database.Server, dto.Server] {
	return &resource[database.Server, dto.Server]{
		h:             h,
		path:          "servers",
		entity:        "server",
		exportBase:    "servers_export",
		repo:          h.db.Servers(),
		filters:       filter.Servers,
		exportFilters: filter.ServersExport,
		id:            serverID,
		build:         h.buildServers,
		check: func(_ context.Context, v *database.Server, _ uint) error {
			return h.validator.Record(v)
		},
	}
}

func (h *Handler) serverNetworks() *resource[database.ServerNetwork, dto.ServerNetwork] {
	return &resource[database.ServerNetwork, dto.ServerNetwork]{
		h:             h,
		path:          "server-networks",
		entity:        "server_network",
		exportBase:    "server_networks_export",
		repo:          h.db.ServerNetworks(),
		filters:       filter.ServerNetworks,
		exportFilters: filter.ServerNetworks,
		id:            func(v *database.ServerNetwork) *uint { return &v.ID },
		build:         h.buildServerNetworks,
		conflict:      i18n.MsgConflictAssociation,
		check: func(ctx context.Context, v *database.ServerNetwork, _ uint) error {
			if err := h.validator.Record(v); err != nil {
				return err
			}
			return h.validator.References(ctx,
				validate.RefTo("server_id", v.ServerID, h.db.Servers().Exists),
				validate.RefTo("network_id", v.NetworkID, h.db.Networks().Exists))
		},
	}
}

func (h *Handler) hostComputers() *resource[database.HostComputer, dto.HostComputer] {
	return &resource[database.HostComputer, dto.HostComputer]{
		h:             h,
		path:          "host-computers",
		entity:        "host_computer",
		exportBase:    "host_computers_export",
		repo:          h.db.HostComputers(),
		filters:       filter.HostComputers,
		exportFilters: filter.HostComputers,
		id:            func(v *database.HostComputer) *uint { return &v.ID },
		build:         h.buildHostComputers,
		conflict:      i18n.MsgConflictHostDepartment,
		check: func(ctx context.Context, v *database.HostComputer, id uint) error {
			if err := h.validator.Record(v); err != nil {
				return err
			}
			err := h.validator.References(ctx,
				validate.Ref{Field: "department_id", ID: v.DepartmentID, Exists: h.db.Departments().Exists})
			if err != nil || v.DepartmentID == nil {
				return err
			}
			taken, err := h.db.HostDepartmentTaken(ctx, *v.DepartmentID, id)
			return conflictIf(taken, err, i18n.MsgConflictHostDepartment)
		},
	}
}

func (h *Handler) softwareComputers() *resource[database.SoftwareComputer, dto.SoftwareComputer] {
	return &resource[database.SoftwareComputer, dto.SoftwareComputer]{
		h:             h,
		path:          "software-computers",
		entity:        "software_computer",
		exportBase:    "software_computers_export",
		repo:          h.db.SoftwareComputers(),
		filters:       filter.SoftwareComputers,
		exportFilters: filter.SoftwareComputers,
		id:            func(v *database.SoftwareComputer) *uint { return &v.ID },
		build:         h.buildSoftwareComputers,
		conflict:      i18n.MsgConflictAssociation,
		check: func(ctx context.Context, v *database.SoftwareComputer, _ uint) error {
			if err := h.validator.Record(v); err != nil {
				return err
			}
			return h.validator.References(ctx,
				validate.RefTo("software_id", v.SoftwareID, h.db.Software().Exists),
				validate.RefTo("computer_id", v.ComputerID, h.db.Computers().Exists))
		},
	}
}

func (h *Handler) userComputers() *resource[database.UserComputer, dto.UserComputer] {
	return &resource[database.UserComputer, dto.UserComputer]{
		h:             h,
		path:          "user-computers",
		entity:        "user_computer",
		exportBase:    "user_computers_export",
		repo:          h.db.UserComputers(),
		filters:       filter.UserComputers,
		exportFilters: filter.UserComputers,
		id:            func(v *database.UserComputer) *uint { return &v.ID },
		build:         h.buildUserComputers,
		conflict:      i18n.MsgConflictAssociation,
		check: func(ctx context.Context, v *database.UserComputer, _ uint) error {
			if err := h.validator.Record(v); err != nil {
				return err
			}
			return h.validator.References(ctx,
				validate.RefTo("user_id", v.UserID, h.db.Users().Exists),
				validate.RefTo("computer_id", v.ComputerID, h.db.Computers().Exists))
		},
	}
}
