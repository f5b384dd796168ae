package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gold2201/LocalNetworkProject/internal/apiserver/database"
	"github.com/gold2201/LocalNetworkProject/internal/common/dto"
	"github.com/gold2201/LocalNetworkProject/internal/common/errorx"
	"github.com/gold2201/LocalNetworkProject/internal/i18n"
)

// report serves a read-only report as JSON
func report[T any](h *Handler, fn func(ctx context.Context) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := fn(c.Request.Context())
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// reportByID serves a report about the record named by :id
func reportByID[T any](h *Handler, entity string, fn func(ctx context.Context, id uint) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, entity)
		if err != nil {
			h.fail(c, err)
			return
		}
		out, err := fn(c.Request.Context(), id)
		if err != nil {
			h.fail(c, notFound(err, entity, id))
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func column(name string, value any) database.Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where(name+" = ?", value) }
}

// requireRow fails with ErrNotFound when the parent row is missing
func requireRow[T any](ctx context.Context, repo *database.Repo[T], id uint) error {
	ok, err := repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return database.ErrNotFound
	}
	return nil
}

// Computers

// AttachDefaultNetwork handles POST /api/computers/:id/attach_default_network
func (h *Handler) AttachDefaultNetwork(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := pathID(c, "computer")
	if err != nil {
		h.fail(c, err)
		return
	}
	nc, err := h.db.AttachDefaultNetwork(ctx, id, h.cfg.Provisioning)
	if errors.Is(err, database.ErrConflict) {
		err = errorx.ConflictError(i18n.MsgConflictAssociation, err)
	}
	if err != nil {
		h.fail(c, notFound(err, "computer", id))
		return
	}
	if loaded, err := h.db.NetworkComputers().Get(ctx, nc.ID); err == nil {
		nc = loaded
	}
	c.JSON(http.StatusCreated, networkComputer(*nc))
}

// Users

// Managers handles GET /api/users/managers
func (h *Handler) Managers(c *gin.Context) {
	users, err := h.usersByPosition(c, true)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ManagersResponse{Count: len(users), Managers: users})
}

// NonManagers handles GET /api/users/non_manager
func (h *Handler) NonManagers(c *gin.Context) {
	users, err := h.usersByPosition(c, false)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NonManagersResponse{Count: len(users), NonManagers: users})
}

func (h *Handler) usersByPosition(c *gin.Context, managers bool) ([]dto.User, error) {
	users, err := h.db.UsersByPosition(c.Request.Context(), h.cfg.Validation.ManagerPositions, managers)
	if err != nil {
		return nil, err
	}
	return h.buildUsers(c, users)
}

// Software

// PopularityReport handles GET /api/software/popularity_report
func (h *Handler) PopularityReport(c *gin.Context) {
	items, err := h.db.SoftwareByPopularity(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out, err := h.buildSoftware(c, items)
	if err != nil {
		h.fail(c, err)
		return
	}
	var total int64
	for _, s := range out {
		total += s.InstalledCount
	}
	c.JSON(http.StatusOK, dto.PopularityReport{Count: len(out), Software: out, TotalInstallations: total})
}

// Networks

func (h *Handler) networkStatistics(ctx context.Context) (*database.NetworkStatistics, error) {
	return h.db.NetworkStatistics(ctx, h.cfg.Reports.VLANDistributionLimit)
}

// NetworkComputersOf handles GET /api/networks/:id/computers
func (h *Handler) NetworkComputersOf(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := pathID(c, "network")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := requireRow(ctx, h.db.Networks(), id); err != nil {
		h.fail(c, notFound(err, "network", id))
		return
	}
	items, err := h.db.NetworkComputers().List(ctx, column("network_computers.network_id", id))
	if err != nil {
		h.fail(c, err)
		return
	}
	out, _ := h.buildNetworkComputers(c, items)
	c.JSON(http.StatusOK, out)
}

// NetworkDetails handles GET /api/networks/:id/details
func (h *Handler) NetworkDetails(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := pathID(c, "network")
	if err != nil {
		h.fail(c, err)
		return
	}
	d, err := h.db.NetworkDetails(ctx, id, h.cfg.Reports.RecentConnectionsLimit)
	if err != nil {
		h.fail(c, notFound(err, "network", id))
		return
	}
	nets, err := h.buildNetworks(c, []database.Network{d.Network})
	if err != nil {
		h.fail(c, err)
		return
	}
	recent := d.RecentComputers
	if recent == nil {
		recent = []database.RecentComputer{}
	}
	c.JSON(http.StatusOK, dto.NetworkDetails{
		Network:                 nets[0],
		ConnectedComputersCount: d.ConnectedComputersCount,
		EquipmentInfo:           d.EquipmentInfo,
		RecentComputers:         recent,
	})
}

// Equipment

// EquipmentNetworks handles GET /api/equipment/:id/networks
func (h *Handler) EquipmentNetworks(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := pathID(c, "equipment")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := requireRow(ctx, h.db.Equipment(), id); err != nil {
		h.fail(c, notFound(err, "equipment", id))
		return
	}
	items, err := h.db.Networks().List(ctx, column("networks.equipment_id", id))
	if err != nil {
		h.fail(c, err)
		return
	}
	out, err := h.buildNetworks(c, items)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Host computers

// HostComputerDetails handles GET /api/host-computers/:id/details
func (h *Handler) HostComputerDetails(c *gin.Context) {
	id, err := pathID(c, "host_computer")
	if err != nil {
		h.fail(c, err)
		return
	}
	hc, err := h.db.HostComputers().Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, notFound(err, "host_computer", id))
		return
	}
	hosts, _ := h.buildHostComputers(c, []database.HostComputer{*hc})
	out := dto.HostComputerDetails{HostComputer: hosts[0]}
	if d := hc.Department; d != nil {
		out.DepartmentDetails = &dto.DepartmentDetails{
			RoomNumber:    d.RoomNumber,
			InternalPhone: d.InternalPhone,
			EmployeeCount: d.EmployeeCount,
		}
	}
	c.JSON(http.StatusOK, out)
}

// UnassignedHostComputers handles GET /api/host-computers/unassigned
func (h *Handler) UnassignedHostComputers(c *gin.Context) {
	items, err := h.db.HostComputers().List(c.Request.Context(), func(db *gorm.DB) *gorm.DB {
		return db.Where("host_computers.department_id IS NULL")
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	out, _ := h.buildHostComputers(c, items)
	c.JSON(http.StatusOK, out)
}
